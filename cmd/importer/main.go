package main

import (
	"os"

	"github.com/sirupsen/logrus"

	"github.com/SathwikBadda/Relai/config"
	"github.com/SathwikBadda/Relai/internal/database"
)

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetOutput(os.Stdout)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.WithError(err).Fatal("Failed to load configuration")
	}
	if cfg.DebugMode {
		logger.SetLevel(logrus.DebugLevel)
	}

	csvPath := cfg.DataPath
	if len(os.Args) > 1 {
		csvPath = os.Args[1]
	}
	logger.Infof("Importing %s into %s", csvPath, cfg.DatabasePath)

	db, err := database.NewDatabase(cfg.DatabasePath, logger)
	if err != nil {
		logger.WithError(err).Fatal("Failed to initialize database")
	}
	defer db.Close()
	db.SetSearchLimit(cfg.SearchLimit)

	count, err := db.ImportCSV(csvPath)
	if err != nil {
		logger.WithError(err).Fatal("Import failed")
	}

	logger.Infof("Successfully imported %d properties", count)
}
