package database

import (
	"database/sql"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/SathwikBadda/Relai/internal/dataloader"
	"github.com/SathwikBadda/Relai/internal/models"
)

// ImportCSV replaces the property tables with the contents of a CSV file.
//
// The import is full-replace: existing join rows, configurations and
// properties are deleted before the new rows go in. A row that fails to
// process is logged and skipped so one bad row never aborts the import.
// Everything happens in one transaction with a single commit at the end.
func (d *Database) ImportCSV(csvPath string) (int, error) {
	loader := dataloader.NewLoader(d.logger)
	records, err := loader.ReadCSV(csvPath)
	if err != nil {
		return 0, err
	}

	if err := d.InitSchema(); err != nil {
		return 0, err
	}

	tx, err := d.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	// Clear existing data; join rows first because of the foreign keys
	for _, table := range []string{"property_configurations", "configurations", "properties"} {
		if _, err := tx.Exec("DELETE FROM " + table); err != nil {
			return 0, fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}

	stmts, err := prepareImportStatements(tx)
	if err != nil {
		return 0, err
	}
	defer stmts.close()

	imported := 0
	for i, rec := range records {
		if err := stmts.insertRecord(rec); err != nil {
			d.logger.WithError(err).WithField("row", i).Warn("Error processing property row")
			continue
		}
		imported++
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit import: %w", err)
	}

	d.logger.WithFields(logrus.Fields{
		"imported": imported,
		"source":   csvPath,
		"database": d.path,
	}).Info("Imported properties")

	return imported, nil
}

type importStatements struct {
	insertProperty *sql.Stmt
	insertConfig   *sql.Stmt
	selectConfig   *sql.Stmt
	insertJoin     *sql.Stmt
}

func prepareImportStatements(tx *sql.Tx) (*importStatements, error) {
	s := &importStatements{}
	var err error

	s.insertProperty, err = tx.Prepare(`
		INSERT INTO properties (
			project_name, property_type, area, possession_date,
			total_units, area_size_acres, min_size_sqft,
			max_size_sqft, price_per_sqft
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare property insert: %w", err)
	}

	// Dedup relies on the UNIQUE constraint on configurations.name
	s.insertConfig, err = tx.Prepare(`INSERT OR IGNORE INTO configurations (name) VALUES (?)`)
	if err != nil {
		s.close()
		return nil, fmt.Errorf("failed to prepare configuration insert: %w", err)
	}

	s.selectConfig, err = tx.Prepare(`SELECT id FROM configurations WHERE name = ?`)
	if err != nil {
		s.close()
		return nil, fmt.Errorf("failed to prepare configuration lookup: %w", err)
	}

	s.insertJoin, err = tx.Prepare(`
		INSERT INTO property_configurations (property_id, configuration_id)
		VALUES (?, ?)
	`)
	if err != nil {
		s.close()
		return nil, fmt.Errorf("failed to prepare join insert: %w", err)
	}

	return s, nil
}

func (s *importStatements) insertRecord(rec models.PropertyRecord) error {
	res, err := s.insertProperty.Exec(
		rec.ProjectName,
		rec.PropertyType,
		rec.Area,
		rec.PossessionDate,
		rec.TotalUnits,
		rec.AreaSizeAcres,
		rec.MinSizeSqft,
		rec.MaxSizeSqft,
		rec.PricePerSqft,
	)
	if err != nil {
		return fmt.Errorf("failed to insert property: %w", err)
	}

	propertyID, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get property id: %w", err)
	}

	for _, label := range dataloader.SplitConfigurations(rec.Configurations) {
		if _, err := s.insertConfig.Exec(label); err != nil {
			return fmt.Errorf("failed to insert configuration %q: %w", label, err)
		}

		var configID int64
		if err := s.selectConfig.QueryRow(label).Scan(&configID); err != nil {
			return fmt.Errorf("failed to look up configuration %q: %w", label, err)
		}

		if _, err := s.insertJoin.Exec(propertyID, configID); err != nil {
			return fmt.Errorf("failed to link configuration %q: %w", label, err)
		}
	}

	return nil
}

func (s *importStatements) close() {
	for _, stmt := range []*sql.Stmt{s.insertProperty, s.insertConfig, s.selectConfig, s.insertJoin} {
		if stmt != nil {
			stmt.Close()
		}
	}
}
