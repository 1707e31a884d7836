package database

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/SathwikBadda/Relai/internal/models"
)

// PreferenceStore persists per-session search filters. Each call opens the
// store, runs its statements and closes again; there is no pooling and no
// transaction spanning calls.
type PreferenceStore struct {
	path   string
	logger *logrus.Logger
}

// PreferenceUpdate carries the filter fields supplied by one write. Nil
// fields are left untouched on an existing row.
type PreferenceUpdate struct {
	Area           *string
	PropertyType   *string
	MinBudget      *float64
	MaxBudget      *float64
	Configuration  *string
	PossessionDate *string
	MinSize        *float64
	MaxSize        *float64
}

func NewPreferenceStore(dbPath string, logger *logrus.Logger) *PreferenceStore {
	if logger == nil {
		logger = logrus.New()
		logger.SetFormatter(&logrus.JSONFormatter{})
		logger.SetOutput(os.Stdout)
	}
	return &PreferenceStore{path: dbPath, logger: logger}
}

func (s *PreferenceStore) open() (*gorm.DB, error) {
	if _, err := os.Stat(s.path); err != nil {
		return nil, fmt.Errorf("database not found: %s", s.path)
	}

	gdb, err := gorm.Open(sqlite.Open(s.path), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("error connecting to database: %w", err)
	}
	return gdb, nil
}

func closeStore(gdb *gorm.DB) {
	if sqlDB, err := gdb.DB(); err == nil {
		sqlDB.Close()
	}
}

// StorePreferences inserts or updates the preference row for a session.
// On update, only the supplied fields overwrite stored values; omitted
// fields keep whatever an earlier write put there. The last_updated
// timestamp is refreshed either way.
func (s *PreferenceStore) StorePreferences(sessionID string, update PreferenceUpdate) error {
	gdb, err := s.open()
	if err != nil {
		return err
	}
	defer closeStore(gdb)

	var existing models.UserPreference
	err = gdb.Where("session_id = ?", sessionID).First(&existing).Error

	switch {
	case err == nil:
		updates := update.toColumnMap()
		updates["last_updated"] = time.Now()
		if err := gdb.Model(&models.UserPreference{}).
			Where("session_id = ?", sessionID).
			Updates(updates).Error; err != nil {
			return fmt.Errorf("failed to update preferences: %w", err)
		}

	case errors.Is(err, gorm.ErrRecordNotFound):
		row := models.UserPreference{
			SessionID:      sessionID,
			Area:           update.Area,
			PropertyType:   update.PropertyType,
			MinBudget:      update.MinBudget,
			MaxBudget:      update.MaxBudget,
			Configuration:  update.Configuration,
			PossessionDate: update.PossessionDate,
			MinSize:        update.MinSize,
			MaxSize:        update.MaxSize,
			LastUpdated:    time.Now(),
		}
		if err := gdb.Create(&row).Error; err != nil {
			return fmt.Errorf("failed to insert preferences: %w", err)
		}

	default:
		return fmt.Errorf("failed to check existing preferences: %w", err)
	}

	s.logger.WithField("session_id", sessionID).Debug("Stored user preferences")
	return nil
}

// GetPreferences returns the stored row for a session, or nil when the
// session has never written preferences.
func (s *PreferenceStore) GetPreferences(sessionID string) (*models.UserPreference, error) {
	gdb, err := s.open()
	if err != nil {
		return nil, err
	}
	defer closeStore(gdb)

	var pref models.UserPreference
	err = gdb.Where("session_id = ?", sessionID).First(&pref).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get preferences: %w", err)
	}

	return &pref, nil
}

// toColumnMap keeps only the supplied fields, keyed by column name, so the
// update never clears a value written by an earlier call.
func (u PreferenceUpdate) toColumnMap() map[string]interface{} {
	updates := map[string]interface{}{}
	if u.Area != nil {
		updates["area"] = *u.Area
	}
	if u.PropertyType != nil {
		updates["property_type"] = *u.PropertyType
	}
	if u.MinBudget != nil {
		updates["min_budget"] = *u.MinBudget
	}
	if u.MaxBudget != nil {
		updates["max_budget"] = *u.MaxBudget
	}
	if u.Configuration != nil {
		updates["configuration"] = *u.Configuration
	}
	if u.PossessionDate != nil {
		updates["possession_date"] = *u.PossessionDate
	}
	if u.MinSize != nil {
		updates["min_size"] = *u.MinSize
	}
	if u.MaxSize != nil {
		updates["max_size"] = *u.MaxSize
	}
	return updates
}
