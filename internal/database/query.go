package database

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/SathwikBadda/Relai/internal/dataloader"
	"github.com/SathwikBadda/Relai/internal/models"
)

// LoadProperties reconstructs the denormalized tabular view from the
// relational schema: one record per property with its configuration labels
// concatenated back into a comma-joined string. The records carry the same
// columns as a parsed CSV, so callers can consume either source identically.
func (d *Database) LoadProperties() ([]models.PropertyRecord, error) {
	rows, err := d.db.Query(`
		SELECT
			p.project_name,
			p.property_type,
			p.area,
			p.possession_date,
			COALESCE(p.total_units, 0) as total_units,
			COALESCE(p.area_size_acres, 0) as area_size_acres,
			GROUP_CONCAT(c.name, ', ') as configurations,
			p.min_size_sqft,
			p.max_size_sqft,
			p.price_per_sqft
		FROM properties p
		LEFT JOIN property_configurations pc ON p.id = pc.property_id
		LEFT JOIN configurations c ON pc.configuration_id = c.id
		GROUP BY p.id
	`)
	if err != nil {
		return nil, fmt.Errorf("error loading property data from database: %w", err)
	}
	defer rows.Close()

	var records []models.PropertyRecord
	for rows.Next() {
		var rec models.PropertyRecord
		var configurations sql.NullString

		err := rows.Scan(
			&rec.ProjectName,
			&rec.PropertyType,
			&rec.Area,
			&rec.PossessionDate,
			&rec.TotalUnits,
			&rec.AreaSizeAcres,
			&configurations,
			&rec.MinSizeSqft,
			&rec.MaxSizeSqft,
			&rec.PricePerSqft,
		)
		if err != nil {
			return nil, fmt.Errorf("error loading property data from database: %w", err)
		}

		if configurations.Valid {
			rec.Configurations = configurations.String
		}
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error loading property data from database: %w", err)
	}

	return records, nil
}

// SearchFilter holds optional listing filters. Zero values mean "not set".
type SearchFilter struct {
	SessionID      string
	Area           string
	PropertyType   string
	MinBudget      float64
	MaxBudget      float64
	Configurations string
	PossessionDate string
	MinSize        float64
	MaxSize        float64
	Limit          int
}

// SearchProperties returns listings matching the filter. Budget filters
// compare against total price (size times price per sqft); size filters
// accept any property whose size range overlaps the requested one.
//
// When the filter carries a session id, the supplied fields are also written
// through to that session's stored preferences; a failure there is logged
// and does not fail the search.
func (d *Database) SearchProperties(f SearchFilter) ([]models.PropertyMatch, error) {
	if f.SessionID != "" {
		if err := d.storeFilterPreferences(f); err != nil {
			d.logger.WithError(err).WithField("session_id", f.SessionID).Warn("Failed to store search preferences")
		}
	}

	query := `
		SELECT DISTINCT
			p.id, p.project_name, p.property_type, p.area, p.possession_date,
			COALESCE(p.total_units, 0) as total_units,
			COALESCE(p.area_size_acres, 0) as area_size_acres,
			p.min_size_sqft, p.max_size_sqft, p.price_per_sqft,
			(p.min_size_sqft * p.price_per_sqft) as min_total_price,
			(p.max_size_sqft * p.price_per_sqft) as max_total_price,
			GROUP_CONCAT(c.name, ', ') as configurations
		FROM properties p
		LEFT JOIN property_configurations pc ON p.id = pc.property_id
		LEFT JOIN configurations c ON pc.configuration_id = c.id
		WHERE 1=1
	`
	var args []interface{}

	if f.Area != "" {
		query += " AND p.area = ?"
		args = append(args, f.Area)
	}
	if f.PropertyType != "" {
		query += " AND p.property_type = ?"
		args = append(args, f.PropertyType)
	}
	if f.MinBudget > 0 {
		query += " AND (p.max_size_sqft * p.price_per_sqft) >= ?"
		args = append(args, f.MinBudget)
	}
	if f.MaxBudget > 0 {
		query += " AND (p.min_size_sqft * p.price_per_sqft) <= ?"
		args = append(args, f.MaxBudget)
	}
	if labels := dataloader.SplitConfigurations(f.Configurations); len(labels) > 0 {
		placeholders := strings.TrimRight(strings.Repeat("?,", len(labels)), ",")
		query += fmt.Sprintf(`
			AND EXISTS (
				SELECT 1 FROM property_configurations pc2
				JOIN configurations c2 ON pc2.configuration_id = c2.id
				WHERE pc2.property_id = p.id AND c2.name IN (%s)
			)
		`, placeholders)
		for _, label := range labels {
			args = append(args, label)
		}
	}
	if f.PossessionDate != "" {
		query += " AND p.possession_date LIKE ?"
		args = append(args, "%"+f.PossessionDate+"%")
	}
	if f.MinSize > 0 {
		query += " AND p.max_size_sqft >= ?"
		args = append(args, f.MinSize)
	}
	if f.MaxSize > 0 {
		query += " AND p.min_size_sqft <= ?"
		args = append(args, f.MaxSize)
	}

	query += " GROUP BY p.id LIMIT ?"
	limit := f.Limit
	if limit <= 0 {
		limit = d.searchLimit
	}
	args = append(args, limit)

	rows, err := d.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("error searching properties: %w", err)
	}
	defer rows.Close()

	var matches []models.PropertyMatch
	for rows.Next() {
		var m models.PropertyMatch
		var configurations sql.NullString

		err := rows.Scan(
			&m.ID,
			&m.ProjectName,
			&m.PropertyType,
			&m.Area,
			&m.PossessionDate,
			&m.TotalUnits,
			&m.AreaSizeAcres,
			&m.MinSizeSqft,
			&m.MaxSizeSqft,
			&m.PricePerSqft,
			&m.MinTotalPrice,
			&m.MaxTotalPrice,
			&configurations,
		)
		if err != nil {
			return nil, fmt.Errorf("error searching properties: %w", err)
		}

		if configurations.Valid {
			m.Configurations = configurations.String
		}
		matches = append(matches, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error searching properties: %w", err)
	}

	return matches, nil
}

func (d *Database) storeFilterPreferences(f SearchFilter) error {
	update := PreferenceUpdate{}
	if f.Area != "" {
		update.Area = &f.Area
	}
	if f.PropertyType != "" {
		update.PropertyType = &f.PropertyType
	}
	if f.MinBudget > 0 {
		update.MinBudget = &f.MinBudget
	}
	if f.MaxBudget > 0 {
		update.MaxBudget = &f.MaxBudget
	}
	if f.Configurations != "" {
		update.Configuration = &f.Configurations
	}
	if f.PossessionDate != "" {
		update.PossessionDate = &f.PossessionDate
	}
	if f.MinSize > 0 {
		update.MinSize = &f.MinSize
	}
	if f.MaxSize > 0 {
		update.MaxSize = &f.MaxSize
	}

	store := NewPreferenceStore(d.path, d.logger)
	return store.StorePreferences(f.SessionID, update)
}
