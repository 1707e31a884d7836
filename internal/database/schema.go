package database

import "fmt"

// InitSchema creates the four tables if they do not exist. Safe to call
// repeatedly.
func (d *Database) InitSchema() error {
	_, err := d.db.Exec(`
		CREATE TABLE IF NOT EXISTS properties (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			project_name TEXT NOT NULL,
			property_type TEXT NOT NULL,
			area TEXT NOT NULL,
			possession_date TEXT NOT NULL,
			total_units INTEGER,
			area_size_acres REAL,
			min_size_sqft INTEGER NOT NULL,
			max_size_sqft INTEGER NOT NULL,
			price_per_sqft INTEGER NOT NULL
		);
	`)
	if err != nil {
		return fmt.Errorf("failed to create properties table: %w", err)
	}

	_, err = d.db.Exec(`
		CREATE TABLE IF NOT EXISTS configurations (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT UNIQUE NOT NULL
		);
	`)
	if err != nil {
		return fmt.Errorf("failed to create configurations table: %w", err)
	}

	_, err = d.db.Exec(`
		CREATE TABLE IF NOT EXISTS property_configurations (
			property_id INTEGER,
			configuration_id INTEGER,
			PRIMARY KEY (property_id, configuration_id),
			FOREIGN KEY (property_id) REFERENCES properties (id),
			FOREIGN KEY (configuration_id) REFERENCES configurations (id)
		);
	`)
	if err != nil {
		return fmt.Errorf("failed to create property_configurations table: %w", err)
	}

	_, err = d.db.Exec(`
		CREATE TABLE IF NOT EXISTS user_preferences (
			session_id TEXT PRIMARY KEY,
			area TEXT,
			property_type TEXT,
			min_budget REAL,
			max_budget REAL,
			configuration TEXT,
			possession_date TEXT,
			min_size REAL,
			max_size REAL,
			last_updated TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		);
	`)
	if err != nil {
		return fmt.Errorf("failed to create user_preferences table: %w", err)
	}

	return nil
}
