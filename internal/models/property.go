package models

import "time"

// Property is a single listing as stored in the properties table.
// TotalUnits and AreaSizeAcres are optional in source data.
type Property struct {
	ID             int64    `json:"id"`
	ProjectName    string   `json:"project_name"`
	PropertyType   string   `json:"property_type"`
	Area           string   `json:"area"`
	PossessionDate string   `json:"possession_date"`
	TotalUnits     *int     `json:"total_units"`
	AreaSizeAcres  *float64 `json:"area_size_acres"`
	MinSizeSqft    int      `json:"min_size_sqft"`
	MaxSizeSqft    int      `json:"max_size_sqft"`
	PricePerSqft   int      `json:"price_per_sqft"`
	Configurations []string `json:"configurations"`
}

// PropertyRecord is the denormalized tabular form of a listing, shaped like
// one CSV row. Both the CSV parser and the database join query produce this
// type, so downstream consumers see one logical schema regardless of source.
type PropertyRecord struct {
	ProjectName    string  `json:"ProjectName"`
	PropertyType   string  `json:"PropertyType"`
	Area           string  `json:"Area"`
	PossessionDate string  `json:"PossessionDate"`
	TotalUnits     int     `json:"TotalUnits"`
	AreaSizeAcres  float64 `json:"AreaSizeAcres"`
	Configurations string  `json:"Configurations"`
	MinSizeSqft    int     `json:"MinSizeSqft"`
	MaxSizeSqft    int     `json:"MaxSizeSqft"`
	PricePerSqft   int     `json:"PricePerSqft"`
}

// PropertyMatch is a search hit: the record plus its row id and the total
// price range derived from size and price per sqft.
type PropertyMatch struct {
	PropertyRecord
	ID            int64 `json:"id"`
	MinTotalPrice int64 `json:"min_total_price"`
	MaxTotalPrice int64 `json:"max_total_price"`
}

// UserPreference holds the last known search filters for one chat session.
// Nil fields were never supplied by the user.
type UserPreference struct {
	SessionID      string    `gorm:"column:session_id;primaryKey" json:"session_id"`
	Area           *string   `gorm:"column:area" json:"area"`
	PropertyType   *string   `gorm:"column:property_type" json:"property_type"`
	MinBudget      *float64  `gorm:"column:min_budget" json:"min_budget"`
	MaxBudget      *float64  `gorm:"column:max_budget" json:"max_budget"`
	Configuration  *string   `gorm:"column:configuration" json:"configuration"`
	PossessionDate *string   `gorm:"column:possession_date" json:"possession_date"`
	MinSize        *float64  `gorm:"column:min_size" json:"min_size"`
	MaxSize        *float64  `gorm:"column:max_size" json:"max_size"`
	LastUpdated    time.Time `gorm:"column:last_updated" json:"last_updated"`
}

func (UserPreference) TableName() string {
	return "user_preferences"
}

// Import defaults, enumerated per CSV column. A missing or empty field takes
// the listed value; there is no implicit coercion anywhere else.
const (
	DefaultProjectName    = "Unknown Project"
	DefaultPropertyType   = "Unknown Type"
	DefaultArea           = "Unknown Area"
	DefaultPossessionDate = "Unknown Date"
	DefaultTotalUnits     = 0
	DefaultAreaSizeAcres  = 0.0
	DefaultMinSizeSqft    = 0
	DefaultMaxSizeSqft    = 0
	DefaultPricePerSqft   = 0
)
