package database

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SathwikBadda/Relai/internal/dataloader"
)

func importFixture(t *testing.T, db *Database) {
	t.Helper()
	csvPath := writeCSV(t, csvHeader+
		"Skyline Towers,Apartment,Gachibowli,12/1/2025,200,12.0,\"2BHK, 3BHK\",1100,1800,5500\n"+
		"Green Meadows,Villa,Kondapur,Ready,60,15.0,\"4BHK\",2500,4000,7000\n"+
		"Budget Homes,Apartment,Miyapur,6/1/2026,300,10.0,\"1BHK, 2BHK\",600,1000,3500\n")
	count, err := db.ImportCSV(csvPath)
	require.NoError(t, err)
	require.Equal(t, 3, count)
}

func TestLoadPropertiesMatchesCSVView(t *testing.T) {
	db := newTestDatabase(t)
	csvPath := writeCSV(t, csvHeader+
		"Skyline Towers,Apartment,Gachibowli,12/1/2025,200,12.0,\"2BHK, 3BHK\",1100,1800,5500\n"+
		"Green Meadows,Villa,Kondapur,Ready,60,15.0,4BHK,2500,4000,7000\n")

	_, err := db.ImportCSV(csvPath)
	require.NoError(t, err)

	fromDB, err := db.LoadProperties()
	require.NoError(t, err)

	loader := dataloader.NewLoader(testLogger())
	fromCSV, err := loader.ReadCSV(csvPath)
	require.NoError(t, err)

	require.Len(t, fromDB, len(fromCSV))

	sort.Slice(fromDB, func(i, j int) bool { return fromDB[i].ProjectName < fromDB[j].ProjectName })
	sort.Slice(fromCSV, func(i, j int) bool { return fromCSV[i].ProjectName < fromCSV[j].ProjectName })

	for i := range fromCSV {
		want, got := fromCSV[i], fromDB[i]
		assert.Equal(t, want.ProjectName, got.ProjectName)
		assert.Equal(t, want.PropertyType, got.PropertyType)
		assert.Equal(t, want.Area, got.Area)
		assert.Equal(t, want.PossessionDate, got.PossessionDate)
		assert.Equal(t, want.TotalUnits, got.TotalUnits)
		assert.Equal(t, want.AreaSizeAcres, got.AreaSizeAcres)
		assert.Equal(t, want.MinSizeSqft, got.MinSizeSqft)
		assert.Equal(t, want.MaxSizeSqft, got.MaxSizeSqft)
		assert.Equal(t, want.PricePerSqft, got.PricePerSqft)

		wantLabels := dataloader.SplitConfigurations(want.Configurations)
		gotLabels := dataloader.SplitConfigurations(got.Configurations)
		sort.Strings(wantLabels)
		sort.Strings(gotLabels)
		assert.Equal(t, wantLabels, gotLabels)
	}
}

func TestLoadPropertiesEmptyDatabase(t *testing.T) {
	db := newTestDatabase(t)
	require.NoError(t, db.InitSchema())

	records, err := db.LoadProperties()
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestSearchProperties(t *testing.T) {
	db := newTestDatabase(t)
	importFixture(t, db)

	tests := []struct {
		name             string
		filter           SearchFilter
		expectedProjects []string
	}{
		{
			name:             "By area",
			filter:           SearchFilter{Area: "Gachibowli"},
			expectedProjects: []string{"Skyline Towers"},
		},
		{
			name:             "By property type",
			filter:           SearchFilter{PropertyType: "Apartment"},
			expectedProjects: []string{"Skyline Towers", "Budget Homes"},
		},
		{
			name:             "By max budget",
			filter:           SearchFilter{MaxBudget: 5000000},
			expectedProjects: []string{"Budget Homes"},
		},
		{
			name:             "By configuration",
			filter:           SearchFilter{Configurations: "2BHK"},
			expectedProjects: []string{"Skyline Towers", "Budget Homes"},
		},
		{
			name:             "By min size",
			filter:           SearchFilter{MinSize: 2000},
			expectedProjects: []string{"Green Meadows"},
		},
		{
			name:             "By possession date fragment",
			filter:           SearchFilter{PossessionDate: "2026"},
			expectedProjects: []string{"Budget Homes"},
		},
		{
			name:             "Combined filters",
			filter:           SearchFilter{Area: "Miyapur", Configurations: "1BHK, 2BHK"},
			expectedProjects: []string{"Budget Homes"},
		},
		{
			name:             "No match",
			filter:           SearchFilter{Area: "Nowhere"},
			expectedProjects: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			matches, err := db.SearchProperties(tt.filter)
			require.NoError(t, err)

			var projects []string
			for _, m := range matches {
				projects = append(projects, m.ProjectName)
			}
			sort.Strings(projects)
			expected := append([]string(nil), tt.expectedProjects...)
			sort.Strings(expected)
			assert.Equal(t, expected, projects)
		})
	}
}

func TestSearchPropertiesLimit(t *testing.T) {
	db := newTestDatabase(t)
	importFixture(t, db)

	matches, err := db.SearchProperties(SearchFilter{Limit: 2})
	require.NoError(t, err)
	assert.Len(t, matches, 2)
}

func TestSearchPropertiesConfiguredLimit(t *testing.T) {
	db := newTestDatabase(t)
	importFixture(t, db)

	// A configured limit applies when the filter leaves Limit unset
	db.SetSearchLimit(2)
	matches, err := db.SearchProperties(SearchFilter{})
	require.NoError(t, err)
	assert.Len(t, matches, 2)

	// An explicit filter limit still wins
	matches, err = db.SearchProperties(SearchFilter{Limit: 1})
	require.NoError(t, err)
	assert.Len(t, matches, 1)
}

func TestSearchPropertiesTotalPrices(t *testing.T) {
	db := newTestDatabase(t)
	importFixture(t, db)

	matches, err := db.SearchProperties(SearchFilter{Area: "Gachibowli"})
	require.NoError(t, err)
	require.Len(t, matches, 1)

	assert.Equal(t, int64(1100*5500), matches[0].MinTotalPrice)
	assert.Equal(t, int64(1800*5500), matches[0].MaxTotalPrice)
}

func TestSearchPropertiesStoresPreferences(t *testing.T) {
	db := newTestDatabase(t)
	importFixture(t, db)

	_, err := db.SearchProperties(SearchFilter{
		SessionID:    "session-42",
		Area:         "Gachibowli",
		PropertyType: "Apartment",
	})
	require.NoError(t, err)

	store := NewPreferenceStore(db.Path(), testLogger())
	pref, err := store.GetPreferences("session-42")
	require.NoError(t, err)
	require.NotNil(t, pref)
	require.NotNil(t, pref.Area)
	assert.Equal(t, "Gachibowli", *pref.Area)
	require.NotNil(t, pref.PropertyType)
	assert.Equal(t, "Apartment", *pref.PropertyType)
	assert.Nil(t, pref.MinBudget)
}
