// Package sampledata produces synthetic property listings for tests and
// demos. Nothing here touches storage.
package sampledata

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/SathwikBadda/Relai/internal/models"
)

var (
	areas = []string{
		"Gachibowli", "Hitech City", "Kondapur", "Miyapur",
		"Bachupally", "Kukatpally", "Manikonda",
	}
	propertyTypes = []string{
		"Apartment", "Villa", "Duplex", "Independent House", "Plot",
	}
	configurations = []string{"1BHK", "2BHK", "3BHK", "4BHK", "5BHK"}
)

// Generate returns n synthetic listings with plausible values. Any row drawn
// with min size at or above max size is repaired by pushing max size up.
func Generate(n int) []models.PropertyRecord {
	records := make([]models.PropertyRecord, n)
	for i := range records {
		rec := models.PropertyRecord{
			ProjectName:    fmt.Sprintf("Project %d", i+1),
			PropertyType:   propertyTypes[rand.Intn(len(propertyTypes))],
			Area:           areas[rand.Intn(len(areas))],
			PossessionDate: fmt.Sprintf("%d/1/%d", 1+rand.Intn(12), 2023+rand.Intn(4)),
			TotalUnits:     50 + rand.Intn(450),
			AreaSizeAcres:  float64(50+rand.Intn(200)) / 10,
			Configurations: randomConfigurations(),
			MinSizeSqft:    800 + rand.Intn(700),
			MaxSizeSqft:    1500 + rand.Intn(1500),
			PricePerSqft:   4000 + rand.Intn(4000),
		}

		if rec.MinSizeSqft >= rec.MaxSizeSqft {
			rec.MaxSizeSqft = rec.MinSizeSqft + 300 + rand.Intn(700)
		}

		records[i] = rec
	}
	return records
}

// randomConfigurations picks one to three distinct labels.
func randomConfigurations() string {
	count := 1 + rand.Intn(3)
	perm := rand.Perm(len(configurations))

	picked := make([]string, count)
	for i := 0; i < count; i++ {
		picked[i] = configurations[perm[i]]
	}
	return strings.Join(picked, ", ")
}
