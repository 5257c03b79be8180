package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCleanScrapedListing(t *testing.T) {
	listing := ScrapedListing{
		Rooms:    "3.5 Zimmer",
		Size:     "75 m²",
		Price:    "CHF 1’250.–",
		Location: "Musterstrasse 1, 8001 Zürich",
		Attributes: map[string]string{
			"floor": "2",
		},
	}

	cleaned, err := CleanScrapedListing(listing)
	require.NoError(t, err)
	require.Equal(t, 3.5, cleaned.Rooms)
	require.Equal(t, 75.0, cleaned.LivingAreaM2)
	require.Equal(t, 1250.0, cleaned.Price)
	require.Equal(t, "8001", cleaned.PostalCode)
	require.Equal(t, "Zürich", cleaned.Locality)
	require.Equal(t, "2", cleaned.RawAttributes["floor"])
}

func TestCleanScrapedListingLocationWithoutStreet(t *testing.T) {
	cleaned, err := CleanScrapedListing(ScrapedListing{
		Rooms:    "2 Zimmer",
		Size:     "48 m²",
		Price:    "CHF 980.–",
		Location: "8400 Winterthur",
	})
	require.NoError(t, err)
	require.Equal(t, "8400", cleaned.PostalCode)
	require.Equal(t, "Winterthur", cleaned.Locality)
}

func TestCleanScrapedListingPriceWithApostrophe(t *testing.T) {
	cleaned, err := CleanScrapedListing(ScrapedListing{
		Rooms:    "4.5 Zimmer",
		Size:     "120 m²",
		Price:    "CHF 2'850.–",
		Location: "Seestrasse 10, 8810 Horgen",
	})
	require.NoError(t, err)
	require.Equal(t, 2850.0, cleaned.Price)
}

func TestCleanScrapedListingMalformed(t *testing.T) {
	base := ScrapedListing{
		Rooms:    "3.5 Zimmer",
		Size:     "75 m²",
		Price:    "CHF 1’250.–",
		Location: "Musterstrasse 1, 8001 Zürich",
	}

	tests := []struct {
		name   string
		mutate func(s *ScrapedListing)
	}{
		{"rooms without number", func(s *ScrapedListing) { s.Rooms = "Zimmer auf Anfrage" }},
		{"size without number", func(s *ScrapedListing) { s.Size = "k.A." }},
		{"price without number", func(s *ScrapedListing) { s.Price = "Preis auf Anfrage" }},
		{"location without postal code", func(s *ScrapedListing) { s.Location = "Zürich" }},
		{"empty location", func(s *ScrapedListing) { s.Location = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			listing := base
			tt.mutate(&listing)
			_, err := CleanScrapedListing(listing)
			require.Error(t, err)
		})
	}
}
