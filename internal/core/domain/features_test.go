package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func validListings(n int) []RawListing {
	codes := []string{"8001", "8400", "3000"}
	listings := make([]RawListing, 0, n)
	for i := 0; i < n; i++ {
		listings = append(listings, RawListing{
			Rooms:        2.5 + float64(i%3),
			LivingAreaM2: 50 + float64(i*5),
			Price:        1200 + float64(i*100),
			PostalCode:   codes[i%len(codes)],
			Locality:     "Testort",
		})
	}
	return listings
}

func TestBuildFeaturesSchemaIsDeterministic(t *testing.T) {
	listings := validListings(12)

	matrix, stats, err := BuildFeatures(listings, 10)
	require.NoError(t, err)
	require.Equal(t, 12, stats.Total)
	require.Equal(t, 12, stats.Used)
	require.Equal(t, 0, stats.Dropped)

	// Числовые колонки первыми, индексы отсортированы
	require.Equal(t, []string{
		ColumnRooms, ColumnLivingAreaM2,
		"plz_3000", "plz_8001", "plz_8400",
	}, matrix.Schema.Columns)

	require.Len(t, matrix.X, 12)
	require.Len(t, matrix.Y, 12)

	again, _, err := BuildFeatures(listings, 10)
	require.NoError(t, err)
	require.Equal(t, matrix.Schema, again.Schema)
}

func TestBuildFeaturesDropsInvalidRows(t *testing.T) {
	listings := validListings(10)
	listings = append(listings,
		RawListing{Rooms: 0, LivingAreaM2: 50, Price: 1000, PostalCode: "8001"},
		RawListing{Rooms: 2, LivingAreaM2: -1, Price: 1000, PostalCode: "8001"},
		RawListing{Rooms: 2, LivingAreaM2: 50, Price: 0, PostalCode: "8001"},
		RawListing{Rooms: 2, LivingAreaM2: 50, Price: 1000, PostalCode: ""},
	)

	matrix, stats, err := BuildFeatures(listings, 10)
	require.NoError(t, err)
	require.Equal(t, 14, stats.Total)
	require.Equal(t, 10, stats.Used)
	require.Equal(t, 4, stats.Dropped)
	require.Len(t, matrix.X, 10)
}

func TestBuildFeaturesDataInsufficient(t *testing.T) {
	_, stats, err := BuildFeatures(validListings(5), 10)
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrDataInsufficient))
	require.Equal(t, 5, stats.Used)
}

func TestEncodeKnownPostalCode(t *testing.T) {
	schema := FeatureSchema{Columns: []string{ColumnRooms, ColumnLivingAreaM2, "plz_8001", "plz_8400"}}

	vector, known := schema.Encode(3.5, 80, "8400")
	require.True(t, known)
	require.Equal(t, []float64{3.5, 80, 0, 1}, vector)
}

func TestEncodeUnknownPostalCodeZeroFallback(t *testing.T) {
	schema := FeatureSchema{Columns: []string{ColumnRooms, ColumnLivingAreaM2, "plz_8001", "plz_8400"}}

	vector, known := schema.Encode(2, 55, "9999")
	require.False(t, known)
	require.Equal(t, []float64{2, 55, 0, 0}, vector)
}
