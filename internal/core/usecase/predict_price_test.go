package usecase

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/laraAkg/immoscout-project/internal/core/domain"
	"github.com/laraAkg/immoscout-project/internal/core/regression"
	"github.com/stretchr/testify/require"
)

func readyHolder() *ModelHolder {
	holder := NewModelHolder()
	holder.Swap(&domain.TrainedModel{
		Kind: domain.KindLinearRegression,
		Schema: domain.FeatureSchema{Columns: []string{
			domain.ColumnRooms, domain.ColumnLivingAreaM2, "plz_8001",
		}},
		Estimator: &regression.LinearModel{Intercept: 500, Weights: []float64{300, 10, 600}},
		TrainedAt: time.Now().UTC(),
		Version:   "20260829T120000",
	})
	return holder
}

func TestPredictKnownPostalCode(t *testing.T) {
	uc := NewPredictPriceUseCase(readyHolder())

	resp, err := uc.Predict(context.Background(), domain.PredictionRequest{
		Rooms: 3, LivingAreaM2: 80, PostalCode: "8001",
	})
	require.NoError(t, err)
	require.True(t, resp.KnownPostalCode)
	require.InDelta(t, 500+300*3+10*80+600, resp.PredictedPrice, 1e-9)
	require.Equal(t, domain.KindLinearRegression, resp.ModelKind)
	require.Equal(t, "20260829T120000", resp.ModelVersion)
}

func TestPredictUnknownPostalCodeUsesZeroFallback(t *testing.T) {
	uc := NewPredictPriceUseCase(readyHolder())

	resp, err := uc.Predict(context.Background(), domain.PredictionRequest{
		Rooms: 3, LivingAreaM2: 80, PostalCode: "9999",
	})
	require.NoError(t, err)
	require.False(t, resp.KnownPostalCode)
	// Все one-hot колонки нулевые, вклад района отсутствует
	require.InDelta(t, 500+300*3+10*80, resp.PredictedPrice, 1e-9)
}

func TestPredictValidationErrors(t *testing.T) {
	uc := NewPredictPriceUseCase(readyHolder())

	tests := []struct {
		name  string
		req   domain.PredictionRequest
		field string
	}{
		{"zero rooms", domain.PredictionRequest{Rooms: 0, LivingAreaM2: 80, PostalCode: "8001"}, "rooms"},
		{"negative area", domain.PredictionRequest{Rooms: 3, LivingAreaM2: -5, PostalCode: "8001"}, "living_area_m2"},
		{"missing postal code", domain.PredictionRequest{Rooms: 3, LivingAreaM2: 80}, "postal_code"},
		{"short postal code", domain.PredictionRequest{Rooms: 3, LivingAreaM2: 80, PostalCode: "801"}, "postal_code"},
		{"non-numeric postal code", domain.PredictionRequest{Rooms: 3, LivingAreaM2: 80, PostalCode: "80ab"}, "postal_code"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Predict(context.Background(), tt.req)
			var validationErr *domain.ValidationError
			require.True(t, errors.As(err, &validationErr))
			require.Equal(t, tt.field, validationErr.Field)
		})
	}
}

// snapshotListings - синтетический снапшот с линейной зависимостью цены
// от комнат, площади и надбавки за район. Запрос (3.5 комнаты, 75 м²)
// лежит внутри диапазона выборки.
func snapshotListings() []domain.RawListing {
	codes := []string{"3000", "8001", "8400"}
	premium := map[string]float64{"3000": 0, "8001": 900, "8400": 300}

	listings := make([]domain.RawListing, 0, 60)
	for i := 0; i < 60; i++ {
		code := codes[i%len(codes)]
		rooms := 2 + 0.5*float64(i%7)
		area := 45 + 8*float64(i%10)
		listings = append(listings, domain.RawListing{
			Rooms:        rooms,
			LivingAreaM2: area,
			Price:        400 + 280*rooms + 12*area + premium[code],
			PostalCode:   code,
			Locality:     "Testort",
		})
	}
	return listings
}

func TestPredictWithTrainedModelStaysInPriceRange(t *testing.T) {
	listings := snapshotListings()

	matrix, _, err := domain.BuildFeatures(listings, 10)
	require.NoError(t, err)

	cfg := regression.DefaultConfig()
	cfg.NumTrees = 25
	model, _, err := regression.Train(matrix, cfg)
	require.NoError(t, err)

	holder := NewModelHolder()
	holder.Swap(model)
	uc := NewPredictPriceUseCase(holder)

	resp, err := uc.Predict(context.Background(), domain.PredictionRequest{
		Rooms: 3.5, LivingAreaM2: 75, PostalCode: "8001",
	})
	require.NoError(t, err)
	require.True(t, resp.KnownPostalCode)
	require.Equal(t, model.Kind, resp.ModelKind)

	minPrice, maxPrice := math.Inf(1), math.Inf(-1)
	for _, l := range listings {
		minPrice = math.Min(minPrice, l.Price)
		maxPrice = math.Max(maxPrice, l.Price)
	}
	require.Greater(t, resp.PredictedPrice, 0.0)
	require.GreaterOrEqual(t, resp.PredictedPrice, minPrice)
	require.LessOrEqual(t, resp.PredictedPrice, maxPrice)
}

func TestPredictWithoutModel(t *testing.T) {
	uc := NewPredictPriceUseCase(NewModelHolder())

	_, err := uc.Predict(context.Background(), domain.PredictionRequest{
		Rooms: 3, LivingAreaM2: 80, PostalCode: "8001",
	})
	require.True(t, errors.Is(err, domain.ErrModelUnavailable))
}
