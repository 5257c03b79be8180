package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/laraAkg/immoscout-project/internal/core/domain"
	"github.com/laraAkg/immoscout-project/internal/core/regression"
	"github.com/stretchr/testify/require"
)

func trainingListings(n int) []domain.RawListing {
	codes := []string{"8001", "8400", "3000"}
	listings := make([]domain.RawListing, 0, n)
	for i := 0; i < n; i++ {
		rooms := 1.5 + float64(i%5)
		area := 40 + float64(i*2)
		listings = append(listings, domain.RawListing{
			Rooms:        rooms,
			LivingAreaM2: area,
			Price:        400*rooms + 12*area + 100*float64(i%len(codes)),
			PostalCode:   codes[i%len(codes)],
			Locality:     "Testort",
		})
	}
	return listings
}

func TestTrainModelExecuteEndToEnd(t *testing.T) {
	store := &fakeListingStore{listings: trainingListings(40)}
	registry := newFakeModelRegistry()
	publisher := &fakeEventPublisher{}

	uc := NewTrainModelUseCase(store, registry, publisher, regression.DefaultConfig(), 10)
	uc.now = func() time.Time { return time.Date(2026, 8, 29, 12, 30, 0, 0, time.UTC) }

	report, err := uc.Execute(context.Background())
	require.NoError(t, err)
	require.Equal(t, "20260829T123000", report.Version)
	require.NotEmpty(t, report.Winner)
	require.Len(t, report.Candidates, 4)
	require.Equal(t, 40, report.Features.Used)

	// Артефакт выгружен и событие опубликовано с той же версией
	artifact, ok := registry.artifacts[report.Version]
	require.True(t, ok)
	require.Equal(t, []string{report.Version}, publisher.published)

	// Артефакт должен восстанавливаться в рабочую модель
	model, err := regression.DecodeArtifact(artifact)
	require.NoError(t, err)
	require.Equal(t, report.Winner, model.Kind)
}

func TestTrainModelInsufficientDataHasNoSideEffects(t *testing.T) {
	store := &fakeListingStore{listings: trainingListings(5)}
	registry := newFakeModelRegistry()
	publisher := &fakeEventPublisher{}

	uc := NewTrainModelUseCase(store, registry, publisher, regression.DefaultConfig(), 10)

	_, err := uc.Execute(context.Background())
	require.Error(t, err)
	require.True(t, errors.Is(err, domain.ErrDataInsufficient))
	require.Empty(t, registry.artifacts)
	require.Empty(t, publisher.published)
}

func TestTrainModelFetchFailureIsFatal(t *testing.T) {
	store := &fakeListingStore{fetchErr: errors.New("connection reset")}
	uc := NewTrainModelUseCase(store, newFakeModelRegistry(), &fakeEventPublisher{}, regression.DefaultConfig(), 10)

	_, err := uc.Execute(context.Background())
	require.Error(t, err)
}

func TestTrainModelUploadFailureIsFatal(t *testing.T) {
	registry := newFakeModelRegistry()
	registry.uploadErr = errors.New("storage unavailable")
	publisher := &fakeEventPublisher{}

	uc := NewTrainModelUseCase(&fakeListingStore{listings: trainingListings(40)}, registry, publisher, regression.DefaultConfig(), 10)

	_, err := uc.Execute(context.Background())
	require.Error(t, err)
	require.Empty(t, publisher.published)
}

func TestTrainModelPublishFailureIsNotFatal(t *testing.T) {
	registry := newFakeModelRegistry()
	publisher := &fakeEventPublisher{publishErr: errors.New("broker down")}

	uc := NewTrainModelUseCase(&fakeListingStore{listings: trainingListings(40)}, registry, publisher, regression.DefaultConfig(), 10)

	report, err := uc.Execute(context.Background())
	require.NoError(t, err)
	require.Contains(t, registry.artifacts, report.Version)
}
