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

func encodedModel(t *testing.T) []byte {
	t.Helper()
	artifact, err := regression.EncodeArtifact(&domain.TrainedModel{
		Kind:      domain.KindLinearRegression,
		Schema:    domain.FeatureSchema{Columns: []string{domain.ColumnRooms}},
		Estimator: &regression.LinearModel{Intercept: 100, Weights: []float64{200}},
		TrainedAt: time.Now().UTC(),
	})
	require.NoError(t, err)
	return artifact
}

func TestReloadModelSwapsAndMarksReady(t *testing.T) {
	registry := newFakeModelRegistry()
	registry.artifacts["20260829T120000"] = encodedModel(t)

	holder := NewModelHolder()
	holder.MarkLoading()
	uc := NewReloadModelUseCase(registry, holder)

	require.NoError(t, uc.Reload(context.Background()))
	require.Equal(t, StateReady, holder.State())

	model, err := holder.Current()
	require.NoError(t, err)
	require.Equal(t, "20260829T120000", model.Version)
}

func TestReloadModelPicksLatestVersion(t *testing.T) {
	registry := newFakeModelRegistry()
	registry.artifacts["20260801T000000"] = encodedModel(t)
	registry.artifacts["20260829T120000"] = encodedModel(t)

	holder := NewModelHolder()
	uc := NewReloadModelUseCase(registry, holder)

	require.NoError(t, uc.Reload(context.Background()))
	model, err := holder.Current()
	require.NoError(t, err)
	require.Equal(t, "20260829T120000", model.Version)
}

func TestReloadModelFailureKeepsLastGoodModel(t *testing.T) {
	registry := newFakeModelRegistry()
	registry.artifacts["20260829T120000"] = encodedModel(t)

	holder := NewModelHolder()
	uc := NewReloadModelUseCase(registry, holder)
	require.NoError(t, uc.Reload(context.Background()))

	// Следующая перезагрузка падает: сервис деградирует, но отвечает
	registry.loadErr = errors.New("storage unavailable")
	err := uc.Reload(context.Background())
	require.Error(t, err)
	require.Equal(t, StateDegraded, holder.State())

	model, currentErr := holder.Current()
	require.NoError(t, currentErr)
	require.Equal(t, "20260829T120000", model.Version)
}

func TestReloadModelCorruptArtifact(t *testing.T) {
	registry := newFakeModelRegistry()
	registry.artifacts["20260829T120000"] = []byte("not a model")

	holder := NewModelHolder()
	uc := NewReloadModelUseCase(registry, holder)

	err := uc.Reload(context.Background())
	require.Error(t, err)
	_, currentErr := holder.Current()
	require.True(t, errors.Is(currentErr, domain.ErrModelUnavailable))
}

func TestReloadModelEmptyRegistry(t *testing.T) {
	holder := NewModelHolder()
	uc := NewReloadModelUseCase(newFakeModelRegistry(), holder)

	err := uc.Reload(context.Background())
	require.True(t, errors.Is(err, domain.ErrNoArtifacts))
}
