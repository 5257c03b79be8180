package usecase

import (
	"errors"
	"sync"
	"testing"

	"github.com/laraAkg/immoscout-project/internal/core/domain"
	"github.com/stretchr/testify/require"
)

func TestModelHolderLifecycle(t *testing.T) {
	holder := NewModelHolder()
	require.Equal(t, StateUninitialized, holder.State())

	_, err := holder.Current()
	require.True(t, errors.Is(err, domain.ErrModelUnavailable))

	holder.MarkLoading()
	require.Equal(t, StateLoading, holder.State())

	// Деградация без загруженной модели не объявляет сервис деградировавшим
	holder.MarkDegraded()
	require.Equal(t, StateLoading, holder.State())

	holder.Swap(&domain.TrainedModel{Version: "v1"})
	require.Equal(t, StateReady, holder.State())

	holder.MarkDegraded()
	require.Equal(t, StateDegraded, holder.State())

	model, err := holder.Current()
	require.NoError(t, err)
	require.Equal(t, "v1", model.Version)
}

func TestModelHolderConcurrentSwapAndRead(t *testing.T) {
	holder := NewModelHolder()
	holder.Swap(&domain.TrainedModel{Version: "v0"})

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			for j := 0; j < 1000; j++ {
				holder.Swap(&domain.TrainedModel{Version: "vN"})
			}
		}()
		go func() {
			defer wg.Done()
			for j := 0; j < 1000; j++ {
				model, err := holder.Current()
				require.NoError(t, err)
				require.NotNil(t, model)
			}
		}()
	}
	wg.Wait()
}
