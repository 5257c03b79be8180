package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/laraAkg/immoscout-project/internal/core/domain"
	"github.com/stretchr/testify/require"
)

// fakePredictUC возвращает заранее заданный ответ или ошибку.
type fakePredictUC struct {
	resp *domain.PredictionResponse
	err  error
}

func (f *fakePredictUC) Predict(ctx context.Context, req domain.PredictionRequest) (*domain.PredictionResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.resp, nil
}

type fakePostalCodesUC struct {
	entries []domain.PostalEntry
}

func (f *fakePostalCodesUC) GetPostalCodes(ctx context.Context) []domain.PostalEntry {
	return f.entries
}

type fakeModelInfoUC struct {
	info *domain.ModelInfo
}

func (f *fakeModelInfoUC) GetModelInfo(ctx context.Context) *domain.ModelInfo {
	return f.info
}

func newTestHandler(predict *fakePredictUC) *PredictionHandler {
	return NewPredictionHandler(
		predict,
		&fakePostalCodesUC{entries: []domain.PostalEntry{{PostalCode: "8001", Locality: "Zürich"}}},
		&fakeModelInfoUC{info: &domain.ModelInfo{State: "ready"}},
	)
}

func TestPredictHandlerSuccess(t *testing.T) {
	handler := newTestHandler(&fakePredictUC{resp: &domain.PredictionResponse{
		PredictedPrice:  1850.5,
		ModelKind:       domain.KindRandomForest,
		ModelVersion:    "20260829T120000",
		KnownPostalCode: true,
	}})

	body, _ := json.Marshal(PredictRequestDTO{Rooms: 3.5, LivingAreaM2: 80, PostalCode: "8001"})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/predict", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	handler.Predict(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp PredictResponseDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, 1850.5, resp.PredictedPrice)
	require.Equal(t, "random_forest", resp.ModelKind)
	require.True(t, resp.KnownPostalCode)
}

func TestPredictHandlerValidationError(t *testing.T) {
	handler := newTestHandler(&fakePredictUC{
		err: domain.NewValidationError("rooms", "must be greater than zero"),
	})

	body, _ := json.Marshal(PredictRequestDTO{Rooms: 0, LivingAreaM2: 80, PostalCode: "8001"})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/predict", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	handler.Predict(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	var resp ValidationErrorDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, "rooms", resp.Field)
	require.Contains(t, resp.Error, "rooms")
}

func TestPredictHandlerModelUnavailable(t *testing.T) {
	handler := newTestHandler(&fakePredictUC{err: domain.ErrModelUnavailable})

	body, _ := json.Marshal(PredictRequestDTO{Rooms: 3, LivingAreaM2: 80, PostalCode: "8001"})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/predict", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	handler.Predict(rec, req)

	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestPredictHandlerInvalidJSON(t *testing.T) {
	handler := newTestHandler(&fakePredictUC{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/predict", bytes.NewReader([]byte("{broken")))
	rec := httptest.NewRecorder()

	handler.Predict(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetPostalCodesHandler(t *testing.T) {
	handler := newTestHandler(&fakePredictUC{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/postal-codes", nil)
	rec := httptest.NewRecorder()

	handler.GetPostalCodes(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var entries []domain.PostalEntry
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &entries))
	require.Len(t, entries, 1)
	require.Equal(t, "8001", entries[0].PostalCode)
}

func TestGetModelInfoHandler(t *testing.T) {
	handler := newTestHandler(&fakePredictUC{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/model", nil)
	rec := httptest.NewRecorder()

	handler.GetModelInfo(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var info domain.ModelInfo
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &info))
	require.Equal(t, "ready", info.State)
}

func TestHealthHandler(t *testing.T) {
	handler := newTestHandler(&fakePredictUC{})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()

	handler.Health(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp HealthResponseDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, "ok", resp.Status)
	require.Equal(t, "ready", resp.State)
}
