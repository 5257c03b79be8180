package rest

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/laraAkg/immoscout-project/internal/contextkeys"
	"github.com/laraAkg/immoscout-project/internal/core/domain"
	"github.com/laraAkg/immoscout-project/internal/core/port"
	"github.com/laraAkg/immoscout-project/internal/core/port/usecases_port"
)

// PredictionHandler обрабатывает запросы сервиса предсказаний.
type PredictionHandler struct {
	predictUC     usecases_port.PredictPriceUseCase
	postalCodesUC usecases_port.GetPostalCodesUseCase
	modelInfoUC   usecases_port.GetModelInfoUseCase
}

// NewPredictionHandler - конструктор.
func NewPredictionHandler(predictUC usecases_port.PredictPriceUseCase,
	postalCodesUC usecases_port.GetPostalCodesUseCase,
	modelInfoUC usecases_port.GetModelInfoUseCase) *PredictionHandler {
	return &PredictionHandler{
		predictUC:     predictUC,
		postalCodesUC: postalCodesUC,
		modelInfoUC:   modelInfoUC,
	}
}

// Predict обрабатывает POST /api/v1/predict
func (h *PredictionHandler) Predict(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "Predict"})

	var dto PredictRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		logger.Warn("Failed to decode request body", port.Fields{"error": err.Error()})
		WriteJSONError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	req := domain.PredictionRequest{
		Rooms:        dto.Rooms,
		LivingAreaM2: dto.LivingAreaM2,
		PostalCode:   dto.PostalCode,
	}

	result, err := h.predictUC.Predict(r.Context(), req)
	if err != nil {
		var validationErr *domain.ValidationError
		switch {
		case errors.As(err, &validationErr):
			RespondWithJSON(w, http.StatusBadRequest, ValidationErrorDTO{
				Error: validationErr.Error(),
				Field: validationErr.Field,
			})
		case errors.Is(err, domain.ErrModelUnavailable):
			WriteJSONError(w, http.StatusServiceUnavailable, "Model is not loaded yet, try again later")
		default:
			logger.Error("Predict use case failed", err, nil)
			WriteJSONError(w, http.StatusInternalServerError, "Failed to compute prediction")
		}
		return
	}

	RespondWithJSON(w, http.StatusOK, PredictResponseDTO{
		PredictedPrice:  result.PredictedPrice,
		ModelKind:       string(result.ModelKind),
		ModelVersion:    result.ModelVersion,
		KnownPostalCode: result.KnownPostalCode,
	})
}

// GetPostalCodes обрабатывает GET /api/v1/postal-codes
func (h *PredictionHandler) GetPostalCodes(w http.ResponseWriter, r *http.Request) {
	entries := h.postalCodesUC.GetPostalCodes(r.Context())
	RespondWithJSON(w, http.StatusOK, entries)
}

// GetModelInfo обрабатывает GET /api/v1/model
func (h *PredictionHandler) GetModelInfo(w http.ResponseWriter, r *http.Request) {
	info := h.modelInfoUC.GetModelInfo(r.Context())
	RespondWithJSON(w, http.StatusOK, info)
}

// Health обрабатывает GET /health.
// Сервис жив, даже если модель еще не загружена: состояние видно в ответе.
func (h *PredictionHandler) Health(w http.ResponseWriter, r *http.Request) {
	info := h.modelInfoUC.GetModelInfo(r.Context())
	RespondWithJSON(w, http.StatusOK, HealthResponseDTO{
		Status: "ok",
		State:  info.State,
	})
}
