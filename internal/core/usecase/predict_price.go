package usecase

import (
	"context"
	"regexp"

	"github.com/laraAkg/immoscout-project/internal/contextkeys"
	"github.com/laraAkg/immoscout-project/internal/core/domain"
	"github.com/laraAkg/immoscout-project/internal/core/port"
)

// Швейцарский почтовый индекс - ровно четыре цифры.
var postalCodePattern = regexp.MustCompile(`^\d{4}$`)

// PredictPriceUseCase - оценка стоимости по загруженной модели.
// Не владеет ничем, кроме holder; модель и схема читаются атомарно.
type PredictPriceUseCase struct {
	holder *ModelHolder
}

// NewPredictPriceUseCase создает новый экземпляр use case.
func NewPredictPriceUseCase(holder *ModelHolder) *PredictPriceUseCase {
	return &PredictPriceUseCase{holder: holder}
}

// Predict валидирует запрос, кодирует признаки по схеме модели и
// возвращает точечную оценку. Невиданный индекс не ошибка: кодируется
// нулевой группой, расхождение со словарем обучения только логируется.
func (uc *PredictPriceUseCase) Predict(ctx context.Context, req domain.PredictionRequest) (*domain.PredictionResponse, error) {
	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{"use_case": "PredictPrice"})

	if err := validateRequest(req); err != nil {
		logger.Warn("Prediction request rejected", port.Fields{"error": err.Error()})
		return nil, err
	}

	model, err := uc.holder.Current()
	if err != nil {
		logger.Warn("Prediction requested before model is loaded", nil)
		return nil, err
	}

	features, known := model.Schema.Encode(req.Rooms, req.LivingAreaM2, req.PostalCode)
	if !known {
		// Zero-fallback: категория отсутствовала при обучении.
		// Запрос обслуживается, расхождение фиксируется для наблюдаемости.
		logger.Warn("Postal code unknown to model, using zero-fallback encoding", port.Fields{
			"postal_code": req.PostalCode, "model_version": model.Version,
		})
	}

	price := model.Estimator.Predict(features)
	logger.Info("Prediction served", port.Fields{
		"predicted_price": price, "estimator": model.Kind, "known_postal_code": known,
	})

	return &domain.PredictionResponse{
		PredictedPrice:  price,
		ModelKind:       model.Kind,
		ModelVersion:    model.Version,
		KnownPostalCode: known,
	}, nil
}

func validateRequest(req domain.PredictionRequest) error {
	if req.Rooms <= 0 {
		return domain.NewValidationError("rooms", "must be greater than zero")
	}
	if req.LivingAreaM2 <= 0 {
		return domain.NewValidationError("living_area_m2", "must be greater than zero")
	}
	if req.PostalCode == "" {
		return domain.NewValidationError("postal_code", "is required")
	}
	if !postalCodePattern.MatchString(req.PostalCode) {
		return domain.NewValidationError("postal_code", "must be a four-digit code")
	}
	return nil
}
