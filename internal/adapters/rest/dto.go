package rest

// PredictRequestDTO - тело запроса POST /api/v1/predict.
type PredictRequestDTO struct {
	Rooms        float64 `json:"rooms"`
	LivingAreaM2 float64 `json:"living_area_m2"`
	PostalCode   string  `json:"postal_code"`
}

// PredictResponseDTO - ответ с точечной оценкой стоимости.
type PredictResponseDTO struct {
	PredictedPrice  float64 `json:"predicted_price"`
	ModelKind       string  `json:"model_kind"`
	ModelVersion    string  `json:"model_version"`
	KnownPostalCode bool    `json:"known_postal_code"`
}

// ValidationErrorDTO - ответ 400 с указанием невалидного поля.
type ValidationErrorDTO struct {
	Error string `json:"error"`
	Field string `json:"field"`
}

// HealthResponseDTO - ответ /health.
type HealthResponseDTO struct {
	Status string `json:"status"`
	State  string `json:"state"`
}
