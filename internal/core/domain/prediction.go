package domain

// PredictionRequest - один запрос на оценку стоимости.
type PredictionRequest struct {
	Rooms        float64
	LivingAreaM2 float64
	PostalCode   string
}

// PredictionResponse - точечная оценка, никогда не распределение.
type PredictionResponse struct {
	PredictedPrice float64
	ModelKind      EstimatorKind
	ModelVersion   string
	// KnownPostalCode false, если индекс не встречался при обучении
	// и сработал zero-fallback.
	KnownPostalCode bool
}
