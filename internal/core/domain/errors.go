package domain

import (
	"errors"
	"fmt"
)

// Таксономия ошибок пайплайна и сервинга.
var (
	// ErrDataInsufficient - после очистки осталось слишком мало строк,
	// чтобы осмысленно разделить выборку. Обучение не запускается.
	ErrDataInsufficient = errors.New("not enough valid listings to train")

	// ErrTrainingFailed - ни один кандидат не обучился.
	ErrTrainingFailed = errors.New("no candidate estimator trained successfully")

	// ErrModelUnavailable - модель еще не загружена, сервис не готов.
	ErrModelUnavailable = errors.New("no model loaded")

	// ErrNoArtifacts - в реестре нет ни одной версии модели.
	ErrNoArtifacts = errors.New("no model artifacts found in registry")
)

// ValidationError - ошибка пользовательского ввода с указанием поля.
// Возвращается вызывающей стороне, исправима пользователем.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// NewValidationError создает ошибку валидации для конкретного поля.
func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}
