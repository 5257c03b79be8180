package usecase

import (
	"sync/atomic"

	"github.com/laraAkg/immoscout-project/internal/core/domain"
)

// Состояния жизненного цикла сервинга.
const (
	StateUninitialized = "uninitialized"
	StateLoading       = "loading"
	StateReady         = "ready"
	// StateDegraded - перезагрузка не удалась, сервис продолжает отвечать
	// последней удачно загруженной моделью.
	StateDegraded = "degraded"
)

// ModelHolder - единственный владелец "текущей модели" сервинга.
// Модель иммутабельна после загрузки; замена - одна атомарная подмена
// указателя, параллельные запросы видят либо старую, либо новую модель
// целиком, блокировки не нужны.
type ModelHolder struct {
	current atomic.Pointer[domain.TrainedModel]
	state   atomic.Value // string
}

// NewModelHolder создает пустой holder в состоянии Uninitialized.
func NewModelHolder() *ModelHolder {
	h := &ModelHolder{}
	h.state.Store(StateUninitialized)
	return h
}

// Current возвращает текущую модель или ErrModelUnavailable.
func (h *ModelHolder) Current() (*domain.TrainedModel, error) {
	m := h.current.Load()
	if m == nil {
		return nil, domain.ErrModelUnavailable
	}
	return m, nil
}

// Swap подменяет модель и переводит holder в Ready.
// Новая модель должна быть полностью построена до вызова.
func (h *ModelHolder) Swap(m *domain.TrainedModel) {
	h.current.Store(m)
	h.state.Store(StateReady)
}

// MarkLoading переводит holder в состояние загрузки.
func (h *ModelHolder) MarkLoading() {
	h.state.Store(StateLoading)
}

// MarkDegraded фиксирует неудачную перезагрузку. Текущая модель,
// если она есть, остается рабочей.
func (h *ModelHolder) MarkDegraded() {
	if h.current.Load() != nil {
		h.state.Store(StateDegraded)
	}
}

// State возвращает текущее состояние жизненного цикла.
func (h *ModelHolder) State() string {
	return h.state.Load().(string)
}
