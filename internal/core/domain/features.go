package domain

import (
	"fmt"
	"sort"
)

// Имена числовых колонок и префикс one-hot колонок почтовых индексов.
const (
	ColumnRooms        = "rooms"
	ColumnLivingAreaM2 = "living_area_m2"
	PostalColumnPrefix = "plz_"
)

// FeatureSchema - упорядоченный список колонок, которые модель ожидает
// на входе. Схема фиксируется при обучении и сохраняется вместе с моделью,
// на сервинге она не выводится заново.
type FeatureSchema struct {
	Columns []string `json:"columns"`
}

// NumFeatures возвращает количество колонок схемы.
func (s FeatureSchema) NumFeatures() int {
	return len(s.Columns)
}

// Encode кодирует один объект в вектор признаков по схеме.
// Невиданный при обучении индекс дает нулевую группу one-hot колонок
// (zero-fallback), known=false. Ошибки здесь невозможны: отсутствие
// категории - ожидаемое состояние, а не повреждение данных.
func (s FeatureSchema) Encode(rooms, livingAreaM2 float64, postalCode string) (vector []float64, known bool) {
	vector = make([]float64, len(s.Columns))
	target := PostalColumnPrefix + postalCode

	for i, column := range s.Columns {
		switch column {
		case ColumnRooms:
			vector[i] = rooms
		case ColumnLivingAreaM2:
			vector[i] = livingAreaM2
		case target:
			vector[i] = 1
			known = true
		}
	}
	return vector, known
}

// FeatureMatrix - табличное представление снапшота: матрица признаков X,
// целевой вектор Y (цена) и зафиксированная схема кодирования.
type FeatureMatrix struct {
	X      [][]float64
	Y      []float64
	Schema FeatureSchema
}

// FeatureBuildStats - статистика очистки для наблюдаемости.
type FeatureBuildStats struct {
	Total   int
	Used    int
	Dropped int
}

// validListing проверяет запись по правилам отбора обучающей выборки.
func validListing(l RawListing) bool {
	return l.Rooms > 0 && l.LivingAreaM2 > 0 && l.Price > 0 && l.PostalCode != ""
}

// BuildFeatures строит матрицу признаков из снапшота объявлений.
// Записи с rooms <= 0, living_area <= 0, price <= 0 или пустым индексом
// отбрасываются и считаются. Словарь категорий - отсортированные уникальные
// индексы выборки, поэтому схема детерминирована для одинаковых данных.
// Если валидных записей меньше minRows - ErrDataInsufficient.
func BuildFeatures(listings []RawListing, minRows int) (*FeatureMatrix, FeatureBuildStats, error) {
	stats := FeatureBuildStats{Total: len(listings)}

	valid := make([]RawListing, 0, len(listings))
	codes := make(map[string]struct{})
	for _, l := range listings {
		if !validListing(l) {
			stats.Dropped++
			continue
		}
		valid = append(valid, l)
		codes[l.PostalCode] = struct{}{}
	}
	stats.Used = len(valid)

	if len(valid) < minRows {
		return nil, stats, fmt.Errorf("%w: %d valid rows of %d required", ErrDataInsufficient, len(valid), minRows)
	}

	columns := []string{ColumnRooms, ColumnLivingAreaM2}
	codeList := make([]string, 0, len(codes))
	for code := range codes {
		codeList = append(codeList, code)
	}
	sort.Strings(codeList)
	for _, code := range codeList {
		columns = append(columns, PostalColumnPrefix+code)
	}

	schema := FeatureSchema{Columns: columns}

	matrix := &FeatureMatrix{
		X:      make([][]float64, len(valid)),
		Y:      make([]float64, len(valid)),
		Schema: schema,
	}
	for i, l := range valid {
		row, _ := schema.Encode(l.Rooms, l.LivingAreaM2, l.PostalCode)
		matrix.X[i] = row
		matrix.Y[i] = l.Price
	}

	return matrix, stats, nil
}
