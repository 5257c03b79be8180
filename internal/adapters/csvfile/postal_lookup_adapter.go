package csvfile

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"strings"

	"github.com/laraAkg/immoscout-project/internal/contextkeys"
	"github.com/laraAkg/immoscout-project/internal/core/domain"
	"github.com/laraAkg/immoscout-project/internal/core/port"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// PostalLookupAdapter загружает справочник почтовых индексов из CSV файла.
// Формат: две колонки (индекс, населенный пункт), первая строка - заголовок.
type PostalLookupAdapter struct {
	path string
}

var _ port.PostalLookupPort = (*PostalLookupAdapter)(nil)

// NewPostalLookupAdapter создает адаптер для указанного файла.
func NewPostalLookupAdapter(path string) *PostalLookupAdapter {
	return &PostalLookupAdapter{path: path}
}

// Load читает и парсит справочник. Строки с некорректным индексом
// пропускаются с предупреждением.
func (a *PostalLookupAdapter) Load(ctx context.Context) (domain.PostalLookup, error) {
	logger := contextkeys.LoggerFromContext(ctx)

	file, err := os.Open(a.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open postal lookup file %s: %w", a.path, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1 // валидируем количество колонок сами

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse postal lookup file %s: %w", a.path, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("postal lookup file %s is empty", a.path)
	}

	caser := cases.Title(language.German)

	lookup := make(domain.PostalLookup, len(records))
	skipped := 0
	for i, record := range records {
		if i == 0 {
			continue // заголовок
		}
		if len(record) < 2 {
			skipped++
			continue
		}

		code := strings.TrimSpace(record[0])
		locality := strings.TrimSpace(record[1])
		if !isFourDigits(code) || locality == "" {
			skipped++
			continue
		}

		lookup[code] = caser.String(locality)
	}

	if skipped > 0 {
		logger.Warn("Some rows in the postal lookup file were skipped", port.Fields{
			"file":    a.path,
			"skipped": skipped,
		})
	}
	if len(lookup) == 0 {
		return nil, fmt.Errorf("postal lookup file %s contains no valid entries", a.path)
	}

	logger.Info("Postal lookup loaded", port.Fields{"file": a.path, "entries": len(lookup)})
	return lookup, nil
}

func isFourDigits(s string) bool {
	if len(s) != 4 {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
