package domain

// RawListing - очищенная запись объявления, готовая к сохранению в снапшот.
// После сохранения запись не изменяется: новый цикл инжеста полностью
// заменяет снапшот целиком.
type RawListing struct {
	Rooms         float64
	LivingAreaM2  float64
	Price         float64
	PostalCode    string
	Locality      string
	RawAttributes map[string]string
}

// ScrapedListing - сырое объявление в том виде, в каком его отдает скрейпер:
// все значимые поля еще строки ("3.5 Zimmer", "75 m²", "CHF 1’250.–").
type ScrapedListing struct {
	Rooms      string
	Size       string
	Price      string
	Location   string
	Attributes map[string]string
}

// SnapshotStats - итог загрузки снапшота.
type SnapshotStats struct {
	Inserted int
	Skipped  int
}

// PostalLookup - справочник "почтовый индекс -> населенный пункт".
type PostalLookup map[string]string

// PostalEntry - одна строка справочника для ответа API.
type PostalEntry struct {
	PostalCode string `json:"postal_code"`
	Locality   string `json:"locality"`
}
