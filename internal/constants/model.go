package constants

// Именование артефактов модели в blob-хранилище.
const (
	DefaultBlobContainer = "immoscout-models"
	BlobNamePrefix       = "immoscout-model-"
	BlobNameSuffix       = ".json"

	// VersionTagLayout - UTC-метка запуска. Лексикографический порядок
	// тегов совпадает с хронологическим, "последняя версия" определяется
	// по имени блоба без дополнительных метаданных.
	VersionTagLayout = "20060102T150405"
)
