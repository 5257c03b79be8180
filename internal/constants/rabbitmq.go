package constants

// Топология RabbitMQ.
const (
	ExchangeName = "immo_exchange"
	ExchangeType = "direct"

	// Полные снапшоты объявлений от скрейпера
	QueueScrapedListings      = "scraped_listings_snapshots"
	RoutingKeyScrapedListings = "listings.snapshot"

	// События о новой версии модели для сервиса предсказаний
	QueueModelEvents        = "model_events"
	RoutingKeyModelUploaded = "model.uploaded"
)
