package constants

// Обменник событий жизненного цикла объектов
const (
	PropertyExchange     = "property_exchange"
	PropertyExchangeType = "direct"
)

// Ключи маршрутизации
const (
	RoutingKeyPropertyCreated = "property.created"
	RoutingKeyPropertyUpdated = "property.updated"
	RoutingKeyPropertyDeleted = "property.deleted"
)

const EventVersionV1 = "1.0.0"
