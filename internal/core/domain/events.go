package domain

import "time"

type PropertyEventType string

const (
	PropertyCreated PropertyEventType = "PropertyCreatedEvent"
	PropertyUpdated PropertyEventType = "PropertyUpdatedEvent"
	PropertyDeleted PropertyEventType = "PropertyDeletedEvent"
)

// PropertyEvent - событие жизненного цикла объекта для внешних подписчиков
type PropertyEvent struct {
	Type       PropertyEventType
	PropertyID int
	OccurredAt time.Time
	Property   *Property // nil для удаления
	Owner      string
}
