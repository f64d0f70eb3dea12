package rabbitmq

import (
	"property-service/internal/core/domain"
	"time"
)

// PropertyEventDTO - тело сообщения, совпадает со schemas/events/property-*/v1.json
type PropertyEventDTO struct {
	PropertyID int          `json:"property_id"`
	OccurredAt time.Time    `json:"occurred_at"`
	Owner      string       `json:"owner,omitempty"`
	Property   *PropertyDTO `json:"property,omitempty"`
}

type PropertyDTO struct {
	ID        int      `json:"id"`
	Owner     string   `json:"owner"`
	Name      string   `json:"name"`
	Location  string   `json:"location"`
	Price     float64  `json:"price"`
	Bedrooms  int      `json:"bedrooms"`
	Sqft      int      `json:"sqft"`
	ImageURL  string   `json:"imageUrl"`
	Amenities []string `json:"amenities"`
}

func toEventDTO(event domain.PropertyEvent) PropertyEventDTO {
	dto := PropertyEventDTO{
		PropertyID: event.PropertyID,
		OccurredAt: event.OccurredAt.UTC(),
		Owner:      event.Owner,
	}
	if p := event.Property; p != nil {
		amenities := p.Amenities
		if amenities == nil {
			amenities = []string{}
		}
		dto.Property = &PropertyDTO{
			ID:        p.ID,
			Owner:     p.Owner,
			Name:      p.Name,
			Location:  p.Location,
			Price:     p.Price,
			Bedrooms:  p.Bedrooms,
			Sqft:      p.Sqft,
			ImageURL:  p.ImageURL,
			Amenities: amenities,
		}
	}
	return dto
}
