package rest

import "property-service/internal/core/domain"

// PropertyRequest - тело POST /api/v1/properties
type PropertyRequest struct {
	Owner     string   `json:"owner"`
	Name      string   `json:"name"`
	Location  string   `json:"location"`
	Price     float64  `json:"price"`
	Bedrooms  int      `json:"bedrooms"`
	Sqft      int      `json:"sqft"`
	ImageURL  string   `json:"imageUrl"`
	Amenities []string `json:"amenities"`
}

func (r PropertyRequest) toDomain() domain.NewProperty {
	return domain.NewProperty{
		Owner:     r.Owner,
		Name:      r.Name,
		Location:  r.Location,
		Price:     r.Price,
		Bedrooms:  r.Bedrooms,
		Sqft:      r.Sqft,
		ImageURL:  r.ImageURL,
		Amenities: r.Amenities,
	}
}

// PropertyUpdateRequest - тело PUT /api/v1/properties/{id}. Отсутствующее поле не меняется.
type PropertyUpdateRequest struct {
	Name     *string `json:"name"`
	Location *string `json:"location"`
	Bedrooms *int    `json:"bedrooms"`
	Sqft     *int    `json:"sqft"`
	ImageURL *string `json:"imageUrl"`
}

func (r PropertyUpdateRequest) toDomain() domain.PropertyUpdate {
	return domain.PropertyUpdate{
		Name:     r.Name,
		Location: r.Location,
		Bedrooms: r.Bedrooms,
		Sqft:     r.Sqft,
		ImageURL: r.ImageURL,
	}
}

type AddPropertyResponse struct {
	Message string `json:"message"`
	Status  int    `json:"status"`
	ID      int    `json:"id"`
}

type PropertiesByIDsRequest struct {
	IDs []int `json:"ids"`
}

type AnswerRequest struct {
	Query   string               `json:"query"`
	Context []domain.ChatMessage `json:"context,omitempty"`
}

type AnswerResponse struct {
	Answer string `json:"answer"`
}

type DescriptionResponse struct {
	Description string `json:"description"`
}

type ComparisonResponse struct {
	Comparison string `json:"comparison"`
}
