package domain

import "math"

// Property - объявление о недвижимости в том виде, в каком оно хранится в БД
type Property struct {
	ID        int      `json:"id"`
	Owner     string   `json:"owner"`
	Name      string   `json:"name"`
	Location  string   `json:"location"` // "lat,lon"
	Price     float64  `json:"price"`
	Bedrooms  int      `json:"bedrooms"`
	Sqft      int      `json:"sqft"`
	ImageURL  string   `json:"imageUrl"`
	Amenities []string `json:"amenities"`
}

// NewProperty - данные для создания объекта, ID назначает хранилище
type NewProperty struct {
	Owner     string
	Name      string
	Location  string
	Price     float64
	Bedrooms  int
	Sqft      int
	ImageURL  string
	Amenities []string
}

// PropertyUpdate - частичное обновление. nil означает "не менять".
// Владелец, цена и удобства через update не меняются.
type PropertyUpdate struct {
	Name     *string
	Location *string
	Bedrooms *int
	Sqft     *int
	ImageURL *string
}

func (u PropertyUpdate) IsEmpty() bool {
	return u.Name == nil && u.Location == nil && u.Bedrooms == nil && u.Sqft == nil && u.ImageURL == nil
}

// PropertyWithAddress - объект, обогащенный адресом из обратного геокодирования
type PropertyWithAddress struct {
	Property
	Address string `json:"address"`
}

// MaxPropertyID - верхняя граница ID, колонка id имеет тип integer
const MaxPropertyID = math.MaxInt32

// IsValidPropertyID проверяет, что ID может существовать в хранилище
func IsValidPropertyID(id int) bool {
	return id >= 1 && id <= MaxPropertyID
}
