package domain

// ChatMessage - одна реплика контекста для вопросов к ассистенту
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Роли, которые понимает генератор. Все остальные считаются пользовательскими.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleSystem    = "system"
)

// PropertyDescriptor - то, что отдается генератору для описания и сравнения объектов
type PropertyDescriptor struct {
	Name      string   `json:"name"`
	Location  string   `json:"location,omitempty"`
	Address   string   `json:"address,omitempty"`
	Price     float64  `json:"price,omitempty"`
	Bedrooms  int      `json:"bedrooms,omitempty"`
	Sqft      int      `json:"sqft,omitempty"`
	Amenities []string `json:"amenities,omitempty"`
}
