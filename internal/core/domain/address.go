package domain

// Address - результат обратного геокодирования
type Address struct {
	DisplayName string
	Road        string
	City        string
	State       string
	Postcode    string
	Country     string
}
