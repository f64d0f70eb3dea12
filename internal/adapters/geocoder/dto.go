package geocoder_adapter

// reverseResponse - ответ Nominatim /reverse?format=jsonv2
type reverseResponse struct {
	DisplayName string         `json:"display_name"`
	Address     reverseAddress `json:"address"`
	Error       string         `json:"error"`
}

type reverseAddress struct {
	Road     string `json:"road"`
	City     string `json:"city"`
	Town     string `json:"town"`
	Village  string `json:"village"`
	State    string `json:"state"`
	Postcode string `json:"postcode"`
	Country  string `json:"country"`
}

// cachedAddress - то, что лежит в Redis
type cachedAddress struct {
	DisplayName string `json:"display_name"`
	Road        string `json:"road,omitempty"`
	City        string `json:"city,omitempty"`
	State       string `json:"state,omitempty"`
	Postcode    string `json:"postcode,omitempty"`
	Country     string `json:"country,omitempty"`
}
