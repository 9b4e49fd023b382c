package handler

// Page is the data every rendered page shares. Handler-specific structs embed
// it and add their own fields.
type Page struct {
	Chrome  Chrome
	Error   string
	Message string
}
