package dto

// Error is the body of every failed request. Errors carries per-field
// messages keyed by json field name.
type Error struct {
	Detail string            `json:"detail" example:"patient not found"`
	Errors map[string]string `json:"errors,omitempty"`
}

// Message is the body of endpoints that only acknowledge.
type Message struct {
	Message string `json:"message" example:"logout successful"`
}
