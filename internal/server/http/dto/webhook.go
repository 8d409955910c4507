package dto

// AckResponse acknowledges a processed provider notification.
type AckResponse struct {
	OK bool `json:"ok"`
}
