package dto

// MessageResponse is the generic human-readable acknowledgement body.
type MessageResponse struct {
	Message string `json:"message"`
}
