package api

import "time"

// ImageRecord is the wire representation of one gallery image.
type ImageRecord struct {
	ID        string    `json:"id"`
	ImageURL  string    `json:"imageUrl"`
	FileName  string    `json:"fileName"`
	Tags      []string  `json:"tags"`
	CreatedAt time.Time `json:"createdAt"`
}

// ErrorResponse is the JSON body of a failed request.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// MessageResponse is the JSON body of a simple acknowledgment.
type MessageResponse struct {
	Message string `json:"message"`
}
