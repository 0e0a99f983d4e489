package domain

import "context"

// Detection is one (label, confidence) pair returned by the inference service.
// Score is in [0, 1].
type Detection struct {
	Label string
	Score float64
}

// Tagger identifies objects in an image.
type Tagger interface {
	// Detect runs object detection over the raw image bytes. An image in
	// which the model finds nothing yields an empty slice, not an error.
	Detect(ctx context.Context, image []byte, contentType string) ([]Detection, error)
}
