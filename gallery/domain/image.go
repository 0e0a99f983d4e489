package domain

import (
	"context"
	"time"
)

// Image represents one uploaded photo and its AI-assigned tags.
// ImageURL and FileName are fixed at creation; FileName doubles as the
// object-store deletion key.
type Image struct {
	ID        string
	ImageURL  string
	FileName  string
	Tags      []string
	CreatedAt time.Time
}

type ImageRepository interface {
	// Create persists a new image record and assigns its ID.
	Create(ctx context.Context, img *Image) error

	// FindByID retrieves a single image record, or ErrImageNotFound.
	FindByID(ctx context.Context, id string) (*Image, error)

	// FindAll returns every image record, most recently created first.
	FindAll(ctx context.Context) ([]*Image, error)

	// DeleteByID removes an image record.
	DeleteByID(ctx context.Context, id string) error
}
