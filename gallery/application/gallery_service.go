package application

import (
	"context"
	"fmt"
	"io"

	"github.com/dfryer1193/gallery/gallery/domain"
	"github.com/rs/zerolog/log"
)

// GalleryService orchestrates the upload-and-tag pipeline across the three
// external collaborators: object storage, the tag inference service, and
// the image record store.
type GalleryService struct {
	repo    domain.ImageRepository
	storage domain.Storage
	tagger  domain.Tagger
}

func NewGalleryService(repo domain.ImageRepository, storage domain.Storage, tagger domain.Tagger) *GalleryService {
	return &GalleryService{
		repo:    repo,
		storage: storage,
		tagger:  tagger,
	}
}

// Upload runs the full pipeline for one image: store the blob, re-fetch its
// bytes, run object detection, normalize the labels into tags, and persist
// the record. On any failure before the save no record is persisted; a blob
// already written to storage is not rolled back.
func (s *GalleryService) Upload(ctx context.Context, fileName, contentType string, r io.Reader, size int64) (*domain.Image, error) {
	stored, err := s.storage.Store(ctx, fileName, contentType, r, size)
	if err != nil {
		return nil, fmt.Errorf("failed to store image: %w", err)
	}

	log.Debug().
		Str("url", stored.URL).
		Str("key", stored.DeletionKey).
		Msg("Image stored")

	// Re-read the stored bytes rather than trusting the original buffer;
	// this also verifies the blob actually landed.
	data, err := s.storage.Fetch(ctx, stored.DeletionKey)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch stored image: %w", err)
	}

	detections, err := s.tagger.Detect(ctx, data, contentType)
	if err != nil {
		return nil, fmt.Errorf("failed to detect objects: %w", err)
	}

	tags := NormalizeDetections(detections)

	log.Info().
		Str("file", stored.DeletionKey).
		Strs("tags", tags).
		Msg("Image tagged")

	img := &domain.Image{
		ImageURL: stored.URL,
		FileName: stored.DeletionKey,
		Tags:     tags,
	}

	if err := s.repo.Create(ctx, img); err != nil {
		return nil, fmt.Errorf("failed to save image record: %w", err)
	}

	return img, nil
}

// List returns every image record, most recently created first.
func (s *GalleryService) List(ctx context.Context) ([]*domain.Image, error) {
	return s.repo.FindAll(ctx)
}

// Delete removes an image's blob and then its record. Returns
// domain.ErrImageNotFound when no record exists; in that case nothing is
// touched. A blob-removal failure propagates and leaves the record in
// place — there is no transaction spanning the two stores.
func (s *GalleryService) Delete(ctx context.Context, id string) error {
	img, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if img.FileName != "" {
		if err := s.storage.Remove(ctx, img.FileName); err != nil {
			return fmt.Errorf("failed to remove stored image: %w", err)
		}

		log.Debug().Str("key", img.FileName).Msg("Blob removed from storage")
	}

	if err := s.repo.DeleteByID(ctx, id); err != nil {
		return fmt.Errorf("failed to delete image record: %w", err)
	}

	return nil
}
