package persistence

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/dfryer1193/gallery/gallery/domain"
	"github.com/google/uuid"
)

var _ domain.ImageRepository = (*SQLiteImageRepository)(nil)

// SQLiteImageRepository implements domain.ImageRepository using SQL database (SQLite)
type SQLiteImageRepository struct {
	db *sql.DB
}

// NewImageRepository creates a new SQLiteImageRepository from a standard sql.DB
func NewImageRepository(sqlDB *sql.DB) *SQLiteImageRepository {
	return &SQLiteImageRepository{
		db: sqlDB,
	}
}

const insertImageQuery = `
	INSERT INTO images (id, image_url, file_name, tags, created_at)
	VALUES (?, ?, ?, ?, ?)
`

// Create persists a new image record. The record's ID and CreatedAt are
// assigned here if unset.
func (r *SQLiteImageRepository) Create(ctx context.Context, img *domain.Image) error {
	if img == nil {
		return fmt.Errorf("image cannot be nil")
	}

	if img.ImageURL == "" {
		return fmt.Errorf("image URL cannot be empty")
	}

	if img.FileName == "" {
		return fmt.Errorf("image file name cannot be empty")
	}

	if img.ID == "" {
		img.ID = uuid.New().String()
	}

	if img.CreatedAt.IsZero() {
		img.CreatedAt = time.Now().UTC()
	}

	tags := img.Tags
	if tags == nil {
		tags = []string{}
	}

	tagsJSON, err := json.Marshal(tags)
	if err != nil {
		return fmt.Errorf("failed to encode tags: %w", err)
	}

	_, err = r.db.ExecContext(ctx, insertImageQuery,
		img.ID,
		img.ImageURL,
		img.FileName,
		string(tagsJSON),
		img.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert image record: %w", err)
	}

	return nil
}

const getImageQuery = `
	SELECT id, image_url, file_name, tags, created_at
	FROM images
	WHERE id = ?
`

// FindByID retrieves a single image record by its identifier
func (r *SQLiteImageRepository) FindByID(ctx context.Context, id string) (*domain.Image, error) {
	if id == "" {
		return nil, fmt.Errorf("image ID cannot be empty")
	}

	var row imageRow
	err := r.db.QueryRowContext(ctx, getImageQuery, id).Scan(
		&row.ID,
		&row.ImageURL,
		&row.FileName,
		&row.Tags,
		&row.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, domain.ErrImageNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get image: %w", err)
	}

	return row.toDomain()
}

const listImagesQuery = `
	SELECT id, image_url, file_name, tags, created_at
	FROM images
	ORDER BY created_at DESC, id
`

// FindAll returns every image record, most recently created first
func (r *SQLiteImageRepository) FindAll(ctx context.Context) ([]*domain.Image, error) {
	rows, err := r.db.QueryContext(ctx, listImagesQuery)
	if err != nil {
		return nil, fmt.Errorf("failed to list images: %w", err)
	}
	defer rows.Close()

	images := make([]*domain.Image, 0)
	for rows.Next() {
		var row imageRow
		err := rows.Scan(
			&row.ID,
			&row.ImageURL,
			&row.FileName,
			&row.Tags,
			&row.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan image row: %w", err)
		}

		img, err := row.toDomain()
		if err != nil {
			return nil, err
		}

		images = append(images, img)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate image rows: %w", err)
	}

	return images, nil
}

const deleteImageQuery = `
	DELETE FROM images WHERE id = ?
`

// DeleteByID removes an image record
func (r *SQLiteImageRepository) DeleteByID(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("image ID cannot be empty")
	}

	_, err := r.db.ExecContext(ctx, deleteImageQuery, id)
	if err != nil {
		return fmt.Errorf("failed to delete image record: %w", err)
	}

	return nil
}

// imageRow is a private struct used to scan database rows
type imageRow struct {
	ID        string
	ImageURL  string
	FileName  string
	Tags      string
	CreatedAt time.Time
}

// toDomain converts an imageRow to a domain.Image, decoding the tags column
func (ir *imageRow) toDomain() (*domain.Image, error) {
	var tags []string
	if err := json.Unmarshal([]byte(ir.Tags), &tags); err != nil {
		return nil, fmt.Errorf("failed to decode tags for image %s: %w", ir.ID, err)
	}

	return &domain.Image{
		ID:        ir.ID,
		ImageURL:  ir.ImageURL,
		FileName:  ir.FileName,
		Tags:      tags,
		CreatedAt: ir.CreatedAt,
	}, nil
}
