package client

import (
	"context"
	"io"
	"strings"

	"github.com/dfryer1193/gallery/api"
)

// Gallery holds the client-side view of the image list: the records, the
// current search term, and a loading flag for uploads in flight. It mirrors
// single-threaded UI state and is not safe for concurrent use.
type Gallery struct {
	client *Client

	images     []api.ImageRecord
	searchTerm string
	loading    bool
}

func NewGallery(client *Client) *Gallery {
	return &Gallery{
		client: client,
		images: []api.ImageRecord{},
	}
}

// Refresh replaces the local record list with the server's.
func (g *Gallery) Refresh(ctx context.Context) error {
	images, err := g.client.ListImages(ctx)
	if err != nil {
		return err
	}

	if images == nil {
		images = []api.ImageRecord{}
	}
	g.images = images

	return nil
}

// Upload sends one image and prepends the created record to the local
// list.  The list stays consistent without a re-fetch because the server
// returns the finished record.
func (g *Gallery) Upload(ctx context.Context, fileName string, r io.Reader) (api.ImageRecord, error) {
	g.loading = true
	defer func() { g.loading = false }()

	record, err := g.client.Upload(ctx, fileName, r)
	if err != nil {
		return api.ImageRecord{}, err
	}

	g.images = append([]api.ImageRecord{record}, g.images...)

	return record, nil
}

// Delete removes one image and then re-syncs the whole list from the
// server, which is the source of truth after a delete.
func (g *Gallery) Delete(ctx context.Context, id string) error {
	if err := g.client.Delete(ctx, id); err != nil {
		return err
	}

	return g.Refresh(ctx)
}

// SetSearchTerm updates the term Visible filters by.
func (g *Gallery) SetSearchTerm(term string) {
	g.searchTerm = term
}

func (g *Gallery) SearchTerm() string {
	return g.searchTerm
}

// Loading reports whether an upload is in flight.
func (g *Gallery) Loading() bool {
	return g.loading
}

// Images returns the full local record list.
func (g *Gallery) Images() []api.ImageRecord {
	return g.images
}

// Visible returns the records matching the search term: a record matches
// when any of its tags contains the term as a case-insensitive substring.
// An empty term matches everything.
func (g *Gallery) Visible() []api.ImageRecord {
	if g.searchTerm == "" {
		return g.images
	}

	term := strings.ToLower(g.searchTerm)

	visible := make([]api.ImageRecord, 0, len(g.images))
	for _, img := range g.images {
		for _, tag := range img.Tags {
			if strings.Contains(strings.ToLower(tag), term) {
				visible = append(visible, img)
				break
			}
		}
	}

	return visible
}
