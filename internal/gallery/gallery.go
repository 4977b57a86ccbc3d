// Package gallery produces the ordered, per-user view of a session's images.
package gallery

import (
	"sort"

	"github.com/collabboard/whiteboard-gallery/internal/store"
	"github.com/collabboard/whiteboard-gallery/models"
)

// Item is one image in a user's view of a session, in listing order.
type Item struct {
	Filename  string
	Timestamp int64
	BlobID    string
	URL       string

	seq int64
}

// Pipeline merges the metadata store with the visibility filter.
type Pipeline struct {
	meta *store.Metadata
	vis  *store.Visibility
}

func New(meta *store.Metadata, vis *store.Visibility) *Pipeline {
	return &Pipeline{meta: meta, vis: vis}
}

// Visible returns the session's records the user has not deleted, sorted
// ascending by timestamp. Ties keep insertion order, so every caller (list,
// ZIP export, PDF export) sees the exact same sequence.
func (p *Pipeline) Visible(session, userID string) ([]Item, error) {
	if userID == "" {
		return nil, store.ErrUnauthenticated
	}
	records := p.meta.Get(session)
	items := make([]Item, 0, len(records))
	for filename, rec := range records {
		if !p.vis.IsVisible(userID, filename) {
			continue
		}
		items = append(items, Item{
			Filename:  filename,
			Timestamp: rec.Timestamp,
			BlobID:    rec.BlobID,
			URL:       rec.URL,
			seq:       rec.Seq,
		})
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].Timestamp != items[j].Timestamp {
			return items[i].Timestamp < items[j].Timestamp
		}
		return items[i].seq < items[j].seq
	})
	return items, nil
}

// List is Visible in the client-facing listing shape.
func (p *Pipeline) List(session, userID string) ([]models.ImageInfo, error) {
	items, err := p.Visible(session, userID)
	if err != nil {
		return nil, err
	}
	infos := make([]models.ImageInfo, 0, len(items))
	for _, item := range items {
		infos = append(infos, models.ImageInfo{
			Filename:  item.Filename,
			Timestamp: item.Timestamp,
			URL:       item.URL,
		})
	}
	return infos, nil
}
