package export

import (
	"archive/zip"
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/collabboard/whiteboard-gallery/internal/gallery"
)

// WriteZIP streams the items, in order, into a ZIP archive with one entry
// per image, named by filename.
func WriteZIP(ctx context.Context, w io.Writer, items []gallery.Item, f Fetcher, log *slog.Logger) error {
	zw := zip.NewWriter(w)
	for _, item := range items {
		data, err := f.Fetch(ctx, item.URL)
		if err != nil {
			log.Warn("skipping image in zip export", "filename", item.Filename, "error", err)
			continue
		}
		entry, err := zw.Create(item.Filename)
		if err != nil {
			return fmt.Errorf("create zip entry %q: %w", item.Filename, err)
		}
		if _, err := entry.Write(data); err != nil {
			return fmt.Errorf("write zip entry %q: %w", item.Filename, err)
		}
	}
	return zw.Close()
}
