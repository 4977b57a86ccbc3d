package export

import (
	"bytes"
	"context"
	"io"
	"log/slog"

	"github.com/go-pdf/fpdf"
	"github.com/h2non/bimg"

	"github.com/collabboard/whiteboard-gallery/internal/gallery"
)

// Whiteboard page size in points (12x8 inches at 72 DPI).
const (
	PageWidth  = 864
	PageHeight = 576
)

// WritePDF renders the items, in order, one image per page, each scaled to
// fill the whole page. An empty sequence still yields a valid document (a
// single blank page, since a PDF needs at least one page).
func WritePDF(ctx context.Context, w io.Writer, items []gallery.Item, f Fetcher, log *slog.Logger) error {
	pdf := fpdf.NewCustom(&fpdf.InitType{
		UnitStr: "pt",
		Size:    fpdf.SizeType{Wd: PageWidth, Ht: PageHeight},
	})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)

	for _, item := range items {
		data, err := f.Fetch(ctx, item.URL)
		if err != nil {
			log.Warn("skipping image in pdf export", "filename", item.Filename, "error", err)
			continue
		}
		imageType := pdfImageType(data)
		if imageType == "" {
			log.Warn("skipping image of unsupported type in pdf export", "filename", item.Filename)
			continue
		}
		opts := fpdf.ImageOptions{ImageType: imageType}
		pdf.RegisterImageOptionsReader(item.Filename, opts, bytes.NewReader(data))
		pdf.AddPage()
		pdf.ImageOptions(item.Filename, 0, 0, PageWidth, PageHeight, false, opts, 0, "")
	}
	return pdf.Output(w)
}

// pdfImageType maps the detected image format to what fpdf can embed.
func pdfImageType(data []byte) string {
	switch bimg.DetermineImageType(data) {
	case bimg.JPEG:
		return "JPG"
	case bimg.PNG:
		return "PNG"
	case bimg.GIF:
		return "GIF"
	default:
		return ""
	}
}
