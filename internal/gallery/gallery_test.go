package gallery

import (
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/collabboard/whiteboard-gallery/internal/store"
	"github.com/collabboard/whiteboard-gallery/models"
)

func newPipeline(t *testing.T) (*Pipeline, *store.Metadata, *store.Visibility) {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	meta, _ := store.OpenMetadata(filepath.Join(t.TempDir(), "meta.json"), logger)
	vis := store.NewVisibility()
	return New(meta, vis), meta, vis
}

func filenames(items []Item) []string {
	names := make([]string, len(items))
	for i, item := range items {
		names[i] = item.Filename
	}
	return names
}

func TestVisibleSortsByTimestamp(t *testing.T) {
	p, meta, _ := newPipeline(t)
	meta.Put("X", "a.png", models.ImageRecord{Timestamp: 100})
	meta.Put("X", "b.png", models.ImageRecord{Timestamp: 50})

	items, err := p.Visible("X", "u1")
	if err != nil {
		t.Fatal(err)
	}
	got := filenames(items)
	if len(got) != 2 || got[0] != "b.png" || got[1] != "a.png" {
		t.Fatalf("expected [b.png a.png], got %v", got)
	}
}

func TestTimestampTiesKeepInsertionOrder(t *testing.T) {
	p, meta, _ := newPipeline(t)
	meta.Put("X", "first.png", models.ImageRecord{Timestamp: 7})
	meta.Put("X", "second.png", models.ImageRecord{Timestamp: 7})
	meta.Put("X", "third.png", models.ImageRecord{Timestamp: 7})

	for i := 0; i < 10; i++ {
		items, err := p.Visible("X", "u1")
		if err != nil {
			t.Fatal(err)
		}
		got := filenames(items)
		if got[0] != "first.png" || got[1] != "second.png" || got[2] != "third.png" {
			t.Fatalf("tie order not stable: %v", got)
		}
	}
}

func TestDeletionHidesPerUser(t *testing.T) {
	p, meta, vis := newPipeline(t)
	meta.Put("X", "a.png", models.ImageRecord{Timestamp: 100})
	meta.Put("X", "b.png", models.ImageRecord{Timestamp: 50})

	if err := vis.MarkDeleted("u1", "b.png"); err != nil {
		t.Fatal(err)
	}

	items, _ := p.Visible("X", "u1")
	if got := filenames(items); len(got) != 1 || got[0] != "a.png" {
		t.Fatalf("u1 expected [a.png], got %v", got)
	}

	other, _ := p.Visible("X", "u2")
	if got := filenames(other); len(got) != 2 || got[0] != "b.png" || got[1] != "a.png" {
		t.Fatalf("u2 expected [b.png a.png], got %v", got)
	}
}

// Deletion sets are keyed by user only: hiding a filename hides it in every
// session. This is load-bearing behavior, not an accident to fix.
func TestDeletionSetCrossesSessions(t *testing.T) {
	p, meta, vis := newPipeline(t)
	meta.Put("X", "whiteboard_1.png", models.ImageRecord{Timestamp: 1})
	meta.Put("Y", "whiteboard_1.png", models.ImageRecord{Timestamp: 2})

	if err := vis.MarkDeleted("u1", "whiteboard_1.png"); err != nil {
		t.Fatal(err)
	}

	for _, session := range []string{"X", "Y"} {
		items, _ := p.Visible(session, "u1")
		if len(items) != 0 {
			t.Errorf("session %s: deleted filename still visible", session)
		}
	}
}

func TestVisibleRequiresUser(t *testing.T) {
	p, _, _ := newPipeline(t)

	_, err := p.Visible("X", "")
	if !errors.Is(err, store.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
}

func TestEmptySession(t *testing.T) {
	p, _, _ := newPipeline(t)

	items, err := p.Visible("EMPTY1", "u1")
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 0 {
		t.Fatalf("expected no items, got %v", filenames(items))
	}
}

func TestListMatchesVisibleOrder(t *testing.T) {
	p, meta, _ := newPipeline(t)
	meta.Put("X", "a.png", models.ImageRecord{Timestamp: 300, URL: "u/a"})
	meta.Put("X", "b.png", models.ImageRecord{Timestamp: 100, URL: "u/b"})
	meta.Put("X", "c.png", models.ImageRecord{Timestamp: 200, URL: "u/c"})

	items, _ := p.Visible("X", "u1")
	infos, _ := p.List("X", "u1")

	if len(items) != len(infos) {
		t.Fatalf("list and visible disagree on length: %d vs %d", len(infos), len(items))
	}
	for i := range items {
		if items[i].Filename != infos[i].Filename {
			t.Errorf("position %d: visible has %s, list has %s", i, items[i].Filename, infos[i].Filename)
		}
	}
	if infos[0].Filename != "b.png" || infos[1].Filename != "c.png" || infos[2].Filename != "a.png" {
		t.Fatalf("unexpected list order: %+v", infos)
	}
}
