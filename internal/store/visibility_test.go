package store

import (
	"errors"
	"testing"
)

func TestMarkDeletedIdempotent(t *testing.T) {
	v := NewVisibility()

	if err := v.MarkDeleted("u1", "whiteboard_1.png"); err != nil {
		t.Fatal(err)
	}
	if err := v.MarkDeleted("u1", "whiteboard_1.png"); err != nil {
		t.Fatal(err)
	}

	if got := v.DeletedCount("u1"); got != 1 {
		t.Errorf("expected deletion set of size 1, got %d", got)
	}
	if v.IsVisible("u1", "whiteboard_1.png") {
		t.Error("deleted filename still visible")
	}
}

func TestMarkDeletedRequiresUser(t *testing.T) {
	v := NewVisibility()

	err := v.MarkDeleted("", "whiteboard_1.png")
	if !errors.Is(err, ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
}

func TestVisibilityIsPerUser(t *testing.T) {
	v := NewVisibility()

	if err := v.MarkDeleted("u1", "whiteboard_1.png"); err != nil {
		t.Fatal(err)
	}

	if v.IsVisible("u1", "whiteboard_1.png") {
		t.Error("u1 should not see the filename it deleted")
	}
	if !v.IsVisible("u2", "whiteboard_1.png") {
		t.Error("u2 must keep seeing the filename")
	}
	if !v.IsVisible("brand-new-user", "whiteboard_1.png") {
		t.Error("new users must see everything")
	}
}
