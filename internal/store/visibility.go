package store

import "sync"

// Visibility tracks, per user, the filenames that user has chosen to hide.
// The deletion set is keyed by user only, so hiding a filename hides it in
// every session that user looks at. That matches how the feature behaves
// today; see TestDeletionSetCrossesSessions before changing it.
type Visibility struct {
	mu      sync.Mutex
	deleted map[string]map[string]struct{}
}

func NewVisibility() *Visibility {
	return &Visibility{deleted: make(map[string]map[string]struct{})}
}

// MarkDeleted hides filename from userID's views. Repeat calls are no-ops.
// There is no undelete and no check that the filename exists anywhere.
func (v *Visibility) MarkDeleted(userID, filename string) error {
	if userID == "" {
		return ErrUnauthenticated
	}
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.deleted[userID] == nil {
		v.deleted[userID] = make(map[string]struct{})
	}
	v.deleted[userID][filename] = struct{}{}
	return nil
}

// IsVisible reports whether userID has not hidden filename.
func (v *Visibility) IsVisible(userID, filename string) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	_, hidden := v.deleted[userID][filename]
	return !hidden
}

// DeletedCount returns the size of userID's deletion set.
func (v *Visibility) DeletedCount(userID string) int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return len(v.deleted[userID])
}
