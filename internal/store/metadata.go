// Package store holds the process-wide state: the durable image metadata
// store, the ephemeral session registry, and the per-user visibility filter.
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/collabboard/whiteboard-gallery/internal/blob"
	"github.com/collabboard/whiteboard-gallery/models"
)

// DefaultSession is the shared bucket used when a request carries no
// session code.
const DefaultSession = "default"

// Metadata maps session -> filename -> image record. Every mutation is
// followed by a best-effort snapshot write; the in-memory state stays
// authoritative for the life of the process even when a write fails.
type Metadata struct {
	mu       sync.Mutex
	sessions map[string]map[string]models.ImageRecord
	seq      int64

	path string
	log  *slog.Logger
}

// OpenMetadata loads the snapshot at path if one exists. The second return
// value reports whether a snapshot file was found; when it is false the
// caller should attempt Rebuild.
func OpenMetadata(path string, log *slog.Logger) (*Metadata, bool) {
	m := &Metadata{
		sessions: make(map[string]map[string]models.ImageRecord),
		path:     path,
		log:      log,
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Warn("reading metadata snapshot", "path", path, "error", err)
			return m, true
		}
		return m, false
	}
	var snapshot map[string]map[string]models.ImageRecord
	if err := json.Unmarshal(data, &snapshot); err != nil {
		log.Warn("parsing metadata snapshot", "path", path, "error", err)
		return m, true
	}
	// Re-number records deterministically so timestamp ties sort the same
	// way on every reload.
	for _, session := range sortedKeys(snapshot) {
		for _, filename := range sortedKeys(snapshot[session]) {
			rec := snapshot[session][filename]
			m.seq++
			rec.Seq = m.seq
			if m.sessions[session] == nil {
				m.sessions[session] = make(map[string]models.ImageRecord)
			}
			m.sessions[session][filename] = rec
		}
	}
	return m, true
}

// Put records metadata for one uploaded image and persists the snapshot.
func (m *Metadata) Put(session, filename string, rec models.ImageRecord) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.sessions[session] == nil {
		m.sessions[session] = make(map[string]models.ImageRecord)
	}
	m.seq++
	rec.Seq = m.seq
	m.sessions[session][filename] = rec
	m.save()
}

// Get returns a copy of the records for session; the copy is safe to use
// without holding any lock.
func (m *Metadata) Get(session string) map[string]models.ImageRecord {
	m.mu.Lock()
	defer m.mu.Unlock()
	records := make(map[string]models.ImageRecord, len(m.sessions[session]))
	for filename, rec := range m.sessions[session] {
		records[filename] = rec
	}
	return records
}

// Lookup returns the record for one filename within a session.
func (m *Metadata) Lookup(session, filename string) (models.ImageRecord, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	rec, ok := m.sessions[session][filename]
	return rec, ok
}

// HasSession reports whether at least one record exists for the session.
func (m *Metadata) HasSession(session string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions[session]) > 0
}

// Rebuild reconstructs the store from a blob-store listing. It is meant to
// run once at startup when no snapshot exists; on any failure the store is
// left empty and the error is returned for the caller to log.
func (m *Metadata) Rebuild(ctx context.Context, bs blob.BlobStore, folder string) error {
	objects, err := bs.Enumerate(ctx, folder)
	if err != nil {
		return fmt.Errorf("enumerate %q: %w", folder, err)
	}
	// Deterministic ordering: Enumerate gives no ordering guarantee.
	sort.Slice(objects, func(i, j int) bool { return objects[i].Path < objects[j].Path })

	m.mu.Lock()
	defer m.mu.Unlock()
	for _, obj := range objects {
		parts := strings.Split(obj.Path, "/")
		filename := parts[len(parts)-1]
		if filename == "" {
			continue
		}
		// Path shape is <folder>/<session>/<filename>; anything flatter
		// lands in the shared default session.
		session := DefaultSession
		if len(parts) >= 3 {
			session = parts[1]
		}
		timestamp := time.Now().Unix()
		if !obj.CreatedAt.IsZero() {
			timestamp = obj.CreatedAt.Unix()
		}
		if m.sessions[session] == nil {
			m.sessions[session] = make(map[string]models.ImageRecord)
		}
		m.seq++
		m.sessions[session][filename] = models.ImageRecord{
			Timestamp: timestamp,
			BlobID:    obj.ID,
			URL:       obj.URL,
			Seq:       m.seq,
		}
	}
	m.save()
	return nil
}

// save writes the snapshot wholesale. Failures are logged and swallowed.
// Callers must hold m.mu.
func (m *Metadata) save() {
	data, err := json.Marshal(m.sessions)
	if err != nil {
		m.log.Warn("encoding metadata snapshot", "error", err)
		return
	}
	if err := os.WriteFile(m.path, data, 0o644); err != nil {
		m.log.Warn("writing metadata snapshot", "path", m.path, "error", err)
	}
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
