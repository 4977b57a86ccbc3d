package store

import (
	"math/rand"
	"sync"
	"time"

	"github.com/collabboard/whiteboard-gallery/models"
)

const (
	codeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	codeLength   = 6
)

// Registry tracks live session codes for the current process. It is not
// persisted: sessions survive restarts only through the metadata store,
// which Validate consults as a recovery path.
type Registry struct {
	mu       sync.Mutex
	sessions map[string]models.Session
	meta     *Metadata
}

func NewRegistry(meta *Metadata) *Registry {
	return &Registry{sessions: make(map[string]models.Session), meta: meta}
}

// Create generates a session code that is unique among registered sessions
// and records its creation time.
func (r *Registry) Create() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	code := generateCode()
	for {
		if _, taken := r.sessions[code]; !taken {
			break
		}
		code = generateCode()
	}
	r.sessions[code] = models.Session{Code: code, CreatedAt: time.Now().Unix()}
	return code
}

// Validate reports whether code names a joinable session. Codes unknown to
// the registry are recovered when the metadata store already holds images
// for them, in which case the registration is backfilled with the current
// time.
func (r *Registry) Validate(code string) bool {
	r.mu.Lock()
	if _, ok := r.sessions[code]; ok {
		r.mu.Unlock()
		return true
	}
	r.mu.Unlock()

	if !r.meta.HasSession(code) {
		return false
	}
	r.mu.Lock()
	r.sessions[code] = models.Session{Code: code, CreatedAt: time.Now().Unix()}
	r.mu.Unlock()
	return true
}

// CreatedAt returns the registration time for a session code.
func (r *Registry) CreatedAt(code string) (int64, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	session, ok := r.sessions[code]
	return session.CreatedAt, ok
}

func generateCode() string {
	b := make([]byte, codeLength)
	for i := range b {
		b[i] = codeAlphabet[rand.Intn(len(codeAlphabet))]
	}
	return string(b)
}
