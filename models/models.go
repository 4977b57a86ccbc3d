package models

// ImageRecord is the durable metadata kept for one uploaded image. Records
// are immutable once created; "deleting" an image is a per-user visibility
// overlay and never touches the record itself.
type ImageRecord struct {
	Timestamp int64  `json:"timestamp"`
	BlobID    string `json:"cloudinary_id"`
	URL       string `json:"url"`

	// Seq is the insertion order within the metadata store, used as the
	// tie-break when two records share a timestamp. Not persisted.
	Seq int64 `json:"-"`
}

// ImageInfo is the listing shape returned to clients.
type ImageInfo struct {
	Filename  string `json:"filename"`
	Timestamp int64  `json:"timestamp"`
	URL       string `json:"cloudinary_url"`
}

// Session is a named whiteboard workspace grouping uploaded images.
type Session struct {
	Code      string `json:"session_id"`
	CreatedAt int64  `json:"created_at"`
}
