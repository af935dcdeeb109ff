package transcripts

import "time"

// Transcript represents an uploaded transcript owned by a user.
type Transcript struct {
	ID               string
	UserID           string
	FileName         string
	MimeType         string
	SizeBytes        int64
	StorageKey       string
	ExtractedTextKey string
	DetectedGPA      string
	CreatedAt        time.Time
}
