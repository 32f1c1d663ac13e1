package entity

import (
	"strings"
	"time"
)

const (
	FileKindImage    = "image"
	FileKindDocument = "document"
)

// Message is one entry in a quote conversation thread. Threads are
// append-only; there is no edit or delete path.
type Message struct {
	ID         string    `json:"id" firestore:"id"`
	QuoteID    string    `json:"quote_id" firestore:"quoteId"`
	Seq        int64     `json:"seq" firestore:"seq"` // monotonic per thread, assigned transactionally
	SenderID   string    `json:"sender_id" firestore:"senderId"`
	SenderName string    `json:"sender_name" firestore:"senderName"`
	IsAdmin    bool      `json:"is_admin" firestore:"isAdmin"`
	Text       string    `json:"text" firestore:"text"`
	FileURL    string    `json:"file_url,omitempty" firestore:"fileUrl,omitempty"`
	FileName   string    `json:"file_name,omitempty" firestore:"fileName,omitempty"`
	FileKind   string    `json:"file_kind,omitempty" firestore:"fileKind,omitempty"`
	CreatedAt  time.Time `json:"created_at" firestore:"createdAt"`
}

// ClassifyFile buckets an attachment by its declared content type. Anything
// that is not an image is treated as a document.
func ClassifyFile(contentType string) string {
	if strings.HasPrefix(contentType, "image/") {
		return FileKindImage
	}
	return FileKindDocument
}
