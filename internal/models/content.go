package models

// MimeCategory is the coarse input kind the extractor recognizes
type MimeCategory string

const (
	MimeText  MimeCategory = "text"
	MimeImage MimeCategory = "image"
	MimePDF   MimeCategory = "pdf"
)

// ExtractedContent is the normalized text produced from an input artifact.
// Immutable once produced.
type ExtractedContent struct {
	Source string       `json:"source,omitempty"` // originating file path, empty for literal text
	Mime   MimeCategory `json:"mime_category"`
	Text   string       `json:"text"`
}
