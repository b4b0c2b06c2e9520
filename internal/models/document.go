package models

// DocumentRecord is a note destined for the document store
type DocumentRecord struct {
	Title    string `json:"title"`
	Body     string `json:"body_text"`
	Category string `json:"category,omitempty"`
}

// DocumentInsertResult is returned after a document store insert
type DocumentInsertResult struct {
	PageURL string `json:"page_url"`
	PageID  string `json:"page_id"`
	Title   string `json:"title"`
}
