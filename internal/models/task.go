package models

// TaskStatus is one of the task database's allowed status options
type TaskStatus string

const (
	TaskStatusNotStarted TaskStatus = "Not started"
	TaskStatusInProgress TaskStatus = "In progress"
	TaskStatusDone       TaskStatus = "Done"
)

// TaskDraft is the raw structured task the generation model extracts from
// free text, before normalization and schema mapping.
type TaskDraft struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	DueDate     string `json:"due_date,omitempty"`
	Priority    string `json:"priority,omitempty"`
	Difficulty  string `json:"difficulty,omitempty"`
	Category    string `json:"category,omitempty"`
	Status      string `json:"status,omitempty"`
	Assignee    string `json:"assignee,omitempty"`
	TaskType    string `json:"task_type,omitempty"`
}

// TaskInsertResult is returned on a successful task insert, carrying the
// parsed and mapped intermediates for observability.
type TaskInsertResult struct {
	PageURL    string         `json:"page_url"`
	PageID     string         `json:"page_id"`
	Parsed     TaskDraft      `json:"parsed_task"`
	Properties map[string]any `json:"mapped_properties"`
}
