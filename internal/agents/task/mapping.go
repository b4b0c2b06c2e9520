package task

import (
	"time"

	"github.com/jomei/notionapi"

	"github.com/geminidesk/geminidesk/internal/models"
)

// blockKind is the external store's per-field block shape. The store
// silently rejects writes whose block shape does not match the schema,
// so the mapping table below is the only place shapes are chosen.
type blockKind int

const (
	blockTitle blockKind = iota
	blockRichText
	blockDate
	blockSelect
	blockStatus
	blockMultiSelect
	blockPeople
)

// propertyMapping binds an internal draft field to its external column
type propertyMapping struct {
	External string
	Kind     blockKind
}

// propertyMap routes draft fields to the task database schema. Fields
// absent from this table are dropped.
var propertyMap = map[string]propertyMapping{
	"title":       {"Task name", blockTitle},
	"description": {"Description", blockRichText},
	"due_date":    {"Due date", blockDate},
	"priority":    {"Priority", blockSelect},
	"difficulty":  {"Effort level", blockSelect},
	"category":    {"Task type", blockMultiSelect},
	"status":      {"Status", blockStatus},
	"assignee":    {"Assignee", blockPeople},
	"task_type":   {"Task type", blockMultiSelect},
}

// defaultValues fills required external fields the draft left empty
var defaultValues = []struct {
	External string
	Kind     blockKind
	Value    string
}{
	{"Priority", blockSelect, "Medium"},
	{"Effort level", blockSelect, "Medium"},
	{"Status", blockStatus, string(models.TaskStatusNotStarted)},
	{"Task type", blockMultiSelect, "💬 Feature request"},
}

// MapDraft converts a parsed task draft into the store's property set,
// normalizing status and due date on the way and filling defaults for
// required fields. The second return value is the plain-value view of
// the mapped fields, kept for observability.
func MapDraft(draft *models.TaskDraft, now time.Time) (notionapi.Properties, map[string]any) {
	fields := map[string]string{
		"title":       draft.Title,
		"description": draft.Description,
		"due_date":    draft.DueDate,
		"priority":    draft.Priority,
		"difficulty":  draft.Difficulty,
		"category":    draft.Category,
		"status":      draft.Status,
		"assignee":    draft.Assignee,
		"task_type":   draft.TaskType,
	}

	props := notionapi.Properties{}
	view := map[string]any{}

	// Deterministic order keeps later fields (task_type) winning over
	// earlier aliases (category) the same way every run.
	order := []string{"title", "description", "due_date", "priority", "difficulty", "category", "status", "assignee", "task_type"}
	for _, field := range order {
		value := fields[field]
		if value == "" {
			continue
		}
		mapping, ok := propertyMap[field]
		if !ok {
			continue
		}

		switch mapping.Kind {
		case blockDate:
			value = NormalizeDueDate(value, now)
		case blockStatus:
			value = string(NormalizeStatus(value))
		}

		props[mapping.External] = buildProperty(mapping.Kind, value)
		view[mapping.External] = value
	}

	for _, def := range defaultValues {
		if _, ok := props[def.External]; ok {
			continue
		}
		props[def.External] = buildProperty(def.Kind, def.Value)
		view[def.External] = def.Value
	}

	return props, view
}

func buildProperty(kind blockKind, value string) notionapi.Property {
	switch kind {
	case blockTitle:
		return notionapi.TitleProperty{
			Title: []notionapi.RichText{{Text: &notionapi.Text{Content: value}}},
		}
	case blockRichText:
		return notionapi.RichTextProperty{
			RichText: []notionapi.RichText{{Text: &notionapi.Text{Content: value}}},
		}
	case blockDate:
		start, err := time.Parse("2006-01-02", value)
		if err != nil {
			return notionapi.RichTextProperty{
				RichText: []notionapi.RichText{{Text: &notionapi.Text{Content: value}}},
			}
		}
		date := notionapi.Date(start)
		return notionapi.DateProperty{
			Date: &notionapi.DateObject{Start: &date},
		}
	case blockSelect:
		return notionapi.SelectProperty{
			Select: notionapi.Option{Name: value},
		}
	case blockStatus:
		return notionapi.StatusProperty{
			Status: notionapi.Option{Name: value},
		}
	case blockMultiSelect:
		return notionapi.MultiSelectProperty{
			MultiSelect: []notionapi.Option{{Name: value}},
		}
	case blockPeople:
		// Resolving names to store user IDs is out of reach here; the
		// column is written empty rather than with a bad shape.
		return notionapi.PeopleProperty{People: []notionapi.User{}}
	default:
		return notionapi.RichTextProperty{
			RichText: []notionapi.RichText{{Text: &notionapi.Text{Content: value}}},
		}
	}
}
