// Package task turns free text into structured task records and inserts
// them into the external task database.
package task

import (
	"context"
	"encoding/json"
	"time"

	"github.com/jomei/notionapi"
	"github.com/kaptinlin/jsonrepair"
	"go.uber.org/zap"

	"github.com/geminidesk/geminidesk/internal/models"
	"github.com/geminidesk/geminidesk/internal/services/genai"
)

// ParsePrompt is the fixed task extraction instruction. The field list
// mirrors the draft schema exactly; the model fills what it can.
const ParsePrompt = `You are a task parser. Given text, extract key details into a JSON object
with these string fields: title, description, due_date, priority,
difficulty, category, status, assignee, task_type.
Parse natural date/time into YYYY-MM-DD if possible.
Use descriptive task titles and fill missing fields sensibly.`

// PageCreator is the slice of the document/task store API the handler
// needs; the production implementation wraps the store client.
type PageCreator interface {
	CreatePage(ctx context.Context, req *notionapi.PageCreateRequest) (*notionapi.Page, error)
}

// notionPages adapts the store client to PageCreator
type notionPages struct {
	client *notionapi.Client
}

func (n *notionPages) CreatePage(ctx context.Context, req *notionapi.PageCreateRequest) (*notionapi.Page, error) {
	return n.client.Page.Create(ctx, req)
}

// NewPageCreator builds the production store client
func NewPageCreator(token string) PageCreator {
	return &notionPages{client: notionapi.NewClient(notionapi.Token(token))}
}

// Handler is the task agent
type Handler struct {
	provider genai.Provider
	pages    PageCreator
	dbID     string
	logger   *zap.Logger
	now      func() time.Time
}

// NewHandler creates the task handler over the given store database
func NewHandler(provider genai.Provider, pages PageCreator, dbID string, log *zap.Logger) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{
		provider: provider,
		pages:    pages,
		dbID:     dbID,
		logger:   log,
		now:      time.Now,
	}
}

// HandleTask parses text into a task and inserts it. Model failures and
// store rejections surface as distinct error kinds.
func (h *Handler) HandleTask(ctx context.Context, text string) (*models.TaskInsertResult, error) {
	draft, err := h.parseTask(ctx, text)
	if err != nil {
		return nil, err
	}

	props, view := MapDraft(draft, h.now())

	page, err := h.pages.CreatePage(ctx, &notionapi.PageCreateRequest{
		Parent: notionapi.Parent{
			Type:       notionapi.ParentTypeDatabaseID,
			DatabaseID: notionapi.DatabaseID(h.dbID),
		},
		Properties: props,
	})
	if err != nil {
		return nil, &models.InsertError{Store: "task database", Message: err.Error(), Err: err}
	}

	h.logger.Info("task_created",
		zap.String("title", draft.Title),
		zap.String("page_url", page.URL),
	)

	return &models.TaskInsertResult{
		PageURL:    page.URL,
		PageID:     string(page.ID),
		Parsed:     *draft,
		Properties: view,
	}, nil
}

func (h *Handler) parseTask(ctx context.Context, text string) (*models.TaskDraft, error) {
	response, err := h.provider.Generate(ctx, ParsePrompt, "TEXT:\n"+text, genai.GenerateOptions{JSONMode: true})
	if err != nil {
		return nil, &models.GenerationError{Operation: "task_parse", Message: err.Error(), Err: err}
	}

	var draft models.TaskDraft
	if err := json.Unmarshal([]byte(response), &draft); err != nil {
		repaired, repairErr := jsonrepair.JSONRepair(response)
		if repairErr != nil {
			return nil, &models.GenerationError{Operation: "task_parse", Message: "unparseable task draft", Err: err}
		}
		if err := json.Unmarshal([]byte(repaired), &draft); err != nil {
			return nil, &models.GenerationError{Operation: "task_parse", Message: "unparseable task draft", Err: err}
		}
	}
	return &draft, nil
}
