// Package note archives free text and file contents as documents in the
// external notes database.
package note

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/jomei/notionapi"
	"go.uber.org/zap"

	"github.com/geminidesk/geminidesk/internal/models"
	"github.com/geminidesk/geminidesk/internal/services/genai"
)

// TitlePrompt asks the model for a page title. Only the head of the note
// is sent; long notes do not need their tail to be titled.
const TitlePrompt = "Generate a short, descriptive title (max 7 words) for the following note. Respond with the title only, no quotes."

const (
	// titleSampleChars caps how much of the note feeds title generation
	titleSampleChars = 2000
	// bodyLimitChars is the document store's rich text block ceiling,
	// minus headroom.
	bodyLimitChars = 1900
	// minTitleChars below which a generated title is treated as unusable
	minTitleChars = 3
)

// PageCreator is the slice of the document store API the handler needs
type PageCreator interface {
	CreatePage(ctx context.Context, req *notionapi.PageCreateRequest) (*notionapi.Page, error)
}

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

// Handler is the note agent
type Handler struct {
	provider genai.Provider
	pages    PageCreator
	dbID     string
	logger   *zap.Logger
}

// NewHandler creates the note handler over the given notes database
func NewHandler(provider genai.Provider, pages PageCreator, dbID string, log *zap.Logger) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{provider: provider, pages: pages, dbID: dbID, logger: log}
}

// HandleNote titles the text and inserts it as a document page. artifact
// is the source file path when the note came from a file; its name stem
// backs up the title when generation produces nothing usable.
func (h *Handler) HandleNote(ctx context.Context, artifact, text, category string) (*models.DocumentInsertResult, error) {
	record := models.DocumentRecord{
		Title:    h.titleFor(ctx, artifact, text),
		Body:     truncate(text, bodyLimitChars),
		Category: category,
	}

	props := notionapi.Properties{
		"Doc name": notionapi.TitleProperty{
			Title: []notionapi.RichText{{Text: &notionapi.Text{Content: record.Title}}},
		},
	}
	if record.Category != "" {
		props["Category"] = notionapi.MultiSelectProperty{
			MultiSelect: []notionapi.Option{{Name: record.Category}},
		}
	}

	page, err := h.pages.CreatePage(ctx, &notionapi.PageCreateRequest{
		Parent: notionapi.Parent{
			Type:       notionapi.ParentTypeDatabaseID,
			DatabaseID: notionapi.DatabaseID(h.dbID),
		},
		Properties: props,
		Children: []notionapi.Block{
			notionapi.ParagraphBlock{
				BasicBlock: notionapi.BasicBlock{
					Object: notionapi.ObjectTypeBlock,
					Type:   notionapi.BlockTypeParagraph,
				},
				Paragraph: notionapi.Paragraph{
					RichText: []notionapi.RichText{{Text: &notionapi.Text{Content: record.Body}}},
				},
			},
		},
	})
	if err != nil {
		return nil, &models.InsertError{Store: "notes database", Message: err.Error(), Err: err}
	}

	h.logger.Info("note_archived",
		zap.String("title", record.Title),
		zap.String("page_url", page.URL),
	)

	return &models.DocumentInsertResult{
		PageURL: page.URL,
		PageID:  string(page.ID),
		Title:   record.Title,
	}, nil
}

// titleFor generates a title from the head of the note. Generation
// failures and throwaway answers fall back to the artifact's name stem,
// so archiving never fails on the title step.
func (h *Handler) titleFor(ctx context.Context, artifact, text string) string {
	sample := truncate(text, titleSampleChars)
	raw, err := h.provider.Generate(ctx, TitlePrompt, sample, genai.GenerateOptions{})
	if err != nil {
		h.logger.Warn("note_title_generation_failed", zap.Error(err))
		return fallbackTitle(artifact)
	}

	title := strings.Trim(strings.TrimSpace(raw), "\"'")
	if len(title) < minTitleChars {
		return fallbackTitle(artifact)
	}
	return title
}

func fallbackTitle(artifact string) string {
	if artifact == "" {
		return "Untitled Note"
	}
	base := filepath.Base(artifact)
	if stem := strings.TrimSuffix(base, filepath.Ext(base)); stem != "" {
		return stem
	}
	return "Untitled Note"
}

// truncate caps s at limit characters, never splitting a rune.
func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
