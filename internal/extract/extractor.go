// Package extract turns input artifacts (text files, images, PDFs) into a
// single normalized text blob, transcribing binary formats through the
// multimodal generation model.
package extract

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/geminidesk/geminidesk/internal/models"
	"github.com/geminidesk/geminidesk/internal/services/genai"
)

const (
	// ImagePrompt is the fixed transcription instruction for images
	ImagePrompt = "You are an OCR and document understanding agent. " +
		"Extract all visible text, equations, and diagram captions as Markdown. " +
		"Use $$...$$ for math and markdown for layout."
	// PDFPagePrompt is the fixed per-page instruction for PDF documents
	PDFPagePrompt = "Extract all text and diagrams in Markdown format."
)

var (
	textExtensions = map[string]bool{
		".txt": true, ".md": true, ".csv": true,
	}
	imageExtensions = map[string]bool{
		".png": true, ".jpg": true, ".jpeg": true,
		".bmp": true, ".tiff": true, ".webp": true,
	}
)

// Extractor converts artifacts into normalized text
type Extractor struct {
	provider genai.Provider
	logger   *zap.Logger
}

// New creates an extractor backed by the given generation provider
func New(provider genai.Provider, log *zap.Logger) *Extractor {
	if log == nil {
		log = zap.NewNop()
	}
	return &Extractor{provider: provider, logger: log}
}

// Extract dispatches on file extension and returns the artifact's text.
// Model failures propagate to the caller; a failing PDF page aborts the
// whole document.
func (e *Extractor) Extract(ctx context.Context, path string) (models.ExtractedContent, error) {
	if _, err := os.Stat(path); err != nil {
		return models.ExtractedContent{}, &models.FileNotFoundError{Path: path}
	}

	ext := strings.ToLower(filepath.Ext(path))
	switch {
	case textExtensions[ext]:
		return e.extractText(path)
	case imageExtensions[ext]:
		return e.extractImage(ctx, path)
	case ext == ".pdf":
		return e.extractPDF(ctx, path)
	default:
		return models.ExtractedContent{}, &models.UnsupportedFormatError{Extension: ext}
	}
}

func (e *Extractor) extractText(path string) (models.ExtractedContent, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return models.ExtractedContent{}, err
	}

	e.logger.Debug("extracted_text_file",
		zap.String("path", path),
		zap.Int("bytes", len(data)),
	)

	return models.ExtractedContent{
		Source: path,
		Mime:   models.MimeText,
		Text:   strings.TrimSpace(string(data)),
	}, nil
}

func (e *Extractor) extractImage(ctx context.Context, path string) (models.ExtractedContent, error) {
	jpeg, err := normalizeImage(path)
	if err != nil {
		return models.ExtractedContent{}, err
	}

	text, err := e.provider.GenerateVision(ctx, ImagePrompt, "image/jpeg", jpeg)
	if err != nil {
		return models.ExtractedContent{}, &models.GenerationError{
			Operation: "image_transcription",
			Message:   err.Error(),
			Err:       err,
		}
	}

	e.logger.Debug("extracted_image",
		zap.String("path", path),
		zap.Int("jpeg_bytes", len(jpeg)),
		zap.Int("text_length", len(text)),
	)

	return models.ExtractedContent{
		Source: path,
		Mime:   models.MimeImage,
		Text:   strings.TrimSpace(text),
	}, nil
}
