package extract

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"go.uber.org/zap"

	"github.com/geminidesk/geminidesk/internal/models"
)

// extractPDF splits the document into single-page PDFs and runs each page
// through the model, joining the outputs under per-page headings. The
// first failing page aborts the whole document.
func (e *Extractor) extractPDF(ctx context.Context, path string) (models.ExtractedContent, error) {
	pageCount, err := api.PageCountFile(path)
	if err != nil {
		return models.ExtractedContent{}, fmt.Errorf("failed to read PDF %s: %w", path, err)
	}

	tmpDir, err := os.MkdirTemp("", "geminidesk-pdf-")
	if err != nil {
		return models.ExtractedContent{}, err
	}
	defer os.RemoveAll(tmpDir)

	pages := make([]string, 0, pageCount)
	for n := 1; n <= pageCount; n++ {
		pagePath := filepath.Join(tmpDir, fmt.Sprintf("page_%d.pdf", n))
		if err := api.TrimFile(path, pagePath, []string{fmt.Sprintf("%d", n)}, nil); err != nil {
			return models.ExtractedContent{}, fmt.Errorf("failed to split page %d of %s: %w", n, path, err)
		}

		data, err := os.ReadFile(pagePath)
		if err != nil {
			return models.ExtractedContent{}, err
		}

		text, err := e.provider.GenerateVision(ctx, PDFPagePrompt, "application/pdf", data)
		if err != nil {
			return models.ExtractedContent{}, &models.GenerationError{
				Operation: fmt.Sprintf("pdf_page_%d_transcription", n),
				Message:   err.Error(),
				Err:       err,
			}
		}
		pages = append(pages, strings.TrimSpace(text))
	}

	e.logger.Debug("extracted_pdf",
		zap.String("path", path),
		zap.Int("pages", pageCount),
	)

	return models.ExtractedContent{
		Source: path,
		Mime:   models.MimePDF,
		Text:   joinPages(pages),
	}, nil
}

// joinPages concatenates per-page transcriptions under "# Page N" headings
func joinPages(pages []string) string {
	var b strings.Builder
	for i, page := range pages {
		if i > 0 {
			b.WriteString("\n\n")
		}
		fmt.Fprintf(&b, "# Page %d\n%s", i+1, page)
	}
	return strings.TrimSpace(b.String())
}
