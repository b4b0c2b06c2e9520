package handlers

import (
	"errors"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/geminidesk/geminidesk/internal/logger"
	"github.com/geminidesk/geminidesk/internal/models"
	"github.com/geminidesk/geminidesk/internal/pipeline"
	"github.com/geminidesk/geminidesk/internal/validation"
)

// maxUploadMemory bounds how much of a multipart upload stays in memory
// before spilling to disk.
const maxUploadMemory = 8 << 20

// IngestHandler runs the full pipeline for API clients
type IngestHandler struct {
	pipeline *pipeline.Pipeline
	logger   *zap.Logger
}

// NewIngestHandler creates the ingest handler
func NewIngestHandler(p *pipeline.Pipeline, log *zap.Logger) *IngestHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &IngestHandler{pipeline: p, logger: log}
}

type ingestRequest struct {
	Text string `json:"text" validate:"required,min=1"`
}

// Ingest handles POST /api/v1/ingest. JSON bodies carry literal text;
// multipart bodies carry a file artifact under the "file" field.
func (h *IngestHandler) Ingest(w http.ResponseWriter, r *http.Request) {
	contentType := r.Header.Get("Content-Type")
	if contentType != "" && isMultipart(contentType) {
		h.ingestFile(w, r)
		return
	}
	h.ingestText(w, r)
}

func (h *IngestHandler) ingestText(w http.ResponseWriter, r *http.Request) {
	var req ingestRequest
	if err := decodeJSON(r, &req); err != nil {
		respondJSONError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}
	req.Text = validation.SanitizeText(req.Text)
	if err := validation.Validate.Struct(req); err != nil {
		respondJSONError(w, http.StatusBadRequest, "validation_failed", "text is required")
		return
	}

	result, err := h.pipeline.RunText(r.Context(), req.Text)
	if err != nil {
		h.respondPipelineError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}

func (h *IngestHandler) ingestFile(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		respondJSONError(w, http.StatusBadRequest, "invalid_request", "malformed multipart body")
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		respondJSONError(w, http.StatusBadRequest, "invalid_request", "multipart body must carry a 'file' field")
		return
	}
	defer func() { _ = file.Close() }()

	// The extractor works on paths, so the upload lands in a temp file
	// keeping its original extension for format detection.
	tmpDir, err := os.MkdirTemp("", "geminidesk-upload-*")
	if err != nil {
		respondJSONError(w, http.StatusInternalServerError, "internal_error", "could not stage upload")
		return
	}
	defer func() { _ = os.RemoveAll(tmpDir) }()

	staged := filepath.Join(tmpDir, filepath.Base(header.Filename))
	out, err := os.Create(staged)
	if err != nil {
		respondJSONError(w, http.StatusInternalServerError, "internal_error", "could not stage upload")
		return
	}
	if _, err := io.Copy(out, file); err != nil {
		_ = out.Close()
		respondJSONError(w, http.StatusInternalServerError, "internal_error", "could not stage upload")
		return
	}
	_ = out.Close()

	result, err := h.pipeline.RunFile(r.Context(), staged)
	if err != nil {
		h.respondPipelineError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}

// respondPipelineError maps stage failures to status codes. Handler
// failures never reach here; the dispatcher folds those into the result.
func (h *IngestHandler) respondPipelineError(w http.ResponseWriter, err error) {
	h.logger.Warn("pipeline_failed", zap.String("error", logger.SanitizeError(err)))

	var unsupported *models.UnsupportedFormatError
	var notFound *models.FileNotFoundError
	var malformed *models.MalformedClassificationError
	var generation *models.GenerationError

	switch {
	case errors.As(err, &unsupported):
		respondJSONError(w, http.StatusUnsupportedMediaType, "unsupported_format", err.Error())
	case errors.As(err, &notFound):
		respondJSONError(w, http.StatusBadRequest, "file_not_found", err.Error())
	case errors.As(err, &malformed):
		respondJSONError(w, http.StatusBadGateway, "classification_failed", "the routing model returned an unusable response")
	case errors.As(err, &generation):
		respondJSONError(w, http.StatusBadGateway, "generation_failed", "the generation model is unavailable")
	default:
		respondJSONError(w, http.StatusInternalServerError, "internal_error", err.Error())
	}
}

func isMultipart(contentType string) bool {
	return strings.HasPrefix(contentType, "multipart/form-data")
}
