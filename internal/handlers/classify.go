package handlers

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/geminidesk/geminidesk/internal/logger"
	"github.com/geminidesk/geminidesk/internal/models"
	"github.com/geminidesk/geminidesk/internal/pipeline"
	"github.com/geminidesk/geminidesk/internal/validation"
)

// ClassifyHandler exposes the routing decision without dispatching,
// so clients can preview where text would go.
type ClassifyHandler struct {
	classifier pipeline.Classifier
	logger     *zap.Logger
}

// NewClassifyHandler creates the classify handler
func NewClassifyHandler(classifier pipeline.Classifier, log *zap.Logger) *ClassifyHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &ClassifyHandler{classifier: classifier, logger: log}
}

type classifyRequest struct {
	Text string `json:"text" validate:"required,min=1"`
}

// Classify handles POST /api/v1/classify
func (h *ClassifyHandler) Classify(w http.ResponseWriter, r *http.Request) {
	var req classifyRequest
	if err := decodeJSON(r, &req); err != nil {
		respondJSONError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}
	req.Text = validation.SanitizeText(req.Text)
	if err := validation.Validate.Struct(req); err != nil {
		respondJSONError(w, http.StatusBadRequest, "validation_failed", "text is required")
		return
	}

	decision, err := h.classifier.Classify(r.Context(), req.Text)
	if err != nil {
		h.logger.Warn("classification_failed", zap.String("error", logger.SanitizeError(err)))

		var malformed *models.MalformedClassificationError
		if errors.As(err, &malformed) {
			respondJSONError(w, http.StatusBadGateway, "classification_failed", "the routing model returned an unusable response")
			return
		}
		respondJSONError(w, http.StatusBadGateway, "generation_failed", "the generation model is unavailable")
		return
	}

	respondJSON(w, http.StatusOK, decision)
}
