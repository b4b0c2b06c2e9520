package genai

import (
	"encoding/json"
	"fmt"
	"strings"
)

// APIError represents an error from the generation backend API
type APIError struct {
	Message    string
	Type       string
	Code       string
	StatusCode int
}

func (e *APIError) Error() string {
	return fmt.Sprintf("API error (status %d, type %s): %s", e.StatusCode, e.Type, e.Message)
}

// ExtractAPIError pulls structured detail out of an SDK error. The OpenAI
// SDK embeds the upstream JSON in the error string; parse it out when
// present so callers can report the real status and message.
func ExtractAPIError(err error) *APIError {
	if err == nil {
		return nil
	}

	errStr := err.Error()
	apiErr := &APIError{Message: errStr}

	for _, status := range []int{400, 401, 403, 404, 429, 500, 503} {
		if strings.Contains(errStr, fmt.Sprintf("%d", status)) {
			apiErr.StatusCode = status
			break
		}
	}

	if jsonStart := strings.Index(errStr, "{"); jsonStart != -1 {
		jsonStr := errStr[jsonStart:]
		if jsonEnd := strings.LastIndex(jsonStr, "}"); jsonEnd != -1 {
			jsonStr = jsonStr[:jsonEnd+1]
			var errorData struct {
				Message string `json:"message"`
				Type    string `json:"type"`
				Code    string `json:"code"`
			}
			if json.Unmarshal([]byte(jsonStr), &errorData) == nil && errorData.Message != "" {
				apiErr.Message = errorData.Message
				apiErr.Type = errorData.Type
				apiErr.Code = errorData.Code
			}
		}
	}

	if apiErr.StatusCode == 0 && apiErr.Type == "" {
		return nil
	}
	return apiErr
}
