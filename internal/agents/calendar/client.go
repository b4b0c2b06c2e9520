package calendar

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/geminidesk/geminidesk/internal/models"
)

// DefaultBaseURL is the calendar REST endpoint
const DefaultBaseURL = "https://www.googleapis.com/calendar/v3"

// EventDateTime is the API's start/end shape with the fixed timezone
type EventDateTime struct {
	DateTime string `json:"dateTime"`
	TimeZone string `json:"timeZone"`
}

// EventBody is the insert request body. Recurrence marshals to null when
// no valid rule survived validation, forcing non-recurring semantics
// rather than leaving the field open to interpretation.
type EventBody struct {
	Summary     string        `json:"summary"`
	Description string        `json:"description"`
	Start       EventDateTime `json:"start"`
	End         EventDateTime `json:"end"`
	Location    string        `json:"location,omitempty"`
	Recurrence  []string      `json:"recurrence"`
}

// APIEvent is the subset of the event resource the handler reads back
type APIEvent struct {
	ID       string        `json:"id"`
	Summary  string        `json:"summary"`
	HTMLLink string        `json:"htmlLink"`
	Start    EventDateTime `json:"start"`
	End      EventDateTime `json:"end"`
}

// Client is a thin calendar REST client over an OAuth-authenticated
// http.Client.
type Client struct {
	httpClient *http.Client
	baseURL    string
	calendarID string
}

// NewClient creates a calendar client. An empty baseURL uses the real API.
func NewClient(httpClient *http.Client, baseURL, calendarID string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if calendarID == "" {
		calendarID = "primary"
	}
	return &Client{httpClient: httpClient, baseURL: baseURL, calendarID: calendarID}
}

// InsertEvent creates one event and returns the created resource
func (c *Client) InsertEvent(ctx context.Context, body *EventBody) (*APIEvent, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}

	endpoint := fmt.Sprintf("%s/calendars/%s/events", c.baseURL, url.PathEscape(c.calendarID))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &models.InsertError{Store: "calendar", Message: err.Error(), Err: err}
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &models.InsertError{
			Store:   "calendar",
			Message: fmt.Sprintf("HTTP %d: %s", resp.StatusCode, string(respBody)),
		}
	}

	var created APIEvent
	if err := json.Unmarshal(respBody, &created); err != nil {
		return nil, &models.InsertError{Store: "calendar", Message: "unparseable insert response", Err: err}
	}
	return &created, nil
}

// ListEvents returns single events between timeMin and timeMax ordered by
// start time.
func (c *Client) ListEvents(ctx context.Context, timeMin, timeMax time.Time) ([]APIEvent, error) {
	query := url.Values{}
	query.Set("timeMin", timeMin.UTC().Format(time.RFC3339))
	query.Set("timeMax", timeMax.UTC().Format(time.RFC3339))
	query.Set("singleEvents", "true")
	query.Set("orderBy", "startTime")

	endpoint := fmt.Sprintf("%s/calendars/%s/events?%s", c.baseURL, url.PathEscape(c.calendarID), query.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("calendar list failed: HTTP %d: %s", resp.StatusCode, string(respBody))
	}

	var listing struct {
		Items []APIEvent `json:"items"`
	}
	if err := json.Unmarshal(respBody, &listing); err != nil {
		return nil, fmt.Errorf("unparseable list response: %w", err)
	}
	return listing.Items, nil
}
