package extract

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/geminidesk/geminidesk/internal/models"
	"github.com/geminidesk/geminidesk/internal/services/genai"
)

// visionStub is a canned genai.Provider that records what it was asked
type visionStub struct {
	response     string
	err          error
	calls        int
	lastMimeType string
	lastPrompt   string
}

func (s *visionStub) Generate(ctx context.Context, system, prompt string, opts genai.GenerateOptions) (string, error) {
	return s.response, s.err
}

func (s *visionStub) GenerateVision(ctx context.Context, prompt, mimeType string, data []byte) (string, error) {
	s.calls++
	s.lastMimeType = mimeType
	s.lastPrompt = prompt
	if s.err != nil {
		return "", s.err
	}
	return s.response, nil
}

func TestExtract_TextFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "notes.md")
	if err := os.WriteFile(path, []byte("  # Grocery list\nmilk, eggs\n\n"), 0o600); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}

	e := New(&visionStub{}, nil)
	content, err := e.Extract(context.Background(), path)
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if content.Mime != models.MimeText {
		t.Errorf("Mime = %q, want %q", content.Mime, models.MimeText)
	}
	if content.Text != "# Grocery list\nmilk, eggs" {
		t.Errorf("Text = %q, want trimmed file contents", content.Text)
	}
	if content.Source != path {
		t.Errorf("Source = %q, want %q", content.Source, path)
	}
}

func TestExtract_MissingFile(t *testing.T) {
	t.Parallel()

	e := New(&visionStub{}, nil)
	_, err := e.Extract(context.Background(), "/nonexistent/file.txt")

	var notFound *models.FileNotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("error = %v, want FileNotFoundError", err)
	}
}

func TestExtract_UnsupportedFormat(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "data.xlsx")
	if err := os.WriteFile(path, []byte("binary"), 0o600); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}

	e := New(&visionStub{}, nil)
	_, err := e.Extract(context.Background(), path)

	var unsupported *models.UnsupportedFormatError
	if !errors.As(err, &unsupported) {
		t.Fatalf("error = %v, want UnsupportedFormatError", err)
	}
	if unsupported.Extension != ".xlsx" {
		t.Errorf("Extension = %q, want .xlsx", unsupported.Extension)
	}
}

func TestExtract_Image(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "whiteboard.png")
	writeTestPNG(t, path)

	stub := &visionStub{response: "  transcribed whiteboard text  "}
	e := New(stub, nil)

	content, err := e.Extract(context.Background(), path)
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if content.Mime != models.MimeImage {
		t.Errorf("Mime = %q, want %q", content.Mime, models.MimeImage)
	}
	if content.Text != "transcribed whiteboard text" {
		t.Errorf("Text = %q, want stripped model response", content.Text)
	}
	if stub.calls != 1 {
		t.Errorf("vision calls = %d, want 1", stub.calls)
	}
	if stub.lastMimeType != "image/jpeg" {
		t.Errorf("mime sent to model = %q, want image/jpeg (re-encoded)", stub.lastMimeType)
	}
	if stub.lastPrompt != ImagePrompt {
		t.Errorf("prompt = %q, want fixed image prompt", stub.lastPrompt)
	}
}

func TestExtract_ImageModelFailurePropagates(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	// Content sniffing decodes this regardless of the .jpg name.
	path := filepath.Join(dir, "photo.jpg")
	writeTestPNG(t, path)

	stub := &visionStub{err: errors.New("model unavailable")}
	e := New(stub, nil)

	_, err := e.Extract(context.Background(), path)
	var genErr *models.GenerationError
	if !errors.As(err, &genErr) {
		t.Fatalf("error = %v, want GenerationError", err)
	}
}

func TestJoinPages(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		pages []string
		want  string
	}{
		{"no pages", nil, ""},
		{"single page", []string{"first"}, "# Page 1\nfirst"},
		{"two pages", []string{"first", "second"}, "# Page 1\nfirst\n\n# Page 2\nsecond"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := joinPages(tt.pages); got != tt.want {
				t.Errorf("joinPages = %q, want %q", got, tt.want)
			}
		})
	}
}

func writeTestPNG(t *testing.T, path string) {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for x := 0; x < 4; x++ {
		for y := 0; y < 4; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x * 60), G: uint8(y * 60), B: 128, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("failed to encode test image: %v", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o600); err != nil {
		t.Fatalf("failed to write test image: %v", err)
	}
}
