//go:build ocr

// Package ocr recovers text from rasterized pages that yielded no
// positioned text, typically scanned pages embedded as images.
//
// It wraps the Tesseract engine via gosseract and requires Tesseract to
// be installed on the system. Builds without the "ocr" tag get a stub
// that reports OCR as unavailable.
package ocr

import (
	"fmt"
	"os"
	"strings"

	"github.com/otiai10/gosseract/v2"
)

// Available reports whether OCR support was compiled in.
const Available = true

// Client wraps a Tesseract session. Close it to release resources.
type Client struct {
	client *gosseract.Client
}

// New creates an OCR client recognizing English text.
func New() (*Client, error) {
	return &Client{client: gosseract.NewClient()}, nil
}

// Close releases Tesseract resources.
func (c *Client) Close() error {
	if c.client != nil {
		return c.client.Close()
	}
	return nil
}

// RecognizeFile performs OCR on a page image file and returns the
// recognized text, whitespace-trimmed.
func (c *Client) RecognizeFile(imagePath string) (string, error) {
	data, err := os.ReadFile(imagePath)
	if err != nil {
		return "", fmt.Errorf("failed to read page image: %w", err)
	}
	if err := c.client.SetImageFromBytes(data); err != nil {
		return "", fmt.Errorf("failed to set image: %w", err)
	}
	text, err := c.client.Text()
	if err != nil {
		return "", fmt.Errorf("OCR failed: %w", err)
	}
	return strings.TrimSpace(text), nil
}

// SetLanguage sets the recognition language(s), "+"-separated for
// multiple (e.g. "eng+fra"). Default is "eng".
func (c *Client) SetLanguage(lang string) error {
	return c.client.SetLanguage(lang)
}
