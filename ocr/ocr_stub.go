//go:build !ocr

// Package ocr recovers text from rasterized pages that yielded no
// positioned text, typically scanned pages embedded as images.
//
// This is the stub used without the "ocr" build tag; all operations
// return ErrNotEnabled. Rebuild with -tags ocr (and Tesseract installed)
// to enable recognition.
package ocr

import "errors"

// ErrNotEnabled is returned when OCR support was not compiled in.
var ErrNotEnabled = errors.New("OCR support not enabled; rebuild with -tags ocr")

// Available reports whether OCR support was compiled in.
const Available = false

// Client is a stub that fails every operation.
type Client struct{}

// New returns a stub client. Construction itself does not fail so
// callers can decide how to degrade.
func New() (*Client, error) { return &Client{}, nil }

// Close is a no-op.
func (c *Client) Close() error { return nil }

// RecognizeFile always returns ErrNotEnabled.
func (c *Client) RecognizeFile(string) (string, error) { return "", ErrNotEnabled }

// SetLanguage always returns ErrNotEnabled.
func (c *Client) SetLanguage(string) error { return ErrNotEnabled }
