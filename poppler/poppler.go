// Package poppler drives the external PDF toolchain (pdfinfo,
// pdftocairo, pdftohtml, pdftotext) to produce the artifacts the parsing
// pipeline consumes: document metadata, page raster images, font-tagged
// XML, and positioned text. The binaries must be on PATH.
package poppler

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Artifacts tracks the working directory of one document's toolchain
// output. Clean removes everything.
type Artifacts struct {
	Dir     string
	PDFPath string
}

// Fetch stages a document for processing. An http(s) source is
// downloaded; anything else is treated as a local path and copied. The
// returned Artifacts own a fresh temporary directory.
func Fetch(ctx context.Context, source string) (*Artifacts, error) {
	dir, err := os.MkdirTemp("", "papyrus-*")
	if err != nil {
		return nil, fmt.Errorf("failed to create working directory: %w", err)
	}
	a := &Artifacts{Dir: dir, PDFPath: filepath.Join(dir, "paper.pdf")}

	var src io.ReadCloser
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, source, nil)
		if err != nil {
			a.Clean()
			return nil, fmt.Errorf("invalid document URL: %w", err)
		}
		resp, err := http.DefaultClient.Do(req)
		if err != nil {
			a.Clean()
			return nil, fmt.Errorf("failed to download document: %w", err)
		}
		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			a.Clean()
			return nil, fmt.Errorf("failed to download document: status %s", resp.Status)
		}
		src = resp.Body
	} else {
		f, err := os.Open(source)
		if err != nil {
			a.Clean()
			return nil, fmt.Errorf("failed to open document: %w", err)
		}
		src = f
	}
	defer src.Close()

	dst, err := os.Create(a.PDFPath)
	if err != nil {
		a.Clean()
		return nil, fmt.Errorf("failed to stage document: %w", err)
	}
	defer dst.Close()
	if _, err := io.Copy(dst, src); err != nil {
		a.Clean()
		return nil, fmt.Errorf("failed to stage document: %w", err)
	}
	return a, nil
}

// Clean removes the working directory and all toolchain output.
func (a *Artifacts) Clean() {
	if a.Dir != "" {
		os.RemoveAll(a.Dir)
	}
}

// DocInfo is the subset of pdfinfo output the pipeline needs.
type DocInfo struct {
	Pages      int
	PageWidth  float64
	PageHeight float64
}

var (
	pagesLine    = regexp.MustCompile(`(?m)^Pages:\s+(\d+)`)
	pageSizeLine = regexp.MustCompile(`(?m)^Page size:\s+([\d.]+)\s+x\s+([\d.]+)`)
)

// Info runs pdfinfo and parses the page count and page size. Empty or
// unparseable output means the document is not a readable PDF.
func (a *Artifacts) Info(ctx context.Context) (DocInfo, error) {
	out, err := exec.CommandContext(ctx, "pdfinfo", a.PDFPath).Output()
	if err != nil {
		return DocInfo{}, fmt.Errorf("pdfinfo failed: %w", err)
	}
	if strings.TrimSpace(string(out)) == "" {
		return DocInfo{}, fmt.Errorf("pdfinfo produced no output: document is broken or invalid")
	}
	return ParseInfo(string(out))
}

// ParseInfo extracts DocInfo from raw pdfinfo output.
func ParseInfo(out string) (DocInfo, error) {
	var info DocInfo
	m := pagesLine.FindStringSubmatch(out)
	if m == nil {
		return DocInfo{}, fmt.Errorf("pdfinfo output has no page count: document is broken or invalid")
	}
	info.Pages, _ = strconv.Atoi(m[1])

	m = pageSizeLine.FindStringSubmatch(out)
	if m == nil {
		return DocInfo{}, fmt.Errorf("pdfinfo output has no page size: document is broken or invalid")
	}
	info.PageWidth, _ = strconv.ParseFloat(m[1], 64)
	info.PageHeight, _ = strconv.ParseFloat(m[2], 64)
	return info, nil
}

// RenderPages rasterizes every page to a 72dpi JPEG and returns the
// image paths in page order. pdftocairo may return before all files are
// flushed, so completion is poll-based.
func (a *Artifacts) RenderPages(ctx context.Context, pageCount int) ([]string, error) {
	prefix := filepath.Join(a.Dir, "page")
	cmd := exec.CommandContext(ctx, "pdftocairo", "-jpeg", "-r", "72", a.PDFPath, prefix)
	if out, err := cmd.CombinedOutput(); err != nil {
		return nil, fmt.Errorf("pdftocairo failed: %w: %s", err, strings.TrimSpace(string(out)))
	}

	var paths []string
	err := waitForFiles(ctx, 100, 100*time.Millisecond, func() bool {
		matches, _ := filepath.Glob(prefix + "-*.jpg")
		if len(matches) < pageCount {
			return false
		}
		paths = matches
		return true
	})
	if err != nil {
		return nil, fmt.Errorf("pdftocairo output incomplete: %w", err)
	}

	// Glob order is lexical; zero-padded page numbers keep it equal to
	// page order.
	return paths, nil
}

// WriteXML runs pdftohtml in XML mode and returns the path of the
// font-tagged XML document.
func (a *Artifacts) WriteXML(ctx context.Context) (string, error) {
	xmlPath := filepath.Join(a.Dir, "paper.xml")
	cmd := exec.CommandContext(ctx, "pdftohtml",
		"-c", "-s", "-xml", "-zoom", "1.0",
		a.PDFPath, strings.TrimSuffix(xmlPath, ".xml"))
	if out, err := cmd.CombinedOutput(); err != nil {
		return "", fmt.Errorf("pdftohtml failed: %w: %s", err, strings.TrimSpace(string(out)))
	}

	err := waitForFiles(ctx, 300, time.Second, func() bool {
		fi, err := os.Stat(xmlPath)
		return err == nil && fi.Size() > 0
	})
	if err != nil {
		return "", fmt.Errorf("pdftohtml output missing: %w", err)
	}
	return xmlPath, nil
}

// WriteText runs pdftotext in bbox-layout mode and returns the path of
// the positioned-text document.
func (a *Artifacts) WriteText(ctx context.Context) (string, error) {
	htmlPath := filepath.Join(a.Dir, "paper.html")
	cmd := exec.CommandContext(ctx, "pdftotext",
		"-nopgbrk", "-htmlmeta", "-bbox-layout", "-r", "72",
		a.PDFPath, htmlPath)
	if out, err := cmd.CombinedOutput(); err != nil {
		return "", fmt.Errorf("pdftotext failed: %w: %s", err, strings.TrimSpace(string(out)))
	}

	err := waitForFiles(ctx, 300, time.Second, func() bool {
		fi, err := os.Stat(htmlPath)
		return err == nil && fi.Size() > 0
	})
	if err != nil {
		return "", fmt.Errorf("pdftotext output missing: %w", err)
	}
	return htmlPath, nil
}

// waitForFiles polls ready until it reports true, up to attempts tries
// separated by interval. The external binaries occasionally return
// before their output hits the filesystem.
func waitForFiles(ctx context.Context, attempts int, interval time.Duration, ready func() bool) error {
	for i := 0; i < attempts; i++ {
		if ready() {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(interval):
		}
	}
	return fmt.Errorf("expected output did not appear after %d attempts", attempts)
}
