package papyrus

import (
	"context"
	"fmt"
	"os"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/tsawler/papyrus/fonts"
	"github.com/tsawler/papyrus/layout"
	"github.com/tsawler/papyrus/llm"
	"github.com/tsawler/papyrus/mathmark"
	"github.com/tsawler/papyrus/model"
	"github.com/tsawler/papyrus/ocr"
	"github.com/tsawler/papyrus/poppler"
	"github.com/tsawler/papyrus/postext"
	"github.com/tsawler/papyrus/sections"
	"github.com/tsawler/papyrus/tables"
)

// mathConcurrency bounds simultaneous in-flight vision calls for
// per-page math extraction.
const mathConcurrency = 5

type parseResult struct {
	pages      []*model.Page
	math       model.MathTexts
	references []model.Reference
	warnings   []Warning
}

func (r *parseResult) warn(stage, format string, args ...any) {
	r.warnings = append(r.warnings, Warning{Stage: stage, Message: fmt.Sprintf(format, args...)})
}

// run executes the full pipeline: external toolchain, font scoring,
// boundary detection, layout normalization, section assignment, math
// markup, and optional LLM merge steps. Only structural failures
// (unreadable document, no extractable text) return an error; every LLM
// or image problem degrades with a warning.
func (p *Parser) run(ctx context.Context) (*parseResult, error) {
	res := &parseResult{math: model.MathTexts{}}

	if p.cfg.LLMProvider != "" && p.llm == nil {
		client, err := llm.New(llm.Config{
			Provider:    p.cfg.LLMProvider,
			Model:       p.cfg.LLMModel,
			Temperature: llm.DefaultConfig().Temperature,
			MaxTokens:   llm.DefaultConfig().MaxTokens,
			Logger:      p.log,
		})
		if err != nil {
			res.warn("llm", "llm unavailable, continuing without: %v", err)
		} else {
			p.llm = client
		}
	}

	artifacts, err := poppler.Fetch(ctx, p.source)
	if err != nil {
		return nil, err
	}
	if !p.cfg.KeepArtifacts {
		defer artifacts.Clean()
	}

	info, err := artifacts.Info(ctx)
	if err != nil {
		return nil, err
	}
	p.log.Debugw("document staged", "pages", info.Pages, "width", info.PageWidth, "height", info.PageHeight)

	images, err := artifacts.RenderPages(ctx, info.Pages)
	if err != nil {
		res.warn("render", "page rasters unavailable, skipping image-based steps: %v", err)
		images = nil
	}

	boundaries, titleFonts, err := p.detectSections(ctx, artifacts)
	if err != nil {
		return nil, err
	}

	tableRegions := p.detectTables(images, info, res)

	pages, err := p.extractPages(ctx, artifacts, tableRegions)
	if err != nil {
		return nil, err
	}
	pages = p.recoverMissingPages(pages, images, info, res)

	textArea := layout.TextArea(pages)
	layout.Prune(pages, textArea, sections.Titles(boundaries), titleFonts.FullText)
	layout.AdjustColumns(pages, info.PageWidth, sections.LastSectionPage(boundaries))

	if p.llm != nil && len(images) > 0 {
		validated, err := p.llm.ValidateSections(ctx, images)
		if err != nil {
			res.warn("sections", "section validation failed, keeping font-based sections: %v", err)
		} else {
			boundaries = sections.Merge(boundaries, validated, model.PageNumber(len(images)))
		}
	}

	sections.Assign(pages, boundaries)
	sections.ClassifyBlocks(pages)

	if !p.cfg.DisableMath {
		p.markMath(ctx, pages, images, res)
		for key, text := range res.math {
			res.math[key] = mathmark.UnicodeToLaTeX(text)
		}
	}

	if p.cfg.ExtractReferences {
		p.extractReferences(ctx, pages, res)
	}

	res.pages = pages
	return res, nil
}

// detectSections parses the font-tagged XML and runs title scoring plus
// boundary detection over the text stream.
func (p *Parser) detectSections(ctx context.Context, artifacts *poppler.Artifacts) ([]fonts.Boundary, fonts.TitleFonts, error) {
	xmlPath, err := artifacts.WriteXML(ctx)
	if err != nil {
		return nil, fonts.TitleFonts{}, err
	}
	f, err := os.Open(xmlPath)
	if err != nil {
		return nil, fonts.TitleFonts{}, fmt.Errorf("failed to open extraction XML: %w", err)
	}
	defer f.Close()

	df, err := fonts.ParseXML(f)
	if err != nil {
		return nil, fonts.TitleFonts{}, err
	}
	titleFonts := fonts.ScoreTitleFonts(df)
	boundaries := fonts.DetectBoundaries(df.Spans, titleFonts)
	p.log.Debugw("section boundaries detected", "count", len(boundaries), "fullText", titleFonts.FullText)
	return boundaries, titleFonts, nil
}

// detectTables runs ruling-line detection on every page raster. Table
// detection is best-effort; a failed page simply contributes no regions.
func (p *Parser) detectTables(images []string, info poppler.DocInfo, res *parseResult) map[model.PageNumber][]model.Rect {
	regions := make(map[model.PageNumber][]model.Rect)
	for i, image := range images {
		page := model.PageNumber(i + 1)
		found, err := tables.DetectRegions(image, info.PageWidth, info.PageHeight)
		if err != nil {
			res.warn("tables", "table detection failed on page %d: %v", page, err)
			continue
		}
		if len(found) > 0 {
			regions[page] = found
		}
	}
	return regions
}

func (p *Parser) extractPages(ctx context.Context, artifacts *poppler.Artifacts, tableRegions map[model.PageNumber][]model.Rect) ([]*model.Page, error) {
	htmlPath, err := artifacts.WriteText(ctx)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(htmlPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open positioned-text document: %w", err)
	}
	defer f.Close()
	return postext.Parse(f, tableRegions)
}

// recoverMissingPages OCRs rasters for page numbers that produced no
// positioned text, which happens when a page is a scanned image. OCR is
// optional at build time, so failure only warns.
func (p *Parser) recoverMissingPages(pages []*model.Page, images []string, info poppler.DocInfo, res *parseResult) []*model.Page {
	if len(images) == 0 {
		return pages
	}
	present := make(map[model.PageNumber]bool, len(pages))
	for _, page := range pages {
		present[page.Number] = true
	}

	var client *ocr.Client
	for i, image := range images {
		number := model.PageNumber(i + 1)
		if present[number] {
			continue
		}
		if client == nil {
			c, err := ocr.New()
			if err != nil {
				res.warn("ocr", "page %d has no text and OCR is unavailable: %v", number, err)
				continue
			}
			client = c
			defer client.Close()
		}
		text, err := client.RecognizeFile(image)
		if err != nil {
			res.warn("ocr", "recognition failed on page %d: %v", number, err)
			continue
		}
		if text == "" {
			continue
		}
		pages = append(pages, ocr.SynthesizePage(number, info.PageWidth, info.PageHeight, text))
		p.log.Debugw("page recovered via OCR", "page", number)
	}

	sort.Slice(pages, func(i, j int) bool { return pages[i].Number < pages[j].Number })
	return pages
}

// markMath fills res.math with math-annotated block texts. Pages whose
// text is dense with mathematical notation go to the vision model (when
// available) with bounded concurrency; everything else, and every
// failed or unaligned block, falls back to the regex heuristic. Only
// texts that differ from the plain block text are stored.
func (p *Parser) markMath(ctx context.Context, pages []*model.Page, images []string, res *parseResult) {
	var llmPages []*model.Page
	for _, page := range pages {
		if p.llm != nil &&
			page.Number >= 1 && page.Number <= len(images) &&
			mathmark.EstimateDensity(page.Text()) >= mathmark.DensityThreshold {
			llmPages = append(llmPages, page)
			continue
		}
		p.markMathHeuristic(page, res)
	}
	if len(llmPages) == 0 {
		return
	}

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(mathConcurrency)
	for _, page := range llmPages {
		page := page
		g.Go(func() error {
			extracted, err := p.llm.ExtractPageText(gctx, images[page.Number-1])

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				res.warn("math", "vision extraction failed on page %d, using heuristic: %v", page.Number, err)
				p.markMathHeuristic(page, res)
				return nil
			}
			p.alignExtractedMath(page, mathmark.ConvertDelimiters(extracted), res)
			return nil
		})
	}
	g.Wait()
}

func (p *Parser) markMathHeuristic(page *model.Page, res *parseResult) {
	for i, block := range page.Blocks {
		text := block.Text()
		if marked := mathmark.MarkMath(text); marked != text {
			res.math[model.MathKey{Page: page.Number, Block: i}] = marked
		}
	}
}

// alignExtractedMath matches vision-model paragraphs onto blocks by
// trigram similarity. A block with no acceptable match keeps its
// heuristic markup.
func (p *Parser) alignExtractedMath(page *model.Page, extracted string, res *parseResult) {
	blockTexts := make([]string, len(page.Blocks))
	for i, block := range page.Blocks {
		blockTexts[i] = block.Text()
	}
	aligned := mathmark.AlignParagraphs(extracted, blockTexts)
	for i, block := range page.Blocks {
		text := block.Text()
		if match, ok := aligned[i]; ok {
			if match != text {
				res.math[model.MathKey{Page: page.Number, Block: i}] = match
			}
			continue
		}
		if marked := mathmark.MarkMath(text); marked != text {
			res.math[model.MathKey{Page: page.Number, Block: i}] = marked
		}
	}
}

// extractReferences collects the reference-list text and hands it to
// the LLM. Missing LLM, empty list, or malformed responses all degrade
// to no references.
func (p *Parser) extractReferences(ctx context.Context, pages []*model.Page, res *parseResult) {
	if p.llm == nil {
		res.warn("references", "reference extraction requested without an llm provider")
		return
	}
	text := sections.CollectReferencesText(pages)
	if text == "" {
		res.warn("references", "no reference list found in document")
		return
	}
	refs, err := p.llm.ExtractReferences(ctx, text)
	if err != nil {
		res.warn("references", "reference extraction failed: %v", err)
		return
	}
	res.references = refs
}
