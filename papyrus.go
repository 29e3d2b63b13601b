// Package papyrus reconstructs the logical structure of a research
// paper PDF: sections with their body text, captions, math-annotated
// content, and optionally structured references. It drives the poppler
// toolchain for extraction, recovers reading order from page geometry,
// detects section boundaries from font usage, and can merge in
// LLM-validated structure when a provider is configured.
//
// Basic usage:
//
//	parser := papyrus.New("paper.pdf")
//	sections, warnings, err := parser.Sections(ctx)
//
// With LLM assistance and reference extraction:
//
//	parser := papyrus.New("https://arxiv.org/pdf/1234.5678").
//		WithLLM("openai", "gpt-4o").
//		WithReferences()
//	output, warnings, err := parser.PaperOutput(ctx)
package papyrus

import (
	"context"
	"encoding/json"

	"github.com/tsawler/papyrus/model"
)

// Pages runs the pipeline and returns the normalized pages with section
// labels and block types assigned, plus any non-fatal warnings.
func (p *Parser) Pages(ctx context.Context) ([]*model.Page, []Warning, error) {
	res, err := p.run(ctx)
	if err != nil {
		return nil, nil, err
	}
	return res.pages, res.warnings, nil
}

// Sections runs the pipeline and returns the reconstructed sections in
// first-seen order.
func (p *Parser) Sections(ctx context.Context) ([]model.Section, []Warning, error) {
	res, err := p.run(ctx)
	if err != nil {
		return nil, nil, err
	}
	return model.SectionsFromPagesWithMath(res.pages, res.math), res.warnings, nil
}

// PaperOutput runs the pipeline and returns the full structured result:
// sections plus references (empty unless reference extraction was
// requested and succeeded).
func (p *Parser) PaperOutput(ctx context.Context) (*model.PaperOutput, []Warning, error) {
	res, err := p.run(ctx)
	if err != nil {
		return nil, nil, err
	}
	return &model.PaperOutput{
		Sections:   model.SectionsFromPagesWithMath(res.pages, res.math),
		References: res.references,
	}, res.warnings, nil
}

// LegacyJSON runs the pipeline and returns the flat title/contents JSON
// shape kept for older consumers.
func (p *Parser) LegacyJSON(ctx context.Context) ([]byte, []Warning, error) {
	res, err := p.run(ctx)
	if err != nil {
		return nil, nil, err
	}
	out, err := json.MarshalIndent(model.LegacySections(res.pages), "", "  ")
	if err != nil {
		return nil, res.warnings, err
	}
	return out, res.warnings, nil
}
