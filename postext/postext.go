// Package postext parses the positioned-text document produced by
// pdftotext's bbox layout mode into model pages. Each <page> holds
// <block>/<line>/<word> elements carrying absolute bounding boxes.
package postext

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/text/unicode/norm"

	"github.com/tsawler/papyrus/model"
)

// Parse reads a bbox-layout document and builds one model.Page per <page>
// element, numbered from 1 in document order. Lines contained in a table
// region for their page are dropped, as are empty lines, blocks, and
// pages. Missing geometry attributes are a structural error.
func Parse(r io.Reader, tables map[model.PageNumber][]model.Rect) ([]*model.Page, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse positioned-text document: %w", err)
	}

	var pages []*model.Page
	pageNumber := model.PageNumber(0)

	var walk func(n *html.Node) error
	walk = func(n *html.Node) error {
		if n.Type == html.ElementNode && n.Data == "page" {
			pageNumber++
			page, err := parsePage(n, pageNumber, tables[pageNumber])
			if err != nil {
				return err
			}
			if len(page.Blocks) > 0 {
				pages = append(pages, page)
			}
			return nil
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if err := walk(c); err != nil {
				return err
			}
		}
		return nil
	}
	if err := walk(root); err != nil {
		return nil, err
	}

	if len(pages) == 0 {
		return nil, fmt.Errorf("positioned-text document contains no pages: source document is broken or empty")
	}
	return pages, nil
}

func parsePage(n *html.Node, number model.PageNumber, tables []model.Rect) (*model.Page, error) {
	width, err := floatAttr(n, "width", "page")
	if err != nil {
		return nil, err
	}
	height, err := floatAttr(n, "height", "page")
	if err != nil {
		return nil, err
	}
	page := model.NewPage(width, height, number)
	page.Tables = tables

	for _, blockNode := range childElements(n, "block") {
		block, err := parseBlock(blockNode, tables)
		if err != nil {
			return nil, err
		}
		if len(block.Lines) > 0 {
			page.Blocks = append(page.Blocks, block)
		}
	}
	return page, nil
}

func parseBlock(n *html.Node, tables []model.Rect) (*model.Block, error) {
	box, err := boundingBox(n, "block")
	if err != nil {
		return nil, err
	}
	block := model.NewBlock(box.X, box.Y, box.Width, box.Height)

	for _, lineNode := range childElements(n, "line") {
		lineBox, err := boundingBox(lineNode, "line")
		if err != nil {
			return nil, err
		}

		contained := false
		for _, table := range tables {
			if lineBox.ContainedIn(table) {
				contained = true
				break
			}
		}
		if contained {
			continue
		}

		line := model.NewLine(lineBox.X, lineBox.Y, lineBox.Width, lineBox.Height)
		for _, wordNode := range childElements(lineNode, "word") {
			wordBox, err := boundingBox(wordNode, "word")
			if err != nil {
				return nil, err
			}
			line.AddWord(wordText(wordNode), wordBox.X, wordBox.Y, wordBox.Width, wordBox.Height)
		}
		if strings.TrimSpace(line.Text()) != "" {
			block.Lines = append(block.Lines, line)
		}
	}
	return block, nil
}

// wordText extracts a word's text content, NFKC-normalized so ligatures
// emitted by PDF extraction ("ﬁ") become their plain forms ("fi").
func wordText(n *html.Node) string {
	var sb strings.Builder
	var collect func(*html.Node)
	collect = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			collect(c)
		}
	}
	collect(n)
	return norm.NFKC.String(sb.String())
}

func childElements(n *html.Node, name string) []*html.Node {
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.ElementNode && c.Data == name {
				out = append(out, c)
				continue
			}
			walk(c)
		}
	}
	walk(n)
	return out
}

func boundingBox(n *html.Node, elem string) (model.Rect, error) {
	xmin, err := floatAttr(n, "xmin", elem)
	if err != nil {
		return model.Rect{}, err
	}
	ymin, err := floatAttr(n, "ymin", elem)
	if err != nil {
		return model.Rect{}, err
	}
	xmax, err := floatAttr(n, "xmax", elem)
	if err != nil {
		return model.Rect{}, err
	}
	ymax, err := floatAttr(n, "ymax", elem)
	if err != nil {
		return model.Rect{}, err
	}
	return model.RectFromCorners(xmin, ymin, xmax, ymax), nil
}

func floatAttr(n *html.Node, name, elem string) (float64, error) {
	for _, a := range n.Attr {
		if a.Key == name {
			v, err := strconv.ParseFloat(a.Val, 64)
			if err != nil {
				return 0, fmt.Errorf("invalid %q attribute in %s element: %w", name, elem, err)
			}
			return v, nil
		}
	}
	return 0, fmt.Errorf("%s element missing %q attribute", elem, name)
}
