// Package goquery provides a goquery-based implementation of
// webfetch.Extractor that strips markup noise before markdown conversion.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/webfetch"
)

// noiseSelector matches elements that never contribute readable text.
const noiseSelector = "script, style, noscript, iframe, template"

// Ensure Extractor implements webfetch.Extractor at compile time.
var _ webfetch.Extractor = (*Extractor)(nil)

// Extractor extracts the page title and convertible body content from raw
// HTML. Extractor is stateless and safe for concurrent use.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract processes raw HTML and returns the page content with scripts,
// styles, and embedded frames removed. The underlying parser is lenient,
// so malformed HTML degrades gracefully rather than erroring.
func (e *Extractor) Extract(html string) (*webfetch.ExtractResult, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, webfetch.Errorf(webfetch.EINVALID, "parsing HTML: %v", err)
	}

	title := strings.TrimSpace(doc.Find("title").First().Text())

	doc.Find(noiseSelector).Remove()

	body := doc.Find("body").First()
	content, err := body.Html()
	if err != nil {
		return nil, webfetch.Errorf(webfetch.EINTERNAL, "rendering extracted content: %v", err)
	}

	return &webfetch.ExtractResult{
		Title:       title,
		ContentHTML: content,
	}, nil
}
