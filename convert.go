package webfetch

// Converter converts HTML to Markdown.
type Converter interface {
	// Convert transforms HTML content into Markdown.
	// The input should be clean HTML (e.g., from an Extractor).
	// Returns the Markdown representation of the content.
	Convert(html string) (string, error)
}

// ExtractResult holds the extracted content from an HTML page.
type ExtractResult struct {
	// Title is the page title extracted from metadata.
	Title string

	// ContentHTML is the page content with markup noise
	// (scripts, styles, embedded frames) removed.
	ContentHTML string
}

// Extractor extracts convertible content from HTML pages.
type Extractor interface {
	// Extract processes raw HTML and returns the page content.
	// Malformed HTML degrades gracefully rather than erroring.
	Extract(html string) (*ExtractResult, error)
}
