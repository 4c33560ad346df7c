package mock

import "github.com/fwojciec/webfetch"

var _ webfetch.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of webfetch.Extractor.
type Extractor struct {
	ExtractFn func(html string) (*webfetch.ExtractResult, error)
}

func (e *Extractor) Extract(html string) (*webfetch.ExtractResult, error) {
	return e.ExtractFn(html)
}
