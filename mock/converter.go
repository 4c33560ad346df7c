package mock

import "github.com/fwojciec/webfetch"

var _ webfetch.Converter = (*Converter)(nil)

// Converter is a mock implementation of webfetch.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}
