package render

import (
	"errors"
	"time"
)

// Templates understood by the renderer
const (
	TemplateTyphoon = "typhoon"
	TemplateAnnual  = "annual"
)

// ErrUnknownTemplate is returned for template names the renderer does not have
var ErrUnknownTemplate = errors.New("unknown report template")

// Document is the data bag handed to a renderer
type Document struct {
	Title       string
	Office      string
	Subtitle    string
	GeneratedAt time.Time
	Sections    []Section
}

// Section is one table in the report
type Section struct {
	Title   string
	Headers []string
	Rows    [][]string
}

// Renderer turns a Document into file bytes
type Renderer interface {
	Render(template string, doc Document) ([]byte, error)
}
