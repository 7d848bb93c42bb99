package generator

import (
	"bytes"
	"embed"
	"strconv"
	"strings"
	"sync"
	"text/template"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var (
	templatesOnce sync.Once
	templates     *template.Template
	templatesErr  error
)

// getTemplates parses the embedded templates once.
func getTemplates() (*template.Template, error) {
	templatesOnce.Do(func() {
		templates, templatesErr = template.New("").
			Funcs(templateFuncs).
			ParseFS(templateFS, "templates/*.tmpl")
	})
	return templates, templatesErr
}

// templateFuncs provides custom functions for templates
var templateFuncs = template.FuncMap{
	"quote": strconv.Quote,
	"join":  strings.Join,
	"upper": strings.ToUpper,
}

// Api.ts and msw-handlers.ts open with a fixed runtime block of a few KB
// and add roughly a kilobyte per operation.
const (
	templateBaseSize  = 4 * 1024
	operationSize     = 1024
	maxPooledTemplate = 1 << 20
)

var templateBuffers = sync.Pool{
	New: func() any { return new(bytes.Buffer) },
}

// templateSize estimates the rendered size of a template for opCount
// operations.
func templateSize(opCount int) int {
	return templateBaseSize + max(opCount, 0)*operationSize
}

// executeTemplate renders a template by name into a pooled buffer grown to
// the expected output size.
func executeTemplate(name string, data any, opCount int) (string, error) {
	tmpl, err := getTemplates()
	if err != nil {
		return "", err
	}
	buf := templateBuffers.Get().(*bytes.Buffer)
	buf.Reset()
	buf.Grow(templateSize(opCount))
	defer func() {
		if buf.Cap() <= maxPooledTemplate {
			templateBuffers.Put(buf)
		}
	}()
	if err := tmpl.ExecuteTemplate(buf, name, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
