package mailservice

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"path"
)

//go:embed templates/*.html
var templateFS embed.FS

// Every email template defines these blocks, in this order.
var templateBlocks = [...]string{"subject", "plainBody", "htmlBody"}

func NewTemplate() *Template {
	return &Template{fs: templateFS}
}

// Render executes the blocks of the named template with data.
func (tp *Template) Render(name string, data any) (*Rendered, error) {
	t, err := template.ParseFS(tp.fs, path.Join("templates", name))
	if err != nil {
		return nil, fmt.Errorf("could not parse template %s: %w", name, err)
	}

	var parts [len(templateBlocks)]string
	for i, block := range templateBlocks {
		var buf bytes.Buffer
		if err := t.ExecuteTemplate(&buf, block, data); err != nil {
			return nil, fmt.Errorf("could not render %s of %s: %w", block, name, err)
		}
		parts[i] = buf.String()
	}

	return &Rendered{Subject: parts[0], PlainBody: parts[1], HTMLBody: parts[2]}, nil
}
