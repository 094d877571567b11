package mailservice

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
)

//go:embed templates/*
var templateFS embed.FS

func NewTemplate() *Template {
	return &Template{}
}

// ParseTemplate renders the subject, plainBody, and htmlBody blocks of the
// named template file against data.
func (tp *Template) ParseTemplate(name string, data any) (*bytes.Buffer, *bytes.Buffer, *bytes.Buffer, error) {
	t, err := template.New("email").ParseFS(templateFS, "templates/"+name)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("could not parse template %s: %w", name, err)
	}

	var subject, plainBody, htmlBody bytes.Buffer

	for _, block := range []struct {
		name string
		buf  *bytes.Buffer
	}{
		{"subject", &subject},
		{"plainBody", &plainBody},
		{"htmlBody", &htmlBody},
	} {
		if err := t.ExecuteTemplate(block.buf, block.name, data); err != nil {
			return nil, nil, nil, fmt.Errorf("could not execute %s block: %w", block.name, err)
		}
	}

	return &subject, &plainBody, &htmlBody, nil
}
