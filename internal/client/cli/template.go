package cli

import (
	"fmt"
	"text/template"
)

const contactTemplate = `
=== Contact Details ===

Name:    {{.Contact.Name}}
ID:      {{.Contact.ID}}
Phone:   {{.Contact.Phone}}
{{- if .Contact.City }}
City:    {{.Contact.City}}
{{- end}}
Company: {{.Company.Label}}
{{- if .Company.Resolved }} (ID: {{.Company.Company.ID}}){{end}}
`

const companyTemplate = `
=== Company Details ===

Name: {{.Name}}
ID:   {{.ID}}
`

var (
	contactView = template.Must(template.New("contact").Parse(contactTemplate))
	companyView = template.Must(template.New("company").Parse(companyTemplate))
)

func (c *Cli) render(t *template.Template, data any) error {
	if err := t.Execute(c.io, data); err != nil {
		return fmt.Errorf("failed to render %s: %w", t.Name(), err)
	}
	return nil
}
