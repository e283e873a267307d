package codegen

import (
	"embed"
	"fmt"
	"strings"
	"text/template"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

const (
	fallbackTemplate   = "base_contract.sol.tmpl"
	deploymentTemplate = "deployment_script.js.tmpl"
	testTemplate       = "test_script.js.tmpl"
)

// TemplateNotFoundError reports a selection miss with no usable fallback.
// Unreachable for definitions that passed the parser, but the engine handles
// it defensively for hand-constructed definitions.
type TemplateNotFoundError struct {
	Name string
}

func (e *TemplateNotFoundError) Error() string {
	return fmt.Sprintf("codegen: template %s not found and no fallback available", e.Name)
}

func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"join":       strings.Join,
		"capitalize": capitalize,
		"camel":      camel,
	}
}

func parseTemplates() (*template.Template, error) {
	tmpl, err := template.New("codegen").Funcs(templateFuncs()).ParseFS(templateFS, "templates/*.tmpl")
	if err != nil {
		return nil, fmt.Errorf("codegen: parse templates: %w", err)
	}
	return tmpl, nil
}

// contractTemplateName returns the template for a (jurisdiction, contract
// type) pair: `{jurisdiction}_{contractType}.sol.tmpl`, falling back to the
// generic base contract when no such template exists.
func contractTemplateName(tmpl *template.Template, jurisdiction, contractType string) (string, error) {
	name := fmt.Sprintf("%s_%s.sol.tmpl", jurisdiction, contractType)
	if tmpl.Lookup(name) != nil {
		return name, nil
	}
	if tmpl.Lookup(fallbackTemplate) != nil {
		return fallbackTemplate, nil
	}
	return "", &TemplateNotFoundError{Name: name}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// camel turns a snake_case event name into an exported identifier segment,
// e.g. "delivery_confirmed" -> "DeliveryConfirmed".
func camel(s string) string {
	parts := strings.FieldsFunc(s, func(r rune) bool {
		return r == '_' || r == '-' || r == ' '
	})
	var b strings.Builder
	for _, part := range parts {
		b.WriteString(capitalize(part))
	}
	return b.String()
}
