// Package render provides the template functions available to every asset template.
package render

import (
	"bytes"
	"encoding/json"
	"strings"
	"text/template"
)

// FuncMap returns the functions registered on every catalog template. Names
// reach the templates already namespaced, so quoting is all they need.
func FuncMap() template.FuncMap {
	return template.FuncMap{
		"json": jsonString,
	}
}

// jsonString quotes s as a JSON string literal. HTML characters are left alone
// since the output is never embedded in a page.
func jsonString(s string) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return "", err
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}
