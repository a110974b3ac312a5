// Package docs serves the OpenAPI description of the API.
package docs

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"net/http"

	"gopkg.in/yaml.v3"
)

//go:embed openapi.yaml
var openAPISpec []byte

// Document is the OpenAPI document rendered once at startup in both formats.
type Document struct {
	yamlBody []byte
	jsonBody []byte
}

// New parses the embedded document and, when baseURL is set, replaces its
// servers list with that single URL.
func New(baseURL string) (*Document, error) {
	var spec map[string]any
	if err := yaml.Unmarshal(openAPISpec, &spec); err != nil {
		return nil, fmt.Errorf("parse openapi document: %w", err)
	}
	if baseURL != "" {
		spec["servers"] = []any{map[string]any{"url": baseURL}}
	}

	yamlBody, err := yaml.Marshal(spec)
	if err != nil {
		return nil, fmt.Errorf("render openapi yaml: %w", err)
	}
	jsonBody, err := json.Marshal(spec)
	if err != nil {
		return nil, fmt.Errorf("render openapi json: %w", err)
	}
	return &Document{yamlBody: yamlBody, jsonBody: jsonBody}, nil
}

func (d *Document) ServeYAML(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/yaml; charset=utf-8")
	_, _ = w.Write(d.yamlBody)
}

func (d *Document) ServeJSON(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	_, _ = w.Write(d.jsonBody)
}
