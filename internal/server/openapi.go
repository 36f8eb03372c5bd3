package server

import (
	_ "embed"
	"net/http"

	"gopkg.in/yaml.v3"
)

//go:embed openapi.yaml
var openAPISpec []byte

func serveOpenAPIYAML(w http.ResponseWriter, r *http.Request) error {
	w.Header().Set("Content-Type", "text/yaml; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, err := w.Write(openAPISpec)
	return err
}

func serveOpenAPIJSON(w http.ResponseWriter, r *http.Request) error {
	var parsed map[string]any
	if err := yaml.Unmarshal(openAPISpec, &parsed); err != nil {
		return &Error{Status: http.StatusInternalServerError, Message: "Failed to parse OpenAPI specification"}
	}
	return WriteJSON(w, http.StatusOK, parsed)
}
