package problem

import (
	"encoding/json"
	"net/http"
)

// Problem is an RFC 7807 response body.
type Problem struct {
	Type     string            `json:"type"`
	Title    string            `json:"title"`
	Status   int               `json:"status"`
	Detail   string            `json:"detail,omitempty"`
	Instance string            `json:"instance,omitempty"`
	Fields   map[string]string `json:"fields,omitempty"`
}

func Write(w http.ResponseWriter, status int, title, detail string) {
	write(w, Problem{
		Type:   "about:blank",
		Title:  title,
		Status: status,
		Detail: detail,
	})
}

// WriteFields reports a validation failure with a per-field message
// map, so form renderers can attach errors to inputs.
func WriteFields(w http.ResponseWriter, status int, title string, fields map[string]string) {
	write(w, Problem{
		Type:   "about:blank",
		Title:  title,
		Status: status,
		Fields: fields,
	})
}

func write(w http.ResponseWriter, p Problem) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(p.Status)
	json.NewEncoder(w).Encode(p)
}
