package httpapi

import (
	"encoding/json"
	"net/http"
)

// problem is an RFC 7807 problem details body.
type problem struct {
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeProblem(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, problem{
		Title:  http.StatusText(status),
		Status: status,
		Detail: detail,
	})
}
