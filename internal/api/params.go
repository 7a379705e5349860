package api

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// maxBodySize bounds how much of a request body is read.
const maxBodySize = 1 << 20 // 1 MiB

// decodeJSON parses the request body as JSON. It returns an explicit
// error instead of panicking so the caller owns the status-code mapping.
func decodeJSON(r *http.Request) (interface{}, error) {
	data, err := io.ReadAll(io.LimitReader(r.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("empty body where JSON was expected")
	}

	var parsed interface{}
	if err := json.Unmarshal(data, &parsed); err != nil {
		return nil, err
	}
	return parsed, nil
}

// queryParams flattens the request query into a string-to-string map.
// Repeated parameters keep their first value.
func queryParams(r *http.Request) map[string]string {
	params := make(map[string]string)
	for key, values := range r.URL.Query() {
		if len(values) > 0 {
			params[key] = values[0]
		}
	}
	return params
}

// pathID extracts the trailing path segment after prefix and requires it
// to be numeric. The boolean reports whether a valid ID was present.
func pathID(r *http.Request, prefix string) (string, bool) {
	id := strings.TrimPrefix(r.URL.Path, prefix)
	if id == "" || strings.Contains(id, "/") {
		return "", false
	}
	for _, c := range id {
		if c < '0' || c > '9' {
			return "", false
		}
	}
	return id, true
}
