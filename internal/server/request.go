package server

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"github.com/alexmenard/e2ee-api/pkg/errors"
)

const maxBodyBytes = 1 << 20

// decodeJSON parses the request body into a declared struct. Handlers never
// touch raw maps; every field they read is typed here.
func decodeJSON[T any](r *http.Request) (*T, error) {
	var dst T
	body := http.MaxBytesReader(nil, r.Body, maxBodyBytes)
	defer body.Close()

	dec := json.NewDecoder(body)
	if err := dec.Decode(&dst); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.InvalidArg("request body is required")
		}
		return nil, errors.InvalidArg("invalid JSON body")
	}
	return &dst, nil
}

// queryInt64 reads an integer query parameter, falling back to def on
// absence or garbage.
func queryInt64(r *http.Request, name string, def int64) int64 {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return def
	}
	return n
}

func queryInt(r *http.Request, name string, def int) int {
	return int(queryInt64(r, name, int64(def)))
}
