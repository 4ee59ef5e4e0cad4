package httputil

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// maxBodySize bounds JSON request bodies. Uploads use the multipart
// limit instead.
const maxBodySize = 1 << 20 // 1 MiB

// ParseJSON decodes JSON from the request body into the given
// destination. It limits the request body size and rejects unknown
// fields so typos surface as 400s instead of silently ignored input.
func ParseJSON(w http.ResponseWriter, r *http.Request, dest interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(dest); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}

	return nil
}
