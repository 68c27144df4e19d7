// Package bind decodes a JSON request body into a struct and runs the
// struct's validation tags in one call.
package bind

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/careerloft/careerloft/config"
	"github.com/careerloft/careerloft/pkg/validate"
)

const defaultBodyLimit int64 = 4 << 20

func bodyLimit() int64 {
	n, err := strconv.ParseInt(config.Get("MAX_BODY_BYTES", ""), 10, 64)
	if err != nil || n <= 0 {
		return defaultBodyLimit
	}
	return n
}

// JSON reads r.Body into dest and validates it. A non-nil errs map
// means validation failed per field; a non-nil err means the body
// itself was unreadable (malformed JSON or over the size cap). Fields
// the struct does not declare are ignored.
func JSON(r *http.Request, dest any) (errs map[string]string, err error) {
	r.Body = http.MaxBytesReader(nil, r.Body, bodyLimit())

	if err := json.NewDecoder(r.Body).Decode(dest); err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			return nil, fmt.Errorf("request body too large (max %d bytes)", tooBig.Limit)
		}
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}

	if errs := validate.Struct(dest); validate.HasErrors(errs) {
		return errs, nil
	}
	return nil, nil
}
