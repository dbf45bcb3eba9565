// Package request holds body decoding shared by the template handlers.
package request

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

const MaxBodyBytes = 10 << 20

var ErrEmptyBody = errors.New("request body is empty")

// ReadBody returns the request body as a string, refusing bodies over MaxBodyBytes.
func ReadBody(w http.ResponseWriter, r *http.Request) (string, error) {
	const op = "request.ReadBody"

	b, err := io.ReadAll(http.MaxBytesReader(w, r.Body, MaxBodyBytes))
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	if strings.TrimSpace(string(b)) == "" {
		return "", fmt.Errorf("%s: %w", op, ErrEmptyBody)
	}
	return string(b), nil
}
