// Package errfmt turns transport and backend errors into one-line messages
// for the notification banner and CLI output.
package errfmt

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"

	"github.com/idilsaglam/crudadmin/internal/api"
)

// Format returns the display string for err; nil yields "".
func Format(err error) string {
	if err == nil {
		return ""
	}

	var apiErr *api.Error
	if errors.As(err, &apiErr) {
		s := fmt.Sprintf("%d %s", apiErr.StatusCode, http.StatusText(apiErr.StatusCode))
		if apiErr.Message != "" {
			s += ": " + apiErr.Message
		}
		return s
	}

	switch {
	case errors.Is(err, context.Canceled):
		return "request cancelled"
	case errors.Is(err, context.DeadlineExceeded):
		return "request timed out"
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return "backend unreachable: " + urlErr.Err.Error()
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return "backend unreachable: " + netErr.Error()
	}
	return err.Error()
}
