package docsdk

import (
	"errors"
	"fmt"

	"github.com/imroc/req/v3"
	"github.com/tnt-sales/docsync/internal/identity"
)

var (
	// sdk common
	ErrNoServiceURL = errors.New("sdk: service url missing")

	// tagged remote errors, mapped from response status codes.
	// Callers translate these into domain-level failures.
	ErrUnauthorized = errors.New("sdk: unauthorized")
	ErrNotFound     = errors.New("sdk: not found")
	ErrConflict     = errors.New("sdk: conflict")
	ErrTransport    = errors.New("sdk: transport error")
)

// APIError is the error envelope both services respond with.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error: %s - %s", e.Code, e.Message)
}

// handleAPIError folds the transport error and the response state into one
// tagged error. A nil return means the call succeeded.
func handleAPIError(resp *req.Response, requestErr error, operation string) error {
	if requestErr != nil {
		// token provider failures pass through untagged so callers can
		// distinguish AuthRequired from a network fault
		if errors.Is(requestErr, identity.ErrAuthRequired) {
			return fmt.Errorf("%s: %w", operation, requestErr)
		}
		return fmt.Errorf("%s: %w: %w", operation, ErrTransport, requestErr)
	}

	if !resp.IsErrorState() {
		return nil
	}

	tag := ErrTransport
	switch resp.StatusCode {
	case 401, 403:
		tag = ErrUnauthorized
	case 404:
		tag = ErrNotFound
	case 409:
		tag = ErrConflict
	}

	if apiErr, ok := resp.ErrorResult().(*APIError); ok && apiErr.Code != "" {
		return fmt.Errorf("%s: %w: %s", operation, tag, apiErr.Message)
	}
	return fmt.Errorf("%s: %w: http %d", operation, tag, resp.StatusCode)
}
