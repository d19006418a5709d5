// Package provider adapts external machine-translation APIs.
package provider

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
)

const (
	Google = "google"
	DeepL  = "deepl"
)

// Provider translates a single text into targetLang using the given credential.
type Provider interface {
	ID() string
	Translate(ctx context.Context, text, targetLang, credential string) (string, error)
}

// Error is a failed provider call. Code is the HTTP status, or 0 when the
// request never got a response or the body could not be understood.
type Error struct {
	Provider string
	Code     int
	Message  string
}

func (e *Error) Error() string {
	if e.Code == 0 {
		return fmt.Sprintf("%s: %s", e.Provider, e.Message)
	}
	return fmt.Sprintf("%s api error (status %d): %s", e.Provider, e.Code, e.Message)
}

const maxErrorBody = 512

// readResponse returns the body of a 2xx response, or an *Error built from the status.
func readResponse(providerID string, resp *http.Response) ([]byte, error) {
	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, &Error{Provider: providerID, Message: fmt.Sprintf("read body: %v", err)}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := strings.TrimSpace(string(body))
		if len(msg) > maxErrorBody {
			msg = msg[:maxErrorBody]
		}
		return nil, &Error{Provider: providerID, Code: resp.StatusCode, Message: msg}
	}
	return body, nil
}

// transportError wraps a client.Do failure. Context errors are returned
// unwrapped so callers can tell a timeout apart from a provider fault.
func transportError(ctx context.Context, providerID string, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	return &Error{Provider: providerID, Message: fmt.Sprintf("http call: %v", err)}
}
