package github

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	gh "github.com/google/go-github/v57/github"
)

// Kind categorizes a fetch failure.
type Kind string

const (
	KindNotFound     Kind = "not_found"
	KindUnauthorized Kind = "unauthorized"
	KindRateLimited  Kind = "rate_limited"
	KindNetwork      Kind = "network"
	KindInvalidInput Kind = "invalid_input"
)

// Error is a fetch failure with a category and a hint for the user.
type Error struct {
	Kind       Kind
	Message    string
	Err        error
	Suggestion string
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches any *Error of the same Kind, so callers can test against the
// sentinel values with errors.Is.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

// Sentinels for errors.Is.
var (
	ErrNotFound = &Error{Kind: KindNotFound, Message: "repository or commit not found",
		Suggestion: "Check the owner/repo spelling; private repositories need a token with repo scope"}
	ErrUnauthorized = &Error{Kind: KindUnauthorized, Message: "GitHub rejected the credentials",
		Suggestion: "Set GITHUB_TOKEN (or --token) to a valid personal access token"}
	ErrRateLimited = &Error{Kind: KindRateLimited, Message: "GitHub API rate limit hit",
		Suggestion: "Provide a token to raise the limit, or lower --max-commits"}
	ErrNetwork = &Error{Kind: KindNetwork, Message: "could not reach the GitHub API",
		Suggestion: "Check your network connection and --api-url"}
	ErrInvalidRepo = &Error{Kind: KindInvalidInput, Message: "not a GitHub repository reference",
		Suggestion: "Use owner/repo or https://github.com/owner/repo"}
)

func wrap(sentinel *Error, what string, err error) *Error {
	return &Error{
		Kind:       sentinel.Kind,
		Message:    fmt.Sprintf("%s: %s", what, sentinel.Message),
		Err:        err,
		Suggestion: sentinel.Suggestion,
	}
}

// mapError converts a go-github failure into an *Error. Context
// cancellation is returned unchanged.
func mapError(what string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}

	var rateErr *gh.RateLimitError
	var abuseErr *gh.AbuseRateLimitError
	if errors.As(err, &rateErr) || errors.As(err, &abuseErr) {
		return wrap(ErrRateLimited, what, err)
	}

	var respErr *gh.ErrorResponse
	if errors.As(err, &respErr) && respErr.Response != nil {
		switch respErr.Response.StatusCode {
		case http.StatusNotFound:
			return wrap(ErrNotFound, what, err)
		case http.StatusUnauthorized:
			return wrap(ErrUnauthorized, what, err)
		case http.StatusForbidden, http.StatusTooManyRequests:
			if respErr.Response.StatusCode == http.StatusTooManyRequests ||
				strings.Contains(strings.ToLower(respErr.Message), "rate limit") {
				return wrap(ErrRateLimited, what, err)
			}
			return wrap(ErrUnauthorized, what, err)
		}
	}

	return wrap(ErrNetwork, what, err)
}

// Suggestion returns the user hint carried by err, if any.
func Suggestion(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Suggestion
	}
	return ""
}
