package googleai

import (
	"errors"
	"net/http"
	"strconv"

	"google.golang.org/api/googleapi"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Common Gemini API errors.
var (
	// ErrUnauthorized indicates a missing, malformed or revoked API key.
	ErrUnauthorized = errors.New("googleai: unauthorised (invalid API key)")

	// ErrRateLimited indicates the API rate limit or quota was exceeded.
	ErrRateLimited = errors.New("googleai: rate limit exceeded")
)

// IsUnauthorized returns true if the error indicates a rejected API key.
// The Generative Language API reports this as HTTP 401/403 over REST and
// as Unauthenticated or PermissionDenied over gRPC.
func IsUnauthorized(err error) bool {
	if errors.Is(err, ErrUnauthorized) {
		return true
	}
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		return gerr.Code == http.StatusUnauthorized || gerr.Code == http.StatusForbidden
	}
	if st, ok := status.FromError(err); ok {
		return st.Code() == codes.Unauthenticated || st.Code() == codes.PermissionDenied
	}
	return false
}

// IsRateLimited returns true if the error indicates rate limiting or
// quota exhaustion (HTTP 429 over REST, ResourceExhausted over gRPC).
func IsRateLimited(err error) bool {
	if errors.Is(err, ErrRateLimited) {
		return true
	}
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		return gerr.Code == http.StatusTooManyRequests
	}
	if st, ok := status.FromError(err); ok {
		return st.Code() == codes.ResourceExhausted
	}
	return false
}

// RetryAfterSeconds extracts the server-suggested backoff from a rate
// limit error. It returns 0 when the error carries no Retry-After header,
// in which case callers should fall back to a default backoff.
func RetryAfterSeconds(err error) int {
	var gerr *googleapi.Error
	if !errors.As(err, &gerr) || gerr.Header == nil {
		return 0
	}

	value := gerr.Header.Get("Retry-After")
	if value == "" {
		return 0
	}

	seconds, convErr := strconv.Atoi(value)
	if convErr != nil || seconds < 0 {
		return 0
	}
	return seconds
}
