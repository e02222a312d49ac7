package llm

import (
	"context"
	"errors"
	"net"
	"net/http"
	"strings"

	"github.com/gitllm/git-llm-commit/internal/apperr"
)

// HTTPStatusError is an interface for errors that carry an HTTP status code
type HTTPStatusError interface {
	error
	HTTPStatusCode() int
}

// ClassifyError maps a failed model call onto the failure taxonomy:
// transport problems become NetworkError, credential rejections become
// AuthenticationFailed, and everything else the service answered with
// becomes ServiceError.
func ClassifyError(err error) *apperr.Error {
	if err == nil {
		return nil
	}

	// An error that already carries a kind passes through untouched
	if apperr.KindOf(err) != apperr.KindUnknown {
		var appErr *apperr.Error
		errors.As(err, &appErr)
		return appErr
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return apperr.Wrap(apperr.KindNetworkError, err)
	}

	var netErr *net.OpError
	if errors.As(err, &netErr) {
		return apperr.Wrap(apperr.KindNetworkError, err)
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return apperr.Wrap(apperr.KindNetworkError, err)
	}

	if statusErr, ok := err.(HTTPStatusError); ok {
		return apperr.Wrap(classifyHTTPStatus(statusErr.HTTPStatusCode()), err)
	}

	type statusCoder interface {
		error
		StatusCode() int
	}
	if statusErr, ok := err.(statusCoder); ok {
		return apperr.Wrap(classifyHTTPStatus(statusErr.StatusCode()), err)
	}

	// Fall back to message sniffing; SDK errors rarely expose typed codes
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "401"),
		strings.Contains(msg, "unauthorized"),
		strings.Contains(msg, "invalid api key"),
		strings.Contains(msg, "incorrect api key"),
		strings.Contains(msg, "authentication"):
		return apperr.Wrap(apperr.KindAuthenticationFailed, err)
	case strings.Contains(msg, "timeout"),
		strings.Contains(msg, "connection refused"),
		strings.Contains(msg, "no such host"),
		strings.Contains(msg, "connection reset"):
		return apperr.Wrap(apperr.KindNetworkError, err)
	default:
		return apperr.Wrap(apperr.KindServiceError, err)
	}
}

func classifyHTTPStatus(statusCode int) apperr.Kind {
	switch statusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return apperr.KindAuthenticationFailed
	case http.StatusBadGateway, http.StatusGatewayTimeout:
		return apperr.KindNetworkError
	default:
		return apperr.KindServiceError
	}
}
