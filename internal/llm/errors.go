package llm

import (
	"context"
	"errors"
	"net"
	"net/http"
	"net/url"

	"google.golang.org/api/googleapi"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Sentinel errors for the failure classes the chat layer surfaces
// distinctly. Everything else is a generic failure.
var (
	// ErrConnectivity: no network path to the hosted model.
	ErrConnectivity = errors.New("gateway unreachable")
	// ErrAuth: missing or rejected credential. Retrying will not help;
	// an operator has to fix configuration.
	ErrAuth = errors.New("gateway authentication failed")
	// ErrRateLimited: the provider is throttling this deployment.
	ErrRateLimited = errors.New("gateway rate limited")
)

// classify wraps a transport error with the matching sentinel so callers
// can branch with errors.Is. Unrecognized errors pass through unchanged.
func classify(err error) error {
	if err == nil {
		return nil
	}

	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		switch apiErr.Code {
		case http.StatusUnauthorized, http.StatusForbidden:
			return errors.Join(ErrAuth, err)
		case http.StatusTooManyRequests:
			return errors.Join(ErrRateLimited, err)
		}
		return err
	}

	// The genai SDK speaks gRPC under the hood for some transports.
	if st, ok := status.FromError(err); ok {
		switch st.Code() {
		case codes.Unauthenticated, codes.PermissionDenied:
			return errors.Join(ErrAuth, err)
		case codes.ResourceExhausted:
			return errors.Join(ErrRateLimited, err)
		case codes.Unavailable, codes.DeadlineExceeded:
			return errors.Join(ErrConnectivity, err)
		}
	}

	var netErr net.Error
	var urlErr *url.Error
	if errors.As(err, &netErr) || errors.As(err, &urlErr) ||
		errors.Is(err, context.DeadlineExceeded) {
		return errors.Join(ErrConnectivity, err)
	}

	return err
}
