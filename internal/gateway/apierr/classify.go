package apierr

import (
	"fmt"
	"strings"
)

// Kind is a stable tag for a classified failure.
type Kind string

const (
	KindCrossOriginBlocked Kind = "cross_origin_blocked"
	KindNetworkUnreachable Kind = "network_unreachable"
	KindBadRequest         Kind = "bad_request"
	KindUnauthorized       Kind = "unauthorized"
	KindForbidden          Kind = "forbidden"
	KindNotFound           Kind = "not_found"
	KindConflict           Kind = "conflict"
	KindServerError        Kind = "server_error"
	KindServiceUnavailable Kind = "service_unavailable"
	KindUnknownHTTP        Kind = "unknown_http_error"
	KindUnknown            Kind = "unknown_error"
)

// ClassifiedError is the normalized outcome of classification: a stable
// kind plus a fully formatted, user-facing message. It is transient; the
// pipeline hands the message to the notification store and discards it.
type ClassifiedError struct {
	Kind    Kind
	Message string
}

// corsIndicators are substrings in a transport message that point at a
// cross-origin policy rejection rather than a plain connectivity failure.
var corsIndicators = []string{"CORS", "Access-Control", "cross-origin"}

// Classify maps a failure descriptor to a classified error. Pure function:
// the same descriptor always yields the same result.
//
// Rule order is load-bearing. Transport failures are checked before the
// status table so a status of 0 never falls through to the generic
// unknown-code branch, and the CORS indicator check precedes the generic
// transport branch.
func Classify(d FailureDescriptor) ClassifiedError {
	switch {
	case d.IsTransportFailure && hasCORSIndicator(d.TransportMessage):
		return ClassifiedError{
			Kind:    KindCrossOriginBlocked,
			Message: corsMessage(d.TransportMessage, d.RequestURL),
		}

	case d.IsTransportFailure:
		return ClassifiedError{
			Kind:    KindNetworkUnreachable,
			Message: fmt.Sprintf("Network error: could not reach %s: %s", d.RequestURL, d.TransportMessage),
		}

	case d.HasStatus && d.StatusCode == 0:
		// A status of 0 means the gateway answered nothing at all: a
		// cross-origin rejection and an unreachable server are
		// indistinguishable here. The message names both causes instead of
		// guessing.
		return ClassifiedError{
			Kind:    KindCrossOriginBlocked,
			Message: statusZeroMessage(d.RequestURL),
		}

	case d.HasStatus:
		return classifyStatus(d)

	default:
		return ClassifiedError{
			Kind:    KindUnknown,
			Message: "An unexpected error occurred",
		}
	}
}

func classifyStatus(d FailureDescriptor) ClassifiedError {
	switch d.StatusCode {
	case 400:
		return ClassifiedError{
			Kind:    KindBadRequest,
			Message: orServerMessage(d, "Bad request. Please check your input."),
		}
	case 401:
		return ClassifiedError{
			Kind:    KindUnauthorized,
			Message: "Unauthorized. Please check your credentials.",
		}
	case 403:
		return ClassifiedError{
			Kind:    KindForbidden,
			Message: "Forbidden. You do not have permission to access this resource.",
		}
	case 404:
		return ClassifiedError{
			Kind:    KindNotFound,
			Message: orServerMessage(d, fmt.Sprintf("Resource not found: %s", d.RequestURL)),
		}
	case 409:
		return ClassifiedError{
			Kind:    KindConflict,
			Message: orServerMessage(d, "Conflict. The resource already exists."),
		}
	case 500:
		// Fixed text: server internals are never echoed to the user.
		return ClassifiedError{
			Kind:    KindServerError,
			Message: "Internal server error. Please try again later.",
		}
	case 503:
		return ClassifiedError{
			Kind: KindServiceUnavailable,
			Message: "Service unavailable. The requested service is not available. " +
				"Please check that all backend services are running and registered with the gateway.",
		}
	default:
		statusText := d.StatusText
		if statusText == "" {
			statusText = "Unknown error"
		}
		return ClassifiedError{
			Kind:    KindUnknownHTTP,
			Message: orServerMessage(d, fmt.Sprintf("Error %d: %s", d.StatusCode, statusText)),
		}
	}
}

func orServerMessage(d FailureDescriptor, fallback string) string {
	if d.ServerMessage != "" {
		return d.ServerMessage
	}
	return fallback
}

func hasCORSIndicator(msg string) bool {
	for _, indicator := range corsIndicators {
		if strings.Contains(msg, indicator) {
			return true
		}
	}
	return false
}

func corsMessage(transportMsg, url string) string {
	return fmt.Sprintf(`Cross-origin request blocked: %s

Request URL: %s

Things to check:
  1. Restart the gateway service - CORS config changes only apply after a restart
  2. Verify the CORS allowed-origins configuration on the gateway
  3. Clear the client cache and retry`, transportMsg, url)
}

func statusZeroMessage(url string) string {
	return fmt.Sprintf(`Connection failed (status 0) - probably a cross-origin rejection

Requests that succeed from curl but fail from the client usually mean the
gateway rejected the origin. A gateway that is not running at all produces
the same symptom, so check both:

  1. Restart the gateway service so its CORS configuration is applied
  2. Verify the gateway is reachable at all (try the ping command)
  3. Clear the client cache and retry

Request URL: %s`, url)
}
