package model

import "fmt"

// OutcomeKind tags the result of a completed request
type OutcomeKind string

const (
	// OutcomeSuccess means the backend answered 2xx
	OutcomeSuccess OutcomeKind = "Success"

	// OutcomeUnauthorized means the backend answered 401
	OutcomeUnauthorized OutcomeKind = "Unauthorized"

	// OutcomeServerError means any other non-success status
	OutcomeServerError OutcomeKind = "ServerError"

	// OutcomeTransportFailure means no usable response was received
	OutcomeTransportFailure OutcomeKind = "TransportFailure"
)

// Outcome is the tagged result of one request. It is handed to the dialog
// layer exactly once.
type Outcome struct {
	Kind       OutcomeKind
	StatusCode int    // set for every outcome that carried a response
	Err        error  // set for TransportFailure
	Artifact   string // generated artifact id for successful downloads
}

// String returns the string representation of OutcomeKind
func (k OutcomeKind) String() string {
	return string(k)
}

// IsFailure returns true for every kind except Success
func (k OutcomeKind) IsFailure() bool {
	return k != OutcomeSuccess
}

// ClassifyStatus maps an HTTP status code onto an outcome
func ClassifyStatus(code int) Outcome {
	switch {
	case code == 200:
		return Outcome{Kind: OutcomeSuccess, StatusCode: code}
	case code == 401:
		return Outcome{Kind: OutcomeUnauthorized, StatusCode: code}
	default:
		return Outcome{Kind: OutcomeServerError, StatusCode: code}
	}
}

// TransportFailure wraps err as a TransportFailure outcome
func TransportFailure(err error) Outcome {
	return Outcome{Kind: OutcomeTransportFailure, Err: err}
}

// String returns a compact description, e.g. "ServerError(502)"
func (o Outcome) String() string {
	switch o.Kind {
	case OutcomeServerError:
		return fmt.Sprintf("%s(%d)", o.Kind, o.StatusCode)
	case OutcomeTransportFailure:
		if o.Err != nil {
			return fmt.Sprintf("%s: %v", o.Kind, o.Err)
		}
	}
	return o.Kind.String()
}
