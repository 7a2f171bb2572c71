// Package failure defines the typed errors every pipeline stage returns.
package failure

import (
	"errors"
	"fmt"
	"net"
	"strings"
	"syscall"
)

// Kind identifies which class of failure stopped a run.
type Kind int

// Failure kinds, one per way a run can stop.
const (
	KindUnknown Kind = iota
	KindConfig
	KindURL
	KindTransport
	KindStatus
	KindBody
	KindParse
	KindProvider
	KindNoResults
	KindWrite
)

func (k Kind) String() string {
	switch k {
	case KindConfig:
		return "configuration error"
	case KindURL:
		return "invalid request url"
	case KindTransport:
		return "request failed"
	case KindStatus:
		return "unexpected status"
	case KindBody:
		return "read response body"
	case KindParse:
		return "malformed response"
	case KindProvider:
		return "provider error"
	case KindNoResults:
		return "no location found"
	case KindWrite:
		return "write output"
	default:
		return "unknown error"
	}
}

// Error is a stage failure. Op names the stage ("geocode", "parcels", ...).
type Error struct {
	Kind       Kind
	Op         string
	StatusCode int
	Err        error
}

func (e *Error) Error() string {
	var b strings.Builder
	if e.Op != "" {
		b.WriteString(e.Op)
		b.WriteString(": ")
	}
	b.WriteString(e.Kind.String())
	if e.StatusCode != 0 {
		fmt.Fprintf(&b, " %d", e.StatusCode)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New wraps err as a failure of the given kind.
func New(kind Kind, op string, err error) *Error {
	return &Error{Kind: kind, Op: op, Err: err}
}

// Status builds a KindStatus failure for a non-success HTTP response.
func Status(op string, statusCode int, err error) *Error {
	return &Error{Kind: KindStatus, Op: op, StatusCode: statusCode, Err: err}
}

// KindOf returns the kind of the first *Error in err's chain, or KindUnknown.
func KindOf(err error) Kind {
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Kind
	}
	return KindUnknown
}

// Is reports whether err carries a failure of the given kind.
func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

// Exit codes returned by the CLI.
const (
	ExitOK     = 0
	ExitFailed = 1
	ExitConfig = 2
)

// ExitCode maps an error to the process exit code.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case KindOf(err) == KindConfig:
		return ExitConfig
	default:
		return ExitFailed
	}
}

// IsTransient returns true if the error looks like a network condition that
// may clear on its own (timeouts, connection resets, DNS failures).
func IsTransient(err error) bool {
	if err == nil {
		return false
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}

	if errors.Is(err, syscall.ECONNRESET) ||
		errors.Is(err, syscall.ECONNREFUSED) ||
		errors.Is(err, syscall.ECONNABORTED) {
		return true
	}

	// String-based heuristics for wrapped errors from HTTP clients.
	msg := strings.ToLower(err.Error())
	transientPatterns := []string{
		"connection reset by peer",
		"connection refused",
		"broken pipe",
		"temporary failure in name resolution",
		"no such host",
		"tls handshake timeout",
		"i/o timeout",
		"server closed idle connection",
	}
	for _, p := range transientPatterns {
		if strings.Contains(msg, p) {
			return true
		}
	}

	return false
}
