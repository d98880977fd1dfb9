// ABOUTME: Error taxonomy shared by all pipeline stages and clients
// ABOUTME: Sentinel errors checked with errors.Is, plus offline classification
package verr

import (
	"errors"
	"net"
	"syscall"
)

var (
	// ErrInvalidArgument marks precondition violations caught before any I/O.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrUnsupportedFormat marks an audio file with an extension the speech API rejects.
	ErrUnsupportedFormat = errors.New("unsupported audio format")
	// ErrNotFound marks a store lookup miss or a missing local file.
	ErrNotFound = errors.New("not found")
	// ErrIO marks local file system failures.
	ErrIO = errors.New("i/o failure")
	// ErrNetwork marks any remote-call failure.
	ErrNetwork = errors.New("network failure")
	// ErrOffline is the connectivity-unavailable sub-kind of ErrNetwork,
	// downgraded to silent fallback by the offline-first loader.
	ErrOffline = errors.New("host unreachable")
	// ErrParse marks a malformed structured response from the LLM endpoint.
	ErrParse = errors.New("parse failure")
	// ErrStateConflict marks an operation invoked in the wrong controller state.
	ErrStateConflict = errors.New("state conflict")
)

// IsOffline reports whether err looks like the network being unavailable
// rather than the remote service rejecting us. DNS resolution failures and
// refused/unreachable connections count; HTTP-level errors do not.
func IsOffline(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrOffline) {
		return true
	}
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return true
	}
	if errors.Is(err, syscall.ECONNREFUSED) || errors.Is(err, syscall.EHOSTUNREACH) || errors.Is(err, syscall.ENETUNREACH) {
		return true
	}
	return false
}
