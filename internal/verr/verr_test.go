// ABOUTME: Tests for error classification helpers
// ABOUTME: Verifies offline detection across wrapped error kinds
package verr

import (
	"fmt"
	"net"
	"syscall"
	"testing"
)

func TestIsOffline(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"sentinel", ErrOffline, true},
		{"wrapped sentinel", fmt.Errorf("upsert: %w", ErrOffline), true},
		{"dns failure", &net.DNSError{Err: "no such host", Name: "api.example.io"}, true},
		{"connection refused", fmt.Errorf("dial: %w", syscall.ECONNREFUSED), true},
		{"host unreachable", fmt.Errorf("dial: %w", syscall.EHOSTUNREACH), true},
		{"plain network error", ErrNetwork, false},
		{"unrelated error", fmt.Errorf("boom"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsOffline(tt.err); got != tt.want {
				t.Errorf("IsOffline(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}
