package runtime

import (
	"fmt"
	"time"
)

// SecurityProfile selects how much of the language surface a backend exposes.
type SecurityProfile string

const (
	ProfileDev      SecurityProfile = "dev"
	ProfileStandard SecurityProfile = "standard"
	ProfileHardened SecurityProfile = "hardened"
)

// IsValid reports whether p is a known profile.
func (p SecurityProfile) IsValid() bool {
	switch p {
	case ProfileDev, ProfileStandard, ProfileHardened:
		return true
	}
	return false
}

// BackendKind identifies a backend implementation.
type BackendKind string

const (
	BackendJavaScript BackendKind = "javascript"
	BackendGo         BackendKind = "go"
)

// Readiness describes how mature a backend is.
type Readiness string

const (
	ReadinessStable Readiness = "stable"
	ReadinessBeta   Readiness = "beta"
)

// BackendInfo describes the backend that served an execution.
type BackendInfo struct {
	Kind      BackendKind    `json:"kind"`
	Readiness Readiness      `json:"readiness"`
	Details   map[string]any `json:"details,omitempty"`
}

// OutputSink receives a snippet's console output.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Errors: a non-nil error means the sink refuses further output; backends
//   must stop the snippet and report ErrResourceLimit.
type OutputSink interface {
	// Log records one line made of args joined by a single space.
	Log(args ...string) error
}

// Limits bounds a single execution beyond its timeout.
type Limits struct {
	// MaxOutputLines is advisory for backends; the sink enforces it.
	// Zero means unlimited.
	MaxOutputLines int

	// MaxCallStackSize caps interpreter call depth. Zero uses the backend default.
	MaxCallStackSize int
}

// ExecuteRequest describes one snippet execution.
type ExecuteRequest struct {
	// Language names the snippet's language (e.g. "javascript", "go").
	Language string

	// Code is the snippet source.
	Code string

	// Profile selects the security profile. Empty uses the runtime default.
	Profile SecurityProfile

	// Timeout bounds the execution. Zero means the caller's context governs.
	Timeout time.Duration

	// Limits bounds the execution further.
	Limits Limits

	// Output receives console output. Required.
	Output OutputSink
}

// Validate checks the request for missing or malformed fields.
func (r ExecuteRequest) Validate() error {
	if r.Code == "" {
		return fmt.Errorf("%w: code is required", ErrInvalidRequest)
	}
	if r.Output == nil {
		return fmt.Errorf("%w: output sink is required", ErrInvalidRequest)
	}
	if r.Profile != "" && !r.Profile.IsValid() {
		return fmt.Errorf("%w: unknown profile %q", ErrInvalidRequest, r.Profile)
	}
	if r.Timeout < 0 {
		return fmt.Errorf("%w: negative timeout", ErrInvalidRequest)
	}
	return nil
}

// ExecuteResult is what a backend reports for a snippet that ran to completion.
type ExecuteResult struct {
	// Value is the stringified completion value.
	Value string

	// Defined reports whether the completion value was defined.
	Defined bool

	// Duration is the wall-clock execution time.
	Duration time.Duration

	// Backend describes the backend that ran the snippet.
	Backend BackendInfo
}
