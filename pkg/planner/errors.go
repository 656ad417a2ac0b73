package planner

import (
	"errors"
	"fmt"
)

// Sentinel errors for the failure kinds a planning run can surface. Every
// kind aborts the whole run; there is no partial-success mode.
var (
	// ErrConfiguration covers invalid input: duplicate keys, a bad root path.
	ErrConfiguration = errors.New("planner: configuration error")

	// ErrSourceRead covers unreadable local files or directories.
	ErrSourceRead = errors.New("planner: source read error")

	// ErrFingerprint covers content hashing failures.
	ErrFingerprint = errors.New("planner: fingerprint error")

	// ErrRemoteQuery covers a failed remote listing. The planner never
	// substitutes an empty remote state for a failed query.
	ErrRemoteQuery = errors.New("planner: remote query error")
)

var errDuplicateKey = errors.New("duplicate key in batch")

// Error wraps an underlying failure with its kind and, when relevant, the key
// it concerns. It matches its kind sentinel through errors.Is.
type Error struct {
	Kind error  // one of the sentinels above
	Key  string // relative key, if the failure concerns one entry
	Err  error
}

func (e *Error) Error() string {
	if e.Key != "" {
		return fmt.Sprintf("%v: %s: %v", e.Kind, e.Key, e.Err)
	}
	return fmt.Sprintf("%v: %v", e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) Is(target error) bool {
	return target == e.Kind
}

func newError(kind error, key string, err error) *Error {
	return &Error{Kind: kind, Key: key, Err: err}
}

// IsConfiguration reports whether err is a configuration error.
func IsConfiguration(err error) bool {
	return errors.Is(err, ErrConfiguration)
}

// IsSourceRead reports whether err is a local read error.
func IsSourceRead(err error) bool {
	return errors.Is(err, ErrSourceRead)
}

// IsFingerprint reports whether err is a fingerprint computation error.
func IsFingerprint(err error) bool {
	return errors.Is(err, ErrFingerprint)
}

// IsRemoteQuery reports whether err is a remote listing error.
func IsRemoteQuery(err error) bool {
	return errors.Is(err, ErrRemoteQuery)
}
