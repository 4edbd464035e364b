// internal/gateway/errors.go
package gateway

import (
	"errors"
	"fmt"
	"io/fs"
)

// ErrDialogCancelled is returned when the user dismisses a file dialog.
// It is not an I/O failure; prior state is kept exactly.
var ErrDialogCancelled = errors.New("dialog cancelled")

// ErrInvalidData marks content that is not valid UTF-8 text.
var ErrInvalidData = errors.New("invalid data: content is not valid UTF-8")

// Op names the filesystem operation that failed.
type Op int

const (
	OpRead Op = iota
	OpWrite
)

func (o Op) String() string {
	if o == OpWrite {
		return "write"
	}
	return "read"
}

// Kind mirrors the category of the underlying OS error.
type Kind int

const (
	KindOther Kind = iota
	KindNotFound
	KindPermissionDenied
	KindInvalidData
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not found"
	case KindPermissionDenied:
		return "permission denied"
	case KindInvalidData:
		return "invalid data"
	default:
		return "other"
	}
}

// Failure is a read or write failure with its categorised kind.
type Failure struct {
	Op   Op
	Kind Kind
	Path string
	Err  error
}

func (f *Failure) Error() string {
	return fmt.Sprintf("%s failed for '%s' (%s): %v", f.Op, f.Path, f.Kind, f.Err)
}

func (f *Failure) Unwrap() error { return f.Err }

// classify maps an OS error onto a Kind.
func classify(err error) Kind {
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return KindNotFound
	case errors.Is(err, fs.ErrPermission):
		return KindPermissionDenied
	case errors.Is(err, ErrInvalidData):
		return KindInvalidData
	default:
		return KindOther
	}
}

func readFailed(path string, err error) *Failure {
	return &Failure{Op: OpRead, Kind: classify(err), Path: path, Err: err}
}

func writeFailed(path string, err error) *Failure {
	return &Failure{Op: OpWrite, Kind: classify(err), Path: path, Err: err}
}

// KindOf returns the Kind of a gateway failure, or false if err is not one.
func KindOf(err error) (Kind, bool) {
	var f *Failure
	if errors.As(err, &f) {
		return f.Kind, true
	}
	return KindOther, false
}

// IsReadFailure reports whether err is a read failure of the given kind.
func IsReadFailure(err error, kind Kind) bool {
	var f *Failure
	return errors.As(err, &f) && f.Op == OpRead && f.Kind == kind
}

// IsWriteFailure reports whether err is a write failure of the given kind.
func IsWriteFailure(err error, kind Kind) bool {
	var f *Failure
	return errors.As(err, &f) && f.Op == OpWrite && f.Kind == kind
}
