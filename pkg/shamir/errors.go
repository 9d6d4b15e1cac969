package shamir

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	// ErrStreamLengthMismatch reports share streams that end at different
	// records. The concrete error is a *StreamLengthError.
	ErrStreamLengthMismatch = errors.New("shamir: share streams differ in length")

	// ErrTruncatedShare reports a share stream with an odd number of bytes.
	ErrTruncatedShare = errors.New("shamir: truncated share record")

	// ErrInsufficientShares is returned when fewer shares than the configured
	// threshold are supplied.
	ErrInsufficientShares = errors.New("shamir: not enough shares")

	// ErrIdentifierChanged reports a share stream whose X value is not
	// constant across records.
	ErrIdentifierChanged = errors.New("shamir: share identifier changed mid-stream")

	// ErrInconsistentShares is returned by Verify when two subsets of the
	// supplied shares reconstruct different secrets.
	ErrInconsistentShares = errors.New("shamir: shares reconstruct different secrets")
)

// StreamLengthError identifies the share stream that ran out while others
// still had records.
type StreamLengthError struct {
	Stream int   // index of the first exhausted stream
	Record int64 // 0-based record number at which it ended
}

func (e *StreamLengthError) Error() string {
	return fmt.Sprintf("%v: share %d ended at record %d", ErrStreamLengthMismatch, e.Stream, e.Record)
}

// Is makes errors.Is(err, ErrStreamLengthMismatch) hold.
func (e *StreamLengthError) Is(target error) bool {
	return target == ErrStreamLengthMismatch
}
