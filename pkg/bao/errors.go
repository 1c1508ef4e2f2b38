package bao

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// verifyCV compares an expected and a found chaining value in constant
// time, so that timing does not leak which byte or which chaining value
// mismatched. kind and index identify the node being verified, purely for
// the error message and log line.
func verifyCV(expected [8]uint32, found [8]uint32, kind string, index int64) error {
	expectedBytes := hashFromCV(expected)
	foundBytes := hashFromCV(found)
	if subtle.ConstantTimeCompare(expectedBytes[:], foundBytes[:]) != 1 {
		logrus.WithFields(logrus.Fields{
			"kind":  kind,
			"index": index,
		}).Warn("Bao chaining value mismatch")
		return status.Errorf(codes.DataLoss, "bao: %s chaining value mismatch at index %d", kind, index)
	}
	return nil
}

// errTruncated builds the error returned when a read-exact call fails. A
// read that comes up short (io.EOF or io.ErrUnexpectedEOF) means the
// encoding is malformed or was cut off before the tree descent it implies
// could complete; any other error is an I/O error of the source and is
// wrapped with %w instead of being reported as DataLoss.
func errTruncated(context string, err error) error {
	if !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		return fmt.Errorf("bao: %s: %w", context, err)
	}
	return status.Errorf(codes.DataLoss, "bao: truncated encoding while %s: %v", context, err)
}

// errHeaderOverflow reports a length header whose value cannot be
// represented as the non-negative int64 every recursion in this package
// assumes content lengths to be.
func errHeaderOverflow(contentLen uint64) error {
	return status.Errorf(codes.DataLoss, "bao: header content length %d exceeds maximum representable size", contentLen)
}

// errInvalidArgument wraps a caller logic error (not a soundness-relevant
// clamp) as an InvalidArgument status.
func errInvalidArgument(format string, args ...interface{}) error {
	return status.Error(codes.InvalidArgument, fmt.Sprintf(format, args...))
}
