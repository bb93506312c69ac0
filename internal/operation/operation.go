package operation

import (
	"context"

	"github.com/slok/appbox/internal/model"
)

// Monitor is the shared registry that tracks in-flight operations and reports
// their progress and outcome to observers.
//
// Implementations must be safe for concurrent use from multiple tasks. Ids are
// unique per operation and never reused. For every operation the reporting
// protocol is: zero or more Data calls followed by exactly one Finished call,
// or exactly one Error call. Error and Finished are mutually exclusive.
type Monitor interface {
	// NewOperation registers a new pending operation and returns its id.
	NewOperation(ctx context.Context, containerName string, kind model.OperationKind) (string, error)

	// Data attaches a result payload to a running operation. It can be called
	// multiple times per operation, always before Finished.
	Data(ctx context.Context, id string, payload string) error

	// Error marks the operation as failed. At most once per operation, and
	// never after Finished.
	Error(ctx context.Context, id string, message string) error

	// Finished marks the operation as successfully finished. At most once per
	// operation, and never after Error.
	Finished(ctx context.Context, id string) error

	// Done returns true when the operation reached a terminal state.
	Done(ctx context.Context, id string) (bool, error)

	// GetOperation returns the full operation record.
	GetOperation(ctx context.Context, id string) (*model.Operation, error)

	// ListOperations returns all known operations.
	ListOperations(ctx context.Context) ([]model.Operation, error)
}
