package model

import "time"

// OperationStatus represents the state of an operation.
type OperationStatus string

const (
	// OperationStatusRunning indicates the operation is still in flight.
	OperationStatusRunning OperationStatus = "running"
	// OperationStatusFinished indicates the operation finished successfully.
	OperationStatusFinished OperationStatus = "finished"
	// OperationStatusFailed indicates the operation failed.
	OperationStatusFailed OperationStatus = "failed"
)

// OperationKind identifies the kind of work an operation tracks.
type OperationKind string

const (
	OperationKindListAppIDs OperationKind = "list-app-ids"
	OperationKindInstall    OperationKind = "install"
	OperationKindRemove     OperationKind = "remove"
	OperationKindUpdate     OperationKind = "update"
	OperationKindCreate     OperationKind = "create"
	OperationKindDestroy    OperationKind = "destroy"
)

// Operation is the observable record of a single asynchronous task.
//
// An operation reaches exactly one terminal form: either it fails with an error
// message, or it accumulates zero or more data payloads and then finishes.
type Operation struct {
	ID            string
	ContainerName string
	Kind          OperationKind
	Status        OperationStatus
	// Data holds the payloads reported while the operation ran, in report order.
	Data  []string
	Error string

	CreatedAt  time.Time
	FinishedAt *time.Time
}

// Done returns true when the operation reached a terminal state.
func (o *Operation) Done() bool {
	return o.Status == OperationStatusFinished || o.Status == OperationStatusFailed
}
