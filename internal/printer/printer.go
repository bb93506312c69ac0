package printer

import "github.com/slok/appbox/internal/model"

// Printer knows how to print container and operation information in different
// formats.
type Printer interface {
	PrintContainerList(containers []model.Container) error
	PrintOperationList(operations []model.Operation) error
	PrintOperation(op model.Operation) error
	PrintMessage(msg string) error
}
