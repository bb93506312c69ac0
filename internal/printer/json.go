package printer

import (
	"encoding/json"
	"io"
	"time"

	"github.com/slok/appbox/internal/model"
)

// JSONPrinter prints information in JSON format.
type JSONPrinter struct {
	writer io.Writer
}

// NewJSONPrinter creates a new JSON printer.
func NewJSONPrinter(w io.Writer) *JSONPrinter {
	return &JSONPrinter{writer: w}
}

// containerItem represents a container in the list output.
type containerItem struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Image     string    `json:"image"`
	CreatedAt time.Time `json:"created_at"`
}

// operationItem represents an operation in the output.
type operationItem struct {
	ID            string     `json:"id"`
	ContainerName string     `json:"container_name"`
	Kind          string     `json:"kind"`
	Status        string     `json:"status"`
	Data          []string   `json:"data,omitempty"`
	Error         string     `json:"error,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	FinishedAt    *time.Time `json:"finished_at,omitempty"`
}

// messageOutput represents a simple message output.
type messageOutput struct {
	Message string `json:"message"`
}

// PrintContainerList prints containers in JSON format.
func (j *JSONPrinter) PrintContainerList(containers []model.Container) error {
	items := make([]containerItem, len(containers))
	for i, c := range containers {
		items[i] = containerItem{
			ID:        c.ID,
			Name:      c.Name,
			Image:     c.Image,
			CreatedAt: c.CreatedAt.UTC(),
		}
	}

	return j.encode(items)
}

// PrintOperationList prints operations in JSON format.
func (j *JSONPrinter) PrintOperationList(operations []model.Operation) error {
	items := make([]operationItem, len(operations))
	for i, op := range operations {
		items[i] = newOperationItem(op)
	}

	return j.encode(items)
}

// PrintOperation prints a single operation in JSON format.
func (j *JSONPrinter) PrintOperation(op model.Operation) error {
	return j.encode(newOperationItem(op))
}

// PrintMessage prints a simple message in JSON format.
func (j *JSONPrinter) PrintMessage(msg string) error {
	return j.encode(messageOutput{Message: msg})
}

func (j *JSONPrinter) encode(v any) error {
	enc := json.NewEncoder(j.writer)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func newOperationItem(op model.Operation) operationItem {
	item := operationItem{
		ID:            op.ID,
		ContainerName: op.ContainerName,
		Kind:          string(op.Kind),
		Status:        string(op.Status),
		Data:          op.Data,
		Error:         op.Error,
		CreatedAt:     op.CreatedAt.UTC(),
	}

	if op.FinishedAt != nil {
		t := op.FinishedAt.UTC()
		item.FinishedAt = &t
	}

	return item
}
