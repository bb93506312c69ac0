package printer

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/slok/appbox/internal/model"
)

// TablePrinter prints information in a table format.
type TablePrinter struct {
	writer io.Writer
}

// NewTablePrinter creates a new table printer.
func NewTablePrinter(w io.Writer) *TablePrinter {
	return &TablePrinter{writer: w}
}

// PrintContainerList prints containers in a table format.
func (t *TablePrinter) PrintContainerList(containers []model.Container) error {
	if len(containers) == 0 {
		return nil
	}

	tw := tabwriter.NewWriter(t.writer, 0, 0, 2, ' ', 0)
	defer tw.Flush()

	fmt.Fprintln(tw, "NAME\tIMAGE\tCREATED")
	for _, c := range containers {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", c.Name, c.Image, TimeAgo(c.CreatedAt))
	}

	return nil
}

// PrintOperationList prints operations in a table format.
func (t *TablePrinter) PrintOperationList(operations []model.Operation) error {
	if len(operations) == 0 {
		return nil
	}

	tw := tabwriter.NewWriter(t.writer, 0, 0, 2, ' ', 0)
	defer tw.Flush()

	fmt.Fprintln(tw, "ID\tCONTAINER\tKIND\tSTATUS\tCREATED")
	for _, op := range operations {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", op.ID, op.ContainerName, op.Kind, op.Status, TimeAgo(op.CreatedAt))
	}

	return nil
}

// PrintOperation prints a detailed single operation.
func (t *TablePrinter) PrintOperation(op model.Operation) error {
	fmt.Fprintf(t.writer, "ID:         %s\n", op.ID)
	fmt.Fprintf(t.writer, "Container:  %s\n", op.ContainerName)
	fmt.Fprintf(t.writer, "Kind:       %s\n", op.Kind)
	fmt.Fprintf(t.writer, "Status:     %s\n", op.Status)
	fmt.Fprintf(t.writer, "Created:    %s\n", FormatTimestamp(op.CreatedAt))

	if op.FinishedAt != nil {
		fmt.Fprintf(t.writer, "Finished:   %s\n", FormatTimestamp(*op.FinishedAt))
	}

	if op.Error != "" {
		fmt.Fprintf(t.writer, "Error:      %s\n", op.Error)
	}

	if len(op.Data) > 0 {
		fmt.Fprintf(t.writer, "Data:       %s\n", strings.Join(op.Data, "\n            "))
	}

	return nil
}

// PrintMessage prints a simple message.
func (t *TablePrinter) PrintMessage(msg string) error {
	_, err := fmt.Fprintln(t.writer, msg)
	return err
}
