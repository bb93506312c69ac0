package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/slok/appbox/internal/log"
	"github.com/slok/appbox/internal/model"
	"github.com/slok/appbox/internal/operation"
)

// MonitorConfig is the configuration for the SQLite monitor.
type MonitorConfig struct {
	DB     *sql.DB
	Logger log.Logger
}

func (c *MonitorConfig) defaults() error {
	if c.DB == nil {
		return fmt.Errorf("db is required")
	}
	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "operation.SQLite"})
	return nil
}

// Monitor is a SQLite implementation of operation.Monitor. It persists the
// operation history so it survives process restarts.
type Monitor struct {
	db     *sql.DB
	logger log.Logger
}

// NewMonitor creates a new SQLite monitor.
func NewMonitor(cfg MonitorConfig) (*Monitor, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Monitor{
		db:     cfg.DB,
		logger: cfg.Logger,
	}, nil
}

// NewOperation registers a new pending operation and returns its id.
func (m *Monitor) NewOperation(ctx context.Context, containerName string, kind model.OperationKind) (string, error) {
	id := ulid.Make().String()

	query := `
		INSERT INTO operations (id, container_name, kind, status, error, created_at, finished_at)
		VALUES (?, ?, ?, ?, '', ?, NULL)
	`
	_, err := m.db.ExecContext(ctx, query, id, containerName, kind, model.OperationStatusRunning, time.Now().UTC().Unix())
	if err != nil {
		return "", fmt.Errorf("could not insert operation: %w", err)
	}

	m.logger.Debugf("Registered operation %s (%s on %s)", id, kind, containerName)
	return id, nil
}

// Data attaches a result payload to a running operation.
func (m *Monitor) Data(ctx context.Context, id string, payload string) error {
	tx, err := m.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("could not begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := m.checkRunning(ctx, tx, id); err != nil {
		return err
	}

	var maxSeq int
	seqQuery := `SELECT COALESCE(MAX(sequence), 0) FROM operation_data WHERE operation_id = ?`
	if err := tx.QueryRowContext(ctx, seqQuery, id).Scan(&maxSeq); err != nil {
		return fmt.Errorf("could not get max sequence: %w", err)
	}

	insertQuery := `INSERT INTO operation_data (operation_id, sequence, payload) VALUES (?, ?, ?)`
	if _, err := tx.ExecContext(ctx, insertQuery, id, maxSeq+1, payload); err != nil {
		return fmt.Errorf("could not insert operation data: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("could not commit transaction: %w", err)
	}

	return nil
}

// Error marks the operation as failed.
func (m *Monitor) Error(ctx context.Context, id string, message string) error {
	if err := m.finish(ctx, id, model.OperationStatusFailed, message); err != nil {
		return err
	}

	m.logger.Debugf("Operation %s failed: %s", id, message)
	return nil
}

// Finished marks the operation as successfully finished.
func (m *Monitor) Finished(ctx context.Context, id string) error {
	if err := m.finish(ctx, id, model.OperationStatusFinished, ""); err != nil {
		return err
	}

	m.logger.Debugf("Operation %s finished", id)
	return nil
}

// finish transitions an operation to a terminal state. The status guard on the
// update keeps Error and Finished mutually exclusive and at-most-once.
func (m *Monitor) finish(ctx context.Context, id string, status model.OperationStatus, errorMessage string) error {
	query := `UPDATE operations SET status = ?, error = ?, finished_at = ? WHERE id = ? AND status = ?`

	result, err := m.db.ExecContext(ctx, query, status, errorMessage, time.Now().UTC().Unix(), id, model.OperationStatusRunning)
	if err != nil {
		return fmt.Errorf("could not update operation: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("could not get rows affected: %w", err)
	}
	if rows == 0 {
		// Missing or already terminal, disambiguate.
		_, err := m.GetOperation(ctx, id)
		if err != nil {
			return err
		}
		return fmt.Errorf("operation %s: %w", id, model.ErrAlreadyFinished)
	}

	return nil
}

// Done returns true when the operation reached a terminal state.
func (m *Monitor) Done(ctx context.Context, id string) (bool, error) {
	var status model.OperationStatus
	query := `SELECT status FROM operations WHERE id = ?`

	err := m.db.QueryRowContext(ctx, query, id).Scan(&status)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, fmt.Errorf("operation %s: %w", id, model.ErrNotFound)
		}
		return false, fmt.Errorf("could not query operation: %w", err)
	}

	return status != model.OperationStatusRunning, nil
}

// GetOperation returns the full operation record.
func (m *Monitor) GetOperation(ctx context.Context, id string) (*model.Operation, error) {
	query := `
		SELECT id, container_name, kind, status, error, created_at, finished_at
		FROM operations
		WHERE id = ?
	`

	op, err := scanOperation(m.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("operation %s: %w", id, model.ErrNotFound)
		}
		return nil, fmt.Errorf("could not query operation: %w", err)
	}

	if err := m.loadData(ctx, op); err != nil {
		return nil, err
	}

	return op, nil
}

// ListOperations returns all known operations ordered by creation.
func (m *Monitor) ListOperations(ctx context.Context) ([]model.Operation, error) {
	query := `
		SELECT id, container_name, kind, status, error, created_at, finished_at
		FROM operations
		ORDER BY id ASC
	`

	rows, err := m.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("could not query operations: %w", err)
	}
	defer rows.Close()

	operations := []model.Operation{}
	for rows.Next() {
		op, err := scanOperation(rows)
		if err != nil {
			return nil, fmt.Errorf("could not scan operation: %w", err)
		}
		if err := m.loadData(ctx, op); err != nil {
			return nil, err
		}
		operations = append(operations, *op)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("could not iterate operations: %w", err)
	}

	return operations, nil
}

func (m *Monitor) checkRunning(ctx context.Context, tx *sql.Tx, id string) error {
	var status model.OperationStatus
	err := tx.QueryRowContext(ctx, `SELECT status FROM operations WHERE id = ?`, id).Scan(&status)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("operation %s: %w", id, model.ErrNotFound)
		}
		return fmt.Errorf("could not query operation: %w", err)
	}

	if status != model.OperationStatusRunning {
		return fmt.Errorf("operation %s: %w", id, model.ErrAlreadyFinished)
	}

	return nil
}

func (m *Monitor) loadData(ctx context.Context, op *model.Operation) error {
	query := `SELECT payload FROM operation_data WHERE operation_id = ? ORDER BY sequence ASC`

	rows, err := m.db.QueryContext(ctx, query, op.ID)
	if err != nil {
		return fmt.Errorf("could not query operation data: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return fmt.Errorf("could not scan operation data: %w", err)
		}
		op.Data = append(op.Data, payload)
	}

	return rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOperation(row rowScanner) (*model.Operation, error) {
	var op model.Operation
	var createdAt int64
	var finishedAt *int64

	err := row.Scan(&op.ID, &op.ContainerName, &op.Kind, &op.Status, &op.Error, &createdAt, &finishedAt)
	if err != nil {
		return nil, err
	}

	op.CreatedAt = time.Unix(createdAt, 0).UTC()
	if finishedAt != nil {
		t := time.Unix(*finishedAt, 0).UTC()
		op.FinishedAt = &t
	}

	return &op, nil
}

var _ operation.Monitor = &Monitor{}
