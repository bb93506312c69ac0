package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/slok/appbox/internal/log"
	"github.com/slok/appbox/internal/model"
	"github.com/slok/appbox/internal/operation"
)

// MonitorConfig is the configuration for the memory monitor.
type MonitorConfig struct {
	Logger log.Logger
}

func (c *MonitorConfig) defaults() error {
	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "operation.Memory"})
	return nil
}

// Monitor is an in-memory implementation of operation.Monitor.
type Monitor struct {
	operations map[string]*model.Operation
	mu         sync.RWMutex
	logger     log.Logger
}

// NewMonitor creates a new memory monitor.
func NewMonitor(cfg MonitorConfig) (*Monitor, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Monitor{
		operations: map[string]*model.Operation{},
		logger:     cfg.Logger,
	}, nil
}

// NewOperation registers a new pending operation and returns its id.
func (m *Monitor) NewOperation(ctx context.Context, containerName string, kind model.OperationKind) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := ulid.Make().String()
	m.operations[id] = &model.Operation{
		ID:            id,
		ContainerName: containerName,
		Kind:          kind,
		Status:        model.OperationStatusRunning,
		CreatedAt:     time.Now().UTC(),
	}

	m.logger.Debugf("Registered operation %s (%s on %s)", id, kind, containerName)
	return id, nil
}

// Data attaches a result payload to a running operation.
func (m *Monitor) Data(ctx context.Context, id string, payload string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	op, ok := m.operations[id]
	if !ok {
		return fmt.Errorf("operation %s: %w", id, model.ErrNotFound)
	}

	if op.Done() {
		return fmt.Errorf("operation %s: %w", id, model.ErrAlreadyFinished)
	}

	op.Data = append(op.Data, payload)
	return nil
}

// Error marks the operation as failed.
func (m *Monitor) Error(ctx context.Context, id string, message string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	op, ok := m.operations[id]
	if !ok {
		return fmt.Errorf("operation %s: %w", id, model.ErrNotFound)
	}

	if op.Done() {
		return fmt.Errorf("operation %s: %w", id, model.ErrAlreadyFinished)
	}

	now := time.Now().UTC()
	op.Status = model.OperationStatusFailed
	op.Error = message
	op.FinishedAt = &now

	m.logger.Debugf("Operation %s failed: %s", id, message)
	return nil
}

// Finished marks the operation as successfully finished.
func (m *Monitor) Finished(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	op, ok := m.operations[id]
	if !ok {
		return fmt.Errorf("operation %s: %w", id, model.ErrNotFound)
	}

	if op.Done() {
		return fmt.Errorf("operation %s: %w", id, model.ErrAlreadyFinished)
	}

	now := time.Now().UTC()
	op.Status = model.OperationStatusFinished
	op.FinishedAt = &now

	m.logger.Debugf("Operation %s finished", id)
	return nil
}

// Done returns true when the operation reached a terminal state.
func (m *Monitor) Done(ctx context.Context, id string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	op, ok := m.operations[id]
	if !ok {
		return false, fmt.Errorf("operation %s: %w", id, model.ErrNotFound)
	}

	return op.Done(), nil
}

// GetOperation returns the full operation record.
func (m *Monitor) GetOperation(ctx context.Context, id string) (*model.Operation, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	op, ok := m.operations[id]
	if !ok {
		return nil, fmt.Errorf("operation %s: %w", id, model.ErrNotFound)
	}

	// Return a copy.
	opCopy := *op
	opCopy.Data = append([]string(nil), op.Data...)
	return &opCopy, nil
}

// ListOperations returns all known operations sorted by creation (id order).
func (m *Monitor) ListOperations(ctx context.Context) ([]model.Operation, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	operations := make([]model.Operation, 0, len(m.operations))
	for _, op := range m.operations {
		opCopy := *op
		opCopy.Data = append([]string(nil), op.Data...)
		operations = append(operations, opCopy)
	}

	// ULIDs are lexicographically sortable by time.
	sort.Slice(operations, func(i, j int) bool { return operations[i].ID < operations[j].ID })

	return operations, nil
}

var _ operation.Monitor = &Monitor{}
