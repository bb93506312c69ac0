package task

import (
	"context"
	"fmt"

	"github.com/slok/appbox/internal/driver"
	"github.com/slok/appbox/internal/model"
)

// DestroyTask destroys an existing container and removes its record from the
// repository.
type DestroyTask struct {
	*base
}

// NewDestroyTask creates the task, registering its operation with the monitor.
func NewDestroyTask(ctx context.Context, cfg Config) (*DestroyTask, error) {
	b, err := newBase(ctx, model.OperationKindDestroy, cfg)
	if err != nil {
		return nil, err
	}

	return &DestroyTask{base: b}, nil
}

func (t *DestroyTask) Start(ctx context.Context) Handle {
	return t.start(ctx, t, t.requireContainerExists("destroy"), func(ctx context.Context, drv driver.Driver) error {
		if err := drv.Destroy(ctx, t.containerName); err != nil {
			return err
		}

		if err := t.repo.DeleteContainer(ctx, t.containerName); err != nil {
			return fmt.Errorf("could not delete container record: %w", err)
		}

		return nil
	})
}
