package task

import (
	"context"

	"github.com/slok/appbox/internal/driver"
	"github.com/slok/appbox/internal/model"
)

// UpdateTask updates the packages installed in an existing container.
type UpdateTask struct {
	*base
}

// NewUpdateTask creates the task, registering its operation with the monitor.
func NewUpdateTask(ctx context.Context, cfg Config) (*UpdateTask, error) {
	b, err := newBase(ctx, model.OperationKindUpdate, cfg)
	if err != nil {
		return nil, err
	}

	return &UpdateTask{base: b}, nil
}

func (t *UpdateTask) Start(ctx context.Context) Handle {
	return t.start(ctx, t, t.requireContainerExists("update"), func(ctx context.Context, drv driver.Driver) error {
		return drv.Update(ctx, t.containerName)
	})
}
