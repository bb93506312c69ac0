package task

import (
	"context"

	"github.com/slok/appbox/internal/driver"
	"github.com/slok/appbox/internal/model"
)

// ListAppIDsTask enumerates the application ids installed in a container and
// reports them as a single JSON encoded data payload.
type ListAppIDsTask struct {
	*base
}

// NewListAppIDsTask creates the task, registering its operation with the
// monitor. It doesn't touch the container until Start.
func NewListAppIDsTask(ctx context.Context, cfg Config) (*ListAppIDsTask, error) {
	b, err := newBase(ctx, model.OperationKindListAppIDs, cfg)
	if err != nil {
		return nil, err
	}

	return &ListAppIDsTask{base: b}, nil
}

func (t *ListAppIDsTask) Start(ctx context.Context) Handle {
	return t.start(ctx, t, t.requireContainerExists("list"), func(ctx context.Context, drv driver.Driver) error {
		appIDs, err := drv.ListAppIDs(ctx, t.containerName)
		if err != nil {
			return err
		}

		return t.reportData(ctx, appIDs)
	})
}
