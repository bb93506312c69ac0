package task

import (
	"context"
	"fmt"

	"github.com/slok/appbox/internal/driver"
	"github.com/slok/appbox/internal/model"
)

// RemoveTask removes packages from an existing container.
type RemoveTask struct {
	*base
	packages []string
}

// NewRemoveTask creates the task, registering its operation with the monitor.
func NewRemoveTask(ctx context.Context, packages []string, cfg Config) (*RemoveTask, error) {
	if len(packages) == 0 {
		return nil, fmt.Errorf("at least one package is required")
	}

	b, err := newBase(ctx, model.OperationKindRemove, cfg)
	if err != nil {
		return nil, err
	}

	return &RemoveTask{base: b, packages: packages}, nil
}

// Packages returns the packages the task removes.
func (t *RemoveTask) Packages() []string { return t.packages }

func (t *RemoveTask) Start(ctx context.Context) Handle {
	return t.start(ctx, t, t.requireContainerExists("remove"), func(ctx context.Context, drv driver.Driver) error {
		return drv.RemovePackages(ctx, t.containerName, t.packages)
	})
}
