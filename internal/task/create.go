package task

import (
	"context"
	"fmt"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/slok/appbox/internal/driver"
	"github.com/slok/appbox/internal/model"
)

// CreateTask creates a new container through the driver and persists its
// record in the repository. Unlike the other tasks its precondition is
// inverted: the container must not exist yet.
type CreateTask struct {
	*base
	containerCfg model.ContainerConfig
}

// NewCreateTask creates the task, registering its operation with the monitor.
func NewCreateTask(ctx context.Context, containerCfg model.ContainerConfig, cfg Config) (*CreateTask, error) {
	if err := containerCfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid container config: %w", err)
	}
	cfg.ContainerName = containerCfg.Name

	b, err := newBase(ctx, model.OperationKindCreate, cfg)
	if err != nil {
		return nil, err
	}

	return &CreateTask{base: b, containerCfg: containerCfg}, nil
}

func (t *CreateTask) Start(ctx context.Context) Handle {
	return t.start(ctx, t, t.requireContainerAbsent(), func(ctx context.Context, drv driver.Driver) error {
		if err := drv.Create(ctx, t.containerCfg); err != nil {
			return err
		}

		container := model.Container{
			ID:        ulid.Make().String(),
			Name:      t.containerCfg.Name,
			Image:     t.containerCfg.Image,
			CreatedAt: time.Now().UTC(),
		}
		if err := t.repo.CreateContainer(ctx, container); err != nil {
			return fmt.Errorf("could not persist container: %w", err)
		}

		return nil
	})
}
