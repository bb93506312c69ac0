package task

import (
	"context"
	"fmt"

	"github.com/slok/appbox/internal/driver"
	"github.com/slok/appbox/internal/model"
)

// InstallTask installs packages in an existing container.
type InstallTask struct {
	*base
	packages []string
}

// NewInstallTask creates the task, registering its operation with the monitor.
func NewInstallTask(ctx context.Context, packages []string, cfg Config) (*InstallTask, error) {
	if len(packages) == 0 {
		return nil, fmt.Errorf("at least one package is required")
	}

	b, err := newBase(ctx, model.OperationKindInstall, cfg)
	if err != nil {
		return nil, err
	}

	return &InstallTask{base: b, packages: packages}, nil
}

// Packages returns the packages the task installs.
func (t *InstallTask) Packages() []string { return t.packages }

func (t *InstallTask) Start(ctx context.Context) Handle {
	return t.start(ctx, t, t.requireContainerExists("install"), func(ctx context.Context, drv driver.Driver) error {
		return drv.InstallPackages(ctx, t.containerName, t.packages)
	})
}
