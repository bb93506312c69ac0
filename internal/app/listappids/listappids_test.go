package listappids_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slok/appbox/internal/app/listappids"
	"github.com/slok/appbox/internal/driver"
	"github.com/slok/appbox/internal/driver/fake"
	"github.com/slok/appbox/internal/log"
	"github.com/slok/appbox/internal/model"
	operationmemory "github.com/slok/appbox/internal/operation/memory"
	storagememory "github.com/slok/appbox/internal/storage/memory"
	"github.com/slok/appbox/internal/task"
)

func TestNewService(t *testing.T) {
	repo, err := storagememory.NewRepository(storagememory.RepositoryConfig{})
	require.NoError(t, err)
	monitor, err := operationmemory.NewMonitor(operationmemory.MonitorConfig{})
	require.NoError(t, err)
	drv, err := fake.NewDriver(fake.DriverConfig{})
	require.NoError(t, err)

	tests := map[string]struct {
		config listappids.ServiceConfig
		expErr bool
	}{
		"valid config should create service": {
			config: listappids.ServiceConfig{
				Repository:    repo,
				Monitor:       monitor,
				DriverFactory: driver.StaticFactory(drv),
				Logger:        log.Noop,
			},
		},
		"missing repository should fail": {
			config: listappids.ServiceConfig{
				Monitor:       monitor,
				DriverFactory: driver.StaticFactory(drv),
			},
			expErr: true,
		},
		"missing monitor should fail": {
			config: listappids.ServiceConfig{
				Repository:    repo,
				DriverFactory: driver.StaticFactory(drv),
			},
			expErr: true,
		},
		"missing driver factory should fail": {
			config: listappids.ServiceConfig{
				Repository: repo,
				Monitor:    monitor,
			},
			expErr: true,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			svc, err := listappids.NewService(test.config)

			if test.expErr {
				require.Error(t, err)
				require.Nil(t, svc)
			} else {
				require.NoError(t, err)
				require.NotNil(t, svc)
			}
		})
	}
}

func TestService_Run(t *testing.T) {
	ctx := context.Background()

	tests := map[string]struct {
		container string
		setup     func(ctx context.Context, t *testing.T, repo *storagememory.Repository, drv *fake.Driver)
		expStatus model.OperationStatus
		expError  string
		expData   []string
	}{
		"existing container reports its app ids and finishes": {
			container: "palpatine",
			setup: func(ctx context.Context, t *testing.T, repo *storagememory.Repository, drv *fake.Driver) {
				cfg := model.ContainerConfig{
					Name:     "palpatine",
					Image:    "ubuntu:24.04",
					Packages: []string{"gedit", "xterm"},
				}
				require.NoError(t, drv.Create(ctx, cfg))
				require.NoError(t, repo.CreateContainer(ctx, model.Container{
					ID:        "id1",
					Name:      "palpatine",
					Image:     "ubuntu:24.04",
					CreatedAt: time.Now().UTC(),
				}))
			},
			expStatus: model.OperationStatusFinished,
			expData:   []string{`["palpatine_gedit_0.0","palpatine_xterm_0.0"]`},
		},
		"missing container fails the operation without touching the driver": {
			container: "palpatine",
			setup:     func(ctx context.Context, t *testing.T, repo *storagememory.Repository, drv *fake.Driver) {},
			expStatus: model.OperationStatusFailed,
			expError:  "Container 'palpatine' does not exist, skipping list",
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			repo, err := storagememory.NewRepository(storagememory.RepositoryConfig{})
			require.NoError(t, err)
			monitor, err := operationmemory.NewMonitor(operationmemory.MonitorConfig{})
			require.NoError(t, err)
			drv, err := fake.NewDriver(fake.DriverConfig{})
			require.NoError(t, err)

			test.setup(ctx, t, repo, drv)

			svc, err := listappids.NewService(listappids.ServiceConfig{
				Repository:    repo,
				Monitor:       monitor,
				DriverFactory: driver.StaticFactory(drv),
				Executor:      task.Sync{},
				Logger:        log.Noop,
			})
			require.NoError(t, err)

			resp, err := svc.Run(ctx, listappids.Request{ContainerName: test.container})
			require.NoError(t, err)
			resp.Completion.Wait()

			op, err := monitor.GetOperation(ctx, resp.OperationID)
			require.NoError(t, err)

			assert.Equal(t, test.expStatus, op.Status)
			assert.Equal(t, test.expError, op.Error)
			if test.expData != nil {
				assert.Equal(t, test.expData, op.Data)
			}
		})
	}
}
