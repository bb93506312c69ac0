package task_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/slok/appbox/internal/driver"
	"github.com/slok/appbox/internal/driver/drivermock"
	"github.com/slok/appbox/internal/model"
	"github.com/slok/appbox/internal/operation/operationmock"
	"github.com/slok/appbox/internal/storage/storagemock"
	"github.com/slok/appbox/internal/task"
)

func TestTaskConfigValidation(t *testing.T) {
	repo := &storagemock.MockRepository{}
	drv := &drivermock.MockDriver{}
	newMonitor := func() *operationmock.MockMonitor {
		m := &operationmock.MockMonitor{}
		m.On("NewOperation", mock.Anything, mock.Anything, mock.Anything).Maybe().Return(testOperationID, nil)
		return m
	}

	tests := map[string]struct {
		config func() task.Config
		expErr bool
	}{
		"A valid config should create the task": {
			config: func() task.Config {
				return task.Config{
					ContainerName: "palpatine",
					Repository:    repo,
					Monitor:       newMonitor(),
					DriverFactory: driver.StaticFactory(drv),
				}
			},
		},
		"Missing container name should fail": {
			config: func() task.Config {
				return task.Config{
					Repository:    repo,
					Monitor:       newMonitor(),
					DriverFactory: driver.StaticFactory(drv),
				}
			},
			expErr: true,
		},
		"Missing repository should fail": {
			config: func() task.Config {
				return task.Config{
					ContainerName: "palpatine",
					Monitor:       newMonitor(),
					DriverFactory: driver.StaticFactory(drv),
				}
			},
			expErr: true,
		},
		"Missing monitor should fail": {
			config: func() task.Config {
				return task.Config{
					ContainerName: "palpatine",
					Repository:    repo,
					DriverFactory: driver.StaticFactory(drv),
				}
			},
			expErr: true,
		},
		"Missing driver factory should fail": {
			config: func() task.Config {
				return task.Config{
					ContainerName: "palpatine",
					Repository:    repo,
					Monitor:       newMonitor(),
				}
			},
			expErr: true,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			tsk, err := task.NewUpdateTask(context.TODO(), test.config())

			if test.expErr {
				require.Error(t, err)
				assert.Nil(t, tsk)
			} else {
				require.NoError(t, err)
				assert.NotNil(t, tsk)
			}
		})
	}
}

func TestTaskPreconditionMessages(t *testing.T) {
	tests := map[string]struct {
		kind       model.OperationKind
		exists     bool
		newTask    func(ctx context.Context, cfg task.Config) (task.Task, error)
		expMessage string
	}{
		"Listing app ids of a missing container should report a skipping list error": {
			kind:   model.OperationKindListAppIDs,
			exists: false,
			newTask: func(ctx context.Context, cfg task.Config) (task.Task, error) {
				return task.NewListAppIDsTask(ctx, cfg)
			},
			expMessage: "Container 'palpatine' does not exist, skipping list",
		},
		"Installing into a missing container should report a skipping install error": {
			kind:   model.OperationKindInstall,
			exists: false,
			newTask: func(ctx context.Context, cfg task.Config) (task.Task, error) {
				return task.NewInstallTask(ctx, []string{"gedit"}, cfg)
			},
			expMessage: "Container 'palpatine' does not exist, skipping install",
		},
		"Removing from a missing container should report a skipping remove error": {
			kind:   model.OperationKindRemove,
			exists: false,
			newTask: func(ctx context.Context, cfg task.Config) (task.Task, error) {
				return task.NewRemoveTask(ctx, []string{"gedit"}, cfg)
			},
			expMessage: "Container 'palpatine' does not exist, skipping remove",
		},
		"Updating a missing container should report a skipping update error": {
			kind:   model.OperationKindUpdate,
			exists: false,
			newTask: func(ctx context.Context, cfg task.Config) (task.Task, error) {
				return task.NewUpdateTask(ctx, cfg)
			},
			expMessage: "Container 'palpatine' does not exist, skipping update",
		},
		"Destroying a missing container should report a skipping destroy error": {
			kind:   model.OperationKindDestroy,
			exists: false,
			newTask: func(ctx context.Context, cfg task.Config) (task.Task, error) {
				return task.NewDestroyTask(ctx, cfg)
			},
			expMessage: "Container 'palpatine' does not exist, skipping destroy",
		},
		"Creating an existing container should report an already exists error": {
			kind:   model.OperationKindCreate,
			exists: true,
			newTask: func(ctx context.Context, cfg task.Config) (task.Task, error) {
				return task.NewCreateTask(ctx, model.ContainerConfig{Name: "palpatine", Image: "ubuntu:24.04"}, cfg)
			},
			expMessage: "Container 'palpatine' already exists",
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			repo := &storagemock.MockRepository{}
			monitor := &operationmock.MockMonitor{}
			drv := &drivermock.MockDriver{}

			monitor.On("NewOperation", mock.Anything, "palpatine", test.kind).Once().Return(testOperationID, nil)
			monitor.On("Error", mock.Anything, testOperationID, test.expMessage).Once().Return(nil)
			repo.On("ContainerExists", mock.Anything, "palpatine").Once().Return(test.exists, nil)

			var calledWith task.Task

			tsk, err := test.newTask(context.TODO(), task.Config{
				ContainerName: "palpatine",
				Repository:    repo,
				Monitor:       monitor,
				DriverFactory: driver.StaticFactory(drv),
				Executor:      task.Sync{},
				Callback:      func(t task.Task) { calledWith = t },
			})
			require.NoError(t, err)

			tsk.Start(context.TODO()).Wait()

			monitor.AssertExpectations(t)
			repo.AssertExpectations(t)
			monitor.AssertNotCalled(t, "Finished", mock.Anything, mock.Anything)

			assert.Same(t, tsk, calledWith)
		})
	}
}

func TestInstallTaskSuccess(t *testing.T) {
	repo := &storagemock.MockRepository{}
	monitor := &operationmock.MockMonitor{}
	drv := &drivermock.MockDriver{}

	monitor.On("NewOperation", mock.Anything, "palpatine", model.OperationKindInstall).Once().Return(testOperationID, nil)
	repo.On("ContainerExists", mock.Anything, "palpatine").Once().Return(true, nil)
	drv.On("InstallPackages", mock.Anything, "palpatine", []string{"gedit", "xterm"}).Once().Return(nil)
	monitor.On("Done", mock.Anything, testOperationID).Once().Return(false, nil)
	monitor.On("Finished", mock.Anything, testOperationID).Once().Return(nil)

	tsk, err := task.NewInstallTask(context.TODO(), []string{"gedit", "xterm"}, task.Config{
		ContainerName: "palpatine",
		Repository:    repo,
		Monitor:       monitor,
		DriverFactory: driver.StaticFactory(drv),
		Executor:      task.Sync{},
	})
	require.NoError(t, err)

	tsk.Start(context.TODO()).Wait()

	monitor.AssertExpectations(t)
	drv.AssertExpectations(t)
	monitor.AssertNotCalled(t, "Error", mock.Anything, mock.Anything, mock.Anything)
}

func TestCreateTaskSuccess(t *testing.T) {
	repo := &storagemock.MockRepository{}
	monitor := &operationmock.MockMonitor{}
	drv := &drivermock.MockDriver{}

	containerCfg := model.ContainerConfig{Name: "palpatine", Image: "ubuntu:24.04", Packages: []string{"gedit"}}

	monitor.On("NewOperation", mock.Anything, "palpatine", model.OperationKindCreate).Once().Return(testOperationID, nil)
	repo.On("ContainerExists", mock.Anything, "palpatine").Once().Return(false, nil)
	drv.On("Create", mock.Anything, containerCfg).Once().Return(nil)
	repo.On("CreateContainer", mock.Anything, mock.MatchedBy(func(c model.Container) bool {
		return c.Name == "palpatine" && c.Image == "ubuntu:24.04" && c.ID != ""
	})).Once().Return(nil)
	monitor.On("Done", mock.Anything, testOperationID).Once().Return(false, nil)
	monitor.On("Finished", mock.Anything, testOperationID).Once().Return(nil)

	tsk, err := task.NewCreateTask(context.TODO(), containerCfg, task.Config{
		Repository:    repo,
		Monitor:       monitor,
		DriverFactory: driver.StaticFactory(drv),
		Executor:      task.Sync{},
	})
	require.NoError(t, err)

	tsk.Start(context.TODO()).Wait()

	monitor.AssertExpectations(t)
	repo.AssertExpectations(t)
	drv.AssertExpectations(t)
}

func TestDestroyTaskSuccess(t *testing.T) {
	repo := &storagemock.MockRepository{}
	monitor := &operationmock.MockMonitor{}
	drv := &drivermock.MockDriver{}

	monitor.On("NewOperation", mock.Anything, "palpatine", model.OperationKindDestroy).Once().Return(testOperationID, nil)
	repo.On("ContainerExists", mock.Anything, "palpatine").Once().Return(true, nil)
	drv.On("Destroy", mock.Anything, "palpatine").Once().Return(nil)
	repo.On("DeleteContainer", mock.Anything, "palpatine").Once().Return(nil)
	monitor.On("Done", mock.Anything, testOperationID).Once().Return(false, nil)
	monitor.On("Finished", mock.Anything, testOperationID).Once().Return(nil)

	tsk, err := task.NewDestroyTask(context.TODO(), task.Config{
		ContainerName: "palpatine",
		Repository:    repo,
		Monitor:       monitor,
		DriverFactory: driver.StaticFactory(drv),
		Executor:      task.Sync{},
	})
	require.NoError(t, err)

	tsk.Start(context.TODO()).Wait()

	monitor.AssertExpectations(t)
	repo.AssertExpectations(t)
	drv.AssertExpectations(t)
}

func TestTaskDriverFactoryFailure(t *testing.T) {
	repo := &storagemock.MockRepository{}
	monitor := &operationmock.MockMonitor{}

	monitor.On("NewOperation", mock.Anything, "palpatine", model.OperationKindUpdate).Once().Return(testOperationID, nil)
	repo.On("ContainerExists", mock.Anything, "palpatine").Once().Return(true, nil)
	monitor.On("Error", mock.Anything, testOperationID, fmt.Sprintf("Could not create container driver: %s", assert.AnError)).Once().Return(nil)

	callbackCalls := 0

	tsk, err := task.NewUpdateTask(context.TODO(), task.Config{
		ContainerName: "palpatine",
		Repository:    repo,
		Monitor:       monitor,
		DriverFactory: driver.FactoryFunc(func(ctx context.Context) (driver.Driver, error) { return nil, assert.AnError }),
		Executor:      task.Sync{},
		Callback:      func(task.Task) { callbackCalls++ },
	})
	require.NoError(t, err)

	tsk.Start(context.TODO()).Wait()

	monitor.AssertExpectations(t)
	monitor.AssertNotCalled(t, "Finished", mock.Anything, mock.Anything)
	assert.Equal(t, 1, callbackCalls)
}

func TestTaskSkipsFinishedWhenMonitorAlreadyDone(t *testing.T) {
	repo := &storagemock.MockRepository{}
	monitor := &operationmock.MockMonitor{}
	drv := &drivermock.MockDriver{}

	monitor.On("NewOperation", mock.Anything, "palpatine", model.OperationKindUpdate).Once().Return(testOperationID, nil)
	repo.On("ContainerExists", mock.Anything, "palpatine").Once().Return(true, nil)
	drv.On("Update", mock.Anything, "palpatine").Once().Return(nil)
	monitor.On("Done", mock.Anything, testOperationID).Once().Return(true, nil)

	tsk, err := task.NewUpdateTask(context.TODO(), task.Config{
		ContainerName: "palpatine",
		Repository:    repo,
		Monitor:       monitor,
		DriverFactory: driver.StaticFactory(drv),
		Executor:      task.Sync{},
	})
	require.NoError(t, err)

	tsk.Start(context.TODO()).Wait()

	monitor.AssertExpectations(t)
	monitor.AssertNotCalled(t, "Finished", mock.Anything, mock.Anything)
}
