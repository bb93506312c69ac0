package task_test

import (
	"context"
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

const testOperationID = "01JH0XN3V9T4Y6W8Q2M5B7C9D1"

// executorModes checks the reporting protocol is identical in production
// (threaded) and deterministic (sync) execution modes.
var executorModes = map[string]task.Executor{
	"threaded mode": task.Threaded{},
	"sync mode":     task.Sync{},
}

func TestListAppIDsTaskMissingContainer(t *testing.T) {
	for mode, executor := range executorModes {
		t.Run(mode, func(t *testing.T) {
			repo := &storagemock.MockRepository{}
			monitor := &operationmock.MockMonitor{}
			drv := &drivermock.MockDriver{}

			monitor.On("NewOperation", mock.Anything, "palpatine", model.OperationKindListAppIDs).Once().Return(testOperationID, nil)
			monitor.On("Error", mock.Anything, testOperationID, "Container 'palpatine' does not exist, skipping list").Once().Return(nil)
			repo.On("ContainerExists", mock.Anything, "palpatine").Once().Return(false, nil)

			var calledWith task.Task
			callbackCalls := 0

			tsk, err := task.NewListAppIDsTask(context.TODO(), task.Config{
				ContainerName: "palpatine",
				Repository:    repo,
				Monitor:       monitor,
				DriverFactory: driver.StaticFactory(drv),
				Executor:      executor,
				Callback: func(t task.Task) {
					calledWith = t
					callbackCalls++
				},
			})
			require.NoError(t, err)

			tsk.Start(context.TODO()).Wait()

			monitor.AssertExpectations(t)
			repo.AssertExpectations(t)

			// The driver must never be invoked when the precondition fails.
			drv.AssertNotCalled(t, "ListAppIDs", mock.Anything, mock.Anything)
			monitor.AssertNotCalled(t, "Data", mock.Anything, mock.Anything, mock.Anything)
			monitor.AssertNotCalled(t, "Finished", mock.Anything, mock.Anything)

			assert.Equal(t, 1, callbackCalls)
			assert.Same(t, tsk, calledWith)
		})
	}
}

func TestListAppIDsTaskSuccess(t *testing.T) {
	for mode, executor := range executorModes {
		t.Run(mode, func(t *testing.T) {
			repo := &storagemock.MockRepository{}
			monitor := &operationmock.MockMonitor{}
			drv := &drivermock.MockDriver{}

			monitor.On("NewOperation", mock.Anything, "palpatine", model.OperationKindListAppIDs).Once().Return(testOperationID, nil)
			repo.On("ContainerExists", mock.Anything, "palpatine").Once().Return(true, nil)
			drv.On("ListAppIDs", mock.Anything, "palpatine").Once().Return([]string{"palpatine_gedit_0.0", "palpatine_xterm_0.0"}, nil)
			monitor.On("Data", mock.Anything, testOperationID, `["palpatine_gedit_0.0","palpatine_xterm_0.0"]`).Once().Return(nil)
			monitor.On("Done", mock.Anything, testOperationID).Once().Return(false, nil)
			monitor.On("Finished", mock.Anything, testOperationID).Once().Return(nil)

			var calledWith task.Task
			callbackCalls := 0

			tsk, err := task.NewListAppIDsTask(context.TODO(), task.Config{
				ContainerName: "palpatine",
				Repository:    repo,
				Monitor:       monitor,
				DriverFactory: driver.StaticFactory(drv),
				Executor:      executor,
				Callback: func(t task.Task) {
					calledWith = t
					callbackCalls++
				},
			})
			require.NoError(t, err)
			assert.Equal(t, testOperationID, tsk.OperationID())

			tsk.Start(context.TODO()).Wait()

			monitor.AssertExpectations(t)
			repo.AssertExpectations(t)
			drv.AssertExpectations(t)

			// Error and finished are mutually exclusive.
			monitor.AssertNotCalled(t, "Error", mock.Anything, mock.Anything, mock.Anything)

			assert.Equal(t, 1, callbackCalls)
			assert.Same(t, tsk, calledWith)
		})
	}
}

func TestListAppIDsTaskDriverFailure(t *testing.T) {
	for mode, executor := range executorModes {
		t.Run(mode, func(t *testing.T) {
			repo := &storagemock.MockRepository{}
			monitor := &operationmock.MockMonitor{}
			drv := &drivermock.MockDriver{}

			monitor.On("NewOperation", mock.Anything, "palpatine", model.OperationKindListAppIDs).Once().Return(testOperationID, nil)
			repo.On("ContainerExists", mock.Anything, "palpatine").Once().Return(true, nil)
			drv.On("ListAppIDs", mock.Anything, "palpatine").Once().Return(nil, assert.AnError)
			monitor.On("Error", mock.Anything, testOperationID, assert.AnError.Error()).Once().Return(nil)

			callbackCalls := 0

			tsk, err := task.NewListAppIDsTask(context.TODO(), task.Config{
				ContainerName: "palpatine",
				Repository:    repo,
				Monitor:       monitor,
				DriverFactory: driver.StaticFactory(drv),
				Executor:      executor,
				Callback:      func(task.Task) { callbackCalls++ },
			})
			require.NoError(t, err)

			tsk.Start(context.TODO()).Wait()

			monitor.AssertExpectations(t)

			// A runtime failure never reports data nor finished.
			monitor.AssertNotCalled(t, "Data", mock.Anything, mock.Anything, mock.Anything)
			monitor.AssertNotCalled(t, "Finished", mock.Anything, mock.Anything)

			assert.Equal(t, 1, callbackCalls)
		})
	}
}

func TestListAppIDsTaskRegistrationFailure(t *testing.T) {
	repo := &storagemock.MockRepository{}
	monitor := &operationmock.MockMonitor{}

	monitor.On("NewOperation", mock.Anything, "palpatine", model.OperationKindListAppIDs).Once().Return("", assert.AnError)

	tsk, err := task.NewListAppIDsTask(context.TODO(), task.Config{
		ContainerName: "palpatine",
		Repository:    repo,
		Monitor:       monitor,
		DriverFactory: driver.StaticFactory(&drivermock.MockDriver{}),
	})

	require.Error(t, err)
	assert.Nil(t, tsk)
}
