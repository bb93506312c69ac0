package operations_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/slok/appbox/internal/app/operations"
	"github.com/slok/appbox/internal/log"
	"github.com/slok/appbox/internal/model"
	"github.com/slok/appbox/internal/operation/operationmock"
)

func TestNewService(t *testing.T) {
	tests := map[string]struct {
		config operations.ServiceConfig
		expErr bool
	}{
		"valid config should create service": {
			config: operations.ServiceConfig{
				Monitor: &operationmock.MockMonitor{},
				Logger:  log.Noop,
			},
		},
		"missing monitor should fail": {
			config: operations.ServiceConfig{
				Logger: log.Noop,
			},
			expErr: true,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			svc, err := operations.NewService(test.config)

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

func TestService_Get(t *testing.T) {
	createdAt := time.Date(2026, 1, 30, 10, 0, 0, 0, time.UTC)
	stored := model.Operation{
		ID:            "op1",
		ContainerName: "palpatine",
		Kind:          model.OperationKindListAppIDs,
		Status:        model.OperationStatusFinished,
		CreatedAt:     createdAt,
	}

	tests := map[string]struct {
		mock   func(m *operationmock.MockMonitor)
		expOp  *model.Operation
		expErr bool
	}{
		"existing operation is returned": {
			mock: func(m *operationmock.MockMonitor) {
				m.On("GetOperation", mock.Anything, "op1").Once().Return(&stored, nil)
			},
			expOp: &stored,
		},
		"monitor error is propagated": {
			mock: func(m *operationmock.MockMonitor) {
				m.On("GetOperation", mock.Anything, "op1").Once().Return(nil, fmt.Errorf("boom"))
			},
			expErr: true,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			monitor := &operationmock.MockMonitor{}
			test.mock(monitor)

			svc, err := operations.NewService(operations.ServiceConfig{
				Monitor: monitor,
				Logger:  log.Noop,
			})
			require.NoError(t, err)

			op, err := svc.Get(context.Background(), "op1")

			if test.expErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
				assert.Equal(t, test.expOp, op)
			}

			monitor.AssertExpectations(t)
		})
	}
}

func TestService_List(t *testing.T) {
	monitor := &operationmock.MockMonitor{}
	monitor.On("ListOperations", mock.Anything).Once().Return([]model.Operation{
		{ID: "op1"},
		{ID: "op2"},
	}, nil)

	svc, err := operations.NewService(operations.ServiceConfig{
		Monitor: monitor,
		Logger:  log.Noop,
	})
	require.NoError(t, err)

	ops, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, ops, 2)

	monitor.AssertExpectations(t)
}
