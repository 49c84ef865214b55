package worker

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type mockReconciler struct {
	mock.Mock
}

func (m *mockReconciler) ReconcilePublisherTotals(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func TestNewReconcileWorkerRejectsBadSchedule(t *testing.T) {
	_, err := NewReconcileWorker(&mockReconciler{}, "every now and then", time.Second, nil)
	assert.Error(t, err)
}

func TestReconcileWorkerRunOnce(t *testing.T) {
	reconciler := &mockReconciler{}
	reconciler.On("ReconcilePublisherTotals", mock.Anything).Return(2, nil).Once()
	reconciler.On("ReconcilePublisherTotals", mock.Anything).Return(0, errors.New("store down")).Once()

	w, err := NewReconcileWorker(reconciler, "@hourly", time.Second, zap.NewNop())
	require.NoError(t, err)

	w.runOnce()
	w.runOnce()

	reconciler.AssertNumberOfCalls(t, "ReconcilePublisherTotals", 2)
}

func TestReconcileWorkerStartStop(t *testing.T) {
	w, err := NewReconcileWorker(&mockReconciler{}, "@daily", time.Second, nil)
	require.NoError(t, err)

	w.Start()
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	w.Stop(ctx)

	var nilWorker *ReconcileWorker
	assert.NotPanics(t, func() {
		nilWorker.Start()
		nilWorker.Stop(ctx)
	})
}
