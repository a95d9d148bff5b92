package judge

import (
	"context"
	"errors"
	"testing"

	"gitlab.com/fcv-2025.net/submission-judge/internal/adapter/logging"
	"gitlab.com/fcv-2025.net/submission-judge/internal/domain"
	"gitlab.com/fcv-2025.net/submission-judge/internal/static/errs"
)

func TestDispatch(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		executor  *fakeExecutor
		jobs      int
		wantErr   error
		wantCalls int
	}{
		{
			name:      "one handle per job",
			executor:  &fakeExecutor{submitHandles: []domain.JobHandle{"t1", "t2", "t3"}},
			jobs:      3,
			wantCalls: 1,
		},
		{
			name:      "fewer handles than jobs",
			executor:  &fakeExecutor{submitHandles: []domain.JobHandle{"t1"}},
			jobs:      3,
			wantErr:   errs.ErrDispatchInconsistent,
			wantCalls: 1,
		},
		{
			name:      "empty handle",
			executor:  &fakeExecutor{submitHandles: []domain.JobHandle{"t1", ""}},
			jobs:      2,
			wantErr:   errs.ErrDispatchInconsistent,
			wantCalls: 1,
		},
		{
			name:      "transport failure",
			executor:  &fakeExecutor{submitErr: errors.New("connection refused")},
			jobs:      2,
			wantErr:   errs.ErrDispatchUnavailable,
			wantCalls: 1,
		},
		{
			name:     "no jobs",
			executor: &fakeExecutor{},
			jobs:     0,
			wantErr:  errs.ErrNoTestCases,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			metrics := &recordingMetrics{}
			d := NewDispatcher(tt.executor, metrics, logging.NewNop())

			handles, err := d.Dispatch(context.Background(), jobsOf(tt.jobs))
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				if handles != nil {
					t.Fatalf("expected no handles, got %v", handles)
				}
			} else if err != nil {
				t.Fatalf("unexpected error: %v", err)
			} else if len(handles) != tt.jobs {
				t.Fatalf("expected %d handles, got %d", tt.jobs, len(handles))
			}
			if tt.executor.submitCalls != tt.wantCalls {
				t.Fatalf("expected %d batch calls, got %d", tt.wantCalls, tt.executor.submitCalls)
			}
		})
	}
}

func TestDispatchKeepsTypedExecutorErrors(t *testing.T) {
	executor := &fakeExecutor{submitErr: errs.ErrDispatchInconsistent}
	d := NewDispatcher(executor, nil, logging.NewNop())

	_, err := d.Dispatch(context.Background(), jobsOf(1))
	if !errors.Is(err, errs.ErrDispatchInconsistent) {
		t.Fatalf("expected inconsistent, got %v", err)
	}
	if errors.Is(err, errs.ErrDispatchUnavailable) {
		t.Fatalf("typed error must not be rewrapped as unavailable: %v", err)
	}
}
