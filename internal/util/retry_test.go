package util

import (
	"context"
	"errors"
	"testing"
)

func TestRetryWithContext(t *testing.T) {
	tests := []struct {
		name      string
		maxTries  int
		failUntil int
		want      int
		wantErr   bool
		wantCalls int
	}{
		{
			name:      "succeeds first try",
			maxTries:  3,
			failUntil: 0,
			want:      42,
			wantCalls: 1,
		},
		{
			name:      "succeeds after retries",
			maxTries:  3,
			failUntil: 2,
			want:      42,
			wantCalls: 3,
		},
		{
			name:      "exhausts retries",
			maxTries:  3,
			failUntil: 5,
			wantErr:   true,
			wantCalls: 3,
		},
		{
			name:      "non-positive maxTries defaults to one",
			maxTries:  0,
			failUntil: 0,
			want:      42,
			wantCalls: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			got, err := RetryWithContext(context.Background(), tt.maxTries, func(ctx context.Context) (int, error) {
				calls++
				if calls <= tt.failUntil {
					return 0, errors.New("transient")
				}
				return 42, nil
			})

			if tt.wantErr {
				if err == nil {
					t.Fatalf("RetryWithContext() error = nil, want error")
				}
			} else {
				if err != nil {
					t.Fatalf("RetryWithContext() error = %v", err)
				}
				if got != tt.want {
					t.Errorf("RetryWithContext() = %d, want %d", got, tt.want)
				}
			}
			if calls != tt.wantCalls {
				t.Errorf("fn called %d times, want %d", calls, tt.wantCalls)
			}
		})
	}
}

func TestRetryWithContextCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	calls := 0
	_, err := RetryWithContext(ctx, 5, func(ctx context.Context) (int, error) {
		calls++
		return 0, errors.New("transient")
	})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("RetryWithContext() error = %v, want context.Canceled", err)
	}
	if calls != 0 {
		t.Errorf("fn called %d times after cancellation, want 0", calls)
	}
}

func TestRetryErrWithContext(t *testing.T) {
	calls := 0
	err := RetryErrWithContext(context.Background(), 3, func(ctx context.Context) error {
		calls++
		if calls < 2 {
			return errors.New("transient")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("RetryErrWithContext() error = %v", err)
	}
	if calls != 2 {
		t.Errorf("fn called %d times, want 2", calls)
	}
}

func TestRetryErrWithContextStopsOnDeadline(t *testing.T) {
	calls := 0
	err := RetryErrWithContext(context.Background(), 5, func(ctx context.Context) error {
		calls++
		return context.DeadlineExceeded
	})
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("RetryErrWithContext() error = %v, want context.DeadlineExceeded", err)
	}
	if calls != 1 {
		t.Errorf("fn called %d times, want 1 (deadline errors are not retried)", calls)
	}
}
