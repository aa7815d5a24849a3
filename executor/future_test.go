package executor

import (
	"errors"
	"testing"
	"time"
)

func TestImmediateFuture_Properties(t *testing.T) {
	future := NewImmediate("done")

	if !future.Done() {
		t.Error("immediate future must be done")
	}
	if future.Cancel() {
		t.Error("immediate future must not be cancellable")
	}
	if future.Cancelled() {
		t.Error("immediate future must not report cancelled")
	}
	if future.Running() {
		t.Error("immediate future must not report running")
	}
	if err := future.Err(); err != nil {
		t.Errorf("expected nil error, got %v", err)
	}
}

func TestImmediateFuture_GetNeverBlocks(t *testing.T) {
	future := NewImmediate(42)

	// First and all subsequent calls return the stored value.
	for range 3 {
		result, err := future.Get()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result != 42 {
			t.Errorf("expected 42, got %d", result)
		}
	}

	result, err := future.GetWithTimeout(time.Nanosecond)
	if err != nil {
		t.Fatalf("timeout must be ignored, got %v", err)
	}
	if result != 42 {
		t.Errorf("expected 42, got %d", result)
	}
}

func TestImmediateFuture_OnDone(t *testing.T) {
	future := NewImmediate("x")

	calls := 0
	future.OnDone(func(f *ImmediateFuture[string]) {
		calls++
		if f != future {
			t.Error("callback must receive the future itself")
		}
	})
	if calls != 1 {
		t.Errorf("callback invoked %d times, want exactly 1 before OnDone returns", calls)
	}
}

func TestTaskFuture_WriteThenSignal(t *testing.T) {
	future := newTaskFuture(func(r *trackedResource, arg int) (int, error) {
		return arg, nil
	}, 0)

	if future.Done() {
		t.Fatal("fresh task future must be pending")
	}

	go func() {
		time.Sleep(10 * time.Millisecond)
		future.fill(99, nil)
	}()

	result, err := future.Get()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result != 99 {
		t.Errorf("expected 99, got %d", result)
	}
	if !future.Done() {
		t.Error("filled future must report done")
	}

	// Repeated reads observe the same outcome.
	if again, _ := future.Get(); again != 99 {
		t.Errorf("second Get returned %d, want 99", again)
	}
}

func TestTaskFuture_ErrorIdentityPreserved(t *testing.T) {
	sentinel := errors.New("original failure")
	wrapped := errors.Join(errors.New("context"), sentinel)

	future := newTaskFuture(func(r *trackedResource, arg int) (int, error) {
		return 0, nil
	}, 0)
	go future.fill(0, wrapped)

	_, err := future.Get()
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, sentinel) {
		t.Errorf("error chain lost: %v", err)
	}
}

func TestTaskFuture_GetWithTimeout(t *testing.T) {
	t.Run("expiry leaves future pending", func(t *testing.T) {
		future := newTaskFuture(func(r *trackedResource, arg int) (int, error) {
			return 0, nil
		}, 0)

		if _, err := future.GetWithTimeout(5 * time.Millisecond); !errors.Is(err, ErrResultTimeout) {
			t.Fatalf("expected ErrResultTimeout, got %v", err)
		}
		if future.Done() {
			t.Error("future must stay pending after expiry")
		}

		future.fill(1, nil)
		if result, err := future.Get(); err != nil || result != 1 {
			t.Errorf("later Get must observe the real outcome, got %d (err %v)", result, err)
		}
	})

	t.Run("non-positive timeout waits indefinitely", func(t *testing.T) {
		future := newTaskFuture(func(r *trackedResource, arg int) (int, error) {
			return 0, nil
		}, 0)
		go future.fill(3, nil)

		result, err := future.GetWithTimeout(0)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result != 3 {
			t.Errorf("expected 3, got %d", result)
		}
	})
}

func TestPanicError_Unwrap(t *testing.T) {
	inner := errors.New("inner cause")

	withErr := &PanicError{Value: inner, Stack: []byte("stack")}
	if !errors.Is(withErr, inner) {
		t.Error("panic with an error value must unwrap to it")
	}

	withString := &PanicError{Value: "boom", Stack: []byte("stack")}
	if errors.Unwrap(withString) != nil {
		t.Error("panic with a non-error value must not unwrap")
	}
}
