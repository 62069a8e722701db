package job

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/ygrebnov/job/testkit"
)

// recvWithin waits for ch to be closed or receive a value within d,
// returning false on timeout. Mirrors the teacher's recvStep helper.
func recvWithin(t *testing.T, ch <-chan struct{}, d time.Duration) bool {
	t.Helper()
	select {
	case <-ch:
		return true
	case <-time.After(d):
		return false
	}
}

// S1 — Normal completion.
func TestJob_NormalCompletion(t *testing.T) {
	j, _ := New[int](context.Background())

	var got Result[int]
	var calls int
	j.InvokeOnCompletion(func(r Result[int]) {
		calls++
		got = r
	})

	require.NoError(t, j.ResumeWith(Success(42)))

	require.Equal(t, 1, calls)
	v, ok := got.Value()
	require.True(t, ok)
	require.Equal(t, 42, v)
	require.True(t, j.IsCompleted())
	require.False(t, j.IsActive())
}

// S2 — Late subscriber.
func TestJob_LateSubscriber(t *testing.T) {
	j, _ := New[string](context.Background())
	require.NoError(t, j.ResumeWith(Success("x")))

	var got Result[string]
	var calls int
	h := j.InvokeOnCompletion(func(r Result[string]) {
		calls++
		got = r
	})

	require.Equal(t, 1, calls, "late subscriber must fire synchronously during registration")
	v, ok := got.Value()
	require.True(t, ok)
	require.Equal(t, "x", v)

	require.NotPanics(t, func() { h.Dispose() })
}

// S3 — Cancel then resume: the stored state carries a cancellation error,
// but the completion handler observes the producer's original result.
func TestJob_CancelThenResume(t *testing.T) {
	j, _ := New[int](context.Background())

	var cancelCalls int
	j.InvokeOnCancel(func() { cancelCalls++ })

	var completionCalls int
	var got Result[int]
	j.InvokeOnCompletion(func(r Result[int]) {
		completionCalls++
		got = r
	})

	j.Cancel()
	require.Equal(t, 1, cancelCalls)
	require.Equal(t, 0, completionCalls, "completion handler must not fire on cancel alone")
	require.False(t, j.IsActive())
	require.False(t, j.IsCompleted())

	require.NoError(t, j.ResumeWith(Success(7)))

	require.Equal(t, 1, completionCalls)
	v, ok := got.Value()
	require.True(t, ok, "handler observes the producer's original Success(7), not the stored cancellation error")
	require.Equal(t, 7, v)
	require.Equal(t, 1, cancelCalls, "no further cancel-handler invocations")
	require.True(t, j.IsCompleted())
}

// S4 — Double resume.
func TestJob_DoubleResume(t *testing.T) {
	j, _ := New[int](context.Background())

	var seen []int
	j.InvokeOnCompletion(func(r Result[int]) {
		v, _ := r.Value()
		seen = append(seen, v)
	})

	require.NoError(t, j.ResumeWith(Success(1)))
	err := j.ResumeWith(Success(2))

	require.ErrorIs(t, err, ErrAlreadyCompleted)
	require.Equal(t, []int{1}, seen)
}

// S5 — Parent cancels child.
func TestJob_ParentCancelsChild(t *testing.T) {
	parent, parentCtx := New[struct{}](context.Background())
	child, _ := New[struct{}](parentCtx)

	var cancelCalls int
	child.InvokeOnCancel(func() { cancelCalls++ })

	parent.Cancel()

	require.False(t, child.IsActive())
	require.Equal(t, 1, cancelCalls)

	// A subsequent direct cancel on the child must not double-fire handlers:
	// the child is already Cancelling, so InvokeOnCancel registered now would
	// fire inline, but Cancel() itself is a no-op past Incomplete.
	child.Cancel()
	require.Equal(t, 1, cancelCalls)
}

// Parent cancellation must reach the child's cancel handler before the
// child's own direct Cancel() call becomes a no-op; testkit.OrderRecorder
// makes this assertable without a sleep.
func TestJob_ParentCancelsChild_OrderedBeforeChildCancelNoop(t *testing.T) {
	order := testkit.NewOrderRecorder()

	parent, parentCtx := New[struct{}](context.Background())
	child, _ := New[struct{}](parentCtx)

	child.InvokeOnCancel(func() { order.Record("child-cancelled") })

	parent.Cancel()
	order.Record("parent-cancel-returned")

	child.Cancel() // no-op; child already Cancelling
	order.Record("child-cancel-noop-returned")

	require.True(t, order.Before("child-cancelled", "parent-cancel-returned"))
	require.True(t, order.Before("parent-cancel-returned", "child-cancel-noop-returned"))
}

// S6 — Join after completion with a dead parent.
func TestJob_JoinAfterCompletionWithDeadParent(t *testing.T) {
	parent, parentCtx := New[struct{}](context.Background())
	child, _ := New[struct{}](parentCtx)

	require.NoError(t, child.ResumeWith(Success(struct{}{})))
	parent.Cancel()

	err := child.Join(context.Background())
	require.Error(t, err)
	require.True(t, IsCancelled(err))
}

func TestJob_Join_WaiterCancelled(t *testing.T) {
	j, _ := New[int](context.Background())

	waitCtx, cancelWait := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- j.Join(waitCtx) }()

	cancelWait()

	select {
	case err := <-errCh:
		require.True(t, IsCancelled(err))
	case <-time.After(time.Second):
		t.Fatal("Join did not return after waiter cancellation")
	}

	// The awaited job itself is unaffected by the waiter's cancellation.
	require.True(t, j.IsActive())
	require.NoError(t, j.ResumeWith(Success(1)))
}

func TestJob_Join_ReturnsOnCompletion(t *testing.T) {
	j, _ := New[int](context.Background())

	done := make(chan error, 1)
	go func() { done <- j.Join(context.Background()) }()

	require.NoError(t, j.ResumeWith(Success(9)))

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("Join did not return after completion")
	}
}

func TestJob_InvokeOnCancel_AfterCompletion_FiresInline(t *testing.T) {
	j, _ := New[int](context.Background())
	require.NoError(t, j.ResumeWith(Success(1)))

	var fired bool
	h := j.InvokeOnCancel(func() { fired = true })

	require.True(t, fired, "spec.md §9: cancel callbacks fire inline even for a normally-completed job")
	require.NotPanics(t, func() { h.Dispose() })
}

func TestJob_Remove_IsIdempotent(t *testing.T) {
	j, _ := New[int](context.Background())

	var calls int
	h := j.InvokeOnCompletion(func(Result[int]) { calls++ })

	j.Remove(h)
	j.Remove(h) // second removal is a no-op, not an error

	require.NoError(t, j.ResumeWith(Success(1)))
	require.Equal(t, 0, calls, "removed handler must not fire")
}

func TestJob_ExceptionPropagation_CancelsParentChain(t *testing.T) {
	root, rootCtx := New[struct{}](context.Background())
	mid, midCtx := New[struct{}](rootCtx)
	leaf, _ := New[struct{}](midCtx)

	require.NoError(t, leaf.ResumeWith(Failure[struct{}](errors.New("boom"))))

	require.False(t, mid.IsActive(), "a child failure cancels its parent")
	require.False(t, root.IsActive(), "cancellation recurses up to the root")
}

func TestJob_CancelledError_NeverPropagatesAsFailure(t *testing.T) {
	root, rootCtx := New[struct{}](context.Background())
	child, _ := New[struct{}](rootCtx)

	child.Cancel()
	require.NoError(t, child.ResumeWith(Success(struct{}{})))

	require.True(t, root.IsActive(), "a cancellation outcome must not cancel the parent")
}

func TestJob_RootHandleJobException_ConsultedAsLastResort(t *testing.T) {
	var handled error
	var mu sync.Mutex

	root, rootCtx := New[struct{}](context.Background(), WithJobExceptionHandler(func(_ context.Context, err error) bool {
		mu.Lock()
		handled = err
		mu.Unlock()
		return true
	}))
	_ = root

	leaf, _ := New[struct{}](rootCtx)
	require.NoError(t, leaf.ResumeWith(Failure[struct{}](errors.New("kaboom"))))

	mu.Lock()
	defer mu.Unlock()
	require.Error(t, handled)
	require.Contains(t, handled.Error(), "kaboom")
}

// Property 1 (spec.md §8): under concurrent cancel/resume/invoke*/remove,
// the state only ever traverses the legal edges and every registered
// completion handler fires exactly once.
func TestJob_ConcurrentOperations_ThreadSafety(t *testing.T) {
	const n = 50

	j, _ := New[int](context.Background())

	var mu sync.Mutex
	fires := 0
	j.InvokeOnCompletion(func(Result[int]) {
		mu.Lock()
		fires++
		mu.Unlock()
	})

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			switch i % 3 {
			case 0:
				j.Cancel()
			case 1:
				h := j.InvokeOnCancel(func() {})
				h.Dispose()
			case 2:
				_ = j.ResumeWith(Success(i))
			}
		}(i)
	}
	wg.Wait()

	// Exactly one of the racing ResumeWith calls could have won before
	// cancellation; either way the job must end up Complete.
	require.True(t, j.IsCompleted())
	mu.Lock()
	require.Equal(t, 1, fires)
	mu.Unlock()
}
