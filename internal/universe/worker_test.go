package universe

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/litescript/ls-stellar/internal/fixed"
	"github.com/litescript/ls-stellar/internal/logging"
)

func pollResult(t *testing.T, w *Worker) Result {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if res, ok := w.Poll(); ok {
			return res
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatal("no result before deadline")
	return Result{}
}

func TestWorkerServesRequest(t *testing.T) {
	u := New(logging.Discard())
	require.NoError(t, u.AddStar(sol()))

	w := StartWorker(u)
	defer w.Close()

	vp := Viewpoint{Position: fixed.FromFloat64s(1.496e11, 0, 0), FovFactor: 1}
	w.Request(vp)

	res := pollResult(t, w)
	require.Equal(t, vp, res.Viewpoint)
	require.Equal(t, 1, res.Bodies)
	require.NotEmpty(t, res.Batches)
	require.Greater(t, res.Duration, time.Duration(0))
}

func TestWorkerCoalescesToLatest(t *testing.T) {
	u := New(logging.Discard())
	require.NoError(t, u.AddStar(sol()))

	w := StartWorker(u)
	defer w.Close()

	var last Viewpoint
	for i := 1; i <= 50; i++ {
		last = Viewpoint{Position: fixed.FromFloat64s(float64(i)*1e11, 0, 0), FovFactor: 1}
		w.Request(last)
	}

	// Intermediate viewpoints may be skipped, but the stream must settle on
	// the most recent one.
	deadline := time.Now().Add(5 * time.Second)
	for {
		res := pollResult(t, w)
		if res.Viewpoint == last {
			break
		}
		require.True(t, time.Now().Before(deadline), "never saw the latest viewpoint")
		w.Request(last)
	}
}

func TestWorkerPollNonBlocking(t *testing.T) {
	u := New(logging.Discard())
	w := StartWorker(u)
	defer w.Close()

	_, ok := w.Poll()
	require.False(t, ok)
}

func TestWorkerCloseStops(t *testing.T) {
	u := New(logging.Discard())
	w := StartWorker(u)

	done := make(chan struct{})
	go func() {
		w.Close()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("worker did not shut down")
	}
}
