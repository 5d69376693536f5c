package queue

import (
	"testing"
	"time"

	"github.com/danpilch/sampled/pkg/sampler"
)

func mkSample(util float64) sampler.Sample {
	return sampler.Sample{Time: time.Unix(int64(util*1000), 0), Utilization: util}
}

func TestPushPopFIFO(t *testing.T) {
	q := New(10)

	inputs := []float64{0.1, 0.2, 0.3}
	for _, u := range inputs {
		if err := q.Push(mkSample(u)); err != nil {
			t.Fatalf("Push(%v) error: %v", u, err)
		}
	}

	for _, want := range inputs {
		s, ok := q.Pop()
		if !ok {
			t.Fatal("Pop returned no data on a non-empty queue")
		}
		if s.Utilization != want {
			t.Errorf("Pop order: got %v, want %v", s.Utilization, want)
		}
	}
}

func TestCloseDrainsWithoutLoss(t *testing.T) {
	const n = 25
	q := New(n)

	for i := 0; i < n; i++ {
		if err := q.Push(mkSample(float64(i) / n)); err != nil {
			t.Fatalf("Push #%d error: %v", i, err)
		}
	}
	q.Close()

	var got int
	for {
		s, ok := q.Pop()
		if !ok {
			break
		}
		if want := float64(got) / n; s.Utilization != want {
			t.Errorf("sample %d: got %v, want %v", got, s.Utilization, want)
		}
		got++
	}
	if got != n {
		t.Errorf("drained %d samples, want %d", got, n)
	}

	// Sentinel must repeat once drained.
	if _, ok := q.Pop(); ok {
		t.Error("Pop on a drained, closed queue returned data")
	}
}

func TestPushAfterClose(t *testing.T) {
	q := New(5)
	q.Close()

	if err := q.Push(mkSample(0.5)); err != ErrClosed {
		t.Errorf("Push after Close: got %v, want ErrClosed", err)
	}
}

func TestCloseIdempotent(t *testing.T) {
	q := New(5)
	if err := q.Push(mkSample(0.7)); err != nil {
		t.Fatalf("Push error: %v", err)
	}

	q.Close()
	q.Close()

	s, ok := q.Pop()
	if !ok || s.Utilization != 0.7 {
		t.Errorf("buffered sample lost across double Close: got (%v, %v)", s.Utilization, ok)
	}
}

func TestPushBlocksWhenFull(t *testing.T) {
	q := New(1)
	if err := q.Push(mkSample(0.1)); err != nil {
		t.Fatalf("Push error: %v", err)
	}

	pushed := make(chan error, 1)
	go func() {
		pushed <- q.Push(mkSample(0.2))
	}()

	select {
	case err := <-pushed:
		t.Fatalf("Push on a full queue returned early: %v", err)
	case <-time.After(50 * time.Millisecond):
	}

	if _, ok := q.Pop(); !ok {
		t.Fatal("Pop returned no data")
	}

	select {
	case err := <-pushed:
		if err != nil {
			t.Fatalf("blocked Push error: %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Push did not unblock after Pop made space")
	}
}

func TestPopUnblocksOnClose(t *testing.T) {
	q := New(5)

	done := make(chan bool, 1)
	go func() {
		_, ok := q.Pop()
		done <- ok
	}()

	select {
	case <-done:
		t.Fatal("Pop on an empty open queue returned early")
	case <-time.After(50 * time.Millisecond):
	}

	q.Close()

	select {
	case ok := <-done:
		if ok {
			t.Error("Pop after Close on an empty queue reported data")
		}
	case <-time.After(time.Second):
		t.Fatal("Pop did not unblock after Close")
	}
}

func TestBlockedPushUnblocksOnClose(t *testing.T) {
	q := New(1)
	if err := q.Push(mkSample(0.1)); err != nil {
		t.Fatalf("Push error: %v", err)
	}

	pushed := make(chan error, 1)
	go func() {
		pushed <- q.Push(mkSample(0.2))
	}()

	time.Sleep(50 * time.Millisecond)
	q.Close()

	select {
	case err := <-pushed:
		if err != ErrClosed {
			t.Errorf("blocked Push after Close: got %v, want ErrClosed", err)
		}
	case <-time.After(time.Second):
		t.Fatal("blocked Push did not unblock on Close")
	}

	// The sample buffered before Close must survive.
	if s, ok := q.Pop(); !ok || s.Utilization != 0.1 {
		t.Errorf("buffered sample after Close: got (%v, %v)", s.Utilization, ok)
	}
}

func TestConcurrentProducerConsumer(t *testing.T) {
	const n = 200
	q := New(8)

	go func() {
		for i := 0; i < n; i++ {
			if err := q.Push(mkSample(float64(i) / n)); err != nil {
				t.Errorf("Push #%d error: %v", i, err)
				return
			}
		}
		q.Close()
	}()

	var got int
	for {
		s, ok := q.Pop()
		if !ok {
			break
		}
		if want := float64(got) / n; s.Utilization != want {
			t.Fatalf("sample %d out of order: got %v, want %v", got, s.Utilization, want)
		}
		got++
	}
	if got != n {
		t.Errorf("consumed %d samples, want %d", got, n)
	}
}
