package tick

import (
	"strings"
	"testing"
	"time"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time { return c.t }

func newQueue() (*Queue, *fakeClock) {
	clk := &fakeClock{t: time.Unix(1000, 0)}
	return &Queue{Now: clk.now}, clk
}

func TestRunDueOrder(t *testing.T) {
	q, clk := newQueue()
	var got []string
	q.After(30*time.Millisecond, func() { got = append(got, "c") })
	q.After(10*time.Millisecond, func() { got = append(got, "a") })
	q.After(10*time.Millisecond, func() { got = append(got, "b") })

	if n := q.RunDue(clk.t.Add(5 * time.Millisecond)); n != 0 {
		t.Fatalf("RunDue before anything is due ran %d", n)
	}
	if n := q.RunDue(clk.t.Add(10 * time.Millisecond)); n != 2 {
		t.Fatalf("RunDue at 10ms ran %d, want 2", n)
	}
	if q.Len() != 1 {
		t.Errorf("Len() = %d, want 1", q.Len())
	}
	q.RunDue(clk.t.Add(time.Second))
	if want := "a b c"; strings.Join(got, " ") != want {
		t.Errorf("order = %q, want %q", strings.Join(got, " "), want)
	}
}

func TestRunDueDefersNewCallbacks(t *testing.T) {
	q, clk := newQueue()
	runs := 0
	var again func()
	again = func() {
		runs++
		q.After(0, again)
	}
	q.After(0, again)
	if n := q.RunDue(clk.t); n != 1 {
		t.Errorf("RunDue ran %d, want 1", n)
	}
	if runs != 1 || q.Len() != 1 {
		t.Errorf("runs = %d, Len = %d; want 1, 1", runs, q.Len())
	}
}

func TestDrainRunsChains(t *testing.T) {
	q, _ := newQueue()
	remaining := 5
	var step func()
	step = func() {
		remaining--
		if remaining > 0 {
			q.After(time.Hour, step)
		}
	}
	q.After(time.Hour, step)
	if n := q.Drain(); n != 5 {
		t.Errorf("Drain() = %d, want 5", n)
	}
	if remaining != 0 || q.Len() != 0 {
		t.Errorf("remaining = %d, Len = %d", remaining, q.Len())
	}
	if q.Step() {
		t.Error("Step on empty queue reported a run")
	}
}

func TestClear(t *testing.T) {
	q, _ := newQueue()
	ran := false
	q.After(0, func() { ran = true })
	q.Clear()
	q.Drain()
	if ran {
		t.Error("cleared callback ran")
	}
}
