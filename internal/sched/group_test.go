package sched

import (
	"testing"
	"time"
)

func TestGroupCancelAll(t *testing.T) {
	l := NewLoop()
	g := NewGroup(l)

	mine, theirs := 0, 0
	g.Every(time.Second, func() { mine++ })
	g.After(time.Second, func() { mine++ })
	g.NextFrame(func() { mine++ })
	l.Every(time.Second, func() { theirs++ })

	g.CancelAll()
	l.Advance(3 * time.Second)

	if mine != 0 {
		t.Errorf("group tasks ran %d times after CancelAll", mine)
	}
	if theirs != 3 {
		t.Errorf("foreign task ran %d times, expected 3", theirs)
	}
	if g.Len() != 0 {
		t.Errorf("Len() = %d, expected 0", g.Len())
	}
}

func TestGroupForgetsFinishedTasks(t *testing.T) {
	l := NewLoop()
	g := NewGroup(l)

	g.After(time.Millisecond, func() {})
	g.NextFrame(func() {})
	if g.Len() != 2 {
		t.Fatalf("Len() = %d, expected 2", g.Len())
	}

	l.Advance(time.Second)
	if g.Len() != 0 {
		t.Errorf("Len() = %d after tasks ran, expected 0", g.Len())
	}
}

func TestGroupCancelForeignID(t *testing.T) {
	l := NewLoop()
	g := NewGroup(l)

	ran := false
	id := l.After(time.Second, func() { ran = true })
	g.Cancel(id) // not tracked by the group

	l.Advance(time.Second)
	if !ran {
		t.Error("group should not cancel tasks it did not schedule")
	}
}
