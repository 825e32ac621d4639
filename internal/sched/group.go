package sched

import (
	"time"

	"github.com/vovakirdan/birthday-arcade/internal/core"
)

// Group tracks the tasks one owner scheduled so they can be cancelled in bulk
// without touching tasks that belong to anyone else on the same scheduler.
type Group struct {
	s   core.Scheduler
	ids map[core.TaskID]struct{}
}

// NewGroup creates a group on top of s.
func NewGroup(s core.Scheduler) *Group {
	return &Group{
		s:   s,
		ids: make(map[core.TaskID]struct{}),
	}
}

// Scheduler returns the underlying scheduler.
func (g *Group) Scheduler() core.Scheduler {
	return g.s
}

// Now returns the scheduler time.
func (g *Group) Now() time.Duration {
	return g.s.Now()
}

// After schedules fn once and tracks it until it runs.
func (g *Group) After(d time.Duration, fn func()) core.TaskID {
	var id core.TaskID
	id = g.s.After(d, func() {
		delete(g.ids, id)
		fn()
	})
	g.ids[id] = struct{}{}
	return id
}

// Every schedules fn repeatedly and tracks it until cancelled.
func (g *Group) Every(d time.Duration, fn func()) core.TaskID {
	id := g.s.Every(d, fn)
	g.ids[id] = struct{}{}
	return id
}

// NextFrame schedules fn for the next frame and tracks it until it runs.
func (g *Group) NextFrame(fn func()) core.TaskID {
	var id core.TaskID
	id = g.s.NextFrame(func() {
		delete(g.ids, id)
		fn()
	})
	g.ids[id] = struct{}{}
	return id
}

// Cancel drops one task.
func (g *Group) Cancel(id core.TaskID) {
	if _, ok := g.ids[id]; !ok {
		return
	}
	delete(g.ids, id)
	g.s.Cancel(id)
}

// CancelAll drops every task the group still tracks.
func (g *Group) CancelAll() {
	for id := range g.ids {
		g.s.Cancel(id)
	}
	clear(g.ids)
}

// Len returns the number of tracked tasks.
func (g *Group) Len() int {
	return len(g.ids)
}

// Post forwards to the scheduler inbox.
func (g *Group) Post(fn func()) {
	g.s.Post(fn)
}
