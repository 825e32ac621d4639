// Package sched provides the game-thread scheduler: one-shot and repeating
// timers plus next-frame callbacks, all driven by a clock the host advances.
// Hosts call Advance once per rendered frame; tests advance it by hand.
package sched

import (
	"container/heap"
	"sync"
	"time"

	"github.com/vovakirdan/birthday-arcade/internal/core"
)

// MinInterval is the smallest period accepted by Every.
const MinInterval = time.Millisecond

type task struct {
	id       core.TaskID
	at       time.Duration
	interval time.Duration // 0 for one-shot tasks
	seq      uint64
	fn       func()
	index    int
}

// Loop is a core.Scheduler backed by a virtual clock.
// All methods except Post must be called from the game thread.
type Loop struct {
	now     time.Duration
	nextID  core.TaskID
	seq     uint64
	timers  taskHeap
	byID    map[core.TaskID]*task
	frames  []*task
	mu      sync.Mutex // guards inbox
	inbox   []func()
	running bool
}

// NewLoop creates a scheduler with its clock at zero.
func NewLoop() *Loop {
	return &Loop{
		byID: make(map[core.TaskID]*task),
	}
}

var _ core.Scheduler = (*Loop)(nil)

// Now returns the elapsed scheduler time.
func (l *Loop) Now() time.Duration {
	return l.now
}

// After runs fn once, d from now. Non-positive delays fire on the next Advance.
func (l *Loop) After(d time.Duration, fn func()) core.TaskID {
	if d < 0 {
		d = 0
	}
	return l.addTimer(d, 0, fn)
}

// Every runs fn with period d until cancelled.
func (l *Loop) Every(d time.Duration, fn func()) core.TaskID {
	if d < MinInterval {
		d = MinInterval
	}
	return l.addTimer(d, d, fn)
}

func (l *Loop) addTimer(delay, interval time.Duration, fn func()) core.TaskID {
	l.nextID++
	l.seq++
	t := &task{
		id:       l.nextID,
		at:       l.now + delay,
		interval: interval,
		seq:      l.seq,
		fn:       fn,
	}
	heap.Push(&l.timers, t)
	l.byID[t.id] = t
	return t.id
}

// NextFrame runs fn once at the end of the next Advance.
func (l *Loop) NextFrame(fn func()) core.TaskID {
	l.nextID++
	t := &task{id: l.nextID, fn: fn, index: -1}
	l.frames = append(l.frames, t)
	l.byID[t.id] = t
	return t.id
}

// Cancel drops a pending task. Unknown or finished IDs are ignored.
func (l *Loop) Cancel(id core.TaskID) {
	t, ok := l.byID[id]
	if !ok {
		return
	}
	delete(l.byID, id)
	t.fn = nil
	if t.index >= 0 && t.index < len(l.timers) && l.timers[t.index] == t {
		heap.Remove(&l.timers, t.index)
	}
}

// Post queues fn to run at the start of the next Advance.
// It is the only method safe to call from other goroutines.
func (l *Loop) Post(fn func()) {
	l.mu.Lock()
	l.inbox = append(l.inbox, fn)
	l.mu.Unlock()
}

// Pending returns the number of scheduled timers and frame callbacks.
func (l *Loop) Pending() int {
	return len(l.byID)
}

// Advance moves the clock forward by dt. It runs posted functions, then every
// timer that comes due in order of due time, then the frame callbacks that were
// queued before this call. Frame callbacks queued while it runs wait for the
// next Advance.
func (l *Loop) Advance(dt time.Duration) {
	if l.running {
		return
	}
	l.running = true
	defer func() { l.running = false }()

	l.drainInbox()

	target := l.now + dt
	for len(l.timers) > 0 && l.timers[0].at <= target {
		t := heap.Pop(&l.timers).(*task)
		if t.at > l.now {
			l.now = t.at
		}
		fn := t.fn
		if t.interval > 0 {
			t.at += t.interval
			l.seq++
			t.seq = l.seq
			heap.Push(&l.timers, t)
		} else {
			delete(l.byID, t.id)
		}
		if fn != nil {
			fn()
		}
	}
	if target > l.now {
		l.now = target
	}

	frames := l.frames
	l.frames = nil
	for _, t := range frames {
		if t.fn == nil {
			continue
		}
		delete(l.byID, t.id)
		t.fn()
	}
}

func (l *Loop) drainInbox() {
	l.mu.Lock()
	posted := l.inbox
	l.inbox = nil
	l.mu.Unlock()

	for _, fn := range posted {
		fn()
	}
}

// taskHeap orders timers by due time, then by scheduling order.
type taskHeap []*task

func (h taskHeap) Len() int { return len(h) }

func (h taskHeap) Less(i, j int) bool {
	if h[i].at != h[j].at {
		return h[i].at < h[j].at
	}
	return h[i].seq < h[j].seq
}

func (h taskHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}

func (h *taskHeap) Push(x any) {
	t := x.(*task)
	t.index = len(*h)
	*h = append(*h, t)
}

func (h *taskHeap) Pop() any {
	old := *h
	n := len(old)
	t := old[n-1]
	old[n-1] = nil
	t.index = -1
	*h = old[:n-1]
	return t
}
