package ui

import (
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/reel/internal/debounce"
)

// cmdQueue collects commands produced while handling a message. Update
// drains it into the command it returns.
type cmdQueue struct {
	cmds []tea.Cmd
}

func (q *cmdQueue) push(cmd tea.Cmd) {
	if cmd != nil {
		q.cmds = append(q.cmds, cmd)
	}
}

func (q *cmdQueue) drain() []tea.Cmd {
	cmds := q.cmds
	q.cmds = nil
	return cmds
}

type timerFiredMsg struct {
	id uint64
}

// loopClock is a debounce.Clock whose callbacks run inside Update. Each
// timer is a tea.Tick; a stopped timer's tick still arrives but finds
// nothing registered under its id.
type loopClock struct {
	queue *cmdQueue

	mu     sync.Mutex
	next   uint64
	timers map[uint64]func()
}

func newLoopClock(queue *cmdQueue) *loopClock {
	return &loopClock{queue: queue, timers: make(map[uint64]func())}
}

func (c *loopClock) AfterFunc(d time.Duration, f func()) debounce.Timer {
	c.mu.Lock()
	c.next++
	id := c.next
	c.timers[id] = f
	c.mu.Unlock()

	c.queue.push(tea.Tick(d, func(time.Time) tea.Msg {
		return timerFiredMsg{id: id}
	}))
	return loopTimer{clock: c, id: id}
}

func (c *loopClock) fire(id uint64) {
	c.mu.Lock()
	f, ok := c.timers[id]
	delete(c.timers, id)
	c.mu.Unlock()
	if ok {
		f()
	}
}

type loopTimer struct {
	clock *loopClock
	id    uint64
}

func (t loopTimer) Stop() bool {
	t.clock.mu.Lock()
	defer t.clock.mu.Unlock()
	_, ok := t.clock.timers[t.id]
	delete(t.clock.timers, t.id)
	return ok
}
