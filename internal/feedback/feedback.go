// Package feedback aggregates branch messages into one transient status text.
package feedback

import (
	"strings"
	"sync"
	"time"
)

// DefaultDisplayFor is how long a non-empty status text stays visible.
const DefaultDisplayFor = 5000 * time.Millisecond

// Aggregator collects per-branch messages into a single auto-expiring text.
// Each Accumulate supersedes the previous text and cancels its pending
// clear; the expiry timer is keyed to the message generation so a stale
// timer can never clear a newer message.
type Aggregator struct {
	mu         sync.Mutex
	text       string
	generation uint64
	timer      *time.Timer
	displayFor time.Duration
	changes    chan string

	// afterFunc is swapped in tests to drive the clock.
	afterFunc func(d time.Duration, f func()) *time.Timer
}

// New returns an aggregator with the given display duration.
// A non-positive duration falls back to the default.
func New(displayFor time.Duration) *Aggregator {
	if displayFor <= 0 {
		displayFor = DefaultDisplayFor
	}
	return &Aggregator{
		displayFor: displayFor,
		changes:    make(chan string, 1),
		afterFunc:  time.AfterFunc,
	}
}

// Accumulate joins all branch messages into the displayed text. An empty
// message list yields empty text; non-empty text is cleared automatically
// after the display duration unless superseded first.
func (a *Aggregator) Accumulate(messages []string) string {
	text := strings.Join(messages, " ")

	a.mu.Lock()
	if a.timer != nil {
		a.timer.Stop()
		a.timer = nil
	}
	a.generation++
	a.text = text
	gen := a.generation
	if text != "" {
		a.timer = a.afterFunc(a.displayFor, func() {
			a.expire(gen)
		})
	}
	a.mu.Unlock()

	a.publish(text)
	return text
}

// Text returns the currently displayed status text.
func (a *Aggregator) Text() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.text
}

// Changes returns a channel carrying the text after every set or clear.
// Intermediate values may be dropped; the latest value is always delivered.
func (a *Aggregator) Changes() <-chan string {
	return a.changes
}

func (a *Aggregator) expire(gen uint64) {
	a.mu.Lock()
	if gen != a.generation {
		a.mu.Unlock()
		return
	}
	a.text = ""
	a.timer = nil
	a.mu.Unlock()
	a.publish("")
}

func (a *Aggregator) publish(text string) {
	select {
	case a.changes <- text:
	default:
		select {
		case <-a.changes:
		default:
		}
		select {
		case a.changes <- text:
		default:
		}
	}
}
