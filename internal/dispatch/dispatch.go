// Package dispatch notifies chart consumers about derived dataset changes.
package dispatch

import (
	"sync"

	"github.com/verte-zerg/tsdash/internal/model"
)

// Consumer identifies one chart consumer.
type Consumer int

// Chart consumers.
const (
	LineSeries Consumer = iota
	Histogram
	Correlogram
	NumericSummary
	BoxPlot
	consumerCount
)

// Consumers lists every chart consumer.
var Consumers = []Consumer{LineSeries, Histogram, Correlogram, NumericSummary, BoxPlot}

// Notification is sent to subscribers when consumers should re-render.
type Notification struct {
	// Versions holds the current version of every consumer. A consumer
	// re-renders when its version moved past the last one it rendered.
	Versions map[Consumer]uint64
	// Variant is the currently selected line chart series.
	Variant model.Variant
}

// Dispatcher tracks a monotonically increasing version per consumer and a
// separate selected-variant signal for the line chart.
type Dispatcher struct {
	mu       sync.Mutex
	versions [consumerCount]uint64
	variant  model.Variant
	subs     []chan Notification
}

// New returns a dispatcher with the base variant selected.
func New() *Dispatcher {
	return &Dispatcher{variant: model.VariantBase}
}

// Subscribe registers a consumer-side channel. Notifications are dropped,
// not queued, when the subscriber is not ready; versions make missed
// notifications harmless.
func (d *Dispatcher) Subscribe() <-chan Notification {
	d.mu.Lock()
	defer d.mu.Unlock()
	ch := make(chan Notification, 1)
	d.subs = append(d.subs, ch)
	return ch
}

// Publish bumps every consumer version after a settled run, regardless of
// which branches succeeded, and notifies subscribers.
func (d *Dispatcher) Publish() {
	d.mu.Lock()
	defer d.mu.Unlock()
	for i := range d.versions {
		d.versions[i]++
	}
	d.notifyLocked(d.snapshot())
}

// SetVariant changes the selected line chart series. Only the line-series
// consumer version moves; other consumers are unaffected.
func (d *Dispatcher) SetVariant(v model.Variant) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.variant == v {
		return
	}
	d.variant = v
	d.versions[LineSeries]++
	d.notifyLocked(d.snapshot())
}

// Variant returns the currently selected line chart series.
func (d *Dispatcher) Variant() model.Variant {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.variant
}

// Version returns the current version of a consumer.
func (d *Dispatcher) Version(c Consumer) uint64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	if c < 0 || c >= consumerCount {
		return 0
	}
	return d.versions[c]
}

func (d *Dispatcher) snapshot() Notification {
	versions := make(map[Consumer]uint64, consumerCount)
	for _, c := range Consumers {
		versions[c] = d.versions[c]
	}
	return Notification{Versions: versions, Variant: d.variant}
}

// notifyLocked sends under d.mu so concurrent Publish/SetVariant calls
// cannot leave an older snapshot in a subscriber's buffer last. Sends never
// block, so holding the mutex here is safe.
func (d *Dispatcher) notifyLocked(n Notification) {
	for _, ch := range d.subs {
		select {
		case ch <- n:
		default:
			// Drain the stale notification and replace it with the
			// latest one so subscribers always see current versions.
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- n:
			default:
			}
		}
	}
}
