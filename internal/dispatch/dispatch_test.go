package dispatch

import (
	"sync"
	"testing"

	"github.com/verte-zerg/tsdash/internal/model"
)

func TestPublishBumpsEveryConsumer(t *testing.T) {
	d := New()
	d.Publish()
	for _, c := range Consumers {
		if got := d.Version(c); got != 1 {
			t.Fatalf("Version(%d) = %d after Publish, want 1", c, got)
		}
	}
	d.Publish()
	for _, c := range Consumers {
		if got := d.Version(c); got != 2 {
			t.Fatalf("Version(%d) = %d after two Publish, want 2", c, got)
		}
	}
}

func TestSetVariantBumpsOnlyLineSeries(t *testing.T) {
	d := New()
	d.SetVariant(model.VariantTrend)
	if got := d.Version(LineSeries); got != 1 {
		t.Fatalf("Version(LineSeries) = %d, want 1", got)
	}
	for _, c := range []Consumer{Histogram, Correlogram, NumericSummary, BoxPlot} {
		if got := d.Version(c); got != 0 {
			t.Fatalf("Version(%d) = %d after SetVariant, want 0", c, got)
		}
	}
	if got := d.Variant(); got != model.VariantTrend {
		t.Fatalf("Variant() = %s, want trend", got)
	}
}

func TestSetVariantSameIsNoop(t *testing.T) {
	d := New()
	d.SetVariant(model.VariantBase)
	if got := d.Version(LineSeries); got != 0 {
		t.Fatalf("Version(LineSeries) = %d after no-op SetVariant, want 0", got)
	}
}

func TestSubscribeReceivesNotification(t *testing.T) {
	d := New()
	ch := d.Subscribe()
	d.Publish()

	n := <-ch
	if n.Variant != model.VariantBase {
		t.Fatalf("notification variant = %s, want base", n.Variant)
	}
	for _, c := range Consumers {
		if n.Versions[c] != 1 {
			t.Fatalf("notification version[%d] = %d, want 1", c, n.Versions[c])
		}
	}
}

func TestSlowSubscriberSeesLatestVersions(t *testing.T) {
	d := New()
	ch := d.Subscribe()

	// Subscriber is not draining; later notifications replace the stale one.
	d.Publish()
	d.Publish()
	d.SetVariant(model.VariantStationary)

	n := <-ch
	if n.Versions[LineSeries] != 3 {
		t.Fatalf("latest notification version[LineSeries] = %d, want 3", n.Versions[LineSeries])
	}
	if n.Versions[Histogram] != 2 {
		t.Fatalf("latest notification version[Histogram] = %d, want 2", n.Versions[Histogram])
	}
	if n.Variant != model.VariantStationary {
		t.Fatalf("latest notification variant = %s, want stationary", n.Variant)
	}
	select {
	case extra := <-ch:
		t.Fatalf("unexpected queued notification: %+v", extra)
	default:
	}
}

func TestConcurrentPublishLeavesLatestSnapshot(t *testing.T) {
	d := New()
	ch := d.Subscribe()

	const goroutines = 4
	const publishes = 25
	var wg sync.WaitGroup
	wg.Add(goroutines)
	for g := 0; g < goroutines; g++ {
		go func() {
			defer wg.Done()
			for i := 0; i < publishes; i++ {
				d.Publish()
			}
		}()
	}
	wg.Wait()

	// Whatever interleaving happened, the buffered notification must be
	// the final snapshot, never an older one left behind by a racing send.
	n := <-ch
	for _, c := range Consumers {
		if n.Versions[c] != goroutines*publishes {
			t.Fatalf("notification version[%d] = %d, want %d", c, n.Versions[c], goroutines*publishes)
		}
	}
}
