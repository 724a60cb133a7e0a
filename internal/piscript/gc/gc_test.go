package gc

import (
	"testing"

	"github.com/rolandbrake/piscript/internal/piscript/value"
)

func TestCollectSweepsUnreachableAndKeepsRooted(t *testing.T) {
	g := New()

	rooted := value.NewList(nil)
	garbage := value.NewList(nil)
	g.Register(rooted)
	g.Register(garbage)

	roots := Roots{
		Stack: []value.Value{value.FromObj(rooted)},
	}
	g.Collect(roots)

	if g.LastFreed() != 1 {
		t.Errorf("LastFreed() = %d, want 1 (only the unrooted list)", g.LastFreed())
	}
	if rooted.Color() != value.White {
		t.Errorf("rooted object color = %v, want White after sweep resets survivors", rooted.Color())
	}
}

func TestCollectWalksNestedListMembers(t *testing.T) {
	g := New()

	inner := value.NewList(nil)
	outer := value.NewList([]value.Value{value.FromObj(inner)})
	g.Register(inner)
	g.Register(outer)

	g.Collect(Roots{Stack: []value.Value{value.FromObj(outer)}})

	if g.LastFreed() != 0 {
		t.Errorf("LastFreed() = %d, want 0: inner list is reachable through outer's Items", g.LastFreed())
	}
}

func TestCollectFreesFileHandleOnSweep(t *testing.T) {
	g := New()

	f := &value.FileObj{}
	g.Register(f)

	g.Collect(Roots{})

	if g.LastFreed() != 1 {
		t.Errorf("LastFreed() = %d, want 1", g.LastFreed())
	}
}

func TestShouldCollectCrossesThreshold(t *testing.T) {
	g := New()
	g.SetThreshold(2)

	g.Register(value.NewList(nil))
	if g.ShouldCollect() {
		t.Fatalf("ShouldCollect() = true after 1 registration, want false (threshold 2)")
	}
	g.Register(value.NewList(nil))
	if !g.ShouldCollect() {
		t.Fatalf("ShouldCollect() = false after 2 registrations, want true (threshold 2)")
	}
}

func TestSetThresholdIgnoresNonPositive(t *testing.T) {
	g := New()
	g.SetThreshold(0)
	g.SetThreshold(-5)
	if g.threshold != initialThreshold {
		t.Errorf("threshold = %d, want unchanged default %d", g.threshold, initialThreshold)
	}
}
