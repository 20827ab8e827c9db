package metrics

import (
	"testing"
	"time"
)

func TestObserveAggregates(t *testing.T) {
	rec := NewRecorder("")
	rec.Observe("execute", true, 120*time.Millisecond)
	rec.Observe("execute", true, 80*time.Millisecond)
	rec.Observe("execute", false, 10*time.Millisecond)
	rec.Observe("", true, time.Second)

	snap := rec.Snapshot()
	if got := snap.DurationsMS["execute"]; got != 210 {
		t.Fatalf("duration total = %v", got)
	}
	if snap.Results["execute"]["success"] != 2 || snap.Results["execute"]["error"] != 1 {
		t.Fatalf("results = %v", snap.Results)
	}
	if _, ok := snap.Results[""]; ok {
		t.Fatalf("empty stage must be ignored")
	}
}

func TestGeneratedNamesAreUnique(t *testing.T) {
	if NewRecorder("").Name() == NewRecorder("").Name() {
		t.Fatalf("generated names collide")
	}
}
