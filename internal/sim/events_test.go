package sim

import "testing"

func TestCountdownOrder(t *testing.T) {
	var c countdown
	c.schedule(0.1, Event{Kind: EventBlast, Count: 1})
	c.schedule(0.05, Event{Kind: EventSpawn, Count: 2})
	c.schedule(0.1, Event{Kind: EventWave, Count: 3})

	due := c.advance(0.05)
	if len(due) != 1 || due[0].Count != 2 {
		t.Fatalf("first advance = %+v, expected the spawn event", due)
	}

	due = c.advance(0.05)
	if len(due) != 2 {
		t.Fatalf("second advance returned %d events, expected 2", len(due))
	}
	if due[0].Count != 1 || due[1].Count != 3 {
		t.Errorf("due order = %d, %d, expected scheduling order 1, 3", due[0].Count, due[1].Count)
	}
	if c.pending() != 0 {
		t.Errorf("pending() = %d, expected 0", c.pending())
	}
}

func TestCountdownCancel(t *testing.T) {
	var c countdown
	id := c.schedule(0.5, Event{Kind: EventBlast})
	keep := c.schedule(0.5, Event{Kind: EventWave})

	if !c.cancel(id) {
		t.Fatal("cancel() = false, expected true")
	}
	if c.cancel(id) {
		t.Error("second cancel() = true, expected false")
	}

	due := c.advance(1)
	if len(due) != 1 || due[0].Kind != EventWave {
		t.Errorf("advance = %+v, expected only the wave event", due)
	}
	if c.cancel(keep) {
		t.Error("cancel() of a fired event = true, expected false")
	}
}

func TestCountdownSummedSteps(t *testing.T) {
	// 30 steps of 1/60 must complete a 0.5s delay despite float error.
	var c countdown
	c.schedule(0.5, Event{Kind: EventBlast})

	for i := 1; i <= 30; i++ {
		due := c.advance(1.0 / 60)
		if i < 30 && len(due) != 0 {
			t.Fatalf("event fired early at step %d", i)
		}
		if i == 30 && len(due) != 1 {
			t.Fatalf("event did not fire at step 30")
		}
	}
}

func TestEventKindString(t *testing.T) {
	tests := []struct {
		kind     EventKind
		expected string
	}{
		{EventBlast, "blast"},
		{EventSpawn, "spawn"},
		{EventWave, "wave"},
		{EventKind(99), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.expected {
			t.Errorf("EventKind(%d).String() = %q, expected %q", tt.kind, got, tt.expected)
		}
	}
}
