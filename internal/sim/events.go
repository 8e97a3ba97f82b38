package sim

import "github.com/vovakirdan/horde/internal/entity"

// EventKind selects what a scheduled event does when it comes due.
type EventKind uint8

const (
	EventBlast EventKind = iota // Resolve Blast in this tick's collision pass
	EventSpawn                  // Spawn Count enemies of Archetype around Blast.Pos
	EventWave                   // Run the wave director
)

// String returns the event kind name.
func (k EventKind) String() string {
	switch k {
	case EventBlast:
		return "blast"
	case EventSpawn:
		return "spawn"
	case EventWave:
		return "wave"
	default:
		return "unknown"
	}
}

// Event is a delayed effect owned by the world's countdown list.
type Event struct {
	Kind      EventKind
	Blast     entity.Blast // EventBlast; Pos is also the EventSpawn origin
	Archetype int          // EventSpawn
	Count     int          // EventSpawn
}

// EventID names a scheduled event so it can be cancelled.
type EventID uint64

type scheduled struct {
	id        EventID
	remaining float64
	ev        Event
}

// countdown is the list of pending delayed events. Entries come due in
// scheduling order, so two events due on the same tick fire in the order
// they were scheduled.
type countdown struct {
	entries []scheduled
	nextID  EventID
	due     []Event
}

func (c *countdown) schedule(delay float64, ev Event) EventID {
	c.nextID++
	c.entries = append(c.entries, scheduled{id: c.nextID, remaining: delay, ev: ev})
	return c.nextID
}

func (c *countdown) cancel(id EventID) bool {
	for i := range c.entries {
		if c.entries[i].id == id {
			c.entries = append(c.entries[:i], c.entries[i+1:]...)
			return true
		}
	}
	return false
}

// advance counts every entry down by dt and returns the ones that came due.
// The returned slice is reused by the next call.
func (c *countdown) advance(dt float64) []Event {
	c.due = c.due[:0]
	kept := c.entries[:0]
	for _, s := range c.entries {
		s.remaining -= dt
		if s.remaining <= timerSlack {
			c.due = append(c.due, s.ev)
			continue
		}
		kept = append(kept, s)
	}
	clear(c.entries[len(kept):])
	c.entries = kept
	return c.due
}

func (c *countdown) pending() int {
	return len(c.entries)
}

func (c *countdown) reset() {
	clear(c.entries)
	c.entries = c.entries[:0]
	c.due = c.due[:0]
	c.nextID = 0
}
