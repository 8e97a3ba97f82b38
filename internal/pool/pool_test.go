package pool

import (
	"math/rand"
	"testing"
)

type bullet struct {
	id   int
	live bool
}

func newBulletPool(initial int) *Pool[bullet] {
	next := 0
	return New(func() *bullet {
		next++
		return &bullet{id: next}
	}, initial)
}

func TestPoolGetRecycles(t *testing.T) {
	p := newBulletPool(2)

	if p.FreeLen() != 2 {
		t.Errorf("FreeLen() = %d, expected 2", p.FreeLen())
	}

	a := p.Get()
	b := p.Get()
	c := p.Get() // free list empty, factory allocates

	if p.Owned() != 3 {
		t.Errorf("Owned() = %d, expected 3", p.Owned())
	}
	if p.ActiveLen() != 3 {
		t.Errorf("ActiveLen() = %d, expected 3", p.ActiveLen())
	}

	p.Release(b)
	d := p.Get()
	if d != b {
		t.Error("Get() should return the most recently released value")
	}
	if p.Owned() != 3 {
		t.Errorf("recycling should not allocate, Owned() = %d", p.Owned())
	}

	got := p.Active()
	want := []*bullet{a, c, d}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Active()[%d] = %d, expected %d", i, got[i].id, want[i].id)
		}
	}
}

func TestPoolDoubleRelease(t *testing.T) {
	p := newBulletPool(0)
	a := p.Get()

	if !p.Release(a) {
		t.Error("first Release() should succeed")
	}
	if p.Release(a) {
		t.Error("second Release() should be a no-op returning false")
	}
	if p.Release(&bullet{}) {
		t.Error("releasing a foreign value should be a no-op")
	}
	if p.Release(nil) {
		t.Error("releasing nil should be a no-op")
	}
	if p.FreeLen() != 1 {
		t.Errorf("FreeLen() = %d, expected 1", p.FreeLen())
	}
}

func TestPoolOnRelease(t *testing.T) {
	p := newBulletPool(0)
	p.OnRelease = func(b *bullet) { b.live = false }

	a := p.Get()
	a.live = true
	b := p.Get()
	b.live = true

	p.Release(a)
	if a.live {
		t.Error("OnRelease should reset the released value")
	}

	p.ReleaseAll()
	if b.live {
		t.Error("ReleaseAll should run OnRelease on every active value")
	}
	if p.ActiveLen() != 0 || p.FreeLen() != 2 {
		t.Errorf("after ReleaseAll active=%d free=%d, expected 0 and 2", p.ActiveLen(), p.FreeLen())
	}
}

func TestForEachActiveReleaseDuringWalk(t *testing.T) {
	tests := []struct {
		name    string
		release func(p *Pool[bullet], cur *bullet, all []*bullet)
		visited int
	}{
		{
			name:    "release self",
			release: func(p *Pool[bullet], cur *bullet, _ []*bullet) { p.Release(cur) },
			visited: 5,
		},
		{
			name: "release an unvisited value",
			release: func(p *Pool[bullet], cur *bullet, all []*bullet) {
				// Walk is reverse, so all[0] is visited last.
				if cur == all[4] {
					p.Release(all[0])
				}
			},
			visited: 4,
		},
		{
			name: "release everything on first visit",
			release: func(p *Pool[bullet], _ *bullet, _ []*bullet) {
				p.ReleaseAll()
			},
			visited: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newBulletPool(0)
			all := make([]*bullet, 5)
			for i := range all {
				all[i] = p.Get()
			}

			seen := make(map[*bullet]int)
			p.ForEachActive(func(b *bullet) {
				seen[b]++
				tt.release(p, b, all)
			})

			if len(seen) != tt.visited {
				t.Errorf("visited %d values, expected %d", len(seen), tt.visited)
			}
			for b, n := range seen {
				if n != 1 {
					t.Errorf("value %d visited %d times", b.id, n)
				}
			}
		})
	}
}

func TestForEachActiveReverseOrder(t *testing.T) {
	p := newBulletPool(0)
	for range 4 {
		p.Get()
	}

	var order []int
	p.ForEachActive(func(b *bullet) { order = append(order, b.id) })

	want := []int{4, 3, 2, 1}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("visit order = %v, expected %v", order, want)
		}
	}
}

func TestForEachActiveSkipsAcquired(t *testing.T) {
	p := newBulletPool(0)
	p.Get()
	p.Get()

	visits := 0
	p.ForEachActive(func(_ *bullet) {
		visits++
		p.Get()
	})

	if visits != 2 {
		t.Errorf("visits = %d, expected 2", visits)
	}
	if p.ActiveLen() != 4 {
		t.Errorf("ActiveLen() = %d, expected 4", p.ActiveLen())
	}
}

func TestForEachActiveNested(t *testing.T) {
	p := newBulletPool(0)
	for range 3 {
		p.Get()
	}

	pairs := 0
	p.ForEachActive(func(_ *bullet) {
		p.ForEachActive(func(_ *bullet) { pairs++ })
	})
	if pairs != 9 {
		t.Errorf("nested walk visited %d pairs, expected 9", pairs)
	}
}

// Every value the pool ever handed out must be in exactly one of active/free.
func TestPoolRandomSequence(t *testing.T) {
	for seed := int64(1); seed <= 20; seed++ {
		rng := rand.New(rand.NewSource(seed))
		p := newBulletPool(rng.Intn(8))
		var held []*bullet

		for range 500 {
			switch op := rng.Intn(10); {
			case op < 5:
				held = append(held, p.Get())
			case op < 8 && len(held) > 0:
				i := rng.Intn(len(held))
				p.Release(held[i])
				// Keep the stale pointer around sometimes to exercise double release.
				if rng.Intn(2) == 0 {
					held = append(held[:i], held[i+1:]...)
				}
			case op == 8:
				p.ForEachActive(func(b *bullet) {
					if rng.Intn(3) == 0 {
						p.Release(b)
					}
				})
			default:
				if len(held) > 0 {
					p.Release(held[rng.Intn(len(held))])
				}
			}
		}

		inActive := make(map[*bullet]int)
		for _, b := range p.Active() {
			inActive[b]++
		}
		inFree := make(map[*bullet]int)
		for _, b := range p.free {
			inFree[b]++
		}

		for b := range p.member {
			a, f := inActive[b], inFree[b]
			if a+f != 1 {
				t.Fatalf("seed %d: value %d in active %d times and free %d times", seed, b.id, a, f)
			}
			if p.IsActive(b) != (a == 1) {
				t.Fatalf("seed %d: IsActive(%d) disagrees with active list", seed, b.id)
			}
		}
		if p.ActiveLen()+p.FreeLen() != p.Owned() {
			t.Fatalf("seed %d: active %d + free %d != owned %d", seed, p.ActiveLen(), p.FreeLen(), p.Owned())
		}
	}
}
