package sim

import "testing"

func TestSnapshotEncodeDecode(t *testing.T) {
	w := newTestWorld(t, nil, 60, 5)
	for range 300 {
		w.Step(scriptedInput(int(w.Tick())))
	}

	snap := w.Snapshot()
	data, err := snap.Encode()
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	got, err := DecodeSnapshot(data)
	if err != nil {
		t.Fatalf("DecodeSnapshot() error = %v", err)
	}

	if got.Hash() != snap.Hash() {
		t.Errorf("decoded hash = %x, expected %x", got.Hash(), snap.Hash())
	}
	if len(got.Enemies) != len(snap.Enemies) || got.Tick != 300 {
		t.Errorf("decoded %d enemies at tick %d, expected %d at 300", len(got.Enemies), got.Tick, len(snap.Enemies))
	}
	if got.Faults != snap.Faults {
		t.Errorf("faults = %v, expected %v", got.Faults, snap.Faults)
	}
}

func TestDecodeSnapshotRejectsGarbage(t *testing.T) {
	if _, err := DecodeSnapshot([]byte{0xc1}); err == nil {
		t.Error("DecodeSnapshot(0xc1) error = nil, expected error")
	}
}

func TestSnapshotHashTracksState(t *testing.T) {
	w := newTestWorld(t, unarmed, 60, 5)
	before := w.Snapshot()
	w.Step(scriptedInput(0))
	after := w.Snapshot()

	if before.Hash() == after.Hash() {
		t.Error("hash unchanged after the player moved")
	}
}
