package meta

import "testing"

func TestTracker_SetStream(t *testing.T) {
	var tr Tracker
	if tr.HasStream() {
		t.Fatal("expected no stream before SetStream")
	}
	tr.SetStream(7)
	if !tr.HasStream() {
		t.Fatal("expected stream after SetStream")
	}
	if tr.StreamNo() != 7 {
		t.Errorf("StreamNo() = %d, want 7", tr.StreamNo())
	}
}

func TestTracker_PauseResume(t *testing.T) {
	var tr Tracker
	tr.SetStream(1)

	if !tr.Observe(1000, []byte(`{"c":"pause"}`)) {
		t.Fatal("expected pause to be recognized")
	}
	if tr.Offset() != 0 {
		t.Errorf("Offset() = %d, want 0 mid-pause", tr.Offset())
	}

	if !tr.Observe(5000, []byte(`{"c":"resume"}`)) {
		t.Fatal("expected resume to be recognized")
	}
	if tr.Offset() != 4000 {
		t.Errorf("Offset() = %d, want 4000", tr.Offset())
	}
}

func TestTracker_MultiplePauses(t *testing.T) {
	var tr Tracker
	tr.SetStream(1)

	tr.Observe(1000, []byte(`{"c":"pause"}`))
	tr.Observe(3000, []byte(`{"c":"resume"}`))
	tr.Observe(8000, []byte(`{"c":"pause"}`))
	tr.Observe(8500, []byte(`{"c":"resume"}`))

	if want := uint64(2000 + 500); tr.Offset() != want {
		t.Errorf("Offset() = %d, want %d", tr.Offset(), want)
	}
}

func TestTracker_ResumeWithoutPauseIgnored(t *testing.T) {
	var tr Tracker
	tr.SetStream(1)
	tr.Observe(5000, []byte(`{"c":"resume"}`))
	if tr.Offset() != 0 {
		t.Errorf("Offset() = %d, want 0", tr.Offset())
	}
}

func TestTracker_PrefixMatchPermissive(t *testing.T) {
	var tr Tracker
	tr.SetStream(1)
	if !tr.Observe(100, []byte(`{"c":"pause"} trailing garbage`)) {
		t.Error("expected prefix match to recognize pause despite trailing bytes")
	}
}

func TestTracker_UnrecognizedPacket(t *testing.T) {
	var tr Tracker
	tr.SetStream(1)
	if tr.Observe(100, []byte(`{"c":"unknown"}`)) {
		t.Error("expected unrecognized control packet to return false")
	}
}
