package gamification

import "testing"

func TestLevelFor(t *testing.T) {
	tests := []struct {
		xp   int
		want int
	}{
		{xp: 0, want: 1},
		{xp: 99, want: 1},
		{xp: 100, want: 2},
		{xp: 250, want: 3},
		{xp: -5, want: 1},
	}

	for _, tt := range tests {
		if got := LevelFor(tt.xp); got != tt.want {
			t.Fatalf("LevelFor(%d) = %d, want %d", tt.xp, got, tt.want)
		}
	}
}

func TestProgressFor(t *testing.T) {
	p := ProgressFor(250)
	if p.Level != 3 {
		t.Fatalf("level = %d, want 3", p.Level)
	}
	if p.ProgressToNext != 0.5 {
		t.Fatalf("progress = %f, want 0.5", p.ProgressToNext)
	}

	if got := ProgressFor(0).ProgressToNext; got != 0 {
		t.Fatalf("progress at 0 xp = %f, want 0", got)
	}
}

func TestProgressForIsPure(t *testing.T) {
	for _, xp := range []int{0, 5, 100, 1234} {
		if ProgressFor(xp) != ProgressFor(xp) {
			t.Fatalf("ProgressFor(%d) is not deterministic", xp)
		}
	}
}

func TestAwardFor(t *testing.T) {
	tests := []struct {
		kind   string
		wasSet bool
		isSet  bool
		want   int
	}{
		{kind: "like", wasSet: false, isSet: true, want: XPPerLike},
		{kind: "favorite", wasSet: false, isSet: true, want: XPPerFavorite},
		{kind: "note", wasSet: false, isSet: true, want: XPPerNote},
		{kind: "like", wasSet: false, isSet: false, want: 0},
		{kind: "note", wasSet: false, isSet: false, want: 0},
		{kind: "unknown", wasSet: false, isSet: true, want: 0},
	}

	for _, tt := range tests {
		if got := AwardFor(tt.kind, tt.wasSet, tt.isSet); got != tt.want {
			t.Fatalf("AwardFor(%q, %v, %v) = %d, want %d", tt.kind, tt.wasSet, tt.isSet, got, tt.want)
		}
	}
}

func TestAwardForOnlyOnTransition(t *testing.T) {
	// A like that is already set earns nothing, so toggling the same
	// field over and over cannot accumulate XP.
	if got := AwardFor("like", true, true); got != 0 {
		t.Fatalf("repeated like awarded %d xp, want 0", got)
	}
	if got := AwardFor("like", true, false); got != 0 {
		t.Fatalf("clearing a like awarded %d xp, want 0", got)
	}
	if got := AwardFor("note", true, true); got != 0 {
		t.Fatalf("editing an existing note awarded %d xp, want 0", got)
	}
}
