package gamification

// XP awards per interaction. Likes and favorites are cheap signals; a
// written note is worth more.
const (
	XPPerLike     = 5
	XPPerFavorite = 5
	XPPerNote     = 15

	xpPerLevel = 100
)

// Progress is the derived leveling state for a cumulative XP total.
type Progress struct {
	XP             int     `json:"xp"`
	Level          int     `json:"level"`
	ProgressToNext float64 `json:"progress_to_next"`
}

// LevelFor maps cumulative XP to a 1-indexed level. Pure function: all
// leveling state derives from the monotonic XP counter, never from
// incremental mutations.
func LevelFor(xp int) int {
	if xp < 0 {
		xp = 0
	}
	return xp/xpPerLevel + 1
}

// ProgressFor derives the full leveling state for a cumulative XP total.
// ProgressToNext is the fraction [0,1) of the way to the next level.
func ProgressFor(xp int) Progress {
	if xp < 0 {
		xp = 0
	}
	return Progress{
		XP:             xp,
		Level:          LevelFor(xp),
		ProgressToNext: float64(xp%xpPerLevel) / float64(xpPerLevel),
	}
}

// AwardFor returns the XP granted for one interaction mutation. Points
// are due only when the field flips from unset to set. Re-sending an
// already set value, clearing a field, or posting an empty note earns
// nothing, so repeating the same request never accumulates XP.
func AwardFor(interactionType string, wasSet, isSet bool) int {
	if wasSet || !isSet {
		return 0
	}
	switch interactionType {
	case "like":
		return XPPerLike
	case "favorite":
		return XPPerFavorite
	case "note":
		return XPPerNote
	}
	return 0
}
