package models

// UrgencyLevel is the coarse triage classification assigned to an
// assistant response. Levels are ordinal: high > medium > low.
type UrgencyLevel string

const (
	UrgencyLow    UrgencyLevel = "low"
	UrgencyMedium UrgencyLevel = "medium"
	UrgencyHigh   UrgencyLevel = "high"
)

// Valid reports whether the level is one of the known values.
func (u UrgencyLevel) Valid() bool {
	switch u {
	case UrgencyLow, UrgencyMedium, UrgencyHigh:
		return true
	}
	return false
}

// Rank returns the ordinal position of the level. Unknown levels rank
// below low so they never win a max aggregation.
func (u UrgencyLevel) Rank() int {
	switch u {
	case UrgencyHigh:
		return 3
	case UrgencyMedium:
		return 2
	case UrgencyLow:
		return 1
	}
	return 0
}

// MaxUrgency returns the highest-ranked level in the slice, or low when
// the slice is empty. Used by session summaries, which report the worst
// level ever observed rather than the latest one.
func MaxUrgency(levels []UrgencyLevel) UrgencyLevel {
	max := UrgencyLow
	for _, l := range levels {
		if l.Rank() > max.Rank() {
			max = l
		}
	}
	return max
}
