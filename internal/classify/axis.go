package classify

import "bemanai/internal/score"

// Axis picks one label from a score vector. Each label is scored by the
// dimension named by its String form. Labels are held in priority order: the
// strictly highest score wins, ties go to the earlier label, and an all-zero
// vector yields the fallback.
type Axis[L Label] struct {
	labels   []L
	fallback L
}

// NewAxis declares an axis with labels in priority order.
func NewAxis[L Label](fallback L, labels ...L) Axis[L] {
	return Axis[L]{labels: append([]L(nil), labels...), fallback: fallback}
}

// Classify returns the winning label for v.
func (a Axis[L]) Classify(v score.Vector) L {
	best, bestScore := a.fallback, 0.0
	for _, l := range a.labels {
		if s := v.Get(l.String()); s > bestScore {
			best, bestScore = l, s
		}
	}
	return best
}

// Dimensions returns the dimension name of every label, in priority order.
func (a Axis[L]) Dimensions() []string {
	names := make([]string, len(a.labels))
	for i, l := range a.labels {
		names[i] = l.String()
	}
	return names
}

// EmotionAxis is the polarity axis: positive > negative > neutral.
func EmotionAxis() Axis[Emotion] {
	return NewAxis(Neutral, Positive, Negative, Neutral)
}

// PrimaryAxis ranks the decoder's emotion patterns.
func PrimaryAxis() Axis[Primary] {
	return NewAxis(PrimaryNeutral, PrimaryPositive, PrimaryNegative, PrimaryRelationship, PrimaryCommunication)
}

// StyleAxis ranks communication styles: assertive > passive > aggressive.
func StyleAxis() Axis[Style] {
	return NewAxis(StyleNeutral, Assertive, Passive, Aggressive)
}
