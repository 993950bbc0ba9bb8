package classify

import (
	"math"
	"unicode/utf8"
)

// EmptyIntensity is reported when there are no tokens at all.
const EmptyIntensity = 0.5

// Confidence weights for the multi-dimensional assessment.
const (
	densityWeight = 0.7
	lengthWeight  = 0.3
	fullLength    = 200
)

// Intensity converts emotion-word density into a strength in [0,1].
type Intensity struct {
	Scale  float64
	Offset float64
}

// DefaultIntensity is used by single-text emotion analysis.
func DefaultIntensity() Intensity {
	return Intensity{Scale: 2.0, Offset: 0.3}
}

// DecoderIntensity is used by the relationship decoder.
func DecoderIntensity() Intensity {
	return Intensity{Scale: 3.0}
}

// Of returns min(1, matched/total*Scale + Offset), or EmptyIntensity when
// total is 0. matched may be a weighted hit sum.
func (p Intensity) Of(matched float64, total int) float64 {
	if total == 0 {
		return EmptyIntensity
	}
	return math.Min(1, matched/float64(total)*p.Scale+p.Offset)
}

// Confidence blends token density with text length. It is exactly 0 when
// there are no tokens.
func Confidence(matched, total int, text string) float64 {
	if total == 0 {
		return 0
	}
	density := float64(matched) / float64(total)
	lengthFactor := math.Min(1, float64(utf8.RuneCountInString(text))/fullLength)
	return math.Min(1, density*densityWeight+lengthFactor*lengthWeight)
}
