// Package classify maps score vectors to closed label sets and normalized
// strength values.
//
// Every classifier output is a small int-backed enum with String and JSON
// methods; the zero value of the emotion and health enums is "unknown" and
// only ever appears on error records.
package classify

import (
	"encoding/json"
	"fmt"
)

// Label is implemented by every enum in this package.
type Label interface {
	comparable
	String() string
}

func labelName(names []string, i int, kind string) string {
	if i >= 0 && i < len(names) {
		return names[i]
	}
	return fmt.Sprintf("%s(%d)", kind, i)
}

func parseLabel[L ~int](names []string, s, kind string) (L, error) {
	for i, n := range names {
		if n == s {
			return L(i), nil
		}
	}
	return 0, fmt.Errorf("classify: unknown %s %q", kind, s)
}

func unmarshalLabel[L ~int](data []byte, names []string, kind string) (L, error) {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return 0, err
	}
	return parseLabel[L](names, s, kind)
}

// Emotion is the polarity of a text.
type Emotion int

const (
	EmotionUnknown Emotion = iota
	Positive
	Negative
	Neutral
)

var emotionNames = []string{"unknown", "positive", "negative", "neutral"}

func (e Emotion) String() string { return labelName(emotionNames, int(e), "Emotion") }

func (e Emotion) MarshalJSON() ([]byte, error) { return json.Marshal(e.String()) }

func (e *Emotion) UnmarshalJSON(data []byte) error {
	v, err := unmarshalLabel[Emotion](data, emotionNames, "emotion")
	if err != nil {
		return err
	}
	*e = v
	return nil
}

// ParseEmotion parses the String form of an Emotion.
func ParseEmotion(s string) (Emotion, error) { return parseLabel[Emotion](emotionNames, s, "emotion") }

// Primary is the dominant emotion pattern found by the decoder.
type Primary int

const (
	PrimaryUnknown Primary = iota
	PrimaryPositive
	PrimaryNegative
	PrimaryRelationship
	PrimaryCommunication
	PrimaryNeutral
)

var primaryNames = []string{
	"unknown",
	"positive_emotions",
	"negative_emotions",
	"relationship_emotions",
	"communication_patterns",
	"neutral",
}

func (p Primary) String() string { return labelName(primaryNames, int(p), "Primary") }

func (p Primary) MarshalJSON() ([]byte, error) { return json.Marshal(p.String()) }

func (p *Primary) UnmarshalJSON(data []byte) error {
	v, err := unmarshalLabel[Primary](data, primaryNames, "primary emotion")
	if err != nil {
		return err
	}
	*p = v
	return nil
}

// HealthLevel bands an overall relationship score.
type HealthLevel int

const (
	LevelUnknown HealthLevel = iota
	Excellent
	Good
	Fair
	Poor
	Critical
)

var levelNames = []string{"unknown", "excellent", "good", "fair", "poor", "critical"}

func (l HealthLevel) String() string { return labelName(levelNames, int(l), "HealthLevel") }

func (l HealthLevel) MarshalJSON() ([]byte, error) { return json.Marshal(l.String()) }

func (l *HealthLevel) UnmarshalJSON(data []byte) error {
	v, err := unmarshalLabel[HealthLevel](data, levelNames, "health level")
	if err != nil {
		return err
	}
	*l = v
	return nil
}

// Style is the communication style of a message.
type Style int

const (
	StyleNeutral Style = iota
	Assertive
	Passive
	Aggressive
)

var styleNames = []string{"neutral", "assertive", "passive", "aggressive"}

func (s Style) String() string { return labelName(styleNames, int(s), "Style") }

func (s Style) MarshalJSON() ([]byte, error) { return json.Marshal(s.String()) }

func (s *Style) UnmarshalJSON(data []byte) error {
	v, err := unmarshalLabel[Style](data, styleNames, "style")
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// RiskLevel grades moderated content.
type RiskLevel int

const (
	RiskLow RiskLevel = iota
	RiskMedium
	RiskHigh
	RiskExtreme
)

var riskNames = []string{"low", "medium", "high", "extreme"}

func (r RiskLevel) String() string { return labelName(riskNames, int(r), "RiskLevel") }

func (r RiskLevel) MarshalJSON() ([]byte, error) { return json.Marshal(r.String()) }

func (r *RiskLevel) UnmarshalJSON(data []byte) error {
	v, err := unmarshalLabel[RiskLevel](data, riskNames, "risk level")
	if err != nil {
		return err
	}
	*r = v
	return nil
}
