package classify

import (
	"bemanai/internal/score"
	"encoding/json"
	"math"
	"reflect"
	"testing"
)

func vec(kv ...any) score.Vector {
	v := score.Vector{}
	for i := 0; i < len(kv); i += 2 {
		v = append(v, score.Entry{Dimension: kv[i].(string), Value: kv[i+1].(float64)})
	}
	return v
}

func TestEmotionAxis(t *testing.T) {
	axis := EmotionAxis()
	tests := []struct {
		name string
		v    score.Vector
		want Emotion
	}{
		{"positive wins", vec("positive", 2.0, "negative", 1.0, "neutral", 0.0), Positive},
		{"negative wins", vec("positive", 0.0, "negative", 3.0, "neutral", 1.0), Negative},
		{"neutral wins", vec("positive", 0.0, "negative", 0.0, "neutral", 1.0), Neutral},
		{"tie goes to positive", vec("positive", 1.0, "negative", 1.0, "neutral", 1.0), Positive},
		{"tie negative over neutral", vec("positive", 0.0, "negative", 2.0, "neutral", 2.0), Negative},
		{"all zero falls back", vec("positive", 0.0, "negative", 0.0, "neutral", 0.0), Neutral},
		{"empty vector falls back", score.Vector{}, Neutral},
		{"order of entries is irrelevant", vec("neutral", 1.0, "negative", 1.0, "positive", 1.0), Positive},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := axis.Classify(tt.v); got != tt.want {
				t.Errorf("Classify = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestStyleAxisFallback(t *testing.T) {
	axis := StyleAxis()
	if got := axis.Classify(vec("aggressive", 0.0)); got != StyleNeutral {
		t.Errorf("Classify = %v, want neutral", got)
	}
	if got := axis.Classify(vec("passive", 1.0, "aggressive", 1.0)); got != Passive {
		t.Errorf("Classify = %v, want passive", got)
	}
	want := []string{"assertive", "passive", "aggressive"}
	if got := axis.Dimensions(); !reflect.DeepEqual(got, want) {
		t.Errorf("Dimensions = %v, want %v", got, want)
	}
}

func TestPrimaryAxis(t *testing.T) {
	got := PrimaryAxis().Classify(vec("relationship_emotions", 2.0, "communication_patterns", 2.0))
	if got != PrimaryRelationship {
		t.Errorf("Classify = %v, want relationship_emotions", got)
	}
}

func TestIntensity(t *testing.T) {
	tests := []struct {
		name    string
		p       Intensity
		matched float64
		total   int
		want    float64
	}{
		{"no tokens", DefaultIntensity(), 0, 0, 0.5},
		{"no tokens decoder", DecoderIntensity(), 0, 0, 0.5},
		{"no matches", DefaultIntensity(), 0, 10, 0.3},
		{"two of eleven", DefaultIntensity(), 2, 11, 2.0/11*2 + 0.3},
		{"capped", DefaultIntensity(), 5, 5, 1},
		{"decoder", DecoderIntensity(), 1, 6, 0.5},
		{"weighted hits keep fractions", DecoderIntensity(), 0.5, 3, 0.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.p.Of(tt.matched, tt.total); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Of(%v, %d) = %v, want %v", tt.matched, tt.total, got, tt.want)
			}
		})
	}
}

func TestConfidence(t *testing.T) {
	if got := Confidence(0, 0, "任何文本"); got != 0 {
		t.Errorf("empty tokens confidence = %v, want 0", got)
	}
	// 2 of 4 tokens matched, 4 runes.
	want := 0.5*0.7 + 4.0/200*0.3
	if got := Confidence(2, 4, "开心顺利"); math.Abs(got-want) > 1e-9 {
		t.Errorf("Confidence = %v, want %v", got, want)
	}
	long := string(make([]rune, 400))
	if got := Confidence(10, 10, long); got != 1 {
		t.Errorf("capped confidence = %v, want 1", got)
	}
}

func TestDimensionScoreBounds(t *testing.T) {
	tests := []struct {
		pos, neg float64
		want     float64
	}{
		{0, 0, 50},
		{3, 0, 80},
		{0, 1, 40},
		{10, 0, 100},
		{0, 10, 0},
		{2, 7, 0},
	}
	for _, tt := range tests {
		got := DimensionScore(tt.pos, tt.neg)
		if got != tt.want {
			t.Errorf("DimensionScore(%v, %v) = %v, want %v", tt.pos, tt.neg, got, tt.want)
		}
		if got < 0 || got > 100 {
			t.Errorf("DimensionScore(%v, %v) = %v out of [0,100]", tt.pos, tt.neg, got)
		}
	}
}

func TestLevelThresholds(t *testing.T) {
	tests := []struct {
		overall float64
		want    HealthLevel
	}{
		{100, Excellent},
		{80, Excellent},
		{79.999, Good},
		{70, Good},
		{69.99, Fair},
		{60, Fair},
		{59.5, Poor},
		{50, Poor},
		{49.999, Critical},
		{0, Critical},
	}
	for _, tt := range tests {
		if got := Level(tt.overall); got != tt.want {
			t.Errorf("Level(%v) = %v, want %v", tt.overall, got, tt.want)
		}
	}
}

func TestAggregate(t *testing.T) {
	h := Aggregate([]DimensionResult{
		{Dimension: "communication", Score: 90, Weight: 0.3},
		{Dimension: "trust", Score: 40, Weight: 0.25},
		{Dimension: "support", Score: 70, Weight: 0.2},
	})
	if math.Abs(h.Overall-51) > 1e-9 {
		t.Errorf("Overall = %v, want 51", h.Overall)
	}
	if h.Level != Poor {
		t.Errorf("Level = %v, want poor", h.Level)
	}
	if !reflect.DeepEqual(h.Strengths, []string{"communication"}) {
		t.Errorf("Strengths = %v", h.Strengths)
	}
	if !reflect.DeepEqual(h.Weaknesses, []string{"trust"}) {
		t.Errorf("Weaknesses = %v", h.Weaknesses)
	}
}

func TestAggregateEmpty(t *testing.T) {
	h := Aggregate(nil)
	if h.Overall != 0 || h.Level != Critical {
		t.Errorf("Aggregate(nil) = %+v", h)
	}
	if h.Strengths == nil || h.Weaknesses == nil {
		t.Error("Strengths and Weaknesses must be non-nil")
	}
}

func TestRisk(t *testing.T) {
	tests := []struct {
		hits        int
		level       RiskLevel
		score       float64
		appropriate bool
	}{
		{0, RiskLow, 0, true},
		{1, RiskLow, 0.2, true},
		{2, RiskMedium, 0.4, true},
		{3, RiskHigh, 0.6, false},
		{4, RiskExtreme, 0.8, false},
		{7, RiskExtreme, 1, false},
	}
	for _, tt := range tests {
		level := RiskOf(tt.hits)
		if level != tt.level {
			t.Errorf("RiskOf(%d) = %v, want %v", tt.hits, level, tt.level)
		}
		if got := RiskScore(tt.hits); got != tt.score {
			t.Errorf("RiskScore(%d) = %v, want %v", tt.hits, got, tt.score)
		}
		if got := level.Appropriate(); got != tt.appropriate {
			t.Errorf("%v.Appropriate() = %v", level, got)
		}
	}
}

func TestLabelJSON(t *testing.T) {
	b, err := json.Marshal(struct {
		E Emotion     `json:"e"`
		L HealthLevel `json:"l"`
		P Primary     `json:"p"`
	}{Positive, Good, PrimaryCommunication})
	if err != nil {
		t.Fatal(err)
	}
	want := `{"e":"positive","l":"good","p":"communication_patterns"}`
	if string(b) != want {
		t.Errorf("Marshal = %s, want %s", b, want)
	}

	var e Emotion
	if err := json.Unmarshal([]byte(`"negative"`), &e); err != nil || e != Negative {
		t.Errorf("Unmarshal = %v, %v", e, err)
	}
	if err := json.Unmarshal([]byte(`"joyful"`), &e); err == nil {
		t.Error("Unmarshal of unknown label succeeded")
	}
	if got := EmotionUnknown.String(); got != "unknown" {
		t.Errorf("zero Emotion = %q", got)
	}
	if got := Emotion(42).String(); got != "Emotion(42)" {
		t.Errorf("out of range = %q", got)
	}
}

func TestParseDialogueType(t *testing.T) {
	tests := []struct {
		in      string
		want    DialogueType
		wantErr bool
	}{
		{"", DialogueGeneral, false},
		{"general", DialogueGeneral, false},
		{"emotional_support", DialogueEmotionalSupport, false},
		{"advice", DialogueAdvice, false},
		{"therapy", DialogueGeneral, true},
	}
	for _, tt := range tests {
		got, err := ParseDialogueType(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseDialogueType(%q) err = %v", tt.in, err)
			continue
		}
		if !tt.wantErr && got != tt.want {
			t.Errorf("ParseDialogueType(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
