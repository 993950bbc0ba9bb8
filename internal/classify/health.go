package classify

// Health scoring constants.
const (
	neutralScore      = 50
	pointsPerHit      = 10
	StrengthThreshold = 80
	WeaknessThreshold = 60
)

var levelBands = []struct {
	min   float64
	level HealthLevel
}{
	{80, Excellent},
	{70, Good},
	{60, Fair},
	{50, Poor},
}

// DimensionScore is clamp(0, 100, (positive-negative)*10 + 50).
func DimensionScore(positive, negative float64) float64 {
	s := (positive-negative)*pointsPerHit + neutralScore
	switch {
	case s < 0:
		return 0
	case s > 100:
		return 100
	}
	return s
}

// Level bands an overall score. Every lower bound is inclusive.
func Level(overall float64) HealthLevel {
	for _, b := range levelBands {
		if overall >= b.min {
			return b.level
		}
	}
	return Critical
}

// DimensionResult is one scored relationship dimension.
type DimensionResult struct {
	Dimension    string   `json:"dimension" msgpack:"dimension" bson:"dimension"`
	Score        float64  `json:"score" msgpack:"score" bson:"score"`
	Weight       float64  `json:"weight" msgpack:"weight" bson:"weight"`
	PositiveHits []string `json:"positive_indicators" msgpack:"positive_indicators" bson:"positiveIndicators"`
	NegativeHits []string `json:"negative_indicators" msgpack:"negative_indicators" bson:"negativeIndicators"`
}

// Health is the aggregate of every dimension.
type Health struct {
	Overall    float64           `json:"overall_score" msgpack:"overall_score"`
	Level      HealthLevel       `json:"health_level" msgpack:"health_level"`
	Dimensions []DimensionResult `json:"dimension_scores" msgpack:"dimension_scores"`
	Strengths  []string          `json:"strengths" msgpack:"strengths"`
	Weaknesses []string          `json:"weaknesses" msgpack:"weaknesses"`
}

// Aggregate sums score*weight over dims. Weights summing below 1 leave the
// remainder unscored, which lowers the overall score. Strengths and
// weaknesses list dimension names.
func Aggregate(dims []DimensionResult) Health {
	h := Health{
		Dimensions: dims,
		Strengths:  []string{},
		Weaknesses: []string{},
	}
	for _, d := range dims {
		h.Overall += d.Score * d.Weight
		if d.Score >= StrengthThreshold {
			h.Strengths = append(h.Strengths, d.Dimension)
		}
		if d.Score < WeaknessThreshold {
			h.Weaknesses = append(h.Weaknesses, d.Dimension)
		}
	}
	h.Level = Level(h.Overall)
	return h
}
