package classify

import "math"

const riskPerHit = 0.2

// RiskOf bands the number of distinct flagged terms.
func RiskOf(hits int) RiskLevel {
	switch {
	case hits >= 4:
		return RiskExtreme
	case hits >= 3:
		return RiskHigh
	case hits >= 2:
		return RiskMedium
	}
	return RiskLow
}

// RiskScore is min(1, 0.2 per hit), rounded to two decimals.
func RiskScore(hits int) float64 {
	return math.Round(math.Min(1, float64(hits)*riskPerHit)*100) / 100
}

// Appropriate reports whether content at this level may be published.
func (r RiskLevel) Appropriate() bool {
	return r < RiskHigh
}
