package datamart

// ProratedPremium returns the part of premium that belongs to the coverage
// remaining from the given instant. The result is clamped to [0, premium];
// a coverage with no duration prorates to zero.
func ProratedPremium(premium float64, coverageStart, coverageEnd, from int64) float64 {
	if coverageEnd <= coverageStart {
		return 0
	}

	start := coverageStart
	if from > start {
		start = from
	}
	if start >= coverageEnd {
		return 0
	}

	fraction := float64(coverageEnd-start) / float64(coverageEnd-coverageStart)
	return premium * fraction
}
