package colleges

import "math"

// Annual cost assumptions used by the estimator when the catalog has no
// better data. Figures track national averages for public institutions.
const (
	costBooksAndSupplies = 1250.0
	costOnCampusHousing  = 11500.0
	costCommuterTransit  = 1800.0
	costDefaultTuition   = 12000.0
	avgPellAward         = 4500.0
)

// CostEstimate is a rough annual cost-of-attendance breakdown.
type CostEstimate struct {
	Tuition   float64 `json:"tuition"`
	Housing   float64 `json:"housing"`
	Books     float64 `json:"books"`
	AidOffset float64 `json:"aidOffset"`
	Net       float64 `json:"net"`
	Assumed   bool    `json:"assumed"`
}

// EstimateCost produces an annual net-cost estimate for a candidate.
// housing is "on_campus", "off_campus", or "commute"; anything else is
// treated as on-campus.
func EstimateCost(c Candidate, housing string) CostEstimate {
	est := CostEstimate{Books: costBooksAndSupplies}

	if c.Tuition != nil {
		est.Tuition = *c.Tuition
	} else {
		est.Tuition = costDefaultTuition
		est.Assumed = true
	}

	switch housing {
	case "commute":
		est.Housing = costCommuterTransit
	case "off_campus":
		est.Housing = costOnCampusHousing * 0.85
	default:
		est.Housing = costOnCampusHousing
	}

	if c.PellRate != nil {
		rate := *c.PellRate
		if rate > 1 {
			rate = rate / 100
		}
		if rate < 0 {
			rate = 0
		}
		est.AidOffset = math.Round(rate * avgPellAward)
	}

	est.Net = est.Tuition + est.Housing + est.Books - est.AidOffset
	if est.Net < 0 {
		est.Net = 0
	}
	return est
}
