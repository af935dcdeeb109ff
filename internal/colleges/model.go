package colleges

import "time"

// Size categories reported for a college's enrollment.
const (
	SizeSmall   = "small"
	SizeMedium  = "medium"
	SizeLarge   = "large"
	SizeUnknown = "unknown"
)

// Setting categories reported for a college's campus.
const (
	SettingUrban    = "urban"
	SettingSuburban = "suburban"
	SettingRural    = "rural"
	SettingUnknown  = "unknown"
)

// Ownership flags.
const (
	OwnershipPublic  = "public"
	OwnershipPrivate = "private"
)

// Candidate is one institution as returned by a data source. Rate fields may
// arrive as 0-1 fractions or 0-100 percentages depending on the source; they
// are normalized at scoring time, never here.
type Candidate struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	City           string   `json:"city"`
	State          string   `json:"state"`
	Tuition        *float64 `json:"tuition,omitempty"`
	Size           string   `json:"size"`
	Setting        string   `json:"setting"`
	AdmissionRate  *float64 `json:"admissionRate,omitempty"`
	CompletionRate *float64 `json:"completionRate,omitempty"`
	PellRate       *float64 `json:"pellRate,omitempty"`
	MedianDebt     *float64 `json:"medianDebt,omitempty"`
	Programs       []string `json:"programs"`
	Ownership      string   `json:"ownership,omitempty"`
	UpdatedAt      time.Time `json:"-"`
}

// SizeFromEnrollment buckets a headcount into a size category.
func SizeFromEnrollment(enrollment int) string {
	switch {
	case enrollment <= 0:
		return SizeUnknown
	case enrollment < 5000:
		return SizeSmall
	case enrollment < 15000:
		return SizeMedium
	default:
		return SizeLarge
	}
}
