package recommend

// Empty-state reason codes. An empty result list always carries one of
// these so the caller can explain why, instead of showing a blank page.
const (
	EmptyQueryNoResults      = "QUERY_NO_RESULTS"
	EmptyInStateStateMissing = "IN_STATE_STATE_MISSING"
	EmptyInStateNoMatches    = "IN_STATE_NO_MATCHES"
	EmptyUpstreamError       = "UPSTREAM_ERROR"
	EmptyNetworkTimeout      = "NETWORK_TIMEOUT"
)

// EmptyState explains a zero-result response as data rather than an error.
type EmptyState struct {
	Code    string `json:"code"`
	Title   string `json:"title"`
	Message string `json:"message"`
}

func emptyState(code string) *EmptyState {
	switch code {
	case EmptyQueryNoResults:
		return &EmptyState{
			Code:    code,
			Title:   "Keep typing",
			Message: "Enter at least two characters to search for colleges.",
		}
	case EmptyInStateStateMissing:
		return &EmptyState{
			Code:    code,
			Title:   "We need your state",
			Message: "You asked for in-state schools, but your profile has no state. Add one to your profile and try again.",
		}
	case EmptyInStateNoMatches:
		return &EmptyState{
			Code:    code,
			Title:   "No in-state matches",
			Message: "We could not find any colleges in your state matching your preferences. Try widening your search to out-of-state schools.",
		}
	case EmptyNetworkTimeout:
		return &EmptyState{
			Code:    code,
			Title:   "Request timed out",
			Message: "The college data service took too long to respond. Please try again in a moment.",
		}
	default:
		return &EmptyState{
			Code:    EmptyUpstreamError,
			Title:   "Something went wrong",
			Message: "We could not load college data right now. Please try again in a moment.",
		}
	}
}
