package filter

// Verdict is the outcome of the relevance gate for one segment.
type Verdict int

const (
	// VerdictSkipped means the segment never reached the relevance gate.
	VerdictSkipped Verdict = iota
	VerdictPass
	VerdictFail
	// VerdictUnknown means the evaluation call failed; treated as a rejection.
	VerdictUnknown
)

func (v Verdict) String() string {
	switch v {
	case VerdictPass:
		return "pass"
	case VerdictFail:
		return "fail"
	case VerdictUnknown:
		return "unknown"
	default:
		return "skipped"
	}
}

type Decision struct {
	Segment      string
	PassedLength bool
	Relevance    Verdict
}

// Accepted reports whether the segment survived both gates.
func (d Decision) Accepted() bool {
	return d.PassedLength && d.Relevance == VerdictPass
}

// Accepted returns the texts of accepted decisions, preserving order.
func Accepted(decisions []Decision) []string {
	var out []string
	for _, d := range decisions {
		if d.Accepted() {
			out = append(out, d.Segment)
		}
	}
	return out
}
