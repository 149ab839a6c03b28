package subtitle

// represents single subtitle entry
//
// Start and End hold the raw timestamp text exactly as it appeared on the
// timing line. The timecode package owns validation and arithmetic.
type Entry struct {
	Index int
	Start string
	End   string
	Text  string
}
