package allocate

import (
	"fmt"
	"math"

	"github.com/Tairraos/srtseg/internal/timecode"
)

// an interior duration further than this fraction from its neighbors'
// average gets pulled back toward it
const smoothingThreshold = 0.3

// Smooth runs one forward sweep over a batch chain and softens abrupt
// duration changes between neighboring words. For each interior element
// the neighborhood average is (previous.DurationMs + next.DurationMs)/2,
// previous as already smoothed, next as given; when the element's duration
// sits more than the threshold fraction away from that average, it is
// replaced with the rounded mean of the two, the element's End moves, and
// the following element's Start is set to that new End.
//
// The very first and very last element of the batch are never adjusted, so
// the batch's overall end stays put. A shifted element that is not itself
// adjusted keeps its stored duration and End, leaving its DurationMs
// inconsistent with its boundaries. The sweep runs across sentence
// boundaries, so an adjustment at a sentence's last word moves the next
// sentence's start onto its new end, swallowing any gap between the two
// entries. One pass only; smoothing its own output may adjust further.
func Smooth(words []WordInterval) ([]WordInterval, error) {
	out := make([]WordInterval, len(words))
	copy(out, words)
	if len(out) <= 1 {
		return out, nil
	}

	// start forwarded from the previous adjustment, empty when none
	carry := ""
	for i := 1; i < len(out)-1; i++ {
		if carry != "" {
			out[i].Start = carry
			carry = ""
		}

		avg := float64(out[i-1].DurationMs+words[i+1].DurationMs) / 2
		if math.Abs(float64(words[i].DurationMs)-avg) <= smoothingThreshold*avg {
			continue
		}

		duration := int64(math.Round((float64(words[i].DurationMs) + avg) / 2))
		end, err := timecode.AddMillis(out[i].Start, duration)
		if err != nil {
			return nil, fmt.Errorf("failed to adjust word %d: %w", words[i].Index, err)
		}

		out[i].DurationMs = duration
		out[i].End = end
		carry = end
	}

	if carry != "" {
		out[len(out)-1].Start = carry
	}

	return out, nil
}
