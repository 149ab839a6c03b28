package allocate

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"

	"github.com/Tairraos/srtseg/internal/logging"
	"github.com/Tairraos/srtseg/internal/segment"
	"github.com/Tairraos/srtseg/internal/subtitle"
	"github.com/Tairraos/srtseg/internal/timecode"
)

// entry count and token list count differ in a batch call
var ErrInputMismatch = errors.New("input mismatch")

// realized chain spans may differ from the sentence duration by this much
// before the drift diagnostic fires
const spanDriftToleranceMs = 1

// represents one word-level display interval derived from a sentence entry
//
// DurationMs always matches the time between Start and End, with one
// exception: Smooth may shift an element's Start without touching its
// stored duration (see Smooth).
type WordInterval struct {
	Index      int
	Word       string
	Start      string
	End        string
	DurationMs int64
	Ordinal    int
}

// distributes sentence display time across its words
type Allocator struct {
	MinWordMillis int64
	MaxWordMillis int64

	logger *logging.Logger
}

// New builds an allocator with the given per-word duration bounds.
// A nil logger silences the drift diagnostic.
func New(minWordMillis, maxWordMillis int64, logger *logging.Logger) *Allocator {
	if logger == nil {
		logger = logging.Nop()
	}
	return &Allocator{
		MinWordMillis: minWordMillis,
		MaxWordMillis: maxWordMillis,
		logger:        logger,
	}
}

// Allocate splits one sentence entry's time across its word tokens,
// weighted by perceived length. Each word gets the rounded proportion
// of the sentence duration clamped to the allocator's bounds, except
// the last word, which absorbs whatever remains so the chain ends
// exactly on the entry's end. Indices are 1-based within the entry;
// batch callers renumber them.
//
// Empty token lists yield an empty result, not an error. A reversed
// entry is not rejected; it surfaces as a zero-duration last word.
func (a *Allocator) Allocate(entry subtitle.Entry, tokens []segment.Word) ([]WordInterval, error) {
	if len(tokens) == 0 {
		return nil, nil
	}
	total := segment.TotalLength(tokens)
	if total == 0 {
		return nil, nil
	}

	sentenceMs, err := timecode.DurationMillis(entry.Start, entry.End)
	if err != nil {
		return nil, fmt.Errorf("failed to measure entry %d: %w", entry.Index, err)
	}

	intervals := make([]WordInterval, 0, len(tokens))
	cursor := entry.Start

	for i, token := range tokens {
		var duration int64
		if i == len(tokens)-1 {
			remaining, err := timecode.DurationMillis(cursor, entry.End)
			if err != nil {
				return nil, fmt.Errorf("failed to place last word of entry %d: %w", entry.Index, err)
			}
			duration = max(0, remaining)
		} else {
			share := int64(math.Round(float64(sentenceMs) * float64(token.Length) / float64(total)))
			duration = clamp(share, a.MinWordMillis, a.MaxWordMillis)
		}

		end, err := timecode.AddMillis(cursor, duration)
		if err != nil {
			return nil, fmt.Errorf("failed to place word %d of entry %d: %w", i+1, entry.Index, err)
		}

		intervals = append(intervals, WordInterval{
			Index:      i + 1,
			Word:       token.Text,
			Start:      cursor,
			End:        end,
			DurationMs: duration,
			Ordinal:    entry.Index,
		})
		cursor = end
	}

	a.checkSpan(entry, sentenceMs, intervals)

	return intervals, nil
}

// checkSpan reports realized spans that drifted from the sentence
// duration. Diagnostic only, the result stands as computed.
func (a *Allocator) checkSpan(entry subtitle.Entry, sentenceMs int64, intervals []WordInterval) {
	realized, err := timecode.DurationMillis(intervals[0].Start, intervals[len(intervals)-1].End)
	if err != nil {
		return
	}
	drift := realized - sentenceMs
	if drift > spanDriftToleranceMs || drift < -spanDriftToleranceMs {
		a.logger.Warnw("word chain span drifted from sentence duration",
			"entry", entry.Index,
			"expectedMs", sentenceMs,
			"realizedMs", realized,
		)
	}
}

// AllocateAll runs Allocate over every entry in order and renumbers the
// concatenated result with a single counter starting at 1. Entry count
// and token list count must match; otherwise it fails with
// ErrInputMismatch and produces nothing. Entries whose token list is
// empty contribute nothing without breaking the numbering.
func (a *Allocator) AllocateAll(entries []subtitle.Entry, tokenLists [][]segment.Word) ([]WordInterval, error) {
	if len(entries) != len(tokenLists) {
		return nil, fmt.Errorf("%w: %d entries but %d token lists",
			ErrInputMismatch, len(entries), len(tokenLists))
	}

	var out []WordInterval
	for i := range entries {
		intervals, err := a.Allocate(entries[i], tokenLists[i])
		if err != nil {
			return nil, err
		}
		out = append(out, intervals...)
	}

	reindex(out)
	return out, nil
}

// AllocateAllConcurrent is AllocateAll with per-entry allocation fanned
// out across at most concurrency workers. Results are identical to the
// sequential path: per-entry output is stored by input position and the
// renumbering runs single-threaded afterward.
func (a *Allocator) AllocateAllConcurrent(
	ctx context.Context,
	entries []subtitle.Entry,
	tokenLists [][]segment.Word,
	concurrency int,
) ([]WordInterval, error) {
	if len(entries) != len(tokenLists) {
		return nil, fmt.Errorf("%w: %d entries but %d token lists",
			ErrInputMismatch, len(entries), len(tokenLists))
	}

	if concurrency <= 1 {
		return a.AllocateAll(entries, tokenLists)
	}

	var (
		mu       sync.Mutex
		firstErr error
		wg       sync.WaitGroup
	)
	results := make([][]WordInterval, len(entries))

	sem := make(chan struct{}, concurrency)

	for i := range entries {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		mu.Lock()
		hasErr := firstErr != nil
		mu.Unlock()
		if hasErr {
			break
		}

		wg.Add(1)
		go func(i int) {
			defer wg.Done()

			sem <- struct{}{}
			defer func() { <-sem }()

			select {
			case <-ctx.Done():
				return
			default:
			}

			mu.Lock()
			hasErr := firstErr != nil
			mu.Unlock()
			if hasErr {
				return
			}

			intervals, err := a.Allocate(entries[i], tokenLists[i])

			mu.Lock()
			defer mu.Unlock()

			if err != nil {
				if firstErr == nil {
					firstErr = err
				}
				return
			}
			results[i] = intervals
		}(i)
	}

	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var out []WordInterval
	for _, intervals := range results {
		out = append(out, intervals...)
	}

	reindex(out)
	return out, nil
}

func reindex(intervals []WordInterval) {
	for i := range intervals {
		intervals[i].Index = i + 1
	}
}

func clamp(v, lo, hi int64) int64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
