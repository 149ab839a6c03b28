package allocate

import (
	"reflect"
	"testing"
)

// gapless chain builder: each word starts where the previous one ended
func chain(startMs int64, durations ...int64) []WordInterval {
	words := make([]WordInterval, len(durations))
	cursor := startMs
	for i, d := range durations {
		words[i] = WordInterval{
			Index:      i + 1,
			Word:       "w",
			Start:      ts(cursor),
			End:        ts(cursor + d),
			DurationMs: d,
			Ordinal:    1,
		}
		cursor += d
	}
	return words
}

func TestSmoothShortInputs(t *testing.T) {
	got, err := Smooth(nil)
	if err != nil {
		t.Fatalf("Smooth returned error: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected empty output, got %d intervals", len(got))
	}

	single := chain(0, 500)
	got, err = Smooth(single)
	if err != nil {
		t.Fatalf("Smooth returned error: %v", err)
	}
	if !reflect.DeepEqual(got, single) {
		t.Errorf("single interval changed: %+v", got)
	}
}

func TestSmoothUniformChainUnchanged(t *testing.T) {
	words := chain(0, 1000, 1000, 1000, 1000)

	got, err := Smooth(words)
	if err != nil {
		t.Fatalf("Smooth returned error: %v", err)
	}
	if !reflect.DeepEqual(got, words) {
		t.Errorf("uniform chain changed:\n%+v\nvs\n%+v", got, words)
	}
}

func TestSmoothDoesNotMutateInput(t *testing.T) {
	words := chain(0, 1000, 100, 1000)
	original := make([]WordInterval, len(words))
	copy(original, words)

	if _, err := Smooth(words); err != nil {
		t.Fatalf("Smooth returned error: %v", err)
	}
	if !reflect.DeepEqual(words, original) {
		t.Errorf("input mutated:\n%+v\nvs\n%+v", words, original)
	}
}

func TestSmoothAdjustsInteriorOutlier(t *testing.T) {
	// neighbors average 1000, the 100ms middle word is pulled to 550
	words := chain(0, 1000, 100, 1000)

	got, err := Smooth(words)
	if err != nil {
		t.Fatalf("Smooth returned error: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 intervals, got %d", len(got))
	}

	if !reflect.DeepEqual(got[0], words[0]) {
		t.Errorf("first interval changed: %+v", got[0])
	}

	if got[1].DurationMs != 550 {
		t.Errorf("adjusted duration = %d, want 550", got[1].DurationMs)
	}
	if got[1].End != ts(1550) {
		t.Errorf("adjusted end = %s, want %s", got[1].End, ts(1550))
	}

	// the shift moves the last word's start but not its end or duration
	if got[2].Start != ts(1550) {
		t.Errorf("last start = %s, want %s", got[2].Start, ts(1550))
	}
	if got[2].End != ts(2100) {
		t.Errorf("last end = %s, want %s", got[2].End, ts(2100))
	}
	if got[2].DurationMs != 1000 {
		t.Errorf("last duration = %d, want untouched 1000", got[2].DurationMs)
	}
}

func TestSmoothNeverTouchesEdges(t *testing.T) {
	// the 1000ms interior word is the outlier here; both edge words keep
	// their durations even though they differ from their neighbors just
	// as much
	words := chain(0, 100, 1000, 100)

	got, err := Smooth(words)
	if err != nil {
		t.Fatalf("Smooth returned error: %v", err)
	}

	if got[0].DurationMs != 100 || got[0].Start != ts(0) || got[0].End != ts(100) {
		t.Errorf("first interval changed: %+v", got[0])
	}
	if got[1].DurationMs != 550 {
		t.Errorf("interior duration = %d, want 550", got[1].DurationMs)
	}
	if got[2].End != ts(1200) {
		t.Errorf("batch end moved to %s, want %s", got[2].End, ts(1200))
	}
}

func TestSmoothCarriesThroughRun(t *testing.T) {
	words := chain(0, 1000, 100, 100, 1000, 1000)

	got, err := Smooth(words)
	if err != nil {
		t.Fatalf("Smooth returned error: %v", err)
	}

	// first short word: avg(1000,100)=550, adjusted to 325
	if got[1].DurationMs != 325 || got[1].End != ts(1325) {
		t.Errorf("interval 1 = %+v, want duration 325 ending %s", got[1], ts(1325))
	}
	// second short word starts on the carried end, avg(325,1000)=662.5,
	// adjusted to 381
	if got[2].Start != ts(1325) {
		t.Errorf("interval 2 start = %s, want %s", got[2].Start, ts(1325))
	}
	if got[2].DurationMs != 381 || got[2].End != ts(1706) {
		t.Errorf("interval 2 = %+v, want duration 381 ending %s", got[2], ts(1706))
	}
	// the 1000ms word now sits against avg(381,1000)=690.5 and is itself
	// adjusted to 845
	if got[3].Start != ts(1706) {
		t.Errorf("interval 3 start = %s, want %s", got[3].Start, ts(1706))
	}
	if got[3].DurationMs != 845 || got[3].End != ts(2551) {
		t.Errorf("interval 3 = %+v, want duration 845 ending %s", got[3], ts(2551))
	}
	// the final word absorbs the shift without moving the batch end
	if got[4].Start != ts(2551) {
		t.Errorf("interval 4 start = %s, want %s", got[4].Start, ts(2551))
	}
	if got[4].End != ts(3200) {
		t.Errorf("batch end moved to %s, want %s", got[4].End, ts(3200))
	}
	if got[4].DurationMs != 1000 {
		t.Errorf("interval 4 duration = %d, want untouched 1000", got[4].DurationMs)
	}
}

func TestSmoothCrossesEntryBoundaries(t *testing.T) {
	// two entries with a 400ms gap between them; adjusting the first
	// entry's last word drags the second entry's start onto its new end
	words := []WordInterval{
		{Index: 1, Word: "a", Start: ts(0), End: ts(1000), DurationMs: 1000, Ordinal: 1},
		{Index: 2, Word: "b", Start: ts(1000), End: ts(1100), DurationMs: 100, Ordinal: 1},
		{Index: 3, Word: "c", Start: ts(1500), End: ts(2500), DurationMs: 1000, Ordinal: 2},
		{Index: 4, Word: "d", Start: ts(2500), End: ts(3500), DurationMs: 1000, Ordinal: 2},
	}

	got, err := Smooth(words)
	if err != nil {
		t.Fatalf("Smooth returned error: %v", err)
	}

	// word b: avg(1000,1000)=1000, adjusted to 550, ending at 1550
	if got[1].DurationMs != 550 || got[1].End != ts(1550) {
		t.Errorf("interval 1 = %+v, want duration 550 ending %s", got[1], ts(1550))
	}

	// word c follows immediately at 1550: the entry gap is swallowed.
	// its own duration is within range of avg(550,1000)=775, so it is
	// not adjusted and keeps its original end
	if got[2].Start != ts(1550) {
		t.Errorf("interval 2 start = %s, want %s", got[2].Start, ts(1550))
	}
	if got[2].End != ts(2500) || got[2].DurationMs != 1000 {
		t.Errorf("interval 2 = %+v, want original end %s and duration 1000", got[2], ts(2500))
	}

	// the shift died at word c, so word d is untouched
	if !reflect.DeepEqual(got[3], words[3]) {
		t.Errorf("interval 3 changed: %+v", got[3])
	}
}
