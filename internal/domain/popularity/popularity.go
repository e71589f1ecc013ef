// Package popularity derives a popularity score per ticker from price
// momentum and relative volume.
package popularity

import (
	"slices"
	"strings"

	"github.com/okian/stocksanalyzer/internal/domain/model"
)

// Scoring constants. Price momentum outweighs volume surge.
const (
	MinSamples     = 3
	MomentumWeight = 60.0
	VolumeWeight   = 40.0
)

// Score computes the popularity of one series. It returns false when the
// series has fewer than MinSamples points.
func Score(series model.Series) (float64, bool) {
	if len(series) < MinSamples {
		return 0, false
	}

	current, _ := series.Current()
	// Running means stay finite for any finite samples.
	var meanClose, meanVolume float64
	for i, p := range series.Baseline() {
		k := float64(i + 1)
		meanClose += (p.Close - meanClose) / k
		meanVolume += (p.Volume - meanVolume) / k
	}

	momentum := ratio(current.Close, meanClose)
	volumeRatio := ratio(current.Volume, meanVolume)

	return (momentum-1.0)*MomentumWeight + (volumeRatio-1.0)*VolumeWeight, true
}

// ratio returns last/base, or exactly 0 for a zero base.
func ratio(last, base float64) float64 {
	if base == 0 {
		return 0
	}
	return last / base
}

// Analyze scores every series with enough history. Output keys are
// uppercased; short series are omitted. Keys are visited in ascending
// order, so when two keys fold to the same ticker the later one wins.
func Analyze(history map[string]model.Series) model.Scores {
	keys := make([]string, 0, len(history))
	for k := range history {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	scores := make(model.Scores, len(keys))
	for _, k := range keys {
		if s, ok := Score(history[k]); ok {
			scores[strings.ToUpper(k)] = s
		}
	}
	return scores
}
