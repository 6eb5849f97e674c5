package gamegraph

import (
	"github.com/Samario-in-UofT24/Content-based-Filtering-Program/gamedata"
	"github.com/Samario-in-UofT24/Content-based-Filtering-Program/sentiment"
)

const (
	// playtimeFactor scales the playtime z-score contribution.
	playtimeFactor = 0.5

	// recommendBonus is added when the user explicitly recommended
	// the game.
	recommendBonus = 2.0

	// recommendPenalty is added when the user explicitly advised
	// against the game.
	recommendPenalty = -0.5
)

// WeightModel synthesizes a single non-negative edge weight out of the
// noisy per-interaction signals: playtime relative to the game's
// population statistics, the optional recommend verdict and the
// sentiment of the optional review text. The model holds no state of
// its own; the same inputs always produce the same weight.
type WeightModel struct {
	// Scorer maps review text to a compound sentiment score in [-1, 1].
	Scorer sentiment.Scorer
}

// Weight returns the edge weight for the provided interaction given the
// playtime population statistics of the interacted game.
//
// A game observed through a single interaction has a zero standard
// deviation by definition; its z-score term is defined as zero rather
// than raising a division error. The summed signal is clamped at zero:
// a disliked or low-signal interaction contributes no edge strength
// instead of a negative one.
func (m WeightModel) Weight(
	interaction *gamedata.Interaction, stats gamedata.PlaytimeStats,
) float64 {

	var zScore float64
	if stats.StdDev != 0 {
		zScore = (float64(interaction.Playtime) - stats.Mean) / stats.StdDev
	}

	weight := playtimeFactor * zScore

	if interaction.Recommend != nil {
		if *interaction.Recommend {
			weight += recommendBonus
		} else {
			weight += recommendPenalty
		}
	}

	if interaction.Review != "" && m.Scorer != nil {
		weight += m.Scorer.Score(interaction.Review)
	}

	if weight < 0 {
		return 0
	}

	return weight
}
