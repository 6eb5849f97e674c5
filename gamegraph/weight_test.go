package gamegraph

import (
	check "gopkg.in/check.v1"

	"github.com/Samario-in-UofT24/Content-based-Filtering-Program/gamedata"
)

var _ = check.Suite(new(weightModelTestSuite))

type weightModelTestSuite struct{}

// fixedScorer returns a constant sentiment score regardless of input.
type fixedScorer float64

func (s fixedScorer) Score(text string) float64 { return float64(s) }

func (s *weightModelTestSuite) TestZeroSignalInteractionWeighsZero(c *check.C) {
	model := WeightModel{}

	w := model.Weight(
		&gamedata.Interaction{UserID: "u-1", GameName: "Alpha", Playtime: 0},
		gamedata.PlaytimeStats{Mean: 0, StdDev: 0},
	)

	c.Assert(w, check.Equals, 0.0)
}

func (s *weightModelTestSuite) TestPlaytimeZScoreContribution(c *check.C) {
	model := WeightModel{}

	// z = (300 - 100) / 50 = 4, scaled by 0.5.
	w := model.Weight(
		&gamedata.Interaction{UserID: "u-1", GameName: "Alpha", Playtime: 300},
		gamedata.PlaytimeStats{Mean: 100, StdDev: 50},
	)

	c.Assert(w, check.Equals, 2.0)
}

func (s *weightModelTestSuite) TestZeroDeviationDefinesZeroZScore(c *check.C) {
	model := WeightModel{}

	// A single observed interaction has std = 0 by definition; the
	// z-score term must be 0 rather than a division error.
	w := model.Weight(
		&gamedata.Interaction{UserID: "u-1", GameName: "Alpha", Playtime: 500},
		gamedata.PlaytimeStats{Mean: 500, StdDev: 0},
	)

	c.Assert(w, check.Equals, 0.0)
}

func (s *weightModelTestSuite) TestRecommendVerdict(c *check.C) {
	model := WeightModel{}
	yes, no := true, false
	stats := gamedata.PlaytimeStats{Mean: 0, StdDev: 0}

	w := model.Weight(
		&gamedata.Interaction{UserID: "u-1", GameName: "Alpha", Recommend: &yes},
		stats,
	)
	c.Assert(w, check.Equals, 2.0)

	// A negative verdict on its own clamps at zero instead of
	// producing a negative edge weight.
	w = model.Weight(
		&gamedata.Interaction{UserID: "u-1", GameName: "Alpha", Recommend: &no},
		stats,
	)
	c.Assert(w, check.Equals, 0.0)
}

func (s *weightModelTestSuite) TestSentimentContribution(c *check.C) {
	model := WeightModel{Scorer: fixedScorer(0.75)}
	stats := gamedata.PlaytimeStats{Mean: 0, StdDev: 0}

	w := model.Weight(
		&gamedata.Interaction{
			UserID: "u-1", GameName: "Alpha", Review: "pretty good",
		},
		stats,
	)
	c.Assert(w, check.Equals, 0.75)

	// An empty review contributes nothing even with a scorer wired in.
	w = model.Weight(
		&gamedata.Interaction{UserID: "u-1", GameName: "Alpha"},
		stats,
	)
	c.Assert(w, check.Equals, 0.0)
}

func (s *weightModelTestSuite) TestWeightIsNeverNegative(c *check.C) {
	no := false
	model := WeightModel{Scorer: fixedScorer(-1)}

	// Low playtime + negative verdict + hostile review: every term is
	// negative, yet the weight clamps to zero.
	w := model.Weight(
		&gamedata.Interaction{
			UserID: "u-1", GameName: "Alpha", Playtime: 0,
			Recommend: &no, Review: "awful",
		},
		gamedata.PlaytimeStats{Mean: 400, StdDev: 100},
	)

	c.Assert(w, check.Equals, 0.0)
}

func (s *weightModelTestSuite) TestCombinedSignals(c *check.C) {
	yes := true
	model := WeightModel{Scorer: fixedScorer(0.5)}

	// 0.5*((200-100)/100) + 2.0 + 0.5 = 3.0
	w := model.Weight(
		&gamedata.Interaction{
			UserID: "u-1", GameName: "Alpha", Playtime: 200,
			Recommend: &yes, Review: "fun",
		},
		gamedata.PlaytimeStats{Mean: 100, StdDev: 100},
	)

	c.Assert(w, check.Equals, 3.0)
}
