package gamedata_test

import (
	"math"
	"testing"

	check "gopkg.in/check.v1"

	"github.com/Samario-in-UofT24/Content-based-Filtering-Program/gamedata"
	"github.com/Samario-in-UofT24/Content-based-Filtering-Program/gamedata/store/memory"
)

var _ = check.Suite(new(statsTestSuite))

// Test registers the [check] library with the go testing library and enables
// the running of the test suite using the go testing library.
func Test(t *testing.T) {
	check.TestingT(t)
}

type statsTestSuite struct {
	store *memory.InMemoryStore
}

func (s *statsTestSuite) SetUpTest(c *check.C) {
	s.store = memory.NewInMemoryStore()
}

func (s *statsTestSuite) TestComputeStats(c *check.C) {
	for userID, playtime := range map[string]int{
		"u-1": 10,
		"u-2": 20,
		"u-3": 30,
	} {
		err := s.store.UpsertInteraction(&gamedata.Interaction{
			UserID:   userID,
			GameName: "Alpha",
			Playtime: playtime,
		})
		c.Assert(err, check.IsNil)
	}

	it, err := s.store.Interactions()
	c.Assert(err, check.IsNil)

	stats, err := gamedata.ComputeStats(it)
	c.Assert(err, check.IsNil)
	c.Assert(len(stats), check.Equals, 1)

	alpha := stats["Alpha"]
	c.Assert(alpha.Mean, check.Equals, 20.0)
	// Population standard deviation of {10, 20, 30}.
	c.Assert(
		math.Abs(alpha.StdDev-math.Sqrt(200.0/3.0)) < 1e-9, check.Equals, true,
		check.Commentf("unexpected standard deviation: %v", alpha.StdDev),
	)
}

func (s *statsTestSuite) TestComputeStatsSingleObservation(c *check.C) {
	err := s.store.UpsertInteraction(&gamedata.Interaction{
		UserID:   "u-1",
		GameName: "Beta",
		Playtime: 45,
	})
	c.Assert(err, check.IsNil)

	it, err := s.store.Interactions()
	c.Assert(err, check.IsNil)

	stats, err := gamedata.ComputeStats(it)
	c.Assert(err, check.IsNil)

	// A single observation has no spread. The weight model treats the
	// zero deviation as a zero z-score rather than a division error.
	beta := stats["Beta"]
	c.Assert(beta.Mean, check.Equals, 45.0)
	c.Assert(beta.StdDev, check.Equals, 0.0)
}

func (s *statsTestSuite) TestComputeStatsEmptyStream(c *check.C) {
	it, err := s.store.Interactions()
	c.Assert(err, check.IsNil)

	stats, err := gamedata.ComputeStats(it)
	c.Assert(err, check.IsNil)
	c.Assert(len(stats), check.Equals, 0)
}
