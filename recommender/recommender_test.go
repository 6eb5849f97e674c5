package recommender

import (
	"errors"
	"math"
	"testing"

	check "gopkg.in/check.v1"

	"github.com/Samario-in-UofT24/Content-based-Filtering-Program/gamegraph"
	"github.com/Samario-in-UofT24/Content-based-Filtering-Program/genretree"
)

var _ = check.Suite(new(engineTestSuite))
var _ = check.Suite(new(holderTestSuite))

// Test registers the [check] library with the go testing library and enables
// the running of the test suite using the go testing library.
func Test(t *testing.T) {
	check.TestingT(t)
}

type engineTestSuite struct {
	graph *gamegraph.Graph
	tree  *genretree.Tree
}

// SetUpTest assembles the shared fixture: users u-1 and u-2 both played
// Alpha and Beta, u-1 also played Gamma. Beta shares a genre with
// Alpha, Gamma does not.
func (s *engineTestSuite) SetUpTest(c *check.C) {
	s.graph = gamegraph.NewGraph()
	for _, user := range []string{"u-1", "u-2"} {
		s.graph.AddVertex(user, gamegraph.KindUser)
	}
	for _, game := range []string{"Alpha", "Beta", "Gamma", "Orphan"} {
		s.graph.AddVertex(game, gamegraph.KindGame)
	}

	s.graph.AddEdge("u-1", "Alpha", 1.0)
	s.graph.AddEdge("u-2", "Alpha", 2.0)
	s.graph.AddEdge("u-1", "Beta", 1.5)
	s.graph.AddEdge("u-2", "Beta", 2.5)
	s.graph.AddEdge("u-1", "Gamma", 3.0)

	s.tree = genretree.NewTree()
	s.tree.InsertPath("Action", "Alpha")
	s.tree.InsertPath("Action", "Beta")
	s.tree.InsertPath("RPG", "Beta")
	s.tree.InsertPath("Sports", "Gamma")
}

func (s *engineTestSuite) newEngine(c *check.C) *Engine {
	engine, err := New(Config{GraphAPI: s.graph, TreeAPI: s.tree})
	c.Assert(err, check.IsNil)

	return engine
}

func (s *engineTestSuite) TestConfigValidation(c *check.C) {
	originalConfig := Config{GraphAPI: s.graph, TreeAPI: s.tree}

	config := originalConfig
	c.Assert(config.validate(), check.IsNil)
	c.Assert(
		config.Logger, check.Not(check.IsNil),
		check.Commentf("default logger was not assigned"),
	)

	config = originalConfig
	config.GraphAPI = nil
	c.Assert(config.validate(), check.ErrorMatches, "(?ms).*graph API not provided.*")

	config = originalConfig
	config.TreeAPI = nil
	c.Assert(config.validate(), check.ErrorMatches, "(?ms).*tree API not provided.*")
}

func (s *engineTestSuite) TestGenreAwareRecommendation(c *check.C) {
	const boost = 1.5

	ranking := s.newEngine(c).Recommend("Alpha", 5, boost)

	// Gamma shares no genre with Alpha and must not survive the
	// relevance gate, ranked or otherwise.
	_, exists := ranking.Scores["Gamma"]
	c.Assert(exists, check.Equals, false)

	c.Assert(ranking.Games, check.DeepEquals, []string{"Beta"})

	// Two distinct users support Beta, so its raw score of
	// 1.5 + 2.5 normalizes against log(1 + 2).
	expected := (1.5 + 2.5) / math.Log(3) * boost
	c.Assert(ranking.Scores["Beta"], check.Equals, expected)

	c.Assert(ranking.Genres["Beta"], check.DeepEquals, []string{"Action", "RPG"})
}

func (s *engineTestSuite) TestUnknownLikedGame(c *check.C) {
	ranking := s.newEngine(c).Recommend("Nonexistent", 5, 1.0)

	c.Assert(len(ranking.Games), check.Equals, 0)
	c.Assert(len(ranking.Scores), check.Equals, 0)
	c.Assert(len(ranking.Genres), check.Equals, 0)
}

func (s *engineTestSuite) TestLikedVertexMustBeAGame(c *check.C) {
	ranking := s.newEngine(c).Recommend("u-1", 5, 1.0)

	c.Assert(len(ranking.Games), check.Equals, 0)
	c.Assert(len(ranking.Scores), check.Equals, 0)
}

func (s *engineTestSuite) TestUncategorizedLikedGame(c *check.C) {
	s.graph.AddEdge("u-1", "Orphan", 1.0)

	// Orphan is in the graph but not in the taxonomy; genre similarity
	// is undefined for it, so the query yields nothing by design.
	ranking := s.newEngine(c).Recommend("Orphan", 5, 1.0)

	c.Assert(len(ranking.Games), check.Equals, 0)
	c.Assert(len(ranking.Scores), check.Equals, 0)
}

func (s *engineTestSuite) TestIsolatedLikedGame(c *check.C) {
	s.tree.InsertPath("Puzzle", "Island")
	s.tree.InvalidateIndex()
	s.graph.AddVertex("Island", gamegraph.KindGame)

	ranking := s.newEngine(c).Recommend("Island", 5, 1.0)

	c.Assert(len(ranking.Games), check.Equals, 0)
	c.Assert(len(ranking.Scores), check.Equals, 0)
}

func (s *engineTestSuite) TestTopKBoundsTheRankedList(c *check.C) {
	s.tree.InsertPath("Action", "Delta")
	s.tree.InvalidateIndex()
	s.graph.AddVertex("Delta", gamegraph.KindGame)
	s.graph.AddEdge("u-1", "Delta", 0.25)

	engine := s.newEngine(c)

	ranking := engine.Recommend("Alpha", 1, 1.0)
	c.Assert(ranking.Games, check.DeepEquals, []string{"Beta"})
	// The score map keeps every surviving candidate, not just the
	// truncated list.
	c.Assert(len(ranking.Scores), check.Equals, 2)

	ranking = engine.Recommend("Alpha", 0, 1.0)
	c.Assert(len(ranking.Games), check.Equals, 0)
	c.Assert(len(ranking.Scores), check.Equals, 2)

	ranking = engine.Recommend("Alpha", -3, 1.0)
	c.Assert(len(ranking.Games), check.Equals, 0)
}

func (s *engineTestSuite) TestEqualScoresBreakTiesByName(c *check.C) {
	// Two candidates with identical edge weights and support counts
	// score identically; the ranking falls back to name order.
	s.tree.InsertPath("Action", "Zulu")
	s.tree.InsertPath("Action", "Echo")
	s.tree.InvalidateIndex()

	s.graph.AddVertex("Zulu", gamegraph.KindGame)
	s.graph.AddVertex("Echo", gamegraph.KindGame)
	s.graph.AddEdge("u-1", "Zulu", 1.5)
	s.graph.AddEdge("u-2", "Zulu", 2.5)
	s.graph.AddEdge("u-1", "Echo", 1.5)
	s.graph.AddEdge("u-2", "Echo", 2.5)

	ranking := s.newEngine(c).Recommend("Alpha", 5, 1.0)

	c.Assert(ranking.Games, check.DeepEquals, []string{"Beta", "Echo", "Zulu"})
}

func (s *engineTestSuite) TestBoostFactorPreservesRelativeOrder(c *check.C) {
	engine := s.newEngine(c)

	base := engine.Recommend("Alpha", 5, 1.0)
	boosted := engine.Recommend("Alpha", 5, 2.0)

	c.Assert(boosted.Games, check.DeepEquals, base.Games)
	for name, score := range base.Scores {
		c.Assert(boosted.Scores[name], check.Equals, score*2.0)
	}
}

type holderTestSuite struct{}

func (s *holderTestSuite) TestHolderLifecycle(c *check.C) {
	var holder Holder

	_, err := holder.Recommend("Alpha", 5, 1.0)
	c.Assert(errors.Is(err, ErrNotReady), check.Equals, true)

	graph := gamegraph.NewGraph()
	tree := genretree.NewTree()
	engine, err := New(Config{GraphAPI: graph, TreeAPI: tree})
	c.Assert(err, check.IsNil)

	holder.Publish(engine)

	ranking, err := holder.Recommend("Alpha", 5, 1.0)
	c.Assert(err, check.IsNil)
	c.Assert(len(ranking.Games), check.Equals, 0)
}
