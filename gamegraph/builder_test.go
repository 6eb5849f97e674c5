package gamegraph

import (
	"fmt"

	check "gopkg.in/check.v1"

	"github.com/Samario-in-UofT24/Content-based-Filtering-Program/gamedata"
)

var _ = check.Suite(new(builderTestSuite))

type builderTestSuite struct{}

// stubSource serves a fixed record slice through the iterator contract.
// Unlike the real stores it happily serves malformed records, which is
// exactly what the skip logic needs to be exercised with.
type stubSource struct {
	interactions []*gamedata.Interaction
	err          error
}

func (s *stubSource) Interactions() (gamedata.InteractionIterator, error) {
	if s.err != nil {
		return nil, s.err
	}

	return &stubIterator{interactions: s.interactions}, nil
}

type stubIterator struct {
	interactions []*gamedata.Interaction
	currentIndex int
}

func (i *stubIterator) Next() bool {
	if i.currentIndex >= len(i.interactions) {
		return false
	}

	i.currentIndex++

	return true
}

func (i *stubIterator) Error() error { return nil }
func (i *stubIterator) Close() error { return nil }

func (i *stubIterator) Interaction() *gamedata.Interaction {
	return i.interactions[i.currentIndex-1]
}

func (s *builderTestSuite) TestConfigValidation(c *check.C) {
	_, err := NewBuilder(BuilderConfig{})
	c.Assert(err, check.ErrorMatches, "(?ms).*interaction source not provided.*")

	b, err := NewBuilder(BuilderConfig{Source: &stubSource{}})
	c.Assert(err, check.IsNil)
	c.Assert(
		b.config.Logger, check.Not(check.IsNil),
		check.Commentf("default logger was not assigned"),
	)
}

func (s *builderTestSuite) TestBuild(c *check.C) {
	yes := true
	source := &stubSource{interactions: []*gamedata.Interaction{
		{UserID: "u-1", GameName: "Alpha", Playtime: 10},
		{UserID: "u-2", GameName: "Alpha", Playtime: 30},
		{UserID: "u-2", GameName: "Beta", Playtime: 0, Recommend: &yes},
	}}

	b, err := NewBuilder(BuilderConfig{Source: source})
	c.Assert(err, check.IsNil)

	g, err := b.Build()
	c.Assert(err, check.IsNil)
	c.Assert(g.VertexCount(), check.Equals, 4)

	// Alpha playtimes {10, 30}: mean 20, std 10. u-2's z-score is +1,
	// so its edge weighs 0.5; u-1's z-score is -1 and clamps to zero.
	u1, _ := g.Vertex("u-1")
	u2, _ := g.Vertex("u-2")
	alpha, _ := g.Vertex("Alpha")
	beta, _ := g.Vertex("Beta")

	w, exists := u2.EdgeWeight(alpha)
	c.Assert(exists, check.Equals, true)
	c.Assert(w, check.Equals, 0.5)

	w, exists = u1.EdgeWeight(alpha)
	c.Assert(exists, check.Equals, true)
	c.Assert(w, check.Equals, 0.0)

	// Beta has a single interaction: std = 0, z-score term 0, verdict
	// bonus only.
	w, exists = u2.EdgeWeight(beta)
	c.Assert(exists, check.Equals, true)
	c.Assert(w, check.Equals, 2.0)
}

func (s *builderTestSuite) TestBuildSkipsMalformedRecords(c *check.C) {
	source := &stubSource{interactions: []*gamedata.Interaction{
		{UserID: "u-1", GameName: "Alpha", Playtime: 10},
		{UserID: "", GameName: "Alpha", Playtime: 10},
		{UserID: "u-2", GameName: "", Playtime: 10},
		{UserID: "u-3", GameName: "Alpha", Playtime: -5},
	}}

	b, err := NewBuilder(BuilderConfig{Source: source})
	c.Assert(err, check.IsNil)

	g, err := b.Build()
	c.Assert(err, check.IsNil)

	// Only the well-formed record contributes vertices.
	c.Assert(g.VertexCount(), check.Equals, 2)

	_, exists := g.Vertex("u-3")
	c.Assert(exists, check.Equals, false)
}

func (s *builderTestSuite) TestBuildPropagatesSourceErrors(c *check.C) {
	source := &stubSource{err: fmt.Errorf("record stream unavailable")}

	b, err := NewBuilder(BuilderConfig{Source: source})
	c.Assert(err, check.IsNil)

	_, err = b.Build()
	c.Assert(err, check.ErrorMatches, "(?ms).*record stream unavailable.*")
}
