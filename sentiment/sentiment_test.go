package sentiment

import (
	"testing"

	check "gopkg.in/check.v1"
)

var _ = check.Suite(new(vaderScorerTestSuite))

// Test registers the [check] library with the go testing library and enables
// the running of the test suite using the go testing library.
func Test(t *testing.T) {
	check.TestingT(t)
}

type vaderScorerTestSuite struct {
	scorer *VaderScorer
}

func (s *vaderScorerTestSuite) SetUpSuite(c *check.C) {
	s.scorer = NewVaderScorer()
}

func (s *vaderScorerTestSuite) TestEmptyTextScoresZero(c *check.C) {
	c.Assert(s.scorer.Score(""), check.Equals, 0.0)
	c.Assert(s.scorer.Score("   "), check.Equals, 0.0)
}

func (s *vaderScorerTestSuite) TestPositiveReview(c *check.C) {
	score := s.scorer.Score("Absolutely amazing game, I love it!")

	c.Assert(score > 0, check.Equals, true, check.Commentf("score: %v", score))
	c.Assert(score <= 1, check.Equals, true)
}

func (s *vaderScorerTestSuite) TestNegativeReview(c *check.C) {
	score := s.scorer.Score("Terrible, boring and broken. A complete waste of money.")

	c.Assert(score < 0, check.Equals, true, check.Commentf("score: %v", score))
	c.Assert(score >= -1, check.Equals, true)
}

func (s *vaderScorerTestSuite) TestMarkupIsStrippedBeforeScoring(c *check.C) {
	plain := s.scorer.Score("wonderful game")
	markedUp := s.scorer.Score("<b>wonderful</b> game")

	c.Assert(markedUp, check.Equals, plain)
}

func (s *vaderScorerTestSuite) TestMarkupOnlyTextScoresZero(c *check.C) {
	c.Assert(s.scorer.Score("<script>alert(1)</script>"), check.Equals, 0.0)
}
