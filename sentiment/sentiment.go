/*
	sentiment package defines the contract for scoring free-form review
	text together with a VADER-lexicon based implementation.
*/

package sentiment

import (
	"html"
	"regexp"
	"strings"
	"sync"

	"github.com/grassmudhorses/vader-go/lexicon"
	"github.com/grassmudhorses/vader-go/sentitext"
	"github.com/microcosm-cc/bluemonday"
)

// Scorer should be implemented by types that map review text to a
// compound sentiment score in the [-1, 1] range.
type Scorer interface {
	// Score returns the compound sentiment score for the provided text.
	// Empty text always scores zero.
	Score(text string) float64
}

// Static and compile-time check to ensure VaderScorer implements the
// Scorer interface.
var _ Scorer = (*VaderScorer)(nil)

var repeatedSpaceRegex = regexp.MustCompile(`\s+`)

// VaderScorer scores review text against the VADER sentiment lexicon.
// Reviews are user-submitted and may contain markup, so the text is
// stripped of tags and entity escapes before scoring.
type VaderScorer struct {
	policyPool sync.Pool
}

// NewVaderScorer creates and returns a ready to use VaderScorer.
func NewVaderScorer() *VaderScorer {
	return &VaderScorer{
		policyPool: sync.Pool{
			New: func() interface{} {
				return bluemonday.StrictPolicy()
			},
		},
	}
}

// Score returns the compound sentiment score for the provided review
// text. Text that sanitizes down to nothing scores zero.
func (s *VaderScorer) Score(text string) float64 {
	if text == "" {
		return 0
	}

	policy := s.policyPool.Get().(*bluemonday.Policy)
	clean := repeatedSpaceRegex.ReplaceAllString(
		html.UnescapeString(policy.Sanitize(text)), " ",
	)
	s.policyPool.Put(policy)

	clean = strings.TrimSpace(clean)
	if clean == "" {
		return 0
	}

	parsed := sentitext.Parse(clean, lexicon.DefaultLexicon)

	return sentitext.PolarityScore(parsed).Compound
}
