package indextest

import (
	"errors"
	"fmt"
	"time"

	check "gopkg.in/check.v1"

	"github.com/Samario-in-UofT24/Content-based-Filtering-Program/gameindex/index"
)

// BaseSuite defines a set of re-usable index related tests that can
// be executed against any concrete type that implements the index.Indexer interface.
type BaseSuite struct {
	idx index.Indexer
}

// SetIndex sets BaseSuite's index field.
func (s *BaseSuite) SetIndex(index index.Indexer) {
	s.idx = index
}

// TestIndexingDocument verifies the indexing logic for new and existing documents.
func (s *BaseSuite) TestIndexingDocument(c *check.C) {
	// Upsert new document.
	doc := &index.Document{
		Name:      "Iron Harvest",
		Genres:    []string{"Strategy"},
		IndexedAt: time.Now().Add(-12 * time.Hour).UTC(),
	}

	err := s.idx.Index(doc)
	c.Assert(
		err, check.IsNil,
		check.Commentf("++++Index insert++++: %v", err),
	)

	// Update existing document
	updatedDoc := &index.Document{
		Name:      doc.Name,
		Genres:    []string{"Strategy", "Indie"},
		IndexedAt: time.Now().UTC(),
	}

	err = s.idx.Index(updatedDoc)
	c.Assert(
		err, check.IsNil,
		check.Commentf("++++Index update++++: %v", err),
	)

	// Query the index to verify the update process.
	d, err := s.idx.FindByName(updatedDoc.Name)
	c.Assert(err, check.IsNil)
	c.Assert(d, check.DeepEquals, updatedDoc)

	// Insert a document without a name.
	docWithoutName := &index.Document{
		Genres: []string{"Strategy"},
	}

	err = s.idx.Index(docWithoutName)
	c.Assert(
		errors.Is(err, index.ErrMissingName), check.Equals, true,
		check.Commentf("++++Index insert++++: %v", err),
	)
}

// TestIndexingDoesNotOverridePopularity verifies the indexing logic for new
// documents and UpdatePopularity logic for existing documents.
func (s *BaseSuite) TestIndexingDoesNotOverridePopularity(c *check.C) {
	// Upsert new document.
	doc := &index.Document{
		Name:      "Iron Harvest",
		Genres:    []string{"Strategy"},
		IndexedAt: time.Now().Add(-12 * time.Hour).UTC(),
	}

	err := s.idx.Index(doc)
	c.Assert(
		err, check.IsNil,
		check.Commentf("++++Index insert++++: %v", err),
	)

	// Update the inserted doc's popularity.
	updatedPopularity := 42.0

	// Update existing document.
	updatedDoc := &index.Document{
		Name:       doc.Name,
		Genres:     []string{"Strategy", "Indie"},
		IndexedAt:  time.Now().UTC(),
		Popularity: updatedPopularity,
	}

	err = s.idx.Index(updatedDoc)
	c.Assert(
		err, check.IsNil,
		check.Commentf("++++Index update++++: %v", err),
	)

	// Verify that the indexing logic doesn't override the Popularity value
	// during an update to an existing document.
	d, err := s.idx.FindByName(updatedDoc.Name)
	c.Assert(
		err, check.IsNil,
		check.Commentf("++++Find doc by name++++: %v", err),
	)
	c.Assert(d.Popularity, check.Not(check.Equals), updatedPopularity)
	c.Assert(d.Genres, check.Not(check.DeepEquals), doc.Genres)

	// Update the document popularity.
	err = s.idx.UpdatePopularity(doc.Name, updatedPopularity)
	c.Assert(
		err, check.IsNil,
		check.Commentf("++++Update popularity++++: %v", err),
	)

	d, err = s.idx.FindByName(doc.Name)
	c.Assert(
		err, check.IsNil,
		check.Commentf("++++Find doc by name++++: %v", err),
	)
	c.Assert(d.Popularity, check.Equals, updatedPopularity)
}

// TestFindByName verifies the document lookup logic.
func (s *BaseSuite) TestFindByName(c *check.C) {
	// Upsert new document.
	doc := &index.Document{
		Name:      "Iron Harvest",
		Genres:    []string{"Strategy"},
		IndexedAt: time.Now().Add(-12 * time.Hour).UTC(),
	}

	err := s.idx.Index(doc)
	c.Assert(
		err, check.IsNil,
		check.Commentf("++++Index insert++++: %v", err),
	)

	// Perform a doc lookup to verify the insert logic.
	retrievedDoc, err := s.idx.FindByName(doc.Name)
	c.Assert(err, check.IsNil)
	c.Assert(retrievedDoc, check.DeepEquals, doc, check.Commentf("document returned by FindByName does not match the inserted document"))

	// Perform a doc lookup for a non existing name.
	_, err = s.idx.FindByName("No Such Game")
	c.Assert(errors.Is(err, index.ErrNotFound), check.Equals, true)
}

// TestFullTextSearch verifies the document search logic when searching for
// exact phrases.
func (s *BaseSuite) TestFullTextSearch(c *check.C) {
	var (
		numOfDocs     = 50
		expectedNames = make([]string, 0)
	)

	// Insert and assign popularity scores to 50 documents.
	for i := 0; i < numOfDocs; i++ {
		name := fmt.Sprintf("catalog game %d", i)
		doc := &index.Document{
			Name:   name,
			Genres: []string{"Action"},
		}

		if i%5 == 0 {
			doc.Genres = []string{"Turn Based Strategy"}
			expectedNames = append(expectedNames, name)
		}

		err := s.idx.Index(doc)
		c.Assert(
			err, check.IsNil,
			check.Commentf("++++Index insert++++: %v", err),
		)

		err = s.idx.UpdatePopularity(name, float64(numOfDocs-i))
		c.Assert(
			err, check.IsNil,
			check.Commentf("++++Update popularity++++: %v", err),
		)
	}

	// Perform phrase / full-text-search
	it, err := s.idx.Search(index.Query{
		Type:       index.QueryTypePhrase,
		Expression: "Turn Based Strategy",
	})
	c.Assert(
		err, check.IsNil,
		check.Commentf("++++Search full-text / phrase++++: %v", err),
	)
	c.Assert(iterateDocs(c, it), check.DeepEquals, expectedNames)
}

// TestMatchKeywordSearch verifies the document search logic when searching for
// keyword matches.
func (s *BaseSuite) TestMatchKeywordSearch(c *check.C) {
	var (
		numOfDocs     = 50
		expectedNames = make([]string, 0)
	)

	// Insert and assign popularity scores to 50 documents.
	for i := 0; i < numOfDocs; i++ {
		name := fmt.Sprintf("catalog game %d", i)
		doc := &index.Document{
			Name:   name,
			Genres: []string{"Action"},
		}

		if i%5 == 0 {
			doc.Genres = []string{"Strategy"}
			expectedNames = append(expectedNames, name)
		}

		err := s.idx.Index(doc)
		c.Assert(
			err, check.IsNil,
			check.Commentf("++++Index insert++++: %v", err),
		)

		err = s.idx.UpdatePopularity(name, float64(numOfDocs-i))
		c.Assert(
			err, check.IsNil,
			check.Commentf("++++Update popularity++++: %v", err),
		)
	}

	// Perform keyword match search
	it, err := s.idx.Search(index.Query{
		Type:       index.QueryTypeMatch,
		Expression: "strategy",
	})
	c.Assert(
		err, check.IsNil,
		check.Commentf("++++Search keyword match++++: %v", err),
	)
	c.Assert(iterateDocs(c, it), check.DeepEquals, expectedNames)
}

// TestMatchKeywordSearchWithOffset verifies the document search logic when searching
// for keyword matches and skipping some results.
func (s *BaseSuite) TestMatchKeywordSearchWithOffset(c *check.C) {
	var (
		numOfDocs     = 50
		expectedNames = make([]string, 0)
	)

	// Insert and assign popularity scores to 50 documents.
	for i := 0; i < numOfDocs; i++ {
		name := fmt.Sprintf("catalog game %d", i)
		expectedNames = append(expectedNames, name)

		doc := &index.Document{
			Name:   name,
			Genres: []string{"Action"},
		}

		err := s.idx.Index(doc)
		c.Assert(
			err, check.IsNil,
			check.Commentf("++++Index insert++++: %v", err),
		)

		err = s.idx.UpdatePopularity(name, float64(numOfDocs-i))
		c.Assert(
			err, check.IsNil,
			check.Commentf("++++Update popularity++++: %v", err),
		)
	}

	// Perform keyword match search with an offset.
	it, err := s.idx.Search(index.Query{
		Type:       index.QueryTypeMatch,
		Expression: "action",
		Offset:     20,
	})
	c.Assert(
		err, check.IsNil,
		check.Commentf("++++Search keyword match++++: %v", err),
	)
	c.Assert(iterateDocs(c, it), check.DeepEquals, expectedNames[20:])

	// Search with offset above the total number of results
	it, err = s.idx.Search(index.Query{
		Type:       index.QueryTypeMatch,
		Expression: "action",
		Offset:     200,
	})

	c.Assert(err, check.IsNil)
	c.Assert(iterateDocs(c, it), check.HasLen, 0)
}

// TestUpdatePopularity checks that popularity score updates work as expected.
func (s *BaseSuite) TestUpdatePopularity(c *check.C) {
	var (
		numOfDocs     = 50
		expectedNames = make([]string, 0)
	)

	for i := 0; i < numOfDocs; i++ {
		name := fmt.Sprintf("catalog game %d", i)
		expectedNames = append(expectedNames, name)

		doc := &index.Document{
			Name:   name,
			Genres: []string{"Action"},
		}

		err := s.idx.Index(doc)
		c.Assert(
			err, check.IsNil,
			check.Commentf("++++Index insert++++: %v", err),
		)

		err = s.idx.UpdatePopularity(name, float64(numOfDocs-i))
		c.Assert(
			err, check.IsNil,
			check.Commentf("++++Update popularity++++: %v", err),
		)
	}

	it, err := s.idx.Search(index.Query{
		Type:       index.QueryTypeMatch,
		Expression: "action",
	})
	c.Assert(
		err, check.IsNil,
		check.Commentf("++++Search keyword match++++: %v", err),
	)
	c.Assert(iterateDocs(c, it), check.DeepEquals, expectedNames)

	// Update the popularity scores so that results are sorted in the
	// reverse order.
	for i := 0; i < numOfDocs; i++ {
		err := s.idx.UpdatePopularity(expectedNames[i], float64(i))
		c.Assert(
			err, check.IsNil,
			check.Commentf("++++Update popularity++++: %v", err),
		)
	}

	it, err = s.idx.Search(index.Query{
		Type:       index.QueryTypeMatch,
		Expression: "action",
	})
	c.Assert(
		err, check.IsNil,
		check.Commentf("++++Search keyword match++++: %v", err),
	)
	c.Assert(iterateDocs(c, it), check.DeepEquals, reverse(expectedNames))
}

// TestUpdatePopularityForUnknownDocument checks that a placeholder document
// will be created when setting the popularity score for an unknown document.
func (s *BaseSuite) TestUpdatePopularityForUnknownDocument(c *check.C) {
	err := s.idx.UpdatePopularity("Iron Harvest", 12)
	c.Assert(
		err, check.IsNil,
		check.Commentf("++++Update popularity++++: %v", err),
	)

	doc, err := s.idx.FindByName("Iron Harvest")
	c.Assert(
		err, check.IsNil,
		check.Commentf("++++Find doc by name++++: %v", err),
	)
	c.Assert(doc.Genres, check.HasLen, 0)
	c.Assert(doc.IndexedAt.IsZero(), check.Equals, true)
	c.Assert(doc.Popularity, check.Equals, 12.0)
}

func iterateDocs(c *check.C, it index.Iterator) []string {
	var docNames []string
	for it.Next() {
		docNames = append(docNames, it.Document().Name)
	}

	c.Assert(it.Error(), check.IsNil)
	c.Assert(it.Close(), check.IsNil)

	return docNames
}

func reverse(data []string) []string {
	for left, right := 0, len(data)-1; left < right; left, right = left+1, right-1 {
		data[left], data[right] = data[right], data[left]
	}

	return data
}
