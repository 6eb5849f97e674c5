package memory

import (
	"fmt"
	"sync"
	"time"

	"github.com/blevesearch/bleve"
	"github.com/blevesearch/bleve/search/query"

	"github.com/Samario-in-UofT24/Content-based-Filtering-Program/gameindex/index"
)

// Size of each page of results that is cached locally by the iterator.
const batchSize = 10

// Static and compile-time check to ensure InMemoryIndex implements Indexer.
var _ index.Indexer = (*InMemoryIndex)(nil)

type bleveDoc struct {
	Name       string
	Genres     []string
	Popularity float64
}

// InMemoryIndex is an Indexer implementation that uses a bleve instance
// to index / catalogue and search game documents but saves it's index
// in memory.
type InMemoryIndex struct {
	mu   sync.RWMutex // Mutex instance.
	docs map[string]*index.Document
	idx  bleve.Index // Pointer to an InMemoryIndex instance.
}

// NewInMemoryIndex instantiates and returns a game indexer that
// uses an in-memory bleve instance to index documents.
func NewInMemoryIndex() (*InMemoryIndex, error) {
	mapping := bleve.NewIndexMapping()
	idx, err := bleve.NewMemOnly(mapping)
	if err != nil {
		return nil, err
	}

	return &InMemoryIndex{
		idx:  idx,
		docs: make(map[string]*index.Document),
	}, nil
}

// Close releases / frees any previously allocated resources.
func (s *InMemoryIndex) Close() error {
	return s.idx.Close()
}

// Index adds a new document or updates an existing index entry
// in case of an existing document.
func (s *InMemoryIndex) Index(doc *index.Document) error {
	if doc.Name == "" {
		return fmt.Errorf("index: %w", index.ErrMissingName)
	}

	doc.IndexedAt = time.Now()
	dCopy := copyDoc(doc)
	key := dCopy.Name

	// Acquire a general lock to avoid data races while mutating index data.
	// Note: No other writes and reads are allowed for as long as this lock
	// is active.
	s.mu.Lock()
	defer s.mu.Unlock()
	// If updating, preserve existing popularity score.
	if existingDoc, exists := s.docs[key]; exists {
		dCopy.Popularity = existingDoc.Popularity
	}

	if err := s.idx.Index(key, makeBleveDoc(dCopy)); err != nil {
		return fmt.Errorf("insert: %w", err)
	}

	s.docs[key] = dCopy

	return nil
}

// FindByName looks up a document by its exact game name.
func (s *InMemoryIndex) FindByName(name string) (*index.Document, error) {
	// Read lock allows other processes or goroutines to perform reads by
	// concurrently acquiring other read locks.
	s.mu.RLock()
	defer s.mu.RUnlock()

	if doc, exists := s.docs[name]; exists {
		return copyDoc(doc), nil
	}

	return nil, fmt.Errorf("find by name: %w", index.ErrNotFound)
}

// Search performs a look up based on query and returns a result
// iterator if successful or an error otherwise.
func (s *InMemoryIndex) Search(q index.Query) (index.Iterator, error) {
	var bleveQuery query.Query

	switch q.Type {
	case index.QueryTypePhrase:
		bleveQuery = bleve.NewMatchPhraseQuery(q.Expression)
	default:
		bleveQuery = bleve.NewMatchQuery(q.Expression)
	}

	searchReq := bleve.NewSearchRequest(bleveQuery)
	searchReq.SortBy([]string{"-Popularity", "-_score"})
	searchReq.Size = batchSize
	searchReq.From = int(q.Offset) // Initial result cursor point. it's always 0.

	sr, err := s.idx.Search(searchReq)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}

	return &docIterator{
		idx:       s,
		searchReq: searchReq,
		searchRes: sr,
		cumIdx:    q.Offset,
	}, nil
}

// UpdatePopularity updates the popularity score for the document with
// the specified game name. If no such document exists, a placeholder
// document with the provided score will be created.
func (s *InMemoryIndex) UpdatePopularity(name string, popularity float64) error {
	// Acquire a general lock to avoid data races while mutating index data.
	// Note: No other writes and reads are allowed for as long as this lock
	// is active.
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, exists := s.docs[name]
	if !exists {
		doc = &index.Document{
			Name: name,
		}

		s.docs[name] = doc
	}

	doc.Popularity = popularity

	// When we update the popularity of an index document, we must
	// ensure that we re-index in order to refresh / update the index. Failure
	// to do so would result into outdated search results.
	if err := s.idx.Index(name, makeBleveDoc(doc)); err != nil {
		return fmt.Errorf("update popularity: %w", err)
	}

	return nil
}

func copyDoc(doc *index.Document) *index.Document {
	dCopy := new(index.Document)
	*dCopy = *doc
	if doc.Genres != nil {
		dCopy.Genres = make([]string, len(doc.Genres))
		copy(dCopy.Genres, doc.Genres)
	}

	return dCopy
}

func makeBleveDoc(doc *index.Document) bleveDoc {
	return bleveDoc{
		Name:       doc.Name,
		Genres:     doc.Genres,
		Popularity: doc.Popularity,
	}
}
