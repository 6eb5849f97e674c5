package cdb

import (
	"database/sql"
	"os"
	"testing"

	check "gopkg.in/check.v1"

	"github.com/Samario-in-UofT24/Content-based-Filtering-Program/gamedata/storetest"
)

// Initialize and register an instance of the cockroachDBStoreTestSuite
// to be executed by check testing package.
var _ = check.Suite(new(cockroachDBStoreTestSuite))

// Test registers the [check] library with the go testing library and enables
// the running of the test suite using the go testing library.
func Test(t *testing.T) {
	check.TestingT(t)
}

// cockroachDBStoreTestSuite embeds and runs the BaseSuite tests methods.
type cockroachDBStoreTestSuite struct {
	// Keep track of the sql.DB instance from the store implementation
	// so we can execute SQL statements to reset the db between tests.
	db *sql.DB
	storetest.BaseSuite
}

// SetUpSuite runs only once before all tests in the test suite. it's
// responsible for setting up required resources necessary for
// running the entire suite. ie database setup or reset.
func (s *cockroachDBStoreTestSuite) SetUpSuite(c *check.C) {
	dsn := os.Getenv("CDB_DSN")
	if dsn == "" {
		c.Skip("Missing CDB_DSN envvar: skipping cockroachDB backed test suite")
	}

	store, err := NewCockroachDBStore(dsn)
	if err != nil {
		c.Fatalf("Failed to make a database connection: %v", err)
	}

	s.SetStore(store)
	// Pass store db instance reference forward to the suite.
	s.db = store.db
}

// TearDownSuite runs only once after the entire test suite has completed
// running. it resets the database and closes the db connection if open.
func (s *cockroachDBStoreTestSuite) TearDownSuite(c *check.C) {
	if s.db != nil {
		s.flushDB(c)
		c.Assert(s.db.Close(), check.IsNil)
	}
}

// SetUpTest runs before each test in the test suite. it's
// responsible for setting up the necessary environment for
// running that specific test. ie database reset.
func (s *cockroachDBStoreTestSuite) SetUpTest(c *check.C) {
	s.flushDB(c)
}

// flushDB helper resets the database by deleting all interaction and
// catalog entries from the interactions and games tables.
func (s *cockroachDBStoreTestSuite) flushDB(c *check.C) {
	_, err := s.db.Exec("DELETE FROM interactions")
	c.Assert(err, check.IsNil)

	_, err = s.db.Exec("DELETE FROM games")
	c.Assert(err, check.IsNil)
}
