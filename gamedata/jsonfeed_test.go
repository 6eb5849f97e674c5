package gamedata_test

import (
	"strings"

	check "gopkg.in/check.v1"

	"github.com/Samario-in-UofT24/Content-based-Filtering-Program/gamedata"
	"github.com/Samario-in-UofT24/Content-based-Filtering-Program/gamedata/store/memory"
)

var _ = check.Suite(new(jsonFeedTestSuite))

type jsonFeedTestSuite struct {
	store *memory.InMemoryStore
}

func (s *jsonFeedTestSuite) SetUpTest(c *check.C) {
	s.store = memory.NewInMemoryStore()
}

func (s *jsonFeedTestSuite) TestLoadInteractions(c *check.C) {
	feed := strings.Join([]string{
		`{"user_id":"u-1","item_name":"Alpha","playtime_forever":120,"recommend":true,"review":"loved it"}`,
		`{"user_id":"u-2","item_name":"Alpha","playtime_forever":30}`,
		`not-json`,
		`{"item_name":"Beta","playtime_forever":10}`,
		``,
		`{"user_id":"u-2","item_name":"Beta","playtime_forever":5,"recommend":false}`,
	}, "\n")

	loaded, skipped, err := gamedata.LoadInteractions(strings.NewReader(feed), s.store)
	c.Assert(err, check.IsNil)
	c.Assert(loaded, check.Equals, 3)
	// The unparsable line and the record with a missing user id are
	// skipped individually without aborting the load.
	c.Assert(skipped, check.Equals, 2)

	it, err := s.store.Interactions()
	c.Assert(err, check.IsNil)

	byKey := make(map[string]*gamedata.Interaction)
	for it.Next() {
		interaction := it.Interaction()
		byKey[interaction.UserID+"/"+interaction.GameName] = interaction
	}
	c.Assert(it.Error(), check.IsNil)
	c.Assert(it.Close(), check.IsNil)

	c.Assert(len(byKey), check.Equals, 3)
	c.Assert(byKey["u-1/Alpha"].Review, check.Equals, "loved it")
	c.Assert(*byKey["u-1/Alpha"].Recommend, check.Equals, true)
	c.Assert(byKey["u-2/Alpha"].Recommend, check.IsNil)
	c.Assert(*byKey["u-2/Beta"].Recommend, check.Equals, false)
}

func (s *jsonFeedTestSuite) TestLoadCatalog(c *check.C) {
	feed := `[
		{"item_name":"Alpha","genre":["Action"]},
		{"item_name":"Beta","genre":["Action","RPG"]},
		{"genre":["Sports"]}
	]`

	loaded, skipped, err := gamedata.LoadCatalog(strings.NewReader(feed), s.store)
	c.Assert(err, check.IsNil)
	c.Assert(loaded, check.Equals, 2)
	c.Assert(skipped, check.Equals, 1)

	it, err := s.store.Games()
	c.Assert(err, check.IsNil)

	genres := make(map[string][]string)
	for it.Next() {
		game := it.Game()
		genres[game.Name] = game.Genres
	}
	c.Assert(it.Error(), check.IsNil)
	c.Assert(it.Close(), check.IsNil)

	c.Assert(genres, check.DeepEquals, map[string][]string{
		"Alpha": {"Action"},
		"Beta":  {"Action", "RPG"},
	})
}

func (s *jsonFeedTestSuite) TestLoadCatalogRejectsMalformedDocument(c *check.C) {
	_, _, err := gamedata.LoadCatalog(strings.NewReader(`{"not":"an array"`), s.store)
	c.Assert(err, check.Not(check.IsNil))
}
