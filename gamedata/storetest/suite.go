package storetest

import (
	"sort"

	check "gopkg.in/check.v1"

	"github.com/Samario-in-UofT24/Content-based-Filtering-Program/gamedata"
)

// BaseSuite defines a set of re-usable data store tests that can be
// executed against any concrete type that implements the
// gamedata.Store interface.
type BaseSuite struct {
	s gamedata.Store
}

// SetStore configures the test-suite to run all tests against an
// instance of gamedata.Store.
func (s *BaseSuite) SetStore(store gamedata.Store) {
	s.s = store
}

// TestInteractionUpsert verifies the interaction upsert logic.
func (s *BaseSuite) TestInteractionUpsert(c *check.C) {
	recommend := true
	initial := &gamedata.Interaction{
		UserID:    "u-1",
		GameName:  "Alpha",
		Playtime:  120,
		Recommend: &recommend,
		Review:    "great game",
	}

	err := s.s.UpsertInteraction(initial)
	c.Assert(err, check.IsNil)

	// Upserting the same (user, game) pair should replace the existing
	// record rather than create a duplicate.
	updated := &gamedata.Interaction{
		UserID:   "u-1",
		GameName: "Alpha",
		Playtime: 300,
	}

	err = s.s.UpsertInteraction(updated)
	c.Assert(err, check.IsNil)

	stored := s.collectInteractions(c)
	c.Assert(
		len(stored), check.Equals, 1,
		check.Commentf("upsert for an existing (user, game) pair created a duplicate"),
	)
	c.Assert(stored[0].Playtime, check.Equals, 300)
	c.Assert(
		stored[0].Recommend, check.IsNil,
		check.Commentf("stale recommend verdict survived the upsert"),
	)

	// A record for a different game must not collide with the first.
	err = s.s.UpsertInteraction(&gamedata.Interaction{
		UserID:   "u-1",
		GameName: "Beta",
		Playtime: 15,
	})
	c.Assert(err, check.IsNil)

	stored = s.collectInteractions(c)
	c.Assert(len(stored), check.Equals, 2)
}

// TestInteractionUpsertValidation verifies that invalid interactions
// are rejected with gamedata.ErrInvalidRecord.
func (s *BaseSuite) TestInteractionUpsertValidation(c *check.C) {
	for _, interaction := range []*gamedata.Interaction{
		{GameName: "Alpha", Playtime: 10},
		{UserID: "u-1", Playtime: 10},
		{UserID: "u-1", GameName: "Alpha", Playtime: -1},
	} {
		err := s.s.UpsertInteraction(interaction)
		c.Assert(
			err, check.ErrorMatches, ".*invalid required fields.*",
			check.Commentf("expected validation failure for %+v", interaction),
		)
	}
}

// TestGameUpsert verifies the classified catalog upsert logic.
func (s *BaseSuite) TestGameUpsert(c *check.C) {
	err := s.s.UpsertGame(&gamedata.Game{
		Name:   "Alpha",
		Genres: []string{"Action"},
	})
	c.Assert(err, check.IsNil)

	// Re-classifying an existing game replaces its genre list.
	err = s.s.UpsertGame(&gamedata.Game{
		Name:   "Alpha",
		Genres: []string{"Action", "RPG"},
	})
	c.Assert(err, check.IsNil)

	err = s.s.UpsertGame(&gamedata.Game{Name: "Beta"})
	c.Assert(err, check.IsNil)

	games := s.collectGames(c)
	c.Assert(len(games), check.Equals, 2)

	byName := make(map[string][]string, len(games))
	for _, game := range games {
		byName[game.Name] = game.Genres
	}

	c.Assert(byName["Alpha"], check.DeepEquals, []string{"Action", "RPG"})
	c.Assert(len(byName["Beta"]), check.Equals, 0)

	err = s.s.UpsertGame(&gamedata.Game{Genres: []string{"Action"}})
	c.Assert(err, check.ErrorMatches, ".*invalid required fields.*")
}

// TestIteratorSnapshots verifies that iterators expose every stored
// record exactly once and terminate cleanly.
func (s *BaseSuite) TestIteratorSnapshots(c *check.C) {
	expected := []string{"u-1", "u-2", "u-3"}
	for _, userID := range expected {
		err := s.s.UpsertInteraction(&gamedata.Interaction{
			UserID:   userID,
			GameName: "Alpha",
			Playtime: 60,
		})
		c.Assert(err, check.IsNil)
	}

	var seen []string
	for _, interaction := range s.collectInteractions(c) {
		seen = append(seen, interaction.UserID)
	}
	sort.Strings(seen)

	c.Assert(seen, check.DeepEquals, expected)
}

// collectInteractions drains an interaction iterator into a slice.
func (s *BaseSuite) collectInteractions(c *check.C) []*gamedata.Interaction {
	it, err := s.s.Interactions()
	c.Assert(err, check.IsNil)

	var list []*gamedata.Interaction
	for it.Next() {
		list = append(list, it.Interaction())
	}

	c.Assert(it.Error(), check.IsNil)
	c.Assert(it.Close(), check.IsNil)

	return list
}

// collectGames drains a catalog iterator into a slice.
func (s *BaseSuite) collectGames(c *check.C) []*gamedata.Game {
	it, err := s.s.Games()
	c.Assert(err, check.IsNil)

	var list []*gamedata.Game
	for it.Next() {
		list = append(list, it.Game())
	}

	c.Assert(it.Error(), check.IsNil)
	c.Assert(it.Close(), check.IsNil)

	return list
}
