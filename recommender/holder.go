package recommender

import (
	"errors"
	"sync/atomic"
)

// ErrNotReady is returned for queries that arrive before the first
// engine has been published.
var ErrNotReady = errors.New("recommendation engine not ready")

// Holder hands out the most recently published engine. Source data
// changes are handled by building a brand new graph and tree and
// publishing a replacement engine wholesale; in-flight queries keep
// using the engine they resolved, new queries observe the swap
// atomically.
type Holder struct {
	engine atomic.Pointer[Engine]
}

// Publish atomically replaces the current engine.
func (h *Holder) Publish(engine *Engine) {
	h.engine.Store(engine)
}

// Recommend resolves the current engine and delegates the query to it.
func (h *Holder) Recommend(
	likedGame string, topK int, boostFactor float64,
) (*Ranking, error) {

	engine := h.engine.Load()
	if engine == nil {
		return nil, ErrNotReady
	}

	return engine.Recommend(likedGame, topK, boostFactor), nil
}
