package gamedata

import "math"

// PlaytimeStats holds the playtime population statistics for a single
// game, aggregated across every user that interacted with it.
type PlaytimeStats struct {
	Mean   float64 // Average playtime in minutes.
	StdDev float64 // Population standard deviation of playtime.
}

// ComputeStats consumes the provided iterator and returns per-game
// playtime statistics for the full interaction stream. The statistics
// pass must run to completion before any edge weight can be assigned,
// which makes graph construction a strict two-pass process.
//
// Invalid interactions are skipped; a game observed through a single
// interaction legitimately reports a zero standard deviation.
func ComputeStats(it InteractionIterator) (map[string]PlaytimeStats, error) {
	playtimes := make(map[string][]float64)

	for it.Next() {
		interaction := it.Interaction()
		if !interaction.Valid() {
			continue
		}

		playtimes[interaction.GameName] = append(
			playtimes[interaction.GameName], float64(interaction.Playtime),
		)
	}

	if err := it.Error(); err != nil {
		_ = it.Close()

		return nil, err
	}

	if err := it.Close(); err != nil {
		return nil, err
	}

	stats := make(map[string]PlaytimeStats, len(playtimes))
	for game, times := range playtimes {
		var mean float64
		for _, t := range times {
			mean += t
		}
		mean /= float64(len(times))

		var variance float64
		for _, t := range times {
			variance += (t - mean) * (t - mean)
		}
		variance /= float64(len(times))

		stats[game] = PlaytimeStats{
			Mean:   mean,
			StdDev: math.Sqrt(variance),
		}
	}

	return stats, nil
}
