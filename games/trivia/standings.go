package trivia

import "sort"

// Standings orders players by score, highest first. Ties keep the input
// order, which for engine output is join order.
func Standings(players []Player) []Player {
	out := make([]Player, len(players))
	copy(out, players)

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Score > out[j].Score
	})

	return out
}
