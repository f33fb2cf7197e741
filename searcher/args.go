package searcher

import "time"

// Hyperparameters for MCTS

const DefaultExploration = 2.0 // Exploration constant

const VanillaIterations = 50    // Fast variant, random rollouts
const ModifiedIterations = 1000 // Strong variant, heuristic rollouts

// SeedGenerator provides the seed when none is set with WithSeed
var SeedGenerator = func() uint64 {
	return uint64(time.Now().UnixNano())
}
