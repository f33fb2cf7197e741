package experiments

import (
	"fmt"

	"mctsbot/engine"
	"mctsbot/experiments/metrics"
	"mctsbot/game/tictactoe"
	"mctsbot/game/uttt"
	"mctsbot/meta"
	"mctsbot/searcher"
	"mctsbot/searcher/agent"

	"github.com/rs/zerolog/log"
	"gonum.org/v1/gonum/stat"
)

// Summary is the outcome of one matchup from the first agent's point of view
type Summary struct {
	Agent1, Agent2 int // AgentConfig.ID
	Wins           int
	Losses         int
	Draws          int
	Score          float64 // Mean points per game: 1 for a win, 0.5 for a draw
	StdDev         float64
}

func (s Summary) String() string {
	return fmt.Sprintf("agent %d vs agent %d: %d wins, %d losses, %d draws, score %.3f ± %.3f",
		s.Agent1, s.Agent2, s.Wins, s.Losses, s.Draws, s.Score, s.StdDev)
}

type Result struct {
	Summaries []Summary
	Games     []metrics.GameRecord
	Moves     []metrics.MoveRecord
}

// MatchUps pairs every agent with every later agent
func MatchUps(configs []meta.AgentConfig) [][2]meta.AgentConfig {
	var matchUps [][2]meta.AgentConfig
	for i := range configs {
		for j := i + 1; j < len(configs); j++ {
			matchUps = append(matchUps, [2]meta.AgentConfig{configs[i], configs[j]})
		}
	}
	return matchUps
}

// Run plays cfg.Games games for each matchup, alternating which agent moves
// first, and writes the records below cfg.OutDir when it is set.
func Run(cfg meta.Config) (Result, error) {
	if err := cfg.Validate(); err != nil {
		return Result{}, err
	}

	var result Result
	matchUps := MatchUps(cfg.Agents)

	log.Info().Msgf("starting %s experiment with %d matchups...", cfg.Game, len(matchUps))

	for mi, matchUp := range matchUps {
		config1, config2 := matchUp[0], matchUp[1]
		log.Info().Msgf("starting matchup %d of %d between agent1=%+v and agent2=%+v...", mi+1, len(matchUps), config1, config2)

		summary := Summary{Agent1: config1.ID, Agent2: config2.ID}
		scores := make([]float64, 0, cfg.Games)

		for i := 0; i < cfg.Games; i++ {
			first, second := config1, config2
			if i%2 == 1 {
				first, second = config2, config1
			}

			id := len(result.Games) + 1
			winner, gameMetric, moveMetrics, err := runGame(cfg.Game, first, second, uint64(id))
			if err != nil {
				return result, fmt.Errorf("matchup %d game %d: %w", mi+1, i+1, err)
			}

			result.Games = append(result.Games, metrics.GameRecord{
				ID:         id,
				Agent1:     first.ID,
				Agent2:     second.ID,
				GameMetric: gameMetric,
			})
			for _, mm := range moveMetrics {
				result.Moves = append(result.Moves, metrics.MoveRecord{Game: id, MoveMetric: mm})
			}

			// Winner is a seat, map it back to the agent
			score := 0.5
			switch {
			case winner == 0:
				summary.Draws++
			case (winner == 1) == (first.ID == config1.ID):
				summary.Wins++
				score = 1
			default:
				summary.Losses++
				score = 0
			}
			scores = append(scores, score)

			log.Info().Msgf("completed matchup %d of %d game %d with winner: %d", mi+1, len(matchUps), i+1, winner)
		}

		summary.Score, summary.StdDev = stat.MeanStdDev(scores, nil)
		if len(scores) < 2 {
			summary.StdDev = 0
		}
		result.Summaries = append(result.Summaries, summary)
		log.Info().Msg(summary.String())
	}

	log.Info().Msgf("completed %s experiment", cfg.Game)

	if cfg.OutDir == "" {
		return result, nil
	}
	return result, store(cfg, result)
}

func store(cfg meta.Config, result Result) error {
	writer, err := metrics.NewWriter(cfg.OutDir, cfg.Game)
	if err != nil {
		return fmt.Errorf("failed to create experiment writer: %w", err)
	}

	err = writer.WriteAgentConfigs(cfg.Agents)
	if err != nil {
		return fmt.Errorf("failed to store agent configs: %w", err)
	}
	log.Info().Msg("stored agent configs")

	err = writer.WriteGameRecords(result.Games)
	if err != nil {
		return fmt.Errorf("failed to write game records: %w", err)
	}
	log.Info().Msg("stored game records")

	err = writer.WriteMoveRecords(result.Moves)
	if err != nil {
		return fmt.Errorf("failed to write move records: %w", err)
	}
	log.Info().Msgf("stored move records in %s", writer.Dir())
	return nil
}

// runGame plays a single game, config1 moving first
func runGame(name string, config1, config2 meta.AgentConfig, game uint64) (searcher.Player, metrics.GameMetric, []metrics.MoveMetric, error) {
	switch name {
	case "tictactoe":
		return playGame[tictactoe.State, tictactoe.Move](tictactoe.Board{}, tictactoe.New(), config1, config2, game)
	case "uttt":
		return playGame[uttt.State, uttt.Move](uttt.Board{}, uttt.New(), config1, config2, game)
	}
	return 0, metrics.GameMetric{}, nil, fmt.Errorf("unknown game %q", name)
}

func playGame[S any, A comparable](board searcher.Board[S, A], state S, config1, config2 meta.AgentConfig, game uint64) (searcher.Player, metrics.GameMetric, []metrics.MoveMetric, error) {
	agents := map[searcher.Player]agent.Agent[S, A]{
		1: CreateAgent(board, config1, game),
		2: CreateAgent(board, config2, game),
	}
	e := engine.LocalEngine(board, state, agents)
	return e.Run()
}

// CreateAgent builds the searcher described by config. Seeded configs derive a
// distinct seed per game.
func CreateAgent[S any, A comparable](board searcher.Board[S, A], config meta.AgentConfig, game uint64) agent.Agent[S, A] {
	mcts := CreateMCTS(board, config, game)
	if config.Temperature > 0 {
		seed := config.Seed + game
		if config.Seed == 0 {
			seed = searcher.SeedGenerator()
		}
		return agent.NewTrainingAgent(mcts, config.Temperature, seed)
	}
	return agent.NewEvaluationAgent(mcts)
}

func CreateMCTS[S any, A comparable](board searcher.Board[S, A], config meta.AgentConfig, game uint64) *searcher.MCTS[S, A] {
	options := []searcher.Option{
		searcher.WithIterations(config.Iterations),
		searcher.WithExploration(config.Exploration),
		searcher.WithGoroutines(config.Goroutines),
		searcher.WithMetrics(),
	}
	if config.Seed > 0 {
		options = append(options, searcher.WithSeed(config.Seed+game))
	}

	var policy searcher.Policy[S, A]
	if config.Policy == meta.PolicyHeuristic {
		tiebreak := searcher.TieRandom
		if config.Tiebreak == meta.TieFirst {
			tiebreak = searcher.TieFirst
		}
		scorer, _ := any(board).(searcher.Scorer[S])
		policy = searcher.NewHeuristicPolicy[S, A](scorer, tiebreak)
	}
	return searcher.NewMCTS(board, policy, options...)
}
