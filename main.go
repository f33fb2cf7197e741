package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"mctsbot/engine"
	"mctsbot/experiments"
	"mctsbot/game/tictactoe"
	"mctsbot/game/uttt"
	"mctsbot/meta"
	"mctsbot/searcher"
	"mctsbot/searcher/agent"

	"github.com/muesli/termenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	configPath := flag.String("config", "", "YAML experiment config, defaults to vanilla vs modified")
	gameName := flag.String("game", meta.DefaultGame, "Game to play: tictactoe or uttt")
	games := flag.Int("games", meta.DefaultGames, "Number of games per matchup")
	outDir := flag.String("out", meta.DefaultOutDir, "Directory for the CSV records, empty to skip")
	demo := flag.Bool("demo", false, "Play a single game between the first two agents and print the board")
	dotPath := flag.String("dot", "", "Write the search tree of the opening move in graphviz format")
	debug := flag.Bool("debug", false, "Log every move and search decision")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if *debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	cfg := meta.Default()
	if *configPath != "" {
		var err error
		cfg, err = meta.Load(*configPath)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to load config")
		}
	}

	// Flags given on the command line win over the config file
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "game":
			cfg.Game = *gameName
		case "games":
			cfg.Games = *games
		case "out":
			cfg.OutDir = *outDir
		}
	})
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid config")
	}

	out := termenv.NewOutput(os.Stdout)

	if *dotPath != "" {
		if err := writeDot(cfg, *dotPath); err != nil {
			log.Fatal().Err(err).Msg("failed to write search tree")
		}
		log.Info().Msgf("wrote search tree to %s", *dotPath)
	}

	if *demo {
		if err := playDemo(cfg, out); err != nil {
			log.Fatal().Err(err).Msg("demo game failed")
		}
		return
	}

	result, err := experiments.Run(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("experiment failed")
	}
	for _, summary := range result.Summaries {
		fmt.Fprintln(out, summary)
	}
}

func playDemo(cfg meta.Config, out *termenv.Output) error {
	switch cfg.Game {
	case "uttt":
		return demoGame[uttt.State, uttt.Move](uttt.Board{}, uttt.New(), cfg, out)
	default:
		return demoGame[tictactoe.State, tictactoe.Move](tictactoe.Board{}, tictactoe.New(), cfg, out)
	}
}

func demoGame[S any, A comparable](board searcher.Board[S, A], state S, cfg meta.Config, out *termenv.Output) error {
	agents := map[searcher.Player]agent.Agent[S, A]{
		1: experiments.CreateAgent(board, cfg.Agents[0], 1),
		2: experiments.CreateAgent(board, cfg.Agents[1], 1),
	}
	e := engine.LocalEngine(board, state, agents)
	winner, gameMetric, _, err := e.Run()
	if err != nil {
		return err
	}

	fmt.Fprintln(out, Colorize(out, fmt.Sprint(e.State)))
	fmt.Fprintln(out, Result(out, winner, gameMetric.TotalMoves))
	return nil
}

func writeDot(cfg meta.Config, path string) error {
	var dot string
	var err error
	switch cfg.Game {
	case "uttt":
		dot, err = openingTree[uttt.State, uttt.Move](uttt.Board{}, uttt.New(), cfg.Agents[0])
	default:
		dot, err = openingTree[tictactoe.State, tictactoe.Move](tictactoe.Board{}, tictactoe.New(), cfg.Agents[0])
	}
	if err != nil {
		return err
	}
	return os.WriteFile(path, []byte(dot), 0644)
}

// openingTree searches the first move and renders the top of the tree
func openingTree[S any, A comparable](board searcher.Board[S, A], state S, config meta.AgentConfig) (string, error) {
	mcts := experiments.CreateMCTS(board, config, 0)
	tree, err := mcts.Search(state, board.CurrentPlayer(state))
	if err != nil {
		return "", err
	}
	return tree.ToDot(3)
}
