package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"

	"euphoria/communication/client"
	"euphoria/communication/server"
	"euphoria/config"
	"euphoria/engine"
	"euphoria/experiments"
	"euphoria/experiments/metrics"
	"euphoria/gamemaster"
	"euphoria/meta"
	"euphoria/player"
	"euphoria/replay"
	"euphoria/searcher/agent"
	"euphoria/store"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const usage = `usage: euphoria <command> [flags]

commands:
  play        let agents play each other
  serve       host a game for websocket players
  bot         join a hosted game as a random player
  verify      replay recorded games and check every digest
  experiment  run a search experiment (parallel, cutoff, evaluation, throughput)
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var err error
	switch cmd, args := os.Args[1], os.Args[2:]; cmd {
	case "play":
		err = runPlay(args)
	case "serve":
		err = runServe(ctx, args)
	case "bot":
		err = runBot(ctx, args)
	case "verify":
		err = runVerify(args)
	case "experiment":
		err = runExperiment(args)
	default:
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}
	if err != nil {
		log.Fatal().Err(err).Msg(os.Args[1])
	}
}

// loadConfig parses the shared -config flag and sets up logging.
func loadConfig(fs *flag.FlagSet, args []string) (config.Config, error) {
	path := fs.String("config", "", "YAML configuration file")
	if err := fs.Parse(args); err != nil {
		return config.Config{}, err
	}
	cfg := config.Default()
	if *path != "" {
		var err error
		if cfg, err = config.Load(*path); err != nil {
			return cfg, err
		}
	}
	setupLogging(cfg.Log)
	return cfg, nil
}

func setupLogging(c config.Log) {
	level, err := zerolog.ParseLevel(c.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	if c.Console {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
}

// recorders opens the replay writer and game index the config asks for.
func recorders(cfg config.Config) ([]gamemaster.Recorder, func(), error) {
	var out []gamemaster.Recorder
	closers := []func(){}
	if cfg.Storage.ReplayDir != "" {
		w := replay.NewWriter(cfg.Storage.ReplayDir)
		out = append(out, w)
		closers = append(closers, func() { _ = w.Close() })
	}
	if cfg.Storage.IndexPath != "" {
		idx, err := store.Open(cfg.Storage.IndexPath)
		if err != nil {
			return nil, nil, err
		}
		out = append(out, idx.Recorder())
		closers = append(closers, func() { _ = idx.Close() })
	}
	return out, func() {
		for _, c := range closers {
			c()
		}
	}, nil
}

func runPlay(args []string) error {
	fs := flag.NewFlagSet("play", flag.ExitOnError)
	games := fs.Int("games", 1, "number of games")
	random := fs.Int("random", 0, "seats from the last one backwards played by the random agent")
	cfg, err := loadConfig(fs, args)
	if err != nil {
		return err
	}
	opts, err := cfg.GameOptions()
	if err != nil {
		return err
	}
	recs, closeAll, err := recorders(cfg)
	if err != nil {
		return err
	}
	defer closeAll()

	wins := map[string]int{}
	for i := 0; i < *games; i++ {
		o := opts
		o.Seed = opts.Seed + uint64(i)
		agents := make([]agent.Agent, len(o.Players))
		for seat := range agents {
			if seat >= len(agents)-*random {
				agents[seat] = agent.NewRandomAgent(o.Seed + uint64(seat))
			} else if cfg.Search.Temperature > 0 {
				agents[seat] = agent.NewTrainingAgent(cfg.Search.MCTS(), cfg.Search.Temperature, o.Seed+uint64(seat))
			} else {
				agents[seat] = agent.NewEvaluationAgent(cfg.Search.MCTS())
			}
		}
		winner, gameMetric, _, err := engine.NewLocalEngine(o, agents, recs...).Run()
		if err != nil {
			return err
		}
		wins[winner]++
		log.Info().Str("game", gameMetric.ID).Str("winner", winner).Int("turns", gameMetric.Turns).
			Int("moves", gameMetric.TotalMoves).Dur("duration", gameMetric.Duration).Msg("game finished")
	}
	log.Info().Interface("wins", wins).Msg("all games finished")
	return nil
}

func runServe(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	cfg, err := loadConfig(fs, args)
	if err != nil {
		return err
	}
	opts, err := cfg.GameOptions()
	if err != nil {
		return err
	}
	recs, closeAll, err := recorders(cfg)
	if err != nil {
		return err
	}
	defer closeAll()

	srv := server.NewServer(opts.Players)
	mux := http.NewServeMux()
	mux.Handle("/ws", srv.Handler())
	httpServer := &http.Server{Addr: cfg.Server.Addr, Handler: mux}
	go func() {
		log.Info().Str("addr", cfg.Server.Addr).Strs("players", opts.Players).Msg("serving")
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error().Err(err).Msg("http server")
		}
	}()
	defer httpServer.Close()

	winner, err := gamemaster.NewGameMaster(gamemaster.NewLocalEngine(opts, recs...), srv).RunGame(ctx)
	if err != nil {
		return err
	}
	log.Info().Str("winner", winner).Msg("game over")
	return nil
}

func runBot(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("bot", flag.ExitOnError)
	url := fs.String("url", "ws://localhost:8080/ws", "server websocket url")
	name := fs.String("player", "", "seat to join as")
	seed := fs.Uint64("seed", 1, "seed of the move choice")
	if _, err := loadConfig(fs, args); err != nil {
		return err
	}
	c, err := client.Dial(ctx, *url, *name)
	if err != nil {
		return err
	}
	defer c.Close()
	winner, err := player.NewPlayer(c, *seed).Play(ctx)
	if err != nil {
		return err
	}
	log.Info().Str("winner", winner).Msg("game over")
	return nil
}

func runVerify(args []string) error {
	fs := flag.NewFlagSet("verify", flag.ExitOnError)
	cfg, err := loadConfig(fs, args)
	if err != nil {
		return err
	}
	paths := fs.Args()
	if len(paths) == 0 {
		paths, err = filepath.Glob(filepath.Join(cfg.Storage.ReplayDir, "*.jsonl.zst"))
		if err != nil {
			return err
		}
	}
	failed := 0
	for _, path := range paths {
		r, err := replay.Open(path)
		if err == nil {
			_, err = replay.Verify(r)
		}
		if err != nil {
			failed++
			log.Error().Str("file", path).Err(err).Msg("replay differs")
			continue
		}
		log.Info().Str("file", path).Int("steps", len(r.Steps)).Msg("replay verified")
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d replays differ", failed, len(paths))
	}
	return nil
}

func runExperiment(args []string) error {
	fs := flag.NewFlagSet("experiment", flag.ExitOnError)
	name := fs.String("name", "evaluation", "parallel, cutoff, evaluation or throughput")
	games := fs.Int("games", experiments.NumGames, "games per match up")
	out := fs.String("out", "results", "directory for the CSV results")
	cfg, err := loadConfig(fs, args)
	if err != nil {
		return err
	}
	opts, err := cfg.GameOptions()
	if err != nil {
		return err
	}
	if len(opts.Players) > 2 {
		opts.Players = opts.Players[:2]
	}

	var configs []metrics.AgentConfig
	var matchUps [][]metrics.AgentConfig
	switch *name {
	case "parallel":
		configs, matchUps = experiments.ParallelizationMatchUps()
	case "cutoff":
		configs, matchUps = experiments.CutoffMatchUps()
	case "evaluation":
		episodes := cfg.Search.Episodes
		if episodes <= 0 {
			episodes = meta.EPISODES
		}
		configs, matchUps = experiments.EvaluationMatchUps(episodes)
	case "throughput":
		_, err := experiments.RunThroughputExperiment(opts, *games)
		return err
	default:
		return fmt.Errorf("unknown experiment %q", *name)
	}
	x := experiments.Experiment{Name: *name, Root: *out, Games: *games, Options: opts, Configs: configs}
	_, err = x.Run(matchUps)
	return err
}
