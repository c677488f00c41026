package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"time"

	"github.com/ardanlabs/connect4ml/cmd/connect/ai"
	"github.com/ardanlabs/connect4ml/cmd/connect/board"
	"github.com/ardanlabs/connect4ml/cmd/connect/dataset"
	"github.com/ardanlabs/connect4ml/cmd/connect/game"
	"github.com/ardanlabs/connect4ml/cmd/connect/policy"
	"github.com/ardanlabs/connect4ml/cmd/connect/render"
	"github.com/ardanlabs/connect4ml/cmd/connect/selfplay"
	"github.com/ardanlabs/connect4ml/cmd/connect/session"
	"github.com/ardanlabs/connect4ml/foundation/mongodb"
)

const (
	datasetFile = "dataset.csv"
	modelFile   = "model.json"
)

const usage = `usage: connect [generate|train|play] [flags]

With no command the dataset and the model are built when missing and then
a game is started.`

func main() {
	if err := run(os.Args[1:]); err != nil {
		log.Fatal(err)
	}
}

func run(args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if len(args) == 0 {
		return auto(ctx)
	}

	switch args[0] {
	case "generate":
		return generate(ctx, args[1:])
	case "train":
		return train(args[1:])
	case "play":
		return play(ctx, args[1:])
	}

	return fmt.Errorf("unknown command %q\n%s", args[0], usage)
}

// auto builds whatever is missing and then plays.
func auto(ctx context.Context) error {
	if _, err := os.Stat(datasetFile); errors.Is(err, os.ErrNotExist) {
		if err := generate(ctx, nil); err != nil {
			return err
		}
	}

	if _, err := os.Stat(modelFile); errors.Is(err, os.ErrNotExist) {
		if err := train(nil); err != nil {
			return err
		}
	}

	return play(ctx, nil)
}

// =============================================================================

func generate(ctx context.Context, args []string) error {
	def := selfplay.DefaultConfig()

	var (
		cfg       selfplay.Config
		out       string
		mongoHost string
		mongoUser string
		mongoPass string
	)

	fs := flag.NewFlagSet("generate", flag.ContinueOnError)
	fs.IntVar(&cfg.Games, "games", def.Games, "number of self-play games")
	fs.Uint64Var(&cfg.Seed, "seed", def.Seed, "seed for the random policy")
	fs.IntVar(&cfg.MaxMoves, "max-moves", def.MaxMoves, "moves allowed per game")
	fs.Float64Var(&cfg.CenterProb, "center-prob", def.CenterProb, "chance of playing the center column")
	fs.IntVar(&cfg.Workers, "workers", def.Workers, "games played at the same time")
	fs.StringVar(&out, "out", datasetFile, "csv file to write")
	fs.StringVar(&mongoHost, "mongo", "", "mongo host to also write samples to")
	fs.StringVar(&mongoUser, "mongo-user", "ardan", "mongo user name")
	fs.StringVar(&mongoPass, "mongo-pass", "ardan", "mongo password")

	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg.Log = func(format string, v ...any) {
		fmt.Printf(format, v...)
	}

	// -------------------------------------------------------------------------
	// Construct the sinks.

	f, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("create dataset: %w", err)
	}
	defer f.Close()

	sinks := []dataset.Sink{dataset.NewCSVWriter(f)}

	if mongoHost != "" {
		fmt.Println("Connecting to MongoDB ...")

		mctx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()

		client, err := mongodb.Connect(mctx, mongoHost, mongoUser, mongoPass)
		if err != nil {
			return fmt.Errorf("mongo connect: %w", err)
		}
		defer client.Disconnect(context.Background())

		ms, err := dataset.NewMongoSink(mctx, client)
		if err != nil {
			return fmt.Errorf("mongo sink: %w", err)
		}

		fmt.Printf("Writing run %s to MongoDB ...\n", ms.RunID())

		sinks = append(sinks, ms)
	}

	sink := dataset.NewMultiSink(sinks...)

	// -------------------------------------------------------------------------
	// Play the games.

	fmt.Printf("Generating %d games into %s ...\n", cfg.Games, out)

	stats, err := selfplay.Run(ctx, cfg, sink)
	if cerr := sink.Close(); err == nil && cerr != nil {
		err = fmt.Errorf("close sinks: %w", cerr)
	}

	if err != nil {
		return err
	}

	fmt.Println(stats)

	return nil
}

func train(args []string) error {
	cfg := ai.DefaultFitConfig()

	var (
		data   string
		model  string
		hidden int
	)

	fs := flag.NewFlagSet("train", flag.ContinueOnError)
	fs.StringVar(&data, "data", datasetFile, "csv file to read")
	fs.StringVar(&model, "model", modelFile, "model file to write")
	fs.IntVar(&cfg.Iterations, "iterations", cfg.Iterations, "passes over the samples")
	fs.IntVar(&hidden, "hidden", cfg.Hidden[0], "width of the hidden layer")
	fs.Float64Var(&cfg.LearningRate, "lr", cfg.LearningRate, "learning rate")
	fs.IntVar(&cfg.Verbosity, "verbosity", 1, "report every N iterations")

	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg.Hidden = []int{hidden}

	f, err := os.Open(data)
	if err != nil {
		return fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()

	samples, err := dataset.ReadCSV(f)
	if err != nil {
		return fmt.Errorf("read dataset: %w", err)
	}

	fmt.Printf("Training on %d samples ...\n", len(samples))

	nw, err := ai.Fit(samples, cfg)
	if err != nil {
		return err
	}

	if err := nw.Save(model); err != nil {
		return err
	}

	fmt.Printf("Model written to %s\n", model)

	return nil
}

func play(ctx context.Context, args []string) error {
	var (
		model    string
		llm      string
		debugLog string
		tui      bool
		snapshot string
	)

	fs := flag.NewFlagSet("play", flag.ContinueOnError)
	fs.StringVar(&model, "model", modelFile, "model file to play against")
	fs.StringVar(&llm, "llm", "", "ollama model to play against instead of the network")
	fs.StringVar(&debugLog, "debug", "", "file to log model prompts to")
	fs.BoolVar(&tui, "tui", false, "play in the terminal ui")
	fs.StringVar(&snapshot, "snapshot", "", "png file for the final board")

	if err := fs.Parse(args); err != nil {
		return err
	}

	// -------------------------------------------------------------------------
	// Construct the AI player.

	var scorer policy.Scorer

	switch {
	case llm != "":
		fmt.Println("Connecting to Ollama ...")

		chat, err := ai.CreateChatter(ai.SystemOllama, llm)
		if err != nil {
			return fmt.Errorf("chatter: %w", err)
		}

		var opts []ai.LLMOption
		if debugLog != "" {
			opts = append(opts, ai.WithDebugLog(debugLog))
		}

		scorer = ai.NewLLM(chat, opts...)

	default:
		nw, err := ai.LoadNetwork(model)
		if err != nil {
			return err
		}

		scorer = nw
	}

	g, err := game.New(game.NewPlayer("You", 'X'), game.NewPlayer("AI", 'O'))
	if err != nil {
		return err
	}

	predictor := policy.NewPredictor(scorer)

	// -------------------------------------------------------------------------
	// Play the game.

	switch tui {
	case true:
		err = gaming(ctx, g, predictor)
	default:
		err = console(ctx, g, predictor)
	}

	if err != nil {
		return err
	}

	if snapshot != "" {
		data, err := render.PNG(g.Board(), render.DefaultPalette)
		if err != nil {
			return fmt.Errorf("snapshot: %w", err)
		}

		if err := os.WriteFile(snapshot, data, 0644); err != nil {
			return fmt.Errorf("write snapshot: %w", err)
		}
	}

	return nil
}

func console(ctx context.Context, g *game.Game, predictor *policy.Predictor) error {
	res, err := session.New(g, predictor, os.Stdin, os.Stdout).Run(ctx)
	switch {
	case errors.Is(err, io.EOF):
		return nil
	case err != nil:
		return err
	}

	fmt.Printf("Game over after %d moves\n", res.Moves)

	return nil
}

func gaming(ctx context.Context, g *game.Game, predictor *policy.Predictor) error {

	// -------------------------------------------------------------------------
	// Create the board and initialize the display

	screen, err := board.NewScreen()
	if err != nil {
		return err
	}

	b, err := board.New(screen, g, predictor)
	if err != nil {
		return fmt.Errorf("new board: %w", err)
	}
	defer b.Shutdown()

	// -------------------------------------------------------------------------
	// Start handling board input

	select {
	case <-b.Run(ctx):
	case <-ctx.Done():
	}

	return nil
}
