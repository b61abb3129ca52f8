package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"

	"mmnn/internal/model"
	"mmnn/internal/nn"
	"mmnn/internal/session"
	"mmnn/internal/storage"
)

const defaultDBPath = "mmnn.db"

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// First signal requests a stop, honored at the next tick boundary;
	// a second one exits immediately.
	signals := make(chan os.Signal, 2)
	signal.Notify(signals, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-signals
		cancel()
		<-signals
		os.Exit(1)
	}()

	if err := run(ctx, os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return usageError("missing command")
	}

	switch args[0] {
	case "propagate":
		return runPropagate(ctx, args[1:])
	case "learn":
		return runLearn(ctx, args[1:])
	case "inspect":
		return runInspect(ctx, args[1:])
	case "runs":
		return runRuns(ctx, args[1:])
	default:
		return usageError(fmt.Sprintf("unknown command: %s", args[0]))
	}
}

func runPropagate(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return usageError("propagate requires a config path")
	}
	configPath := args[0]
	fs := flag.NewFlagSet("propagate", flag.ContinueOnError)
	names := fs.Bool("names", false, "prefix each output value with its neuron name")
	if err := fs.Parse(args[1:]); err != nil {
		return err
	}

	net, err := loadNetwork(configPath)
	if err != nil {
		return err
	}
	_, err = session.Propagate(ctx, net, os.Stdin, os.Stdout, session.PropagateOptions{Names: *names})
	return err
}

func runLearn(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return usageError("learn requires a config path and an output config path")
	}
	configPath, outputPath := args[0], args[1]
	fs := flag.NewFlagSet("learn", flag.ContinueOnError)
	rate := fs.Float64("learning-rate", 1.0, "weight update step multiplier")
	window := fs.Int("window", session.DefaultWindowSize, "error aggregation window in pairs")
	storeKind := fs.String("store", "", "record the run: memory|sqlite (empty disables)")
	dbPath := fs.String("db-path", defaultDBPath, "sqlite database path")
	runID := fs.String("run-id", "", "explicit run id (generated when empty)")
	if err := fs.Parse(args[2:]); err != nil {
		return err
	}

	net, err := loadNetwork(configPath)
	if err != nil {
		return err
	}

	cfg := session.LearnConfig{
		Rate:       *rate,
		WindowSize: *window,
		ConfigPath: configPath,
		OutputPath: outputPath,
	}
	if *storeKind != "" {
		store, err := storage.NewStore(*storeKind, *dbPath)
		if err != nil {
			return err
		}
		defer func() {
			_ = storage.CloseIfSupported(store)
		}()
		if err := store.Init(ctx); err != nil {
			return err
		}
		cfg.Store = store
		cfg.RunID = *runID
		if strings.TrimSpace(cfg.RunID) == "" {
			cfg.RunID = uuid.NewString()
		}
	}

	start := time.Now()
	summary, err := session.Learn(ctx, net, os.Stdin, os.Stdout, cfg)
	if err != nil {
		return err
	}

	state := "finished"
	if summary.Stopped {
		state = "stopped"
	}
	fmt.Fprintf(os.Stderr, "%s: %s pairs in %s, final window error %g, saved %s\n",
		state, humanize.Comma(int64(summary.Pairs)), time.Since(start).Round(time.Millisecond),
		summary.FinalWindowError, outputPath)
	if cfg.RunID != "" {
		fmt.Fprintf(os.Stderr, "recorded run %s\n", cfg.RunID)
	}
	return nil
}

func runInspect(_ context.Context, args []string) error {
	if len(args) < 1 {
		return usageError("inspect requires a config path")
	}
	cfg, err := model.ReadConfigFile(args[0])
	if err != nil {
		return err
	}
	net, err := nn.NewNetwork(cfg)
	if err != nil {
		return err
	}

	synapses := 0
	for _, def := range cfg.Neurons {
		synapses += len(def.Synapses)
	}
	fmt.Printf("inputs:   %s\n", strings.Join(net.Inputs(), ", "))
	fmt.Printf("outputs:  %s\n", strings.Join(net.Outputs(), ", "))
	fmt.Printf("neurons:  %d (%d synapses)\n", len(cfg.Neurons), synapses)
	fmt.Printf("order:    %s\n", strings.Join(net.EvaluationOrder(), ", "))
	edges := net.FeedbackEdges()
	if len(edges) == 0 {
		fmt.Println("feedback: none")
	} else {
		parts := make([]string, len(edges))
		for i, e := range edges {
			parts[i] = e[0] + " -> " + e[1]
		}
		fmt.Printf("feedback: %s\n", strings.Join(parts, ", "))
	}
	return nil
}

func runRuns(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("runs", flag.ContinueOnError)
	limit := fs.Int("limit", 20, "maximum runs to list")
	dbPath := fs.String("db-path", defaultDBPath, "sqlite database path")
	asJSON := fs.Bool("json", false, "emit records as JSON")
	if err := fs.Parse(args); err != nil {
		return err
	}

	store, err := storage.NewStore("sqlite", *dbPath)
	if err != nil {
		return err
	}
	defer func() {
		_ = storage.CloseIfSupported(store)
	}()
	if err := store.Init(ctx); err != nil {
		return err
	}

	records, err := store.ListRunRecords(ctx, *limit)
	if err != nil {
		return err
	}

	if *asJSON {
		data, err := json.MarshalIndent(records, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(data))
		return nil
	}

	if len(records) == 0 {
		fmt.Println("no recorded runs")
		return nil
	}
	for _, record := range records {
		age := record.CreatedAtUTC
		if at, err := time.Parse(time.RFC3339, record.CreatedAtUTC); err == nil {
			age = humanize.Time(at)
		}
		fmt.Printf("%s  %s  pairs=%s  rate=%g  window=%d  final-error=%g\n",
			record.ID, age, humanize.Comma(int64(record.Pairs)),
			record.LearningRate, record.WindowSize, record.FinalWindowError)
	}
	return nil
}

func loadNetwork(path string) (*nn.Network, error) {
	cfg, err := model.ReadConfigFile(path)
	if err != nil {
		return nil, err
	}
	return nn.NewNetwork(cfg)
}

func usageError(msg string) error {
	return fmt.Errorf("%s\nusage: mmnn <propagate|learn|inspect|runs> [args] [flags]", msg)
}
