package session

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"mmnn/internal/model"
	"mmnn/internal/nn"
	"mmnn/internal/storage"
)

const DefaultWindowSize = 1000

// LearnConfig parameterizes one training run.
type LearnConfig struct {
	Rate       float64
	WindowSize int

	// ConfigPath is recorded in the run history; OutputPath receives
	// the trained network exactly once, on end of stream or stop.
	ConfigPath string
	OutputPath string

	// Store, when set, records the run and its window error history
	// under RunID after the save.
	Store storage.Store
	RunID string
}

// LearnSummary reports what a completed run processed.
type LearnSummary struct {
	Pairs            int
	Windows          []float64
	FinalWindowError float64
	Stopped          bool
}

// Learn consumes strictly alternating input and target lines (odd
// lines feed forward ticks, even lines drive weight updates), writing
// one progress line per pair. A stop request is honored only at a pair
// boundary, so the save never reflects a half-applied update; a format
// or I/O error aborts with no save at all.
func Learn(ctx context.Context, net *nn.Network, in io.Reader, out io.Writer, cfg LearnConfig) (LearnSummary, error) {
	if cfg.WindowSize <= 0 {
		cfg.WindowSize = DefaultWindowSize
	}

	sc := NewScanner(in)
	outputs := net.Outputs()
	var summary LearnSummary
	windowSum := 0.0
	windowCount := 0

	for {
		if ctx.Err() != nil {
			summary.Stopped = true
			break
		}
		input, ok, err := sc.Next(len(net.Inputs()))
		if err != nil {
			return summary, err
		}
		if !ok {
			break
		}
		target, ok, err := sc.Next(len(outputs))
		if err != nil {
			return summary, err
		}
		if !ok {
			return summary, fmt.Errorf("%w: line %d: input line without a target line", ErrLineFormat, sc.Line())
		}

		values, err := net.Propagate(input)
		if err != nil {
			return summary, err
		}
		loss, err := net.Learn(target, cfg.Rate)
		if err != nil {
			return summary, err
		}
		if _, err := fmt.Fprintf(out, "%s [Error: %s]\n", renderVector(outputs, values, true), formatValue(loss)); err != nil {
			return summary, err
		}

		summary.Pairs++
		windowSum += loss
		windowCount++
		if windowCount == cfg.WindowSize {
			summary.Windows = append(summary.Windows, windowSum/float64(windowCount))
			windowSum, windowCount = 0, 0
		}
	}

	if windowCount > 0 {
		summary.Windows = append(summary.Windows, windowSum/float64(windowCount))
	}
	if len(summary.Windows) > 0 {
		summary.FinalWindowError = summary.Windows[len(summary.Windows)-1]
	}

	if err := model.WriteConfigFile(cfg.OutputPath, net.Snapshot()); err != nil {
		return summary, err
	}

	if cfg.Store != nil {
		if err := recordRun(context.WithoutCancel(ctx), cfg, summary); err != nil {
			return summary, err
		}
	}
	return summary, nil
}

// recordRun persists the run record and window history. It runs after
// the save, on a context that survives the stop request that may have
// ended the stream.
func recordRun(ctx context.Context, cfg LearnConfig, summary LearnSummary) error {
	if strings.TrimSpace(cfg.RunID) == "" {
		return fmt.Errorf("run id is required to record a run")
	}
	record := model.RunRecord{
		VersionedRecord: model.VersionedRecord{
			SchemaVersion: storage.CurrentSchemaVersion,
			CodecVersion:  storage.CurrentCodecVersion,
		},
		ID:               cfg.RunID,
		CreatedAtUTC:     time.Now().UTC().Format(time.RFC3339),
		ConfigPath:       cfg.ConfigPath,
		OutputPath:       cfg.OutputPath,
		LearningRate:     cfg.Rate,
		WindowSize:       cfg.WindowSize,
		Pairs:            summary.Pairs,
		FinalWindowError: summary.FinalWindowError,
	}
	if err := cfg.Store.SaveRunRecord(ctx, record); err != nil {
		return fmt.Errorf("record run %s: %w", cfg.RunID, err)
	}
	if err := cfg.Store.SaveErrorHistory(ctx, cfg.RunID, summary.Windows); err != nil {
		return fmt.Errorf("record error history %s: %w", cfg.RunID, err)
	}
	return nil
}
