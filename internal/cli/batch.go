package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/carbonroute/carbonroute/internal/engine"
)

// batchParams holds the flag values for the batch command.
type batchParams struct {
	Input          string
	Aggregate      bool
	Parallel       bool
	MaxConcurrency int
	Output         string
}

// NewBatchCmd creates the "batch" subcommand for processing an ordered
// sequence of calculation requests from a file.
func NewBatchCmd() *cobra.Command {
	var params batchParams

	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Calculate emissions for a batch of transport legs",
		Long: `Process between 1 and 100 calculation requests from a YAML or JSON file.

Items are processed independently in input order: a failing item is
reported with its index and never aborts the rest of the batch.`,
		Example: `  carbonroute batch --input legs.yaml --aggregate
  carbonroute batch --input legs.json --parallel --max-concurrency 4 --output json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runBatch(cmd, params)
		},
	}

	cmd.Flags().StringVar(&params.Input, "input", "", "Batch request file, .yaml or .json (required)")
	cmd.Flags().BoolVar(&params.Aggregate, "aggregate", false, "Compute totals across successful items")
	cmd.Flags().BoolVar(&params.Parallel, "parallel", false, "Process items concurrently")
	cmd.Flags().IntVar(&params.MaxConcurrency, "max-concurrency", 0, "Concurrency bound for --parallel (default from config, then NumCPU)")
	cmd.Flags().StringVar(&params.Output, "output", outputTable, "Output format: table or json")

	_ = cmd.MarkFlagRequired("input")

	return cmd
}

// runBatch loads the request document, runs the batch, and renders it.
func runBatch(cmd *cobra.Command, params batchParams) error {
	cfg := configFromCmd(cmd)

	eng, _, err := buildEngine(cfg)
	if err != nil {
		return err
	}

	batch, err := loadBatchFile(params.Input)
	if err != nil {
		return err
	}

	// Flags override whatever the document carries.
	if params.Aggregate {
		batch.Options.AggregateResults = true
	}
	if params.Parallel {
		batch.Options.Parallel = true
	}
	if params.MaxConcurrency > 0 {
		batch.Options.MaxConcurrency = params.MaxConcurrency
	} else if batch.Options.MaxConcurrency == 0 {
		batch.Options.MaxConcurrency = cfg.Batch.MaxConcurrency
	}

	result, err := eng.CalculateBatch(cmd.Context(), *batch)
	if err != nil {
		return err
	}

	switch params.Output {
	case outputJSON:
		return printJSON(cmd, batchJSON(result))
	case outputTable:
		cmd.Println(renderBatch(result))
		return nil
	default:
		return fmt.Errorf("unknown output format %q", params.Output)
	}
}

// loadBatchFile parses a batch request document, picking the codec from
// the file extension.
func loadBatchFile(path string) (*engine.BatchRequest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading batch input %s: %w", path, err)
	}

	var batch engine.BatchRequest
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		if err := json.Unmarshal(data, &batch); err != nil {
			return nil, fmt.Errorf("parsing batch input %s: %w", path, err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &batch); err != nil {
			return nil, fmt.Errorf("parsing batch input %s: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("unsupported batch input format %q (use .yaml or .json)", filepath.Ext(path))
	}

	return &batch, nil
}

// batchItemErrorJSON is the wire shape of a failed batch item.
type batchItemErrorJSON struct {
	Index int    `json:"index"`
	Error string `json:"error"`
}

// batchResultJSON mirrors BatchResult with serializable errors.
type batchResultJSON struct {
	Individual []*engine.CalculationResult `json:"individual"`
	Errors     []batchItemErrorJSON        `json:"errors"`
	Aggregate  *engine.BatchAggregate      `json:"aggregate,omitempty"`
}

// batchJSON converts a batch result into its JSON representation.
func batchJSON(result *engine.BatchResult) batchResultJSON {
	out := batchResultJSON{
		Individual: result.Individual,
		Errors:     make([]batchItemErrorJSON, 0, len(result.Errors)),
		Aggregate:  result.Aggregate,
	}
	for _, e := range result.Errors {
		out.Errors = append(out.Errors, batchItemErrorJSON{Index: e.Index, Error: e.Err.Error()})
	}
	return out
}
