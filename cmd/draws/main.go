// Package main provides the draws CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/draws-ml/draws/cmdstan"
)

const version = "v0.1.0"

var (
	// Global flags
	verbose bool

	// convert flags
	outputPaths   []string
	priorPaths    []string
	predictive    []string
	observedData  string
	observedVars  []string
	logLikelihood string
	metaPath      string

	// Logger
	logger *zap.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "draws",
	Short: "draws - load MCMC sampler output into labeled tensors",
	Long: `draws reads the CSV and flat-data files written by a CmdStan-style
sampler and reshapes them into labeled tensor datasets keyed by variable
name, chain, and draw.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		config := zap.NewProductionConfig()
		if verbose {
			config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = config.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

// convertCmd runs a full conversion and prints the resulting groups.
var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Convert sampler CSV output into labeled tensor datasets",
	Long: `Parses the given output files (glob patterns allowed, stacked
multi-chain files supported), reconstructs every variable as a dense
(chain, draw, ...) tensor, and prints a per-group summary.

Example:
  draws convert --output 'output_*.csv' --observed-data data.R \
    --posterior-predictive y_hat --log-likelihood log_lik --meta meta.yaml`,
	RunE: runConvert,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("draws %s\n", version)
	},
}

func runConvert(cmd *cobra.Command, args []string) error {
	opts := cmdstan.Options{
		Output:              outputPaths,
		Prior:               priorPaths,
		PosteriorPredictive: predictive,
		ObservedData:        observedData,
		ObservedDataVar:     observedVars,
		LogLikelihood:       logLikelihood,
		Logger:              logger,
	}
	if metaPath != "" {
		meta, err := cmdstan.LoadMeta(metaPath)
		if err != nil {
			return err
		}
		opts.Coords = meta.Coords
		opts.Dims = meta.Dims
	}

	id, err := cmdstan.FromCmdStan(opts)
	if err != nil {
		return err
	}

	groups := id.Groups()
	if len(groups) == 0 {
		fmt.Println("no groups produced (no inputs supplied?)")
		return nil
	}
	for _, group := range groups {
		ds, _ := id.Group(group)
		fmt.Printf("%s:\n", group)
		for _, name := range ds.Names() {
			v, _ := ds.Var(name)
			fmt.Printf("  %-20s %-8s shape %v dims %v\n",
				name, v.Values.DType(), []int(v.Values.Shape()), v.Dims)
		}
	}
	return nil
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	convertCmd.Flags().StringSliceVar(&outputPaths, "output", nil, "sampler output CSV files or glob patterns")
	convertCmd.Flags().StringSliceVar(&priorPaths, "prior", nil, "prior-sampling output CSV files or glob patterns")
	convertCmd.Flags().StringSliceVar(&predictive, "posterior-predictive", nil, "posterior predictive variable names, or .csv files holding them")
	convertCmd.Flags().StringVar(&observedData, "observed-data", "", "flat data dump file")
	convertCmd.Flags().StringSliceVar(&observedVars, "observed-data-var", nil, "restrict observed data to these variables")
	convertCmd.Flags().StringVar(&logLikelihood, "log-likelihood", "", "pointwise log-likelihood variable name")
	convertCmd.Flags().StringVar(&metaPath, "meta", "", "YAML file with coords and dims mappings")

	rootCmd.AddCommand(convertCmd)
	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
