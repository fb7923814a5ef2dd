package cmd

import (
	"fmt"
	"os"

	"github.com/OpenTraceLab/svf2csvf/internal/config"
	"github.com/OpenTraceLab/svf2csvf/internal/logging"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	verbose    bool
	configPath string
	logLevel   string

	cfg    config.Config
	logger = zerolog.Nop()
)

var rootCmd = &cobra.Command{
	Use:   "svf2csvf",
	Short: "SVF to CSVF JTAG vector converter",
	Long: `Convert SVF (Serial Vector Format) JTAG test vectors into the compact CSVF
stream played back by the embedded JTAG player.

Examples:
  svf2csvf convert design.svf                     # Write design.csvf
  svf2csvf dump -v design.svf                     # Show register state per statement
  svf2csvf shift --tail 06/3 --line F1C2E093/32   # Pack a scan by hand`,
	Version:           "0.9.0",
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to a TOML config file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (trace, debug, info, warn, error, off)")
}

func setup(cmd *cobra.Command, _ []string) error {
	loaded, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if logLevel != "" {
		if _, ok := logging.ParseLevel(logLevel); !ok {
			return fmt.Errorf("unknown log level %q", logLevel)
		}
		loaded.LogLevel = logLevel
	}
	cfg = loaded
	logger = logging.New(logging.Options{
		Level:   cfg.LogLevel,
		Verbose: verbose,
		Out:     cmd.ErrOrStderr(),
	})
	return nil
}
