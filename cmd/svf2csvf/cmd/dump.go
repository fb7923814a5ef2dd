package cmd

import (
	"fmt"
	"os"

	"github.com/OpenTraceLab/svf2csvf/pkg/svf"
	"github.com/spf13/cobra"
)

var dumpAll bool

var dumpCmd = &cobra.Command{
	Use:   "dump <in.svf>",
	Short: "Show the register state after each statement",
	Long: `Parse an SVF file and print the state of the register named by each
register statement as "numBits, {TDI}, {TDO}, {MASK}". With --all the six
registers are printed in the order HDR, HIR, SDR, SIR, TDR, TIR.

Examples:
  svf2csvf dump design.svf
  svf2csvf dump --all design.svf`,
	Args: cobra.ExactArgs(1),
	RunE: runDump,
}

func init() {
	rootCmd.AddCommand(dumpCmd)

	dumpCmd.Flags().BoolVarP(&dumpAll, "all", "a", false,
		"print all six registers after every statement")
}

func runDump(cmd *cobra.Command, args []string) error {
	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("failed to open input: %w", err)
	}
	defer f.Close()

	ctx, err := svf.NewContext(cfg.ContextOptions())
	if err != nil {
		return fmt.Errorf("failed to create parse context: %w", err)
	}

	w := cmd.OutOrStdout()
	conv := svf.NewConverter(ctx, nil)
	conv.Lenient = true
	conv.Logger = logger
	conv.OnRegister = func(st svf.Statement, reg svf.Register) {
		if verbose {
			fmt.Fprintf(w, "%4d: %s\n", st.LineNo, st.Text)
		}
		if dumpAll {
			fmt.Fprintf(w, "%4d  %s\n", st.LineNo, ctx)
			return
		}
		fmt.Fprintf(w, "%4d  %s  %s\n", st.LineNo, reg, ctx.Store(reg))
	}

	if _, err := conv.Run(f); err != nil {
		return fmt.Errorf("%s: %w", args[0], err)
	}
	return nil
}
