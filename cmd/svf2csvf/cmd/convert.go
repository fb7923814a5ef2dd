package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/OpenTraceLab/svf2csvf/pkg/buffer"
	"github.com/OpenTraceLab/svf2csvf/pkg/csvf"
	"github.com/OpenTraceLab/svf2csvf/pkg/svf"
	"github.com/spf13/cobra"
)

var lenient bool

var convertCmd = &cobra.Command{
	Use:   "convert <in.svf> [out.csvf]",
	Short: "Convert an SVF file into a CSVF stream",
	Long: `Parse every statement of an SVF file, track the header, body and trailer
registers, and write the resulting scans as a CSVF stream. The output defaults
to the input path with a .csvf extension.

Examples:
  svf2csvf convert design.svf
  svf2csvf convert --lenient design.svf out/design.csvf`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runConvert,
}

func init() {
	rootCmd.AddCommand(convertCmd)

	convertCmd.Flags().BoolVar(&lenient, "lenient", false,
		"skip unknown SVF commands instead of failing")
}

func runConvert(cmd *cobra.Command, args []string) error {
	input := args[0]
	output := strings.TrimSuffix(input, filepath.Ext(input)) + ".csvf"
	if len(args) == 2 {
		output = args[1]
	}

	f, err := os.Open(input)
	if err != nil {
		return fmt.Errorf("failed to open input: %w", err)
	}
	defer f.Close()

	ctx, err := svf.NewContext(cfg.ContextOptions())
	if err != nil {
		return fmt.Errorf("failed to create parse context: %w", err)
	}
	out, err := buffer.New(4096)
	if err != nil {
		return fmt.Errorf("failed to create output buffer: %w", err)
	}
	writer := csvf.NewWriter(out)

	conv := svf.NewConverter(ctx, writer)
	conv.Lenient = lenient || cfg.Lenient
	conv.Logger = logger.With().Str("file", input).Logger()

	stats, err := conv.Run(f)
	if err != nil {
		return fmt.Errorf("%s: %w", input, err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to terminate stream: %w", err)
	}
	if err := os.WriteFile(output, out.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	ws := writer.Stats()
	logger.Info().Str("input", input).Str("output", output).Int("bytes", out.Len()).Msg("converted")

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "Converted %s -> %s\n", input, output)
	fmt.Fprintf(w, "  Statements:  %d (%d register, %d skipped)\n", stats.Statements, stats.Registers, stats.Skipped)
	fmt.Fprintf(w, "  IR scans:    %d\n", ws.InsnScans)
	fmt.Fprintf(w, "  DR scans:    %d\n", ws.DataScans)
	fmt.Fprintf(w, "  Output size: %d bytes\n", out.Len())
	return nil
}
