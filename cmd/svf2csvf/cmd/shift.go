package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/OpenTraceLab/svf2csvf/pkg/buffer"
	"github.com/OpenTraceLab/svf2csvf/pkg/headtail"
	"github.com/OpenTraceLab/svf2csvf/pkg/hexcodec"
	"github.com/spf13/cobra"
)

var (
	shiftTail string
	shiftLine string
	shiftHead string
)

var shiftCmd = &cobra.Command{
	Use:   "shift",
	Short: "Pack tail, line and head values into one scan",
	Long: `Concatenate three HEX/BITS values, tail first (most significant) and head last
(least significant), and print the packed bytes. Omitted values are zero bits
wide.

Examples:
  svf2csvf shift --tail 06/3 --line F1C2E093/32             # 06F1C2E093 (35 bits)
  svf2csvf shift --tail 06/3 --line F1C2E093/32 --head 01/1 # 0DE385C127 (36 bits)`,
	Args: cobra.NoArgs,
	RunE: runShift,
}

func init() {
	rootCmd.AddCommand(shiftCmd)

	shiftCmd.Flags().StringVar(&shiftTail, "tail", "", "trailer value as HEX/BITS")
	shiftCmd.Flags().StringVar(&shiftLine, "line", "", "body value as HEX/BITS")
	shiftCmd.Flags().StringVar(&shiftHead, "head", "", "header value as HEX/BITS")
}

func runShift(cmd *cobra.Command, _ []string) error {
	var values [3]headtail.Value
	for i, raw := range []string{shiftTail, shiftLine, shiftHead} {
		v, err := parseBitValue(raw)
		if err != nil {
			return err
		}
		values[i] = v
	}

	out, err := buffer.New(0)
	if err != nil {
		return err
	}
	total, err := headtail.Merge(out, values[0], values[1], values[2])
	if err != nil {
		return fmt.Errorf("merge failed: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s (%d bits)\n", hexcodec.Render(out.Bytes()), total)
	return nil
}

func parseBitValue(raw string) (headtail.Value, error) {
	if raw == "" {
		return headtail.Value{}, nil
	}
	hexPart, bitsPart, ok := strings.Cut(raw, "/")
	if !ok {
		return headtail.Value{}, fmt.Errorf("value %q: want HEX/BITS", raw)
	}
	bits, err := strconv.Atoi(bitsPart)
	if err != nil || bits < 0 {
		return headtail.Value{}, fmt.Errorf("value %q: invalid bit count", raw)
	}
	buf, err := buffer.New(len(hexPart) / 2)
	if err != nil {
		return headtail.Value{}, err
	}
	if err := hexcodec.Decode(buf, hexPart); err != nil {
		return headtail.Value{}, fmt.Errorf("value %q: %w", raw, err)
	}
	return headtail.Value{Data: buf.Bytes(), Bits: bits}, nil
}
