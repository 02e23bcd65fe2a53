// CYCLIC - Binary cyclic block codes with syndrome decoding of single-bit errors.
// Copyright (C) 2015 Douglas Hall
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published
// by the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.

package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/bemasher/cyclic/gf2"
	"github.com/bemasher/cyclic/link"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var (
	policy    = "alternating"
	seed      int64
	perBlock  = 1
	noiseRate = 0.01
	trace     bool
)

var sendCmd = &cobra.Command{
	Use:   "send <text>...",
	Short: "Send text through a noisy channel and recover it",
	Long: `send converts the text to 8-bit bytes, frames it with a CRC-16, splits
the bits into k bit blocks (zero padding the last), encodes each block,
flips bits according to the error policy, decodes every block and
converts the result back to text.

Error policies:
  none         no errors
  alternating  every even block i gets an error at position i%3
  random       --errors distinct random positions per block
  noise        each bit flips independently with probability --rate`,
	Args: cobra.MinimumNArgs(1),
	RunE: send,
}

func init() {
	flags := sendCmd.Flags()
	flags.StringVar(&policy, "policy", policy, "error policy: none, alternating, random or noise")
	flags.Int64Var(&seed, "seed", seed, "seed for the random policies")
	flags.IntVar(&perBlock, "errors", perBlock, "errors per block for the random policy")
	flags.Float64Var(&noiseRate, "rate", noiseRate, "bit error rate for the noise policy")
	flags.BoolVar(&trace, "trace", trace, "print the polynomials of every step, plain format only")

	rootCmd.AddCommand(sendCmd)
}

func send(cmd *cobra.Command, args []string) error {
	p, err := link.NewPolicy(policy, seed, perBlock, noiseRate)
	if err != nil {
		return errors.Wrap(err, "policy")
	}

	tx, err := link.New(code, p).Send(strings.Join(args, " "))
	if err != nil {
		return errors.Wrap(err, "send")
	}

	w := cmd.OutOrStdout()
	if trace {
		if _, plain := encoder.(PlainEncoder); plain {
			printTrace(w, tx)
			return nil
		}
		logger.Warn("trace is only available with plain format")
	}

	for _, b := range tx.Blocks {
		if err := emit(b); err != nil {
			return err
		}
	}

	if _, plain := encoder.(PlainEncoder); plain {
		printSummary(w, tx)
	}
	return nil
}

func printSummary(w io.Writer, tx link.Transmission) {
	counts := tx.Counts()
	fmt.Fprintf(w, "Blocks: %d (ok %d, corrected %d, uncorrectable %d)\n",
		len(tx.Blocks), counts["ok"], counts["corrected"], counts["uncorrectable"],
	)
	fmt.Fprintf(w, "Integrity: %s\n", map[bool]string{true: "ok", false: "mismatch"}[tx.Intact])
	fmt.Fprintf(w, "Decoded: %q\n", tx.Decoded)
}

func printTrace(w io.Writer, tx link.Transmission) {
	var payload []string
	for _, b := range tx.Blocks {
		payload = append(payload, b.Message.Bits())
	}
	fmt.Fprintf(w, "Message blocks: %s\n", strings.Join(payload, " "))

	fmt.Fprintln(w, "\n=== ENCODING ===")
	for _, b := range tx.Blocks {
		fmt.Fprintf(w, "\nBlock %d:\n", b.Index)
		fmt.Fprintf(w, "  m(x)         = %s\n", b.Trace.Message)
		fmt.Fprintf(w, "  x^r·m(x)     = %s\n", b.Trace.Shifted)
		fmt.Fprintf(w, "  g(x)         = %s\n", b.Trace.Generator)
		fmt.Fprintf(w, "  r(x)         = %s\n", b.Trace.Remainder)
		fmt.Fprintf(w, "  c(x)         = %s\n", b.Trace.Codeword)
	}

	fmt.Fprintln(w, "\n=== TRANSMISSION ===")
	for _, b := range tx.Blocks {
		fmt.Fprintf(w, "\nBlock %d:\n", b.Index)
		fmt.Fprintf(w, "  c(x)         = %s\n", b.Codeword)
		if len(b.Applied) == 0 {
			fmt.Fprintln(w, "  no errors introduced")
			continue
		}
		fmt.Fprintf(w, "  e(x)         = %s\n", b.Pattern)
		fmt.Fprintf(w, "  c(x) + e(x)  = %s\n", b.Received)
	}

	fmt.Fprintln(w, "\n=== DECODING ===")
	gen := code.Generator()
	for _, b := range tx.Blocks {
		fmt.Fprintf(w, "\nBlock %d:\n", b.Index)
		if b.Err != nil {
			fmt.Fprintf(w, "  invalid block: %s\n", b.Err)
			continue
		}
		fmt.Fprintf(w, "  r(x)         = %s\n", b.Received)
		fmt.Fprintf(w, "  r(x) mod %s = %s\n", gen.Bits(), gf2.Trim(b.Report.Syndrome))

		switch b.Status() {
		case "ok":
			fmt.Fprintln(w, "  no errors detected")
		case "corrected":
			fmt.Fprintf(w, "  error at position %d\n", b.Report.Position)
			fmt.Fprintf(w, "  e(x)         = %s\n", b.Report.Pattern())
			fmt.Fprintf(w, "  c(x)         = %s\n", b.Report.Word)
		default:
			fmt.Fprintln(w, "  error detected but could not be corrected")
		}
	}

	fmt.Fprintln(w)
	printSummary(w, tx)
}
