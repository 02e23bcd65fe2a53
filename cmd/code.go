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
	"strconv"

	"github.com/bemasher/cyclic/cyclic"
	"github.com/bemasher/cyclic/gen"
	"github.com/bemasher/cyclic/gf2"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

// Messages written by the subcommands.

type EntryMessage struct {
	cyclic.Entry
}

func (EntryMessage) MsgType() string { return "Syndrome" }

func (EntryMessage) Header() []string { return []string{"position", "syndrome"} }

type EncodeMessage struct {
	Index    int `xml:",attr"`
	Codeword gf2.Poly
	Trace    cyclic.Trace
}

func (EncodeMessage) MsgType() string { return "Encode" }

func (EncodeMessage) Header() []string {
	return []string{"index", "message", "shifted", "remainder", "codeword", "generator"}
}

func (m EncodeMessage) String() string {
	return fmt.Sprintf("{Index:%d Codeword:%s Trace:%s}", m.Index, m.Codeword.Bits(), m.Trace)
}

func (m EncodeMessage) Record() []string {
	return append([]string{strconv.Itoa(m.Index)}, m.Trace.Record()...)
}

type DecodeMessage struct {
	cyclic.Result
}

func (DecodeMessage) MsgType() string { return "Decode" }

func (DecodeMessage) Header() []string {
	return []string{"index", "status", "message", "received", "syndrome", "detected", "corrected", "position", "word"}
}

func (m DecodeMessage) String() string {
	if m.Err != nil {
		return fmt.Sprintf("{Index:%d Status:%s Err:%q}", m.Index, m.Status(), m.Err)
	}
	return fmt.Sprintf("{Index:%d Status:%s Message:%s Report:%s}", m.Index, m.Status(), m.Message.Bits(), m.Report)
}

type InjectMessage struct {
	Codeword gf2.Poly
	Pattern  gf2.Poly
	Received gf2.Poly
	Applied  []int
}

func (InjectMessage) MsgType() string { return "Inject" }

func (InjectMessage) Header() []string {
	return []string{"codeword", "pattern", "received"}
}

func (m InjectMessage) String() string {
	return fmt.Sprintf("{Codeword:%s Pattern:%s Received:%s Applied:%v}",
		m.Codeword.Bits(), m.Pattern.Bits(), m.Received.Bits(), m.Applied,
	)
}

func (m InjectMessage) Record() []string {
	return []string{m.Codeword.Bits(), m.Pattern.Bits(), m.Received.Bits()}
}

var tableCmd = &cobra.Command{
	Use:   "table",
	Short: "Print the syndrome of every single-bit error",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, entry := range code.Table().Entries() {
			if err := emit(EntryMessage{entry}); err != nil {
				return err
			}
		}
		return nil
	},
}

var encodeCmd = &cobra.Command{
	Use:   "encode <message bits>...",
	Short: "Encode message blocks of k bits into codewords",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		msgs, err := parseBlocks(args)
		if err != nil {
			return err
		}

		codewords, traces, err := code.EncodeBlocks(msgs)
		if err != nil {
			return errors.Wrap(err, "encode")
		}

		for idx := range codewords {
			if err := emit(EncodeMessage{idx, codewords[idx], traces[idx]}); err != nil {
				return err
			}
		}
		return nil
	},
}

var decodeCmd = &cobra.Command{
	Use:   "decode <received bits>...",
	Short: "Decode received blocks of n bits, correcting single-bit errors",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		blocks, err := parseBlocks(args)
		if err != nil {
			return err
		}

		for _, result := range code.DecodeBlocks(blocks) {
			if result.Err != nil {
				logger.WithField("block", result.Index).WithError(result.Err).Error("invalid block")
			}
			if err := emit(DecodeMessage{result}); err != nil {
				return err
			}
		}
		return nil
	},
}

var injectCmd = &cobra.Command{
	Use:   "inject <codeword bits> [position]...",
	Short: "Flip bits of a codeword, positions counted from 0 at the left",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		codeword, err := gf2.Parse(args[0])
		if err != nil {
			return errors.Wrap(err, "codeword")
		}

		var positions []int
		for _, arg := range args[1:] {
			pos, err := strconv.Atoi(arg)
			if err != nil {
				return errors.Wrapf(err, "position %q", arg)
			}
			if pos < 0 || pos >= len(codeword) {
				logger.WithField("position", pos).Warn("position outside codeword ignored")
			}
			positions = append(positions, pos)
		}

		received, pattern := gen.InjectErrors(codeword, positions)
		return emit(InjectMessage{codeword, pattern, received, gen.Applied(pattern)})
	},
}

func init() {
	rootCmd.AddCommand(tableCmd)
	rootCmd.AddCommand(encodeCmd)
	rootCmd.AddCommand(decodeCmd)
	rootCmd.AddCommand(injectCmd)
}

func parseBlocks(args []string) (blocks []gf2.Poly, err error) {
	blocks = make([]gf2.Poly, len(args))
	for idx, arg := range args {
		if blocks[idx], err = gf2.Parse(arg); err != nil {
			return nil, errors.Wrapf(err, "block %d", idx)
		}
	}
	return
}
