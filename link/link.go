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

// Package link simulates sending text through a noisy channel protected
// by a cyclic code.
package link

import (
	"fmt"
	"math/rand"
	"strconv"
	"strings"

	"github.com/bemasher/cyclic/crc"
	"github.com/bemasher/cyclic/cyclic"
	"github.com/bemasher/cyclic/gen"
	"github.com/bemasher/cyclic/gf2"
	"github.com/bemasher/cyclic/log"
	"github.com/bemasher/cyclic/parse"
	"golang.org/x/xerrors"
)

// A Policy chooses which bits of a block's codeword the channel flips.
type Policy interface {
	Positions(block, n int) []int
}

type PolicyFunc func(block, n int) []int

func (f PolicyFunc) Positions(block, n int) []int {
	return f(block, n)
}

// NoErrors leaves every block untouched.
var NoErrors = PolicyFunc(func(block, n int) []int { return nil })

// Alternating flips bit block%3 of every even numbered block. Positions
// count from the leftmost bit, so with three or more message bits the
// flipped bit is always a message bit.
var Alternating = PolicyFunc(func(block, n int) []int {
	if block%2 != 0 {
		return nil
	}
	return []int{block % 3}
})

// RandomErrors flips count distinct random bits of every block.
func RandomErrors(r *rand.Rand, count int) Policy {
	return PolicyFunc(func(block, n int) []int {
		return gen.RandomPositions(r, n, count)
	})
}

// Noise flips each bit independently with probability rate.
func Noise(r *rand.Rand, rate float64) Policy {
	return PolicyFunc(func(block, n int) []int {
		return gen.BitFlips(r, n, rate)
	})
}

// NewPolicy looks up a policy by name: none, alternating, random or
// noise. The random policies draw from a source seeded with seed; errors
// is the count per block for random and ignored otherwise, rate is used
// by noise.
func NewPolicy(name string, seed int64, errors int, rate float64) (Policy, error) {
	switch strings.ToLower(name) {
	case "none":
		return NoErrors, nil
	case "alternating":
		return Alternating, nil
	case "random":
		return RandomErrors(rand.New(rand.NewSource(seed)), errors), nil
	case "noise":
		return Noise(rand.New(rand.NewSource(seed)), rate), nil
	}
	return nil, xerrors.Errorf("invalid error policy: %q", name)
}

// Block follows one block through encoding, the channel and decoding.
type Block struct {
	Index    int `xml:",attr"`
	Message  gf2.Poly
	Codeword gf2.Poly
	Received gf2.Poly
	Pattern  gf2.Poly
	Applied  []int
	Decoded  gf2.Poly
	Report   cyclic.Report
	Err      error        `json:"-" xml:"-"`
	Trace    cyclic.Trace `json:"-" xml:"-"`
}

func (b Block) MsgType() string {
	return "Block"
}

func (b Block) Status() string {
	return cyclic.Result{Report: b.Report, Err: b.Err}.Status()
}

func (b Block) String() string {
	return fmt.Sprintf("{Index:%d Message:%s Codeword:%s Errors:%v Received:%s Status:%s Decoded:%s}",
		b.Index, b.Message.Bits(), b.Codeword.Bits(), b.Applied, b.Received.Bits(), b.Status(), b.Decoded.Bits(),
	)
}

func (b Block) Header() []string {
	return []string{"index", "message", "codeword", "errors", "received", "status", "syndrome", "position", "decoded"}
}

func (b Block) Record() (r []string) {
	var applied []string
	for _, pos := range b.Applied {
		applied = append(applied, strconv.Itoa(pos))
	}

	r = append(r, strconv.Itoa(b.Index))
	r = append(r, b.Message.Bits())
	r = append(r, b.Codeword.Bits())
	r = append(r, strings.Join(applied, " "))
	r = append(r, b.Received.Bits())
	r = append(r, b.Status())
	r = append(r, b.Report.Syndrome.Bits())
	r = append(r, strconv.Itoa(b.Report.Position))
	r = append(r, b.Decoded.Bits())
	return
}

// Transmission is the outcome of sending one payload.
type Transmission struct {
	Text    string
	Bits    int
	Blocks  []Block
	Decoded string

	// Intact is set when the received payload passed its CRC.
	Intact bool
}

// Counts tallies blocks by status.
func (t Transmission) Counts() map[string]int {
	counts := make(map[string]int)
	for _, b := range t.Blocks {
		counts[b.Status()]++
	}
	return counts
}

// Link sends payloads through a channel that flips bits according to its
// policy. The payload is framed with a CRC so damage the code could not
// repair is still noticed.
type Link struct {
	Code   *cyclic.Code
	Policy Policy
	CRC    crc.CRC

	log *log.Logger
}

func New(code *cyclic.Code, policy Policy) *Link {
	if policy == nil {
		policy = NoErrors
	}
	return &Link{
		Code:   code,
		Policy: policy,
		CRC:    crc.NewCCITT(),
		log:    log.NewLogger("link"),
	}
}

// Send encodes text block by block, passes each codeword through the
// channel and decodes the result. A block that cannot be corrected is
// logged and kept; it does not stop the transmission.
func (l *Link) Send(text string) (t Transmission, err error) {
	params := l.Code.Params()

	payload := parse.NewDataFromBytes(l.CRC.Append([]byte(text)))
	t.Text = text
	t.Bits = len(payload.Bits)

	msgs, err := parse.Segment(payload.Poly(), params.K)
	if err != nil {
		return t, err
	}

	codewords, traces, err := l.Code.EncodeBlocks(msgs)
	if err != nil {
		return t, err
	}

	t.Blocks = make([]Block, len(msgs))
	received := make([]gf2.Poly, len(msgs))
	for idx := range msgs {
		b := &t.Blocks[idx]
		b.Index = idx
		b.Message = msgs[idx]
		b.Codeword = codewords[idx]
		b.Trace = traces[idx]

		b.Received, b.Pattern = gen.InjectErrors(b.Codeword, l.Policy.Positions(idx, params.N))
		b.Applied = gen.Applied(b.Pattern)
		received[idx] = b.Received
	}

	decoded := make([]gf2.Poly, len(msgs))
	for idx, result := range l.Code.DecodeBlocks(received) {
		b := &t.Blocks[idx]
		b.Decoded = result.Message
		b.Report = result.Report
		b.Err = result.Err
		decoded[idx] = result.Message

		entry := l.log.WithField("block", idx).WithField("errors", b.Applied)
		switch b.Status() {
		case "corrected":
			entry.WithField("position", b.Report.Position).Debug("corrected")
		case "uncorrectable":
			entry.WithField("syndrome", b.Report.Syndrome.Bits()).Warn("uncorrectable")
		case "invalid":
			entry.WithError(b.Err).Error("invalid block")
		}

		// Blocks with the wrong length decode to nothing; keep their
		// place in the payload.
		if decoded[idx] == nil {
			decoded[idx] = make(gf2.Poly, params.K)
		}
	}

	data, err := parse.NewDataFromBits(parse.Join(decoded, t.Bits).Bits())
	if err != nil {
		return t, err
	}

	t.Intact = l.CRC.Check(data.Bytes)
	if n := len(data.Bytes) - 2; n >= 0 {
		t.Decoded = string(data.Bytes[:n])
	}

	l.log.WithField("blocks", len(t.Blocks)).
		WithField("intact", t.Intact).
		WithField("counts", t.Counts()).
		Info("transmission complete")

	return t, nil
}
