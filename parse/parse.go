package parse

import (
	"fmt"
	"strconv"
	"time"

	"github.com/bemasher/cyclic/csv"
	"github.com/bemasher/cyclic/gf2"
	"golang.org/x/xerrors"
)

const (
	TimeFormat = "2006-01-02T15:04:05.000"
)

// Data holds the same payload as bytes and as a string of bits, eight per
// byte, most significant bit first.
type Data struct {
	Bits  string
	Bytes []byte
}

func NewDataFromBytes(data []byte) (d Data) {
	d.Bytes = data
	for _, b := range data {
		d.Bits += fmt.Sprintf("%08b", b)
	}

	return
}

func NewDataFromText(text string) Data {
	return NewDataFromBytes([]byte(text))
}

// NewDataFromBits packs a string of bits into bytes. A trailing partial
// byte is padded with zeros on the right.
func NewDataFromBits(data string) (d Data, err error) {
	if _, err = gf2.Parse(data); err != nil {
		return d, err
	}

	d.Bits = data
	d.Bytes = make([]byte, (len(data)+7)>>3)
	for idx := 0; idx < len(data); idx += 8 {
		end := idx + 8
		if end > len(data) {
			end = len(data)
		}

		b, _ := strconv.ParseUint(d.Bits[idx:end], 2, 8)
		d.Bytes[idx>>3] = uint8(b << uint(8-(end-idx)))
	}
	return
}

func (d Data) Text() string {
	return string(d.Bytes)
}

// Poly returns the bits of d as a polynomial.
func (d Data) Poly() gf2.Poly {
	return gf2.MustParse(d.Bits)
}

// Segment splits bits into blocks of size bits each. The final block is
// padded with zeros if it is short.
func Segment(bits gf2.Poly, size int) ([]gf2.Poly, error) {
	if size <= 0 {
		return nil, xerrors.Errorf("block size %d: %w", size, gf2.ErrInvalidLength)
	}

	blocks := make([]gf2.Poly, 0, (len(bits)+size-1)/size)
	for idx := 0; idx < len(bits); idx += size {
		block := make(gf2.Poly, size)
		copy(block, bits[idx:])
		blocks = append(blocks, block)
	}
	return blocks, nil
}

// Join concatenates blocks and truncates the result to length bits,
// dropping the padding added by Segment. A negative length keeps
// everything.
func Join(blocks []gf2.Poly, length int) gf2.Poly {
	var bits gf2.Poly
	for _, block := range blocks {
		bits = append(bits, block...)
	}
	if length >= 0 && length < len(bits) {
		bits = bits[:length]
	}
	return bits
}

type Message interface {
	csv.Recorder
	MsgType() string
}

// A LogMessage associates a message with the time it was produced.
type LogMessage struct {
	Time time.Time `xml:",attr"`
	Type string    `xml:",attr"`
	Message
}

func NewLogMessage(msg Message) LogMessage {
	return LogMessage{time.Now(), msg.MsgType(), msg}
}

func (msg LogMessage) String() string {
	return fmt.Sprintf("{Time:%s %s:%s}", msg.Time.Format(TimeFormat), msg.Type, msg.Message)
}

// Header names the fields of Record when the wrapped message has a
// header of its own.
func (msg LogMessage) Header() []string {
	h, ok := msg.Message.(csv.Headerer)
	if !ok {
		return nil
	}
	return append([]string{"time", "type"}, h.Header()...)
}

func (msg LogMessage) Record() (r []string) {
	r = append(r, msg.Time.Format(time.RFC3339Nano))
	r = append(r, msg.Type)
	r = append(r, msg.Message.Record()...)
	return r
}

// A FilterChain applies each of its filters in turn; a message must pass
// all of them.
type FilterChain []MessageFilter

func (fc *FilterChain) Add(filter MessageFilter) {
	*fc = append(*fc, filter)
}

func (fc FilterChain) Match(msg Message) bool {
	if len(fc) == 0 {
		return true
	}

	for _, filter := range fc {
		if !filter.Filter(msg) {
			return false
		}
	}

	return true
}

type MessageFilter interface {
	Filter(Message) bool
}

// StatusFilter passes messages whose Status is in the set. Messages
// without a status always pass.
type StatusFilter map[string]bool

func (sf StatusFilter) Filter(msg Message) bool {
	s, ok := msg.(interface{ Status() string })
	if !ok {
		return true
	}
	return sf[s.Status()]
}
