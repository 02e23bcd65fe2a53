package cyclic

import (
	"runtime"
	"strconv"
	"sync"

	"github.com/bemasher/cyclic/gf2"
	"golang.org/x/xerrors"
)

// Result is the outcome of decoding one block of a batch.
type Result struct {
	Index   int `xml:",attr"`
	Message gf2.Poly
	Report  Report
	Err     error `json:"-" xml:"-"`
}

// Status summarizes the result as "ok", "corrected", "uncorrectable" or
// "invalid".
func (r Result) Status() string {
	switch {
	case r.Err != nil:
		return "invalid"
	case !r.Report.Detected:
		return "ok"
	case r.Report.Corrected:
		return "corrected"
	default:
		return "uncorrectable"
	}
}

func (r Result) Record() (rec []string) {
	rec = append(rec, strconv.Itoa(r.Index))
	rec = append(rec, r.Status())
	rec = append(rec, r.Message.Bits())
	rec = append(rec, r.Report.Record()...)
	return
}

// EncodeBlocks encodes each message in order. Messages are produced by
// the caller so an invalid one stops the batch.
func (c *Code) EncodeBlocks(msgs []gf2.Poly) (codewords []gf2.Poly, traces []Trace, err error) {
	codewords = make([]gf2.Poly, len(msgs))
	traces = make([]Trace, len(msgs))

	for idx, msg := range msgs {
		codewords[idx], traces[idx], err = c.Encode(msg)
		if err != nil {
			return nil, nil, xerrors.Errorf("block %d: %w", idx, err)
		}
	}

	return
}

// DecodeBlocks decodes independent blocks concurrently and returns their
// results in block order. A failure in one block is recorded in its
// Result and does not affect the others.
func (c *Code) DecodeBlocks(blocks []gf2.Poly) []Result {
	results := make([]Result, len(blocks))

	workers := runtime.NumCPU()
	if workers > len(blocks) {
		workers = len(blocks)
	}

	idxCh := make(chan int)

	wg := new(sync.WaitGroup)
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for idx := range idxCh {
				msg, report, err := c.Decode(blocks[idx])
				if err != nil {
					err = xerrors.Errorf("block %d: %w", idx, err)
				}
				results[idx] = Result{idx, msg, report, err}
			}
		}()
	}

	for idx := range blocks {
		idxCh <- idx
	}
	close(idxCh)

	wg.Wait()

	return results
}
