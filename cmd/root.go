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
	"encoding/json"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/bemasher/cyclic/csv"
	"github.com/bemasher/cyclic/cyclic"
	"github.com/bemasher/cyclic/gf2"
	"github.com/bemasher/cyclic/log"
	"github.com/bemasher/cyclic/parse"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

const EnvPrefix = "CYCLIC_"

var (
	buildTag   = "dev"     // v#.#.#
	buildDate  = "unknown" // date -u '+%Y-%m-%d'
	commitHash = "unknown" // git rev-parse HEAD
)

var (
	generator = "1101"
	length    int
	format    = "plain"
	logLevel  = "warn"
	logFile   string
	filter    = StatusSet{}
)

var logger = log.NewLogger("cyclic")

// State shared by every subcommand, prepared before it runs.
var (
	code    *cyclic.Code
	encoder Encoder
	fc      parse.FilterChain
)

var rootCmd = &cobra.Command{
	Use:   "cyclic",
	Short: "Encode, corrupt and correct data with a binary cyclic code",
	Long: `cyclic encodes blocks of message bits into systematic codewords of a
binary cyclic code defined by its generator polynomial, simulates channel
noise by flipping bits, and corrects single-bit errors by syndrome table
lookup.

The default generator 1101 (x^3 + x^2 + 1) gives the (7,4) Hamming code.
Every flag may also be set through the environment as CYCLIC_<FLAG>,
for example CYCLIC_GENERATOR=10011.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&generator, "generator", generator, "generator polynomial bits, highest power first")
	flags.IntVar(&length, "length", length, "code length, 0 derives 2^m-1 from the generator degree m")
	flags.StringVar(&format, "format", format, "output format: plain, csv, json or xml")
	flags.StringVar(&logLevel, "loglevel", logLevel, "log level: debug, info, warn or error")
	flags.StringVar(&logFile, "logfile", logFile, "also write log entries to this file as json")
	flags.Var(filter, "filter", "display only blocks with a status in a comma-separated list: ok, corrected, uncorrectable, invalid")
}

// Execute runs the command line and exits non-zero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func setup(cmd *cobra.Command, args []string) error {
	EnvOverride(cmd.Flags())

	if err := log.SetLevel(logLevel); err != nil {
		return errors.Wrap(err, "loglevel")
	}
	if logFile != "" {
		log.AddFileHook(logFile)
	}

	gen, err := gf2.Parse(generator)
	if err != nil {
		return errors.Wrap(err, "generator")
	}

	if length == 0 {
		code, err = cyclic.New(gen)
	} else {
		code, err = cyclic.NewWithLength(gen, length)
	}
	if err != nil {
		return errors.Wrap(err, "constructing code")
	}

	params := code.Params()
	logger.WithField("generator", code.Generator().String()).Info("Generator")
	logger.WithField("n", params.N).WithField("k", params.K).WithField("parity", params.Parity).Info("Params")
	logger.WithField("table", code.Table().Len()).Info("SyndromeTable")

	encoder, err = NewEncoder(format, cmd.OutOrStdout())
	if err != nil {
		return err
	}

	fc = nil
	if len(filter) > 0 {
		fc.Add(parse.StatusFilter(filter))
	}

	return nil
}

// EnvOverride sets every flag not given on the command line from its
// environment variable, if present.
func EnvOverride(flags *pflag.FlagSet) {
	flags.VisitAll(func(f *pflag.Flag) {
		if f.Changed {
			return
		}

		envName := EnvPrefix + strings.ToUpper(strings.Replace(f.Name, "-", "_", -1))
		flagValue := os.Getenv(envName)
		if flagValue == "" {
			return
		}

		entry := logger.WithField("env", envName).WithField("flag", f.Name).WithField("value", flagValue)
		if err := flags.Set(f.Name, flagValue); err != nil {
			entry.WithError(err).Warn("environment variable failed to override flag")
		} else {
			entry.Info("environment variable overrides flag")
		}
	})
}

// JSON, XML and CSV all implement this interface so we can simplify
// output formatting.
type Encoder interface {
	Encode(interface{}) error
}

func NewEncoder(format string, w io.Writer) (Encoder, error) {
	switch strings.ToLower(format) {
	case "plain":
		return PlainEncoder{w}, nil
	case "csv":
		return csv.NewEncoder(w), nil
	case "json":
		return json.NewEncoder(w), nil
	case "xml":
		return LineEncoder{xml.NewEncoder(w), w}, nil
	}
	return nil, errors.Errorf("invalid format: %q", format)
}

type PlainEncoder struct {
	w io.Writer
}

func (pe PlainEncoder) Encode(msg interface{}) (err error) {
	if m, ok := msg.(parse.LogMessage); ok {
		_, err = fmt.Fprintln(pe.w, m.Message)
	} else {
		_, err = fmt.Fprintln(pe.w, msg)
	}
	return
}

// LineEncoder terminates each element with a newline so every message is
// on its own line.
type LineEncoder struct {
	enc Encoder
	w   io.Writer
}

func (le LineEncoder) Encode(msg interface{}) error {
	if err := le.enc.Encode(msg); err != nil {
		return err
	}
	_, err := io.WriteString(le.w, "\n")
	return err
}

// emit writes msg if it passes the filter chain.
func emit(msg parse.Message) error {
	if !fc.Match(msg) {
		return nil
	}
	return errors.Wrap(encoder.Encode(parse.NewLogMessage(msg)), "encoding message")
}

// StatusSet is a comma-separated set of block statuses.
type StatusSet map[string]bool

func (s StatusSet) String() string {
	var values []string
	for k := range s {
		values = append(values, k)
	}
	sort.Strings(values)
	return strings.Join(values, ",")
}

func (s StatusSet) Set(value string) error {
	for _, v := range strings.Split(value, ",") {
		switch v = strings.TrimSpace(strings.ToLower(v)); v {
		case "ok", "corrected", "uncorrectable", "invalid":
			s[v] = true
		default:
			return errors.Errorf("invalid status: %q", v)
		}
	}
	return nil
}

func (s StatusSet) Type() string {
	return "statuses"
}
