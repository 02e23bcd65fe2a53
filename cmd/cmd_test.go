package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"strings"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"
)

// run executes the command line with default flag values and returns what
// it wrote.
func run(t *testing.T, args ...string) (string, error) {
	generator, length, format = "1101", 0, "plain"
	policy, seed, perBlock, noiseRate, trace = "alternating", 0, 1, 0.01, false
	for k := range filter {
		delete(filter, k)
	}

	buf := &bytes.Buffer{}
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)

	err := rootCmd.Execute()
	return buf.String(), err
}

func TestTableCommand(t *testing.T) {
	out, err := run(t, "table", "--format", "csv")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 8)
	require.Equal(t, "time,type,position,syndrome", lines[0])
	require.True(t, strings.HasSuffix(lines[7], ",Syndrome,6,001"), lines[7])
}

func TestEncodeCommand(t *testing.T) {
	out, err := run(t, "encode", "1011", "0001")
	require.NoError(t, err)
	require.Contains(t, out, "Codeword:1011100")
	require.Contains(t, out, "Codeword:0001101")

	_, err = run(t, "encode", "101")
	require.Error(t, err)

	_, err = run(t, "encode", "10x1")
	require.Error(t, err)
}

func TestDecodeCommand(t *testing.T) {
	out, err := run(t, "decode", "--format", "json", "1011100", "1001100", "101")
	require.NoError(t, err)

	var statuses []string
	dec := json.NewDecoder(strings.NewReader(out))
	for dec.More() {
		var msg struct {
			Type    string
			Message struct {
				Index   int
				Message string
				Report  struct {
					Position int
				}
			}
		}
		require.NoError(t, dec.Decode(&msg))
		require.Equal(t, "Decode", msg.Type)

		switch msg.Message.Index {
		case 0:
			require.Equal(t, "1011", msg.Message.Message)
			statuses = append(statuses, "ok")
		case 1:
			require.Equal(t, "1011", msg.Message.Message)
			require.Equal(t, 2, msg.Message.Report.Position)
			statuses = append(statuses, "corrected")
		case 2:
			statuses = append(statuses, "invalid")
		}
	}
	require.Equal(t, []string{"ok", "corrected", "invalid"}, statuses)
}

func TestDecodeFilter(t *testing.T) {
	out, err := run(t, "decode", "--filter", "corrected", "1011100", "1001100")
	require.NoError(t, err)
	require.Equal(t, 1, strings.Count(out, "\n"), out)
	require.Contains(t, out, "Status:corrected")

	_, err = run(t, "decode", "--filter", "maybe", "1011100")
	require.Error(t, err)
}

func TestInjectCommand(t *testing.T) {
	out, err := run(t, "inject", "1011100", "0", "9")
	require.NoError(t, err)
	require.Contains(t, out, "Received:0011100")
	require.Contains(t, out, "Applied:[0]")
}

func TestSendCommand(t *testing.T) {
	out, err := run(t, "send", "hello")
	require.NoError(t, err)
	require.Contains(t, out, `Decoded: "hello"`)
	require.Contains(t, out, "Integrity: ok")
}

func TestSendTrace(t *testing.T) {
	out, err := run(t, "send", "--trace", "--policy", "random", "--seed", "5", "Hi")
	require.NoError(t, err)
	require.Contains(t, out, "=== ENCODING ===")
	require.Contains(t, out, "error at position")
	require.Contains(t, out, `Decoded: "Hi"`)
}

func TestSendXML(t *testing.T) {
	out, err := run(t, "send", "--format", "xml", "--policy", "none", "A")
	require.NoError(t, err)
	require.Equal(t, 6, strings.Count(out, "<LogMessage"), out)
}

func TestShortenedCode(t *testing.T) {
	out, err := run(t, "--generator", "10011", "--length", "12", "send", "shortened")
	require.NoError(t, err)
	require.Contains(t, out, `Decoded: "shortened"`)
}

func TestInvalidGenerator(t *testing.T) {
	_, err := run(t, "--generator", "1001", "table")
	require.Error(t, err)
	require.Contains(t, err.Error(), "ambiguous")

	_, err = run(t, "--format", "yaml", "table")
	require.Error(t, err)
}

func TestVersionCommand(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	require.Contains(t, out, "Build Tag:  dev")
}

func TestEnvOverride(t *testing.T) {
	var gen string
	var n int

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.StringVar(&gen, "generator", "1101", "")
	flags.IntVar(&n, "length", 0, "")
	require.NoError(t, flags.Parse([]string{"--length", "6"}))

	os.Setenv("CYCLIC_GENERATOR", "10011")
	os.Setenv("CYCLIC_LENGTH", "12")
	defer os.Unsetenv("CYCLIC_GENERATOR")
	defer os.Unsetenv("CYCLIC_LENGTH")

	EnvOverride(flags)

	require.Equal(t, "10011", gen)
	require.Equal(t, 6, n, "command line takes precedence")
}

func TestStatusSet(t *testing.T) {
	s := StatusSet{}
	require.NoError(t, s.Set("Corrected, uncorrectable"))
	require.Equal(t, "corrected,uncorrectable", s.String())
	require.Error(t, s.Set("fine"))
}
