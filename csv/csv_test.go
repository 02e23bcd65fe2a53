package csv

import (
	"bytes"
	"encoding/csv"
	"runtime"
	"testing"

	"golang.org/x/xerrors"
)

func TestRecorderNil(t *testing.T) {
	buf := &bytes.Buffer{}
	enc := Encoder{w: csv.NewWriter(buf)}

	if err := enc.Encode(nil); err == nil {
		t.Fatalf("%+v\n", err)
	}
}

type Msg struct{}

func (m Msg) Record() []string {
	return []string{"1011", "1011100"}
}

func TestRecorder(t *testing.T) {
	buf := &bytes.Buffer{}
	enc := Encoder{w: csv.NewWriter(buf)}

	if err := enc.Encode(Msg{}); err != nil {
		t.Fatalf("%+v\n", err)
	}
	if buf.String() != "1011,1011100\n" {
		t.Fatalf("Expected: %q Got: %q\n", "1011,1011100\n", buf.String())
	}
}

type HeaderMsg struct {
	Msg
}

func (HeaderMsg) Header() []string {
	return []string{"message", "codeword"}
}

func TestHeaderOnce(t *testing.T) {
	buf := &bytes.Buffer{}
	enc := NewEncoder(buf)

	for i := 0; i < 2; i++ {
		if err := enc.Encode(HeaderMsg{}); err != nil {
			t.Fatalf("%+v\n", err)
		}
	}

	expected := "message,codeword\n1011,1011100\n1011,1011100\n"
	if buf.String() != expected {
		t.Fatalf("Expected: %q Got: %q\n", expected, buf.String())
	}
}

type NonRecorder struct{}

func TestNonRecorder(t *testing.T) {
	buf := &bytes.Buffer{}
	enc := Encoder{w: csv.NewWriter(buf)}

	err := enc.Encode(NonRecorder{})

	var runtimeErr runtime.Error
	if !xerrors.As(err, &runtimeErr) {
		t.Fatalf("%+v\n", runtimeErr)
	}
}

type PanicMsg struct{}

func (PanicMsg) Record() []string {
	panic("record unavailable")
}

func TestRecorderPanicValue(t *testing.T) {
	buf := &bytes.Buffer{}
	enc := NewEncoder(buf)

	err := enc.Encode(PanicMsg{})
	if err == nil {
		t.Fatal("expected error from panicking Record")
	}
	if err.Error() != "recovered: record unavailable" {
		t.Fatalf("Expected: %q Got: %q\n", "recovered: record unavailable", err.Error())
	}
}
