package parser

import (
	"bytes"
	"io"
	"testing"
)

func TestNewUTF8Reader_PassThrough(t *testing.T) {
	t.Parallel()
	input := []byte(`{"data":{"title":"Café ☺"}}`)

	for _, ct := range []string{"", "application/json", "application/json; charset=utf-8", "not a media type;;"} {
		reader, err := NewUTF8Reader(bytes.NewReader(input), ct)
		if err != nil {
			t.Fatalf("NewUTF8Reader(%q): %v", ct, err)
		}
		output, err := io.ReadAll(reader)
		if err != nil {
			t.Fatalf("ReadAll: %v", err)
		}
		if !bytes.Equal(output, input) {
			t.Errorf("Content-Type %q: expected content unchanged, got %q", ct, output)
		}
	}
}

func TestNewUTF8Reader_ISO88591ToUTF8(t *testing.T) {
	t.Parallel()
	// é is 0xE9 in ISO-8859-1
	input := []byte(`{"data":{"title":"Caf` + string([]byte{0xE9}) + `"}}`)

	reader, err := NewUTF8Reader(bytes.NewReader(input), "application/json; charset=ISO-8859-1")
	if err != nil {
		t.Fatalf("NewUTF8Reader: %v", err)
	}
	output, err := io.ReadAll(reader)
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if string(output) != `{"data":{"title":"Café"}}` {
		t.Errorf("Expected UTF-8 output, got %q", output)
	}
}

func TestNewUTF8Reader_UnknownCharset(t *testing.T) {
	t.Parallel()
	if _, err := NewUTF8Reader(bytes.NewReader(nil), "application/json; charset=klingon"); err == nil {
		t.Error("Expected error for unknown charset")
	}
}
