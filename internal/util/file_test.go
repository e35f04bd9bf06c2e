package util

import (
	"bytes"
	"errors"
	"testing"
)

func TestValidateMimeType(t *testing.T) {
	pdf := append([]byte("%PDF-1.4"), bytes.Repeat([]byte{0x20}, 64)...)

	mime, err := ValidateMimeType(bytes.NewReader(pdf), []string{MimePDF})
	if err != nil {
		t.Fatalf("pdf rejected: %v (detected %s)", err, mime)
	}

	_, err = ValidateMimeType(bytes.NewReader(pdf), []string{MimeImage})
	if !errors.Is(err, ErrInvalidMimeType) {
		t.Errorf("got %v, want ErrInvalidMimeType", err)
	}
}

func TestMustParseUint(t *testing.T) {
	if MustParseUint("42") != 42 {
		t.Error("expected 42")
	}
	if MustParseUint("not-a-number") != 0 {
		t.Error("expected 0 for garbage input")
	}
	if MustParseUint("-1") != 0 {
		t.Error("expected 0 for negative input")
	}
}
