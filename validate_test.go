package mdhtml

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestValidateInputRejectsInvalidUTF8(t *testing.T) {
	data := []byte("ok \xff\xfe")
	err := ValidateInput(data)
	if !errors.Is(err, ErrInvalidUTF8) {
		t.Fatalf("expected ErrInvalidUTF8, got %v", err)
	}
	if !strings.Contains(err.Error(), "at byte 3") {
		t.Fatalf("expected offset in error, got %v", err)
	}
}

func TestValidateInputRejectsBinary(t *testing.T) {
	data := bytes.Repeat([]byte{0x00, 0x01, 'a', 'b'}, 32)
	if err := ValidateInput(data); !errors.Is(err, ErrBinaryInput) {
		t.Fatalf("expected ErrBinaryInput, got %v", err)
	}
}

func TestValidateInputAcceptsText(t *testing.T) {
	inputs := [][]byte{
		nil,
		[]byte("hello\x00"),
		[]byte("# Title\n\n\tcode\r\n"),
		[]byte(strings.Repeat("plain text line\n", 20) + "\x01"),
	}
	for _, data := range inputs {
		if err := ValidateInput(data); err != nil {
			t.Fatalf("ValidateInput(%q) = %v", data, err)
		}
	}
}
