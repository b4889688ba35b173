package crypto

import (
	"bytes"
	"strings"
	"testing"
)

func newTestSealer(t *testing.T) *Sealer {
	t.Helper()
	key, err := GenerateKey()
	if err != nil {
		t.Fatal(err)
	}
	s, err := NewSealer(key)
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func TestNewSealer_RejectsBadKeys(t *testing.T) {
	if _, err := NewSealer("zz"); err == nil {
		t.Error("expected error for non-hex key")
	}
	if _, err := NewSealer(strings.Repeat("ab", 16)); err == nil {
		t.Error("expected error for 16-byte key")
	}
}

func TestSealOpen(t *testing.T) {
	s := newTestSealer(t)
	sealed, err := s.Seal([]byte("hello"))
	if err != nil {
		t.Fatal(err)
	}
	got, err := s.Open(sealed)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, []byte("hello")) {
		t.Errorf("expected hello, got %q", got)
	}
}

func TestOpen_TamperedOrForeign(t *testing.T) {
	s := newTestSealer(t)
	sealed, _ := s.SealString([]byte("payload"))

	if _, err := newTestSealer(t).OpenString(sealed); err == nil {
		t.Error("a different key must not open the value")
	}
	raw, _ := s.Seal([]byte("payload"))
	raw[len(raw)-1] ^= 0xff
	if _, err := s.Open(raw); err == nil {
		t.Error("tampered ciphertext must be rejected")
	}
	if _, err := s.Open([]byte("short")); err == nil {
		t.Error("short input must be rejected")
	}
	if _, err := s.OpenString("!!"); err == nil {
		t.Error("bad encoding must be rejected")
	}
}
