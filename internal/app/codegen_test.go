package app

import (
	"regexp"
	"strings"
	"testing"
	"time"
)

func TestClampBatch(t *testing.T) {
	cases := map[int]int{-5: 1, 0: 1, 1: 1, 42: 42, 100: 100, 150: 100}
	for in, want := range cases {
		if got := ClampBatch(in); got != want {
			t.Fatalf("ClampBatch(%d) = %d, want %d", in, got, want)
		}
	}
}

func TestSanitizePrefix(t *testing.T) {
	cases := map[string]string{
		"":                "",
		"quiz2024":        "QUIZ2024",
		"spring-sale!":    "SPRINGSALE",
		"abcdefghijklmno": "ABCDEFGHIJ",
		"  é-x1 ":         "X1",
	}
	for in, want := range cases {
		if got := SanitizePrefix(in); got != want {
			t.Fatalf("SanitizePrefix(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestCodeFormat(t *testing.T) {
	gen := NewCodeGenerator()
	plain := regexp.MustCompile(`^[0-9A-Z]{8}$`)
	prefixed := regexp.MustCompile(`^QUIZ-[0-9A-Z]{8}$`)

	code, err := gen.Code("")
	if err != nil || !plain.MatchString(code) {
		t.Fatalf("unexpected code %q (%v)", code, err)
	}
	code, err = gen.Code("QUIZ")
	if err != nil || !prefixed.MatchString(code) {
		t.Fatalf("unexpected prefixed code %q (%v)", code, err)
	}
}

func TestIDCompositeIncludesIndex(t *testing.T) {
	gen := NewCodeGenerator()
	gen.now = func() time.Time { return time.UnixMilli(1700000000000) }

	id, err := gen.ID(7)
	if err != nil {
		t.Fatalf("id: %v", err)
	}
	parts := strings.Split(id, "-")
	if len(parts) != 3 || parts[0] != "1700000000000" || len(parts[1]) != 6 || parts[2] != "7" {
		t.Fatalf("unexpected id %q", id)
	}
}
