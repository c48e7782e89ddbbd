package sl

import (
	"errors"
	"testing"
)

func TestSecretMasksValue(t *testing.T) {
	cases := map[string]string{
		"":         "?",
		"abc":      "***",
		"ABC12345": "ABC***",
	}
	for in, want := range cases {
		if got := Secret("code", in).Value.String(); got != want {
			t.Fatalf("Secret(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestErrAndModule(t *testing.T) {
	if got := Err(errors.New("boom")); got.Key != "error" || got.Value.String() != "boom" {
		t.Fatalf("unexpected attr %+v", got)
	}
	if got := Module("app.invites"); got.Key != "mod" || got.Value.String() != "app.invites" {
		t.Fatalf("unexpected attr %+v", got)
	}
}
