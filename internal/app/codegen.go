package app

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
	"time"
	"unicode"
)

const (
	// MinBatch and MaxBatch bound how many codes one generation request creates.
	MinBatch = 1
	MaxBatch = 100

	tokenLength     = 8
	idSuffixLength  = 6
	maxPrefixLength = 10
	prefixSeparator = "-"

	tokenAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	idAlphabet    = "0123456789abcdefghijklmnopqrstuvwxyz"
)

// CodeGenerator draws invite tokens and record IDs.
type CodeGenerator struct {
	now  func() time.Time
	draw func(alphabet string, n int) (string, error)
}

func NewCodeGenerator() *CodeGenerator {
	return &CodeGenerator{now: time.Now, draw: randomString}
}

// ClampBatch limits a requested batch size to [MinBatch, MaxBatch].
func ClampBatch(count int) int {
	if count < MinBatch {
		return MinBatch
	}
	if count > MaxBatch {
		return MaxBatch
	}
	return count
}

// SanitizePrefix uppercases the prefix, keeps only letters and digits and caps it at 10 characters.
func SanitizePrefix(prefix string) string {
	var b strings.Builder
	for _, r := range strings.ToUpper(prefix) {
		if b.Len() == maxPrefixLength {
			break
		}
		if r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Code returns a new redeemable code, PREFIX-TOKEN when prefix is non-empty.
// prefix must already be sanitized.
func (g *CodeGenerator) Code(prefix string) (string, error) {
	token, err := g.draw(tokenAlphabet, tokenLength)
	if err != nil {
		return "", err
	}
	if prefix == "" {
		return token, nil
	}
	return prefix + prefixSeparator + token, nil
}

// ID returns a timestamp-random-index composite; index keeps IDs unique within a batch.
func (g *CodeGenerator) ID(index int) (string, error) {
	suffix, err := g.draw(idAlphabet, idSuffixLength)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%d-%s-%d", g.now().UnixMilli(), suffix, index), nil
}

func randomString(alphabet string, n int) (string, error) {
	max := big.NewInt(int64(len(alphabet)))
	out := make([]byte, n)
	for i := range out {
		idx, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("draw random: %w", err)
		}
		out[i] = alphabet[idx.Int64()]
	}
	return string(out), nil
}
