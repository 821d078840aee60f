package booking

import (
	"crypto/rand"
	"fmt"
	"io"
	"time"
)

// No 0/O or 1/I/L.
const codeAlphabet = "ABCDEFGHJKMNPQRSTUVWXYZ23456789"

const codeRandomLength = 6

type CodeGenerator struct {
	prefix  string
	entropy io.Reader
}

func NewCodeGenerator(prefix string) *CodeGenerator {
	return &CodeGenerator{prefix: prefix, entropy: rand.Reader}
}

func NewCodeGeneratorWithEntropy(prefix string, entropy io.Reader) *CodeGenerator {
	return &CodeGenerator{prefix: prefix, entropy: entropy}
}

// Generate returns codes like BK-250307-7KQ2M9.
func (g *CodeGenerator) Generate(now time.Time) (string, error) {
	buf := make([]byte, codeRandomLength)
	if _, err := io.ReadFull(g.entropy, buf); err != nil {
		return "", fmt.Errorf("failed to generate booking code: %w", err)
	}
	for i, b := range buf {
		buf[i] = codeAlphabet[int(b)%len(codeAlphabet)]
	}
	return fmt.Sprintf("%s-%s-%s", g.prefix, now.UTC().Format("060102"), buf), nil
}
