package service

import (
	"crypto/rand"
	"fmt"
	"io"
	"math/big"
	"strconv"
	"strings"
	"time"
)

const (
	CertificateIDPrefix    = "AK-CERT-"
	CertificateIDMaxLength = 20

	randomUpperBound = 1_000_000

	IDModeLegacy = "legacy"
	IDModeFixed  = "fixed"
)

// IdentifierGenerator produces public certificate identifiers.
type IdentifierGenerator interface {
	Generate() (string, error)
}

type identifierGenerator struct {
	fixedWidth bool
	now        func() time.Time
	rand       io.Reader
}

// NewIdentifierGenerator returns the generator for mode ("legacy" or "fixed").
//
// legacy: PREFIX + unix seconds + random in [0, 1e6), cut to 20 chars after
// concatenation. With a 10-digit timestamp only the first two random digits
// survive, so two ids issued in the same second collide with p ~ 1/100.
//
// fixed: PREFIX + base36 seconds (6 chars) + random zero-padded to 6 chars.
// Exactly 20 chars, the random part is never cut.
func NewIdentifierGenerator(mode string) (IdentifierGenerator, error) {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "", IDModeLegacy:
		return &identifierGenerator{now: time.Now, rand: rand.Reader}, nil
	case IDModeFixed:
		return &identifierGenerator{fixedWidth: true, now: time.Now, rand: rand.Reader}, nil
	default:
		return nil, fmt.Errorf("unknown certificate id mode %q", mode)
	}
}

func (g *identifierGenerator) Generate() (string, error) {
	n, err := rand.Int(g.rand, big.NewInt(randomUpperBound))
	if err != nil {
		return "", fmt.Errorf("random suffix: %w", err)
	}
	ts := g.now().UTC().Unix()

	if g.fixedWidth {
		return CertificateIDPrefix + fixedWidthTimestamp(ts) + fmt.Sprintf("%06d", n.Int64()), nil
	}

	id := CertificateIDPrefix + strconv.FormatInt(ts, 10) + n.String()
	if len(id) > CertificateIDMaxLength {
		id = id[:CertificateIDMaxLength]
	}
	return id, nil
}

// Six base36 digits hold unix seconds until late 2038; past that the
// leading digits are dropped so the id stays at 20 chars.
func fixedWidthTimestamp(ts int64) string {
	const width = 6
	s := strings.ToUpper(strconv.FormatInt(ts, 36))
	if len(s) > width {
		return s[len(s)-width:]
	}
	return strings.Repeat("0", width-len(s)) + s
}
