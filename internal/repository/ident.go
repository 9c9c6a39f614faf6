package repository

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
)

// ident.go implements the identifier allocator: short identifiers are drawn
// at random and probed against the owning table until an unused value is
// found. The key spaces (10,000 client IDs, ~2.2 billion access keys) make
// collisions improbable, so no retry bound is enforced on the probe loop
// itself; the booking insert separately retries on a lost uniqueness race.

const accessKeyAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// existsFunc reports whether a candidate identifier is already persisted.
type existsFunc func(ctx context.Context, candidate string) (bool, error)

// allocate draws candidates from gen until exists reports a free one.
func allocate(ctx context.Context, gen func() (string, error), exists existsFunc) (string, error) {
	for {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		candidate, err := gen()
		if err != nil {
			return "", err
		}
		taken, err := exists(ctx, candidate)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
	}
}

// randomClientID returns a random 4-digit numeric string, zero-padded.
func randomClientID() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(10000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%04d", n.Int64()), nil
}

// randomAccessKey returns a random 6-character uppercase base-36 string.
func randomAccessKey() (string, error) {
	out := make([]byte, 6)
	max := big.NewInt(int64(len(accessKeyAlphabet)))
	for i := range out {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		out[i] = accessKeyAlphabet[n.Int64()]
	}
	return string(out), nil
}
