package repository

import (
	"context"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRandomClientIDFormat(t *testing.T) {
	re := regexp.MustCompile(`^[0-9]{4}$`)
	for i := 0; i < 50; i++ {
		id, err := randomClientID()
		require.NoError(t, err)
		assert.Regexp(t, re, id)
	}
}

func TestRandomAccessKeyFormat(t *testing.T) {
	re := regexp.MustCompile(`^[0-9A-Z]{6}$`)
	for i := 0; i < 50; i++ {
		key, err := randomAccessKey()
		require.NoError(t, err)
		assert.Regexp(t, re, key)
	}
}

func TestAllocateSkipsTakenCandidates(t *testing.T) {
	candidates := []string{"1111", "2222", "3333"}
	i := 0
	gen := func() (string, error) {
		c := candidates[i]
		i++
		return c, nil
	}
	// First two candidates are taken, the third is free.
	exists := func(ctx context.Context, candidate string) (bool, error) {
		return candidate != "3333", nil
	}

	got, err := allocate(context.Background(), gen, exists)
	require.NoError(t, err)
	assert.Equal(t, "3333", got)
	assert.Equal(t, 3, i)
}

func TestAllocateStopsOnCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	gen := func() (string, error) { return "0000", nil }
	exists := func(ctx context.Context, candidate string) (bool, error) { return true, nil }

	_, err := allocate(ctx, gen, exists)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestAllocatePropagatesProbeError(t *testing.T) {
	gen := func() (string, error) { return "0000", nil }
	exists := func(ctx context.Context, candidate string) (bool, error) {
		return false, assert.AnError
	}

	_, err := allocate(context.Background(), gen, exists)
	assert.ErrorIs(t, err, assert.AnError)
}
