package handler

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestMessagePreviewKeepsShortContent(t *testing.T) {
	assert.Equal(t, "Dzień dobry", messagePreview("Dzień dobry"))
	assert.Equal(t, "", messagePreview(""))
}

func TestMessagePreviewTruncatesOnRuneBoundary(t *testing.T) {
	// 50 two-byte characters: 100 bytes, 50 runes, under the rune cap.
	under := strings.Repeat("ż", 50)
	assert.Equal(t, under, messagePreview(under))

	long := strings.Repeat("ż", 100)
	got := messagePreview(long)
	assert.True(t, utf8.ValidString(got))
	assert.Equal(t, 80, utf8.RuneCountInString(got))
	assert.Equal(t, strings.Repeat("ż", 80), got)
}
