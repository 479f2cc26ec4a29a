package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTitleFromMessage(t *testing.T) {
	t.Run("short message unchanged", func(t *testing.T) {
		assert.Equal(t, "What is 1+1?", TitleFromMessage("What is 1+1?"))
	})

	t.Run("exactly fifty runes unchanged", func(t *testing.T) {
		msg := strings.Repeat("a", 50)
		assert.Equal(t, msg, TitleFromMessage(msg))
	})

	t.Run("long message truncated with ellipsis", func(t *testing.T) {
		msg := strings.Repeat("a", 60)
		got := TitleFromMessage(msg)
		assert.Equal(t, strings.Repeat("a", 50)+"...", got)
	})

	t.Run("truncation counts runes not bytes", func(t *testing.T) {
		msg := strings.Repeat("م", 60)
		got := TitleFromMessage(msg)
		assert.Equal(t, strings.Repeat("م", 50)+"...", got)
		assert.Equal(t, 53, len([]rune(got)))
	})

	t.Run("empty message", func(t *testing.T) {
		assert.Equal(t, "", TitleFromMessage(""))
	})
}
