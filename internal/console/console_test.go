package console

import (
	"bytes"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
)

func withColor(t *testing.T, enabled bool) {
	t.Helper()
	previous := color.NoColor
	color.NoColor = !enabled
	t.Cleanup(func() { color.NoColor = previous })
}

func TestRender(t *testing.T) {
	t.Run("strips markup without color", func(t *testing.T) {
		withColor(t, false)

		tests := []struct {
			name string
			in   string
			want string
		}{
			{"plain", "hello", "hello"},
			{"single", "$Cyan{hello}", "hello"},
			{"nested", "$Bold{$Cyan{>>> %s}} done", ">>> %s done"},
			{"unknown name", "$Sparkly{text}", "$Sparkly{text}"},
			{"dollar without markup", "costs $5 {x}", "costs $5 {x}"},
			{"unbalanced", "$Red{open", "$Red{open"},
			{"inner braces", "$Red{map{a}}", "map{a}"},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				assert.Equal(t, tt.want, Render(tt.in))
			})
		}
	})

	t.Run("renders nested attributes", func(t *testing.T) {
		withColor(t, true)

		assert.Equal(t, color.New(color.Bold, color.FgCyan).Sprint("hi"), Render("$Bold{$Cyan{hi}}"))
		assert.Equal(t, "a "+color.New(color.FgRed).Sprint("b")+" c", Render("a $Red{b} c"))
		assert.True(t, strings.HasPrefix(Render("$Bold{$Cyan{hi}}"), "\x1b[1;36mhi"))
	})
}

func TestLevels(t *testing.T) {
	withColor(t, false)

	t.Run("debug output is gated", func(t *testing.T) {
		// Arrange
		var buf bytes.Buffer
		log := New(&buf)

		// Act
		log.Debug("hidden %d\n", 1)
		log.Printf("hidden too")
		log.Dump(struct{ A int }{1})

		// Assert
		assert.Empty(t, buf.String())
	})

	t.Run("debug level enables output", func(t *testing.T) {
		var buf bytes.Buffer
		log := New(&buf)
		log.DebugLevel = 1

		log.Debug("$Bold{$Cyan{resolving %s}}\n", "Order")
		log.Printf("Orchestrator: %d roots", 2)

		assert.Equal(t, "resolving Order\nOrchestrator: 2 roots\n", buf.String())
	})

	t.Run("dump renders values", func(t *testing.T) {
		var buf bytes.Buffer
		log := New(&buf)
		log.DebugLevel = 1

		log.Dump(struct{ Name string }{"Order"})

		assert.Contains(t, buf.String(), `Name: (string) (len=5) "Order"`)
	})

	t.Run("info warn and error always print", func(t *testing.T) {
		var buf bytes.Buffer
		log := New(&buf)

		log.Info("wrote %s\n", "docs.json")
		log.Warn("skipping %s\n", "x")
		log.Error("failed\n")

		assert.Equal(t, "wrote docs.json\nwarning: skipping x\nerror: failed\n", buf.String())
	})

	t.Run("set output", func(t *testing.T) {
		var first, second bytes.Buffer
		log := New(&first)
		log.SetOutput(&second)

		log.Info("x")

		assert.Empty(t, first.String())
		assert.Equal(t, "x", second.String())
	})
}
