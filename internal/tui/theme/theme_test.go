package theme

import (
	"testing"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/colorprofile"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
)

func init() {
	lipgloss.Writer.Profile = colorprofile.Ascii
}

func TestInterpolateColor(t *testing.T) {
	assert.Equal(t, "#000000", InterpolateColor("#000000", "#ffffff", 0))
	assert.Equal(t, "#ffffff", InterpolateColor("#000000", "#ffffff", 1))
	assert.Equal(t, "#7f7f7f", InterpolateColor("#000000", "#ffffff", 0.5))
}

func TestParseHexColor(t *testing.T) {
	r, g, b := ParseHexColor("#cba6f7")
	assert.Equal(t, []uint8{0xcb, 0xa6, 0xf7}, []uint8{r, g, b})

	r, g, b = ParseHexColor("bad")
	assert.Equal(t, []uint8{0, 0, 0}, []uint8{r, g, b})
}

func TestCurrent(t *testing.T) {
	orig := Current()
	t.Cleanup(func() { SetCurrent(orig) })

	assert.Equal(t, "catppuccin-mocha", Current().Name)
	assert.NotNil(t, Current().S())

	custom := NewCatppuccinMocha()
	custom.Name = "custom"
	SetCurrent(custom)
	assert.Equal(t, "custom", Current().Name)

	SetCurrent(nil)
	assert.Equal(t, "custom", Current().Name, "nil is ignored")
}

func TestApplyGradient_KeepsText(t *testing.T) {
	got := ApplyGradient("ab c\nde", "#cba6f7", "#89dceb")
	assert.Equal(t, "ab c\nde", ansi.Strip(got))
}
