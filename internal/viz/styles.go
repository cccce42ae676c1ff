package viz

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/mkarren/nbodies/internal/dynamics"
)

var (
	Title    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
	Subtle   = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	Faint    = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
	Value    = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	Selected = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("213"))

	StatusRunning = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("82"))
	StatusPaused  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("220"))
	StatusPlacing = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("213"))
)

// BodyStyle maps a body's color to a terminal foreground style.
func BodyStyle(c dynamics.Color) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(hexColor(c)))
}

func hexColor(c dynamics.Color) string {
	return fmt.Sprintf("#%02x%02x%02x", channel(c[0]), channel(c[1]), channel(c[2]))
}

func channel(v float32) int {
	n := int(v * 255)
	if n < 0 {
		return 0
	}
	if n > 255 {
		return 255
	}
	return n
}

// Sparkline renders a compact series chart from values, sampled to fit
// width.
func Sparkline(values []float64, width int) string {
	if len(values) == 0 || width <= 0 {
		return ""
	}
	chars := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

	min, max := values[0], values[0]
	for _, v := range values {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	rng := max - min
	if rng == 0 {
		rng = 1
	}

	step := len(values) / width
	if step < 1 {
		step = 1
	}

	var b strings.Builder
	for i := 0; i < width && i*step < len(values); i++ {
		norm := (values[i*step] - min) / rng
		idx := int(norm * float64(len(chars)-1))
		if idx >= len(chars) {
			idx = len(chars) - 1
		}
		if idx < 0 {
			idx = 0
		}
		b.WriteRune(chars[idx])
	}
	return b.String()
}
