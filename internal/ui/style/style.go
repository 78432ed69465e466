// Package style provides the colors and icons shared by the log handler and renderers.
package style

import "github.com/charmbracelet/lipgloss"

// Colors.
var (
	Pink   = lipgloss.Color("#CD6799")
	Slate  = lipgloss.Color("#667085")
	Red    = lipgloss.Color("#D93025")
	Yellow = lipgloss.Color("#F59E0B")
)

// Icons.
const (
	Check   = "✓"
	Cross   = "✗"
	Warning = "!"
)

// Route renders a bundle route in the accent color using r.
func Route(r *lipgloss.Renderer, route string) string {
	return r.NewStyle().Foreground(Pink).Render(route)
}
