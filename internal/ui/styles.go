package ui

import "github.com/charmbracelet/lipgloss"

// Palette. Adaptive colours pick the light or dark variant from the
// terminal background.
var (
	ColorAccent = lipgloss.AdaptiveColor{Light: "#005FAF", Dark: "#5FAFFF"}
	ColorPass   = lipgloss.AdaptiveColor{Light: "#008700", Dark: "#87D787"}
	ColorWarn   = lipgloss.AdaptiveColor{Light: "#AF5F00", Dark: "#FFD75F"}
	ColorFail   = lipgloss.AdaptiveColor{Light: "#AF0000", Dark: "#FF5F5F"}
	ColorMuted  = lipgloss.AdaptiveColor{Light: "#6C6C6C", Dark: "#8A8A8A"}
)

var (
	passStyle   = lipgloss.NewStyle().Foreground(ColorPass)
	warnStyle   = lipgloss.NewStyle().Foreground(ColorWarn)
	failStyle   = lipgloss.NewStyle().Foreground(ColorFail).Bold(true)
	mutedStyle  = lipgloss.NewStyle().Foreground(ColorMuted)
	accentStyle = lipgloss.NewStyle().Foreground(ColorAccent).Bold(true)
)

func RenderPass(s string) string   { return passStyle.Render(s) }
func RenderWarn(s string) string   { return warnStyle.Render(s) }
func RenderFail(s string) string   { return failStyle.Render(s) }
func RenderMuted(s string) string  { return mutedStyle.Render(s) }
func RenderAccent(s string) string { return accentStyle.Render(s) }
