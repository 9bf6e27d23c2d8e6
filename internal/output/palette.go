package output

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
)

const (
	colorModeAutoConstant                = "auto"
	colorModeAlwaysConstant              = "always"
	colorModeNeverConstant               = "never"
	unsupportedColorModeTemplateConstant = "unsupported color mode: %s"
	ansiRedColorConstant                 = "1"
	ansiGreenColorConstant               = "2"
	ansiYellowColorConstant              = "3"
	ansiCyanColorConstant                = "6"
	notRepositoryMessageConstant         = "Not a git repository"
	successMarkerConstant                = "✓"
	successLineTemplateConstant          = "%s %s"
)

// ColorMode selects when ANSI styling is emitted.
type ColorMode string

// Supported color modes.
const (
	ColorModeAuto   ColorMode = ColorMode(colorModeAutoConstant)
	ColorModeAlways ColorMode = ColorMode(colorModeAlwaysConstant)
	ColorModeNever  ColorMode = ColorMode(colorModeNeverConstant)
)

// ColorModeChoices lists accepted color mode values in display order.
func ColorModeChoices() []string {
	return []string{colorModeAutoConstant, colorModeAlwaysConstant, colorModeNeverConstant}
}

// ParseColorMode normalizes a configured color mode. An empty value means auto.
func ParseColorMode(rawValue string) (ColorMode, error) {
	normalizedValue := strings.ToLower(strings.TrimSpace(rawValue))
	switch normalizedValue {
	case "", colorModeAutoConstant:
		return ColorModeAuto, nil
	case colorModeAlwaysConstant:
		return ColorModeAlways, nil
	case colorModeNeverConstant:
		return ColorModeNever, nil
	default:
		return "", fmt.Errorf(unsupportedColorModeTemplateConstant, rawValue)
	}
}

// Palette renders claw-git's colored text fragments for a single writer.
type Palette struct {
	success  lipgloss.Style
	warning  lipgloss.Style
	danger   lipgloss.Style
	branch   lipgloss.Style
	muted    lipgloss.Style
	emphasis lipgloss.Style
	current  lipgloss.Style
}

// NewPalette builds a palette whose color profile is chosen from mode and writer.
func NewPalette(writer io.Writer, mode ColorMode) Palette {
	renderer := lipgloss.NewRenderer(writer)
	renderer.SetColorProfile(resolveColorProfile(writer, mode))

	return Palette{
		success:  renderer.NewStyle().Foreground(lipgloss.Color(ansiGreenColorConstant)),
		warning:  renderer.NewStyle().Foreground(lipgloss.Color(ansiYellowColorConstant)),
		danger:   renderer.NewStyle().Foreground(lipgloss.Color(ansiRedColorConstant)),
		branch:   renderer.NewStyle().Bold(true).Foreground(lipgloss.Color(ansiCyanColorConstant)),
		muted:    renderer.NewStyle().Faint(true),
		emphasis: renderer.NewStyle().Bold(true),
		current:  renderer.NewStyle().Bold(true).Foreground(lipgloss.Color(ansiGreenColorConstant)),
	}
}

// Success renders text in green.
func (palette Palette) Success(text string) string {
	return palette.success.Render(text)
}

// Warning renders text in yellow.
func (palette Palette) Warning(text string) string {
	return palette.warning.Render(text)
}

// Danger renders text in red.
func (palette Palette) Danger(text string) string {
	return palette.danger.Render(text)
}

// Branch renders a branch name in bold cyan.
func (palette Palette) Branch(text string) string {
	return palette.branch.Render(text)
}

// Muted renders secondary text dimmed.
func (palette Palette) Muted(text string) string {
	return palette.muted.Render(text)
}

// Emphasis renders text in bold.
func (palette Palette) Emphasis(text string) string {
	return palette.emphasis.Render(text)
}

// Current renders the highlighted entry of a list in bold green.
func (palette Palette) Current(text string) string {
	return palette.current.Render(text)
}

// SuccessLine renders a green check mark followed by message.
func (palette Palette) SuccessLine(message string) string {
	return fmt.Sprintf(successLineTemplateConstant, palette.Success(successMarkerConstant), message)
}

func resolveColorProfile(writer io.Writer, mode ColorMode) termenv.Profile {
	switch mode {
	case ColorModeAlways:
		return termenv.ANSI
	case ColorModeNever:
		return termenv.Ascii
	default:
		if termenv.EnvNoColor() || !isTerminal(writer) {
			return termenv.Ascii
		}
		return termenv.ANSI
	}
}

func isTerminal(writer io.Writer) bool {
	file, isFile := writer.(*os.File)
	if !isFile || file == nil {
		return false
	}
	descriptor := file.Fd()
	return isatty.IsTerminal(descriptor) || isatty.IsCygwinTerminal(descriptor)
}

// ResolvePalette builds a palette for writer using the mode supplied by provider.
// A nil provider selects auto.
func ResolvePalette(writer io.Writer, provider func() ColorMode) Palette {
	mode := ColorModeAuto
	if provider != nil {
		mode = provider()
	}
	return NewPalette(writer, mode)
}
