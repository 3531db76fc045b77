package publish

import (
	"strconv"
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/glamour/ansi"
	"github.com/charmbracelet/glamour/styles"
)

// Markdown styles accepted by RenderTerminal.
const (
	StyleDark    = "dark"
	StyleLight   = "light"
	StyleNoTTY   = "notty"
	defaultWidth = 80
)

var (
	rendererMu sync.Mutex
	// Keyed by style + wrap width. WithAutoStyle can block on terminal
	// background queries, so the style is always explicit.
	renderers = map[string]*glamour.TermRenderer{}
)

// RenderTerminal renders markdown for a terminal of the given width. On
// renderer failure the markdown is returned unchanged.
func RenderTerminal(md string, width int, style string) string {
	md = strings.TrimSpace(md)
	if md == "" {
		return ""
	}
	if width <= 0 {
		width = defaultWidth
	}
	if width < 10 {
		width = 10
	}
	style = normalizeStyle(style)

	key := style + ":" + strconv.Itoa(width)
	rendererMu.Lock()
	r := renderers[key]
	rendererMu.Unlock()

	if r == nil {
		rr, err := glamour.NewTermRenderer(
			glamour.WithStyles(styleConfig(style)),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			return md
		}
		rendererMu.Lock()
		if existing := renderers[key]; existing != nil {
			r = existing
		} else {
			renderers[key] = rr
			r = rr
		}
		rendererMu.Unlock()
	}

	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return strings.TrimRight(out, "\n")
}

func normalizeStyle(style string) string {
	switch strings.ToLower(strings.TrimSpace(style)) {
	case StyleLight:
		return StyleLight
	case StyleNoTTY, "plain", "none":
		return StyleNoTTY
	default:
		return StyleDark
	}
}

func styleConfig(style string) ansi.StyleConfig {
	var cfg ansi.StyleConfig
	switch style {
	case StyleLight:
		cfg = styles.LightStyleConfig
	case StyleNoTTY:
		cfg = styles.NoTTYStyleConfig
	default:
		cfg = styles.DarkStyleConfig
	}
	zero := uint(0)
	cfg.Document.Margin = &zero
	return cfg
}
