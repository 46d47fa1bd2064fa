package render

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

type colorPair struct {
	fg, bg Color
}

// styleFor builds the lipgloss style of a color pair.
func styleFor(p colorPair) lipgloss.Style {
	s := lipgloss.NewStyle()
	if p.fg != ColorDefault {
		s = s.Foreground(p.fg.Lipgloss())
	}
	if p.bg != ColorDefault {
		s = s.Background(p.bg.Lipgloss())
	}
	return s
}

// Styled converts the back buffer to a string with ANSI colors.
// Adjacent cells with the same colors are grouped to keep escape
// sequences short.
func (r *Renderer) Styled() string {
	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(r.width*r.height*2 + r.height)

	styles := make(map[colorPair]lipgloss.Style)
	for y := 0; y < r.height; y++ {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < r.width {
			start := r.back[y*r.width+x]
			pair := colorPair{start.Fg, start.Bg}

			var run strings.Builder
			for x < r.width {
				c := r.back[y*r.width+x]
				if c.Fg != pair.fg || c.Bg != pair.bg {
					break
				}
				run.WriteRune(c.Rune)
				x++
			}

			style, ok := styles[pair]
			if !ok {
				style = styleFor(pair)
				styles[pair] = style
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}

// SaveSnapshot writes the back buffer as plain text to
// dir/<name>_<timestamp>.txt and returns the path.
func (r *Renderer) SaveSnapshot(dir, name string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("render: cannot create snapshot directory %s: %w", dir, err)
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", name, timestamp))

	if err := os.WriteFile(path, []byte(r.String()+"\n"), 0o600); err != nil {
		return "", fmt.Errorf("render: cannot write snapshot: %w", err)
	}
	return path, nil
}

// SnapshotDir returns the default snapshot directory, ~/.coil/screenshots.
func SnapshotDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".coil", "screenshots")
	}
	return filepath.Join(home, ".coil", "screenshots")
}
