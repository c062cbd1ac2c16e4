// Copyright (c) 2025 Richard Iannone
// SPDX-License-Identifier: MIT

package components

import (
	"sort"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/rich-iannone/sweet-data/internal/commands"
	"github.com/rich-iannone/sweet-data/internal/ui/styles"
)

// =============================================================================
// HELP OVERLAY COMPONENT
// =============================================================================

// Help renders the command reference as a glamour-formatted overlay.
type Help struct {
	registry *commands.Registry
	theme    *styles.Theme
	visible  bool
	topic    string
	width    int
	rendered string
}

// NewHelp creates a hidden help overlay.
func NewHelp(theme *styles.Theme, registry *commands.Registry) *Help {
	return &Help{
		registry: registry,
		theme:    theme,
		width:    80,
	}
}

// Visible reports whether the overlay is open.
func (h *Help) Visible() bool {
	return h.visible
}

// Show opens the overlay on a topic ("" for everything).
func (h *Help) Show(topic string) {
	h.visible = true
	h.topic = strings.ToLower(topic)
	h.render()
}

// Hide closes the overlay.
func (h *Help) Hide() {
	h.visible = false
}

// Toggle flips overlay visibility.
func (h *Help) Toggle() {
	if h.visible {
		h.Hide()
	} else {
		h.Show("")
	}
}

// SetWidth resizes the overlay.
func (h *Help) SetWidth(width int) {
	h.width = width
	if h.visible {
		h.render()
	}
}

// markdown builds the command reference document.
func (h *Help) markdown() string {
	var b strings.Builder
	b.WriteString("# sweet commands\n\n")
	b.WriteString("Press `:` to open the command bar, `F2` to toggle the pipeline script, `F1` to close this help.\n\n")

	byCat := h.registry.ByCategory()
	cats := make([]string, 0, len(byCat))
	for cat := range byCat {
		cats = append(cats, cat)
	}
	sort.Strings(cats)

	for _, cat := range cats {
		if h.topic != "" && strings.ToLower(cat) != h.topic {
			continue
		}
		b.WriteString("## " + cat + "\n\n")

		cmds := byCat[cat]
		sort.Slice(cmds, func(i, j int) bool { return cmds[i].Name < cmds[j].Name })
		for _, cmd := range cmds {
			usage := cmd.Usage
			if usage == "" {
				usage = cmd.Name
			}
			b.WriteString("- `" + usage + "` - " + cmd.Description)
			if len(cmd.Aliases) > 0 {
				b.WriteString(" (" + strings.Join(cmd.Aliases, ", ") + ")")
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	return b.String()
}

// render formats the markdown through glamour, falling back to plain text.
func (h *Help) render() {
	md := h.markdown()

	styleOpt := glamour.WithStandardStyle("light")
	if h.theme.IsDark {
		styleOpt = glamour.WithStandardStyle("dark")
	}

	renderer, err := glamour.NewTermRenderer(
		styleOpt,
		glamour.WithWordWrap(h.width-6),
	)
	if err != nil {
		h.rendered = md
		return
	}
	out, err := renderer.Render(md)
	if err != nil {
		h.rendered = md
		return
	}
	h.rendered = out
}

// View renders the overlay.
func (h *Help) View() string {
	if !h.visible {
		return ""
	}
	return h.theme.HelpBox.Width(h.width - 4).Render(h.rendered)
}
