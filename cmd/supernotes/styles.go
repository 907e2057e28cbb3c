package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/aretw0/supernotes/pkg/core"
)

// theme holds the list styles for one display mode.
type theme struct {
	ID     lipgloss.Style
	Title  lipgloss.Style
	Pinned lipgloss.Style
	Tag    lipgloss.Style
	Dim    lipgloss.Style
}

func themeFor(dark bool) theme {
	if dark {
		return theme{
			ID:     lipgloss.NewStyle().Foreground(lipgloss.Color("242")),
			Title:  lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Bold(true),
			Pinned: lipgloss.NewStyle().Foreground(lipgloss.Color("220")).Bold(true),
			Tag:    lipgloss.NewStyle().Foreground(lipgloss.Color("81")),
			Dim:    lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		}
	}
	return theme{
		ID:     lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
		Title:  lipgloss.NewStyle().Foreground(lipgloss.Color("232")).Bold(true),
		Pinned: lipgloss.NewStyle().Foreground(lipgloss.Color("166")).Bold(true),
		Tag:    lipgloss.NewStyle().Foreground(lipgloss.Color("25")),
		Dim:    lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
	}
}

// row renders one list line: swatch, id, pin marker, title, tags.
func (t theme) row(n core.Note) string {
	swatch := lipgloss.NewStyle().Foreground(lipgloss.Color(n.Color)).Render("■")

	pin := " "
	if n.Pinned {
		pin = t.Pinned.Render("*")
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s %s %s %s", swatch, t.ID.Render(fmt.Sprintf("%4d", n.ID)), pin, t.Title.Render(n.Title))
	if len(n.Tags) > 0 {
		tags := make([]string, len(n.Tags))
		for i, tag := range n.Tags {
			tags[i] = "#" + tag
		}
		b.WriteString("  " + t.Tag.Render(strings.Join(tags, " ")))
	}
	return b.String()
}
