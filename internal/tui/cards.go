package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/fentz26/taskview/internal/models"
	"github.com/fentz26/taskview/internal/theme"
)

// gridColumns mirrors a responsive grid: one column on narrow terminals,
// three on wide ones.
func gridColumns(width int) int {
	switch {
	case width >= 120:
		return 3
	case width >= 80:
		return 2
	default:
		return 1
	}
}

func renderGrid(tasks []models.Task, p theme.Palette, width int) string {
	cols := gridColumns(width)
	cardWidth := width/cols - 2
	if cardWidth < 24 {
		cardWidth = 24
	}

	var rows []string
	for i := 0; i < len(tasks); i += cols {
		end := min(i+cols, len(tasks))
		cards := make([]string, 0, cols)
		for _, t := range tasks[i:end] {
			cards = append(cards, renderCard(t, p, cardWidth))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cards...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func renderCard(t models.Task, p theme.Palette, width int) string {
	inner := width - 4

	badge := lipgloss.NewStyle().
		Background(p.Badge).
		Foreground(p.BadgeText).
		Padding(0, 1).
		Render(orDash(t.Priority))
	due := lipgloss.NewStyle().Foreground(p.Muted).Render("Due: " + orDash(t.DueDate))
	gap := inner - lipgloss.Width(badge) - lipgloss.Width(due)
	if gap < 1 {
		gap = 1
	}
	top := badge + strings.Repeat(" ", gap) + due

	title := lipgloss.NewStyle().Bold(true).Foreground(p.Text).Render(truncate(t.Title, inner*2))
	desc := lipgloss.NewStyle().Foreground(p.Muted).Render(truncate(t.Description, inner*3))
	status := lipgloss.NewStyle().Foreground(p.Success).Render("Status: " + t.Status)

	body := lipgloss.JoinVertical(lipgloss.Left, top, "", title, desc, "", status)
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.Border).
		Padding(0, 1).
		MarginRight(1).
		Width(width).
		Render(body)
}

func renderPagination(page, total int, pages []int, p theme.Palette) string {
	active := lipgloss.NewStyle().Background(p.Primary).Foreground(lipgloss.Color("#FFFFFF")).Bold(true).Padding(0, 1)
	idle := lipgloss.NewStyle().Foreground(p.Text).Padding(0, 1)
	disabled := lipgloss.NewStyle().Foreground(p.Muted).Faint(true).Padding(0, 1)

	prev := idle.Render("‹ Previous")
	if page <= 1 {
		prev = disabled.Render("‹ Previous")
	}
	next := idle.Render("Next ›")
	if page >= total {
		next = disabled.Render("Next ›")
	}

	parts := []string{prev}
	for _, n := range pages {
		label := fmt.Sprintf("%d", n)
		if n == page {
			parts = append(parts, active.Render(label))
		} else {
			parts = append(parts, idle.Render(label))
		}
	}
	parts = append(parts, next)
	return lipgloss.JoinHorizontal(lipgloss.Center, parts...)
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}

func truncate(s string, n int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	r := []rune(s)
	if n < 4 || len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}
