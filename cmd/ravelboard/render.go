package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"

	"github.com/RavelOrg/ravel"
)

func (m model) View() string {
	switch m.nav.View {
	case viewHistory:
		return m.viewHistory()
	case viewBoard:
		return m.viewBoard()
	default:
		return m.viewLoading()
	}
}

func (m model) viewLoading() string {
	title := titleStyle.Render("ravelboard")
	line := statusStyle.Render(fmt.Sprintf("waiting for first tick (feed %s)...", m.state.Feed))
	return title + "\n\n" + line + "\n\n" + m.bottomBar()
}

func (m model) viewBoard() string {
	sections := []string{m.titleBar(), renderQuotes(m.state)}

	if len(m.state.Alerts) > 0 {
		sections = append(sections, renderAlerts(m.state.Alerts))
	}
	if m.nav.ShowTools {
		sections = append(sections, m.renderTools())
	}
	if m.state.Note != "" && !m.editingNote {
		sections = append(sections, noteStyle.Render("note: "+m.state.Note))
	}

	sections = append(sections, m.bottomBar())
	return strings.Join(sections, "\n\n")
}

func (m model) viewHistory() string {
	var body string
	switch {
	case m.state.HistoryErr != "":
		body = downStyle.Render("journal error: " + m.state.HistoryErr)
	case len(m.state.History) == 0:
		body = statusStyle.Render("no journal records")
	default:
		var b strings.Builder
		b.WriteString(headerStyle.Render(fmt.Sprintf("%6s  %-28s %-38s %s", "SEQ", "KIND", "CHANGE", "AT")))
		b.WriteString("\n")
		for _, rec := range m.state.History {
			line := fmt.Sprintf("%6d  %-28s %-38s %s",
				rec.Seq, trimTo(rec.Kind, 28), trimTo(rec.Change, 38), rec.At.Format("15:04:05"))
			b.WriteString(textStyle.Render(line))
			b.WriteString("\n")
		}
		body = strings.TrimRight(b.String(), "\n")
	}
	return m.titleBar() + "\n\n" + body + "\n\n" + m.bottomBar()
}

func (m model) titleBar() string {
	feedState := m.state.Feed.String()
	style := downStyle
	if feedState == "Connected" {
		style = upStyle
	}
	return titleStyle.Render("ravelboard") +
		statusStyle.Render("  ·  "+m.nav.View.String()+"  ·  ") +
		style.Render(feedState) +
		statusStyle.Render("  ·  up "+boardUptime(m.state))
}

func renderQuotes(s board) string {
	var b strings.Builder
	b.WriteString(headerStyle.Render(fmt.Sprintf("%-10s %14s %12s %10s", "SYMBOL", "PRICE", "MOVE", "AT")))
	b.WriteString("\n")
	for _, sym := range s.Watchlist {
		q, ok := s.Quotes[sym]
		if !ok {
			b.WriteString(statusStyle.Render(fmt.Sprintf("%-10s %14s %12s %10s", sym, "-", "-", "-")))
			b.WriteString("\n")
			continue
		}
		move := 0.0
		if q.Prev != 0 {
			move = (q.Price - q.Prev) / q.Prev * 100
		}
		style := upStyle
		if q.Price < q.Prev {
			style = downStyle
		}
		line := fmt.Sprintf("%-10s %14.2f %+11.3f%% %10s", sym, q.Price, move, q.At.Format("15:04:05"))
		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

const maxAlertLines = 8

func renderAlerts(alerts []alert) string {
	shown := alerts
	if len(shown) > maxAlertLines {
		shown = shown[:maxAlertLines]
	}
	lines := make([]string, 0, len(shown)+1)
	lines = append(lines, headerStyle.Render(fmt.Sprintf("ALERTS (%d)", len(alerts))))
	for _, a := range shown {
		arrow := "▲"
		if a.Price < a.Prev {
			arrow = "▼"
		}
		lines = append(lines, alertStyle.Render(fmt.Sprintf("%s  %s %s %.2f%%  (%.2f -> %.2f)",
			a.At.Format("15:04:05"), a.Symbol, arrow, a.MovePct, a.Prev, a.Price)))
	}
	return strings.Join(lines, "\n")
}

func (m model) renderTools() string {
	lines := []string{
		headerStyle.Render("tools"),
		fmt.Sprintf("store     %s", m.store.Name()),
		fmt.Sprintf("commits   %d (%d kept)", m.ring.Total(), m.ring.Len()),
		fmt.Sprintf("ticks     %d", m.state.Ticks),
		fmt.Sprintf("feed      %s", m.state.Feed),
	}
	for _, e := range m.ring.Recent(3) {
		lines = append(lines, statusStyle.Render(fmt.Sprintf("#%-5d %s", e.Seq, ravel.DescribeValue(e.Change))))
	}
	return boxStyle.Render(strings.Join(lines, "\n"))
}

func (m model) bottomBar() string {
	if m.promptOpen {
		return m.prompt.View()
	}
	if m.editingNote {
		return m.noteInput.View()
	}
	bar := renderHelp(m.keys.ShortHelp())
	if m.status != "" {
		bar = statusStyle.Render(m.status) + "\n" + bar
	}
	return bar
}

func renderHelp(bindings []key.Binding) string {
	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		parts = append(parts, fmt.Sprintf("%s %s", b.Help().Key, b.Help().Desc))
	}
	return helpStyle.Render(strings.Join(parts, "  ·  "))
}

func boardUptime(s board) string {
	d := s.Now.Sub(s.StartedAt)
	if d < 0 {
		d = 0
	}
	return d.Truncate(time.Second).String()
}

func trimTo(s string, n int) string {
	if len(s) <= n {
		return s
	}
	if n <= 3 {
		return s[:n]
	}
	return s[:n-3] + "..."
}
