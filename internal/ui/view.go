package ui

import (
	"fmt"
	"strings"

	"ytbatch/internal/model"
)

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(m.viewHeader())
	b.WriteString("\n\n")
	b.WriteString(m.viewItems())
	if m.finished {
		b.WriteString(m.viewSummary())
	}
	return b.String()
}

func (m Model) viewHeader() string {
	done, failed, total := m.counts()
	title := m.styles.Title.Render("ytbatch")
	sub := m.styles.Subtitle.Render(fmt.Sprintf("Items: %d/%d done • q: quit", done+failed, total))

	var bar string
	if total > 0 {
		bar = m.bar.ViewAs(float64(done+failed) / float64(total))
	}
	return title + "\n" + sub + "\n" + bar
}

func (m Model) viewItems() string {
	var b strings.Builder
	for _, it := range m.items {
		b.WriteString(m.viewItem(it))
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) viewItem(it model.QueueItem) string {
	left := m.styles.ItemURL.Render(truncate(it.URL, 56))
	fmtTag := m.styles.Faint.Render(string(it.Format))

	var status string
	switch it.Status {
	case model.StatusPending:
		status = m.styles.Pending.Render("pending")
	case model.StatusDownloading:
		status = m.styles.Spinner.Render(m.spinner.View()) + " " + m.styles.Active.Render("downloading")
	case model.StatusDone:
		status = m.styles.Success.Render("✓ done")
	case model.StatusError:
		status = m.styles.Error.Render("✗ " + truncate(it.Error, 64))
	}

	line := fmt.Sprintf("%s  %s  %s", left, fmtTag, status)
	return m.styles.Box.Render(line)
}

func (m Model) viewSummary() string {
	var b strings.Builder

	var files []string
	for _, it := range m.items {
		if it.Status == model.StatusDone && it.File != "" {
			files = append(files, it.File)
		}
	}
	if len(files) > 0 {
		b.WriteString("\n")
		b.WriteString(m.styles.Subtitle.Render("Completed files:"))
		b.WriteString("\n")
		for _, f := range files {
			b.WriteString(m.styles.Success.Render("  • " + f))
			b.WriteString("\n")
		}
	}

	_, failed, _ := m.counts()
	if failed > 0 {
		b.WriteString(m.styles.Error.Render(fmt.Sprintf("\n%d item(s) failed", failed)))
		b.WriteString("\n")
	}
	return b.String()
}

func truncate(s string, n int) string {
	rs := []rune(s)
	if n <= 0 || len(rs) <= n {
		return s
	}
	return string(rs[:n-1]) + "…"
}
