package ui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"ytbatch/internal/model"
	"ytbatch/internal/queue"
)

// Run renders the live queue view until the active run finishes or the
// user quits. It returns an error when any item ended in the error state.
func Run(ctx context.Context, manager *queue.Manager) error {
	m := NewModel(ctx, manager)
	prog := tea.NewProgram(m, tea.WithContext(ctx))
	final, err := prog.Run()
	if err != nil {
		return err
	}

	if fm, ok := final.(Model); ok {
		if fm.aborted {
			return context.Canceled
		}
		var failed []string
		for _, it := range fm.items {
			if it.Status == model.StatusError {
				failed = append(failed, fmt.Sprintf("- %s: %s", it.URL, it.Error))
			}
		}
		if len(failed) > 0 {
			return fmt.Errorf("%d item(s) failed:\n%s", len(failed), strings.Join(failed, "\n"))
		}
	}
	return nil
}
