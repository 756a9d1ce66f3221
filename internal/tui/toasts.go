package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/colonyops/storekeep/internal/core/notify"
	"github.com/colonyops/storekeep/internal/core/styles"
)

const (
	maxVisibleToasts = 5
	toastWidth       = 60
)

// visibleToasts returns the newest notifications that fit the toast stack,
// preserving insertion order. The store owns expiry; the view only decides
// how many to show.
func visibleToasts(notifications []notify.Notification) []notify.Notification {
	if len(notifications) <= maxVisibleToasts {
		return notifications
	}
	return notifications[len(notifications)-maxVisibleToasts:]
}

// newestID returns the id of the newest notification, for single dismiss.
func newestID(notifications []notify.Notification) (uint64, bool) {
	if len(notifications) == 0 {
		return 0, false
	}
	return notifications[len(notifications)-1].ID, true
}

// renderToasts draws the toast stack, oldest on top.
func renderToasts(notifications []notify.Notification) string {
	visible := visibleToasts(notifications)
	if len(visible) == 0 {
		return ""
	}

	blocks := make([]string, 0, len(visible))
	for _, n := range visible {
		style := styles.CategoryStyle(n.Category)
		icon := style.Render(styles.CategoryIcon(n.Category))

		// Classifier output can be multi-line remediation text; keep the
		// line structure and indent under the icon.
		lines := strings.Split(n.Message, "\n")
		body := lines[0]
		for _, line := range lines[1:] {
			body += "\n  " + line
		}

		blocks = append(blocks, styles.ToastBorder.Width(toastWidth).Render(icon+" "+body))
	}

	return lipgloss.JoinVertical(lipgloss.Left, blocks...)
}
