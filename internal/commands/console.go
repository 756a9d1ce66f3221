package commands

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/colonyops/storekeep/internal/core/notify"
	"github.com/colonyops/storekeep/internal/core/styles"
)

// attachConsole subscribes a plain-terminal renderer to the notification
// store: every notification added during a command run is printed to
// stderr, styled by category. This is the CLI counterpart of the TUI's
// toast stack; both observe the same store.
func attachConsole(store *notify.Store) (detach func()) {
	var (
		mu   sync.Mutex
		seen = make(map[uint64]struct{})
	)

	return store.Subscribe(func(snap []notify.Notification) {
		mu.Lock()
		defer mu.Unlock()

		for _, n := range snap {
			if _, ok := seen[n.ID]; ok {
				continue
			}
			seen[n.ID] = struct{}{}
			printNotification(n)
		}
	})
}

func printNotification(n notify.Notification) {
	style := styles.CategoryStyle(n.Category)
	icon := style.Render(styles.CategoryIcon(n.Category))

	lines := strings.Split(n.Message, "\n")
	fmt.Fprintf(os.Stderr, "%s %s\n", icon, style.Render(lines[0]))
	for _, line := range lines[1:] {
		fmt.Fprintf(os.Stderr, "  %s\n", line)
	}
}
