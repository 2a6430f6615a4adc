// Package menu keeps the OS shell context menu in step with the target
// registry. The registration set is always derived from the registry in
// full, never patched incrementally.
package menu

import (
	"fmt"
	"os"
	"strings"

	"github.com/paloj/copyto/pkg/logging"
	"github.com/paloj/copyto/pkg/target"
)

const (
	// Group names the registration group owned by this tool.
	Group = "copyto"

	// Label is the display text of the menu root.
	Label = "Copy to"

	// SourcePlaceholder is substituted by the shell with the path of the
	// folder the menu was opened on. Backends translate it to their own
	// placeholder syntax where needed.
	SourcePlaceholder = "%1"
)

// Entry is one child of the menu group.
type Entry struct {
	Label   string
	Command string
}

// Registrar is the shell registration backend. Register replaces the
// whole group, Unregister removes it. Both must tolerate the group being
// absent.
type Registrar interface {
	Register(group, label string, children []Entry) error
	Unregister(group string) error
}

// InvocationCommand builds a child's click command: the executable, the
// source path placeholder, and the nickname, quoted on a single line.
// Plain double quotes, the shell knows nothing of escape sequences.
func InvocationCommand(executable, nickname string) string {
	return fmt.Sprintf("\"%s\" \"%s\" \"%s\"", executable, SourcePlaceholder, nickname)
}

// Sync derives the registration set from the registry and applies it as a
// full replace. Targets with blank nicknames are skipped. An empty
// registry leaves the group unregistered.
func Sync(reg target.Registry, r Registrar) error {
	logger := logging.GetLogger("menu")

	exe, err := os.Executable()
	if err != nil {
		return fmt.Errorf("locating own executable: %w", err)
	}

	if err := r.Unregister(Group); err != nil {
		return fmt.Errorf("clearing menu group: %w", err)
	}

	children := make([]Entry, 0, len(reg))
	for _, t := range reg {
		if strings.TrimSpace(t.Nickname) == "" {
			continue
		}
		children = append(children, Entry{
			Label:   t.Nickname,
			Command: InvocationCommand(exe, t.Nickname),
		})
	}
	if len(children) == 0 {
		logger.Debug().Msg("no targets, menu group stays unregistered")
		return nil
	}

	if err := r.Register(Group, Label, children); err != nil {
		return fmt.Errorf("registering menu group: %w", err)
	}
	logger.Info().Int("entries", len(children)).Msg("menu synchronized")
	return nil
}

// Unsync removes the whole menu group.
func Unsync(r Registrar) error {
	if err := r.Unregister(Group); err != nil {
		return fmt.Errorf("removing menu group: %w", err)
	}
	return nil
}
