// Package interactive drives the menu flow used when copyto is started
// without both arguments. The flow is an explicit state machine over a
// line scanner, each operation runs to completion before the next prompt.
package interactive

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"

	"github.com/paloj/copyto/pkg/history"
	"github.com/paloj/copyto/pkg/menu"
	"github.com/paloj/copyto/pkg/printers"
	"github.com/paloj/copyto/pkg/robocopy"
	"github.com/paloj/copyto/pkg/runner/copyrun"
	"github.com/paloj/copyto/pkg/runner/targets"
	"github.com/paloj/copyto/pkg/store"
	"github.com/paloj/copyto/pkg/vdir"
)

type state int

const (
	stateMainMenu state = iota
	stateAdding
	stateRemoving
	stateSyncing
	stateCopying
	stateExit
)

type Menu struct {
	// Source, when set, enables copying it to a chosen target from the
	// menu. It is the path copyto was started with when the nickname was
	// left off.
	Source string

	Persistence store.Persistence
	Registrar   menu.Registrar
	Copier      robocopy.Copier
	Journal     history.Persistence
	Config      store.Config

	// In defaults to stdin.
	In io.Reader
}

// Do loops until the user chooses to quit. Validation, store, and
// registration failures are printed and control returns to the menu. The
// only errors returned to the caller are a missing source or destination
// base at copy time, since neither can be repaired from the menu.
func (m *Menu) Do(ctx context.Context) error {
	if m.Persistence == nil {
		return errors.New("can not run menu, no persistence")
	}
	in := m.In
	if in == nil {
		in = os.Stdin
	}
	scanner := bufio.NewScanner(in)

	pp := printers.PrettyPrint{}
	s := stateMainMenu
	for s != stateExit {
		var err error
		switch s {
		case stateMainMenu:
			s, err = m.mainMenu(ctx, scanner)
		case stateAdding:
			s, err = m.adding(ctx, scanner)
		case stateRemoving:
			s, err = m.removing(ctx, scanner)
		case stateSyncing:
			s, err = m.syncing(ctx)
		case stateCopying:
			s, err = m.copying(ctx, scanner)
		}
		if errors.Is(err, vdir.ErrSourceNotFound) || errors.Is(err, vdir.ErrDestinationNotFound) {
			// Nothing left to retry from the menu.
			return err
		}
		if err != nil {
			pp.Error(err)
		}
	}
	return nil
}

func (m *Menu) mainMenu(ctx context.Context, scanner *bufio.Scanner) (state, error) {
	reg, err := m.Persistence.Load(ctx)
	if err != nil {
		return stateExit, err
	}

	pp := printers.PrettyPrint{}
	pp.NewLine()
	pp.Title("copyto")
	pp.Targets(reg)

	bold := color.New(color.Bold)
	_, _ = bold.Fprintln(color.Output, "a) add target  r) remove target  s) sync menu")
	if m.Source != "" {
		_, _ = bold.Fprintf(color.Output, "c) copy %s to a target\n", m.Source)
	}
	_, _ = bold.Fprintln(color.Output, "q) quit")

	choice, ok := prompt(scanner, "> ")
	if !ok {
		return stateExit, nil
	}
	switch strings.ToLower(choice) {
	case "a":
		return stateAdding, nil
	case "r":
		return stateRemoving, nil
	case "s":
		return stateSyncing, nil
	case "c":
		if m.Source != "" {
			return stateCopying, nil
		}
	case "q", "":
		return stateExit, nil
	}
	return stateMainMenu, fmt.Errorf("unknown choice %q", choice)
}

func (m *Menu) adding(ctx context.Context, scanner *bufio.Scanner) (state, error) {
	nickname, ok := prompt(scanner, "nickname: ")
	if !ok {
		return stateExit, nil
	}
	path, ok := prompt(scanner, "destination path: ")
	if !ok {
		return stateExit, nil
	}

	add := targets.Add{
		Nickname:    nickname,
		Path:        path,
		Persistence: m.Persistence,
		Registrar:   m.Registrar,
	}
	return stateMainMenu, add.Do(ctx)
}

func (m *Menu) removing(ctx context.Context, scanner *bufio.Scanner) (state, error) {
	selector, ok := prompt(scanner, "remove which # (or nickname): ")
	if !ok {
		return stateExit, nil
	}
	if selector == "" {
		return stateMainMenu, nil
	}

	remove := targets.Remove{
		Selector:    selector,
		Persistence: m.Persistence,
		Registrar:   m.Registrar,
	}
	return stateMainMenu, remove.Do(ctx)
}

func (m *Menu) syncing(ctx context.Context) (state, error) {
	reg, err := m.Persistence.Load(ctx)
	if err != nil {
		return stateMainMenu, err
	}
	if m.Registrar == nil {
		return stateMainMenu, errors.New("no menu registrar available")
	}
	if err := menu.Sync(reg, m.Registrar); err != nil {
		return stateMainMenu, err
	}
	pp := printers.PrettyPrint{}
	pp.Title("menu synchronized")
	return stateMainMenu, nil
}

func (m *Menu) copying(ctx context.Context, scanner *bufio.Scanner) (state, error) {
	reg, err := m.Persistence.Load(ctx)
	if err != nil {
		return stateMainMenu, err
	}
	selector, ok := prompt(scanner, "copy to which #: ")
	if !ok {
		return stateExit, nil
	}
	index, err := strconv.Atoi(selector)
	if err != nil {
		return stateMainMenu, fmt.Errorf("not a list position: %q", selector)
	}
	t, found := reg.At(index)
	if !found {
		return stateMainMenu, fmt.Errorf("%w: %d", store.ErrIndexOutOfRange, index)
	}

	cp := copyrun.Copy{
		Source:      m.Source,
		Nickname:    t.Nickname,
		Persistence: m.Persistence,
		Copier:      m.Copier,
		Journal:     m.Journal,
		Config:      m.Config,
	}
	return stateMainMenu, cp.Do(ctx)
}

// prompt prints the label and reads one trimmed line. ok is false once
// input is exhausted.
func prompt(scanner *bufio.Scanner, label string) (string, bool) {
	fmt.Fprint(color.Output, label)
	if !scanner.Scan() {
		return "", false
	}
	return strings.TrimSpace(scanner.Text()), true
}
