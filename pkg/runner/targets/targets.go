// Package targets exposes the registry mutations. Every successful
// mutation is immediately followed by a menu sync so the shell menu never
// stays stale relative to the persisted registry.
package targets

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/paloj/copyto/pkg/menu"
	"github.com/paloj/copyto/pkg/printers"
	"github.com/paloj/copyto/pkg/store"
)

type Add struct {
	Nickname string
	Path     string

	Persistence store.Persistence
	Registrar   menu.Registrar
}

func (a *Add) Do(ctx context.Context) error {
	if a.Persistence == nil {
		return errors.New("can not add target, no persistence")
	}

	t, err := a.Persistence.Add(ctx, a.Nickname, a.Path)
	if err != nil {
		return err
	}

	pp := printers.PrettyPrint{}
	pp.Title("added " + t.String())

	return syncMenu(ctx, a.Persistence, a.Registrar)
}

type Remove struct {
	// Selector is a 1-based list position or a nickname. An index is
	// resolved to its nickname first, the nickname is the removal key.
	Selector string

	Persistence store.Persistence
	Registrar   menu.Registrar
}

func (r *Remove) Do(ctx context.Context) error {
	if r.Persistence == nil {
		return errors.New("can not remove target, no persistence")
	}

	var err error
	var removed fmt.Stringer
	if index, convErr := strconv.Atoi(r.Selector); convErr == nil {
		removed, err = r.Persistence.Remove(ctx, index)
	} else {
		removed, err = r.Persistence.RemoveNickname(ctx, r.Selector)
	}
	if err != nil {
		return err
	}

	pp := printers.PrettyPrint{}
	pp.Title("removed " + removed.String())

	return syncMenu(ctx, r.Persistence, r.Registrar)
}

type List struct {
	Persistence store.Persistence
}

func (l *List) Do(ctx context.Context) error {
	if l.Persistence == nil {
		return errors.New("can not list targets, no persistence")
	}
	reg, err := l.Persistence.Load(ctx)
	if err != nil {
		return err
	}
	pp := printers.PrettyPrint{}
	pp.NewLine()
	pp.Title("Targets")
	pp.Targets(reg)
	return nil
}

// syncMenu re-derives the registration set from the freshly persisted
// registry. The mutation already stuck, so a sync failure is reported to
// the caller without undoing anything.
func syncMenu(ctx context.Context, p store.Persistence, r menu.Registrar) error {
	if r == nil {
		return nil
	}
	reg, err := p.Load(ctx)
	if err != nil {
		return fmt.Errorf("reloading registry for menu sync: %w", err)
	}
	if err := menu.Sync(reg, r); err != nil {
		return fmt.Errorf("target saved, menu sync failed: %w", err)
	}
	return nil
}
