// Package menuops exposes the shell menu registration operations.
package menuops

import (
	"context"
	"errors"

	"github.com/paloj/copyto/pkg/menu"
	"github.com/paloj/copyto/pkg/printers"
	"github.com/paloj/copyto/pkg/store"
)

type Sync struct {
	Persistence store.Persistence
	Registrar   menu.Registrar
}

func (s *Sync) Do(ctx context.Context) error {
	if s.Persistence == nil {
		return errors.New("can not sync menu, no persistence")
	}
	if s.Registrar == nil {
		return errors.New("can not sync menu, no registrar")
	}
	reg, err := s.Persistence.Load(ctx)
	if err != nil {
		return err
	}
	if err := menu.Sync(reg, s.Registrar); err != nil {
		return err
	}
	pp := printers.PrettyPrint{}
	pp.Title("menu synchronized")
	return nil
}

type Remove struct {
	Registrar menu.Registrar
}

func (r *Remove) Do(ctx context.Context) error {
	if r.Registrar == nil {
		return errors.New("can not remove menu, no registrar")
	}
	if err := menu.Unsync(r.Registrar); err != nil {
		return err
	}
	pp := printers.PrettyPrint{}
	pp.Title("menu removed")
	return nil
}
