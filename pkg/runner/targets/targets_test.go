package targets

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/paloj/copyto/pkg/menu"
	"github.com/paloj/copyto/pkg/store"
)

type fakeRegistrar struct {
	children  []menu.Entry
	syncCount int
}

func (f *fakeRegistrar) Register(group, label string, children []menu.Entry) error {
	f.children = append([]menu.Entry(nil), children...)
	f.syncCount++
	return nil
}

func (f *fakeRegistrar) Unregister(group string) error {
	f.children = nil
	return nil
}

func TestAddPersistsAndSyncsMenu(t *testing.T) {
	ctx := context.Background()
	p := store.Open(filepath.Join(t.TempDir(), "targets.txt"))
	f := &fakeRegistrar{}

	a := Add{Nickname: "nas", Path: t.TempDir(), Persistence: p, Registrar: f}
	if err := a.Do(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	reg, err := p.Load(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(reg) != 1 || reg[0].Nickname != "nas" {
		t.Fatalf("target not persisted: %+v", reg)
	}
	if f.syncCount != 1 || len(f.children) != 1 || f.children[0].Label != "nas" {
		t.Fatalf("menu not synchronized after add: %+v", f)
	}
}

func TestAddFailureSkipsMenuSync(t *testing.T) {
	ctx := context.Background()
	p := store.Open(filepath.Join(t.TempDir(), "targets.txt"))
	f := &fakeRegistrar{}

	a := Add{Nickname: "nas", Path: filepath.Join(t.TempDir(), "nope"), Persistence: p, Registrar: f}
	if err := a.Do(ctx); !errors.Is(err, store.ErrInvalidPath) {
		t.Fatalf("expected ErrInvalidPath, got %v", err)
	}
	if f.syncCount != 0 {
		t.Fatalf("menu must not sync after a failed add")
	}
}

func TestRemoveByIndexSyncsMenu(t *testing.T) {
	ctx := context.Background()
	p := store.Open(filepath.Join(t.TempDir(), "targets.txt"))
	f := &fakeRegistrar{}

	for _, nickname := range []string{"a", "b"} {
		add := Add{Nickname: nickname, Path: t.TempDir(), Persistence: p, Registrar: f}
		if err := add.Do(ctx); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	r := Remove{Selector: "1", Persistence: p, Registrar: f}
	if err := r.Do(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	reg, err := p.Load(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(reg) != 1 || reg[0].Nickname != "b" {
		t.Fatalf("unexpected remainder: %+v", reg)
	}
	if len(f.children) != 1 || f.children[0].Label != "b" {
		t.Fatalf("menu out of step with registry: %+v", f.children)
	}
}

func TestRemoveByNickname(t *testing.T) {
	ctx := context.Background()
	p := store.Open(filepath.Join(t.TempDir(), "targets.txt"))
	f := &fakeRegistrar{}

	add := Add{Nickname: "nas", Path: t.TempDir(), Persistence: p, Registrar: f}
	if err := add.Do(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	r := Remove{Selector: "nas", Persistence: p, Registrar: f}
	if err := r.Do(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.children != nil {
		t.Fatalf("menu should be empty after removing the last target: %+v", f.children)
	}
}

func TestRemoveOutOfRange(t *testing.T) {
	ctx := context.Background()
	p := store.Open(filepath.Join(t.TempDir(), "targets.txt"))

	r := Remove{Selector: "5", Persistence: p}
	if err := r.Do(ctx); !errors.Is(err, store.ErrIndexOutOfRange) {
		t.Fatalf("expected ErrIndexOutOfRange, got %v", err)
	}
}
