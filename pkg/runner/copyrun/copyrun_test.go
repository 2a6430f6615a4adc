package copyrun

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/paloj/copyto/pkg/history"
	"github.com/paloj/copyto/pkg/robocopy"
	"github.com/paloj/copyto/pkg/store"
	"github.com/paloj/copyto/pkg/vdir"
)

// treeCopier mirrors the external tool's observable behavior closely
// enough for an end-to-end run: recursive copy, empty directories
// included, excluded names skipped whether file or directory.
type treeCopier struct{}

func (treeCopier) Copy(ctx context.Context, source, dest string, opts robocopy.Options) (robocopy.Outcome, error) {
	excluded := func(name string) bool {
		for _, x := range opts.Exclusions {
			if name == x {
				return true
			}
		}
		return false
	}
	err := filepath.WalkDir(source, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path == source {
			return nil
		}
		if excluded(d.Name()) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		rel, err := filepath.Rel(source, path)
		if err != nil {
			return err
		}
		out := filepath.Join(dest, rel)
		if d.IsDir() {
			return os.MkdirAll(out, 0o755)
		}
		in, err := os.Open(path)
		if err != nil {
			return err
		}
		defer in.Close()
		w, err := os.Create(out)
		if err != nil {
			return err
		}
		defer w.Close()
		_, err = io.Copy(w, in)
		return err
	})
	if err != nil {
		return robocopy.Outcome{Code: 16}, &robocopy.ExitError{Code: 16}
	}
	return robocopy.Outcome{Code: 1}, nil
}

type failingCopier struct{}

func (failingCopier) Copy(ctx context.Context, source, dest string, opts robocopy.Options) (robocopy.Outcome, error) {
	return robocopy.Outcome{Code: 8}, &robocopy.ExitError{Code: 8}
}

type testConfig struct {
	exclude []string
}

func (c *testConfig) StorePath() string        { return "" }
func (c *testConfig) HistoryPath() string      { return "" }
func (c *testConfig) Exclusions() []string     { return c.exclude }
func (c *testConfig) LogEnabled() bool         { return false }
func (c *testConfig) LogName() string          { return "copy.log" }
func (c *testConfig) PromptBeforeExit() bool   { return false }
func (c *testConfig) Tool() string             { return "robocopy" }
func (c *testConfig) Retries() int             { return 2 }
func (c *testConfig) RetryWait() time.Duration { return 5 * time.Second }

func fixedResolver(day string) *vdir.Resolver {
	return &vdir.Resolver{Now: func() time.Time {
		ts, _ := time.Parse("2006-01-02", day)
		return ts
	}}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestCopyEndToEnd(t *testing.T) {
	ctx := context.Background()

	source := filepath.Join(t.TempDir(), "photos")
	writeFile(t, filepath.Join(source, "a.jpg"), "aaa")
	writeFile(t, filepath.Join(source, "albums", "b.jpg"), "bbb")
	writeFile(t, filepath.Join(source, "Thumbs.db"), "junk")
	writeFile(t, filepath.Join(source, "skipme", "c.jpg"), "ccc")

	base := t.TempDir()
	p := store.Open(filepath.Join(t.TempDir(), "targets.txt"))
	if _, err := p.Add(ctx, "nas", base); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	journal := history.Load(t.TempDir())

	c := Copy{
		Source:      source,
		Nickname:    "nas",
		Persistence: p,
		Resolver:    fixedResolver("2024-01-01"),
		Copier:      treeCopier{},
		Journal:     journal,
		Config:      &testConfig{exclude: []string{"Thumbs.db", "skipme"}},
	}
	if err := c.Do(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	entries, err := os.ReadDir(base)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected exactly one versioned directory, got %d", len(entries))
	}
	dest := filepath.Join(base, entries[0].Name())
	if entries[0].Name() != "2024-01-01 photos V1" {
		t.Fatalf("unexpected destination name %q", entries[0].Name())
	}

	for _, want := range []string{"a.jpg", filepath.Join("albums", "b.jpg")} {
		if _, err := os.Stat(filepath.Join(dest, want)); err != nil {
			t.Fatalf("expected %s in destination: %v", want, err)
		}
	}
	for _, skipped := range []string{"Thumbs.db", "skipme"} {
		if _, err := os.Stat(filepath.Join(dest, skipped)); !errors.Is(err, os.ErrNotExist) {
			t.Fatalf("excluded name %s should not be copied", skipped)
		}
	}

	records := journal.List(ctx, "nas")
	if len(records) != 1 || records[0].Failed {
		t.Fatalf("expected one successful run recorded, got %+v", records)
	}
	if records[0].Destination != dest {
		t.Fatalf("journal destination mismatch: %q != %q", records[0].Destination, dest)
	}
}

func TestCopyUnknownNickname(t *testing.T) {
	ctx := context.Background()
	p := store.Open(filepath.Join(t.TempDir(), "targets.txt"))

	c := Copy{
		Source:      t.TempDir(),
		Nickname:    "ghost",
		Persistence: p,
		Copier:      treeCopier{},
	}
	err := c.Do(ctx)
	if !errors.Is(err, store.ErrUnknownNickname) {
		t.Fatalf("expected ErrUnknownNickname, got %v", err)
	}
}

func TestCopySourceMissingIsFatal(t *testing.T) {
	ctx := context.Background()
	base := t.TempDir()
	p := store.Open(filepath.Join(t.TempDir(), "targets.txt"))
	if _, err := p.Add(ctx, "nas", base); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	c := Copy{
		Source:      filepath.Join(t.TempDir(), "nope"),
		Nickname:    "nas",
		Persistence: p,
		Copier:      treeCopier{},
	}
	if err := c.Do(ctx); !errors.Is(err, vdir.ErrSourceNotFound) {
		t.Fatalf("expected ErrSourceNotFound, got %v", err)
	}
}

func TestCopyHardFailureLeavesPartialTree(t *testing.T) {
	ctx := context.Background()
	source := t.TempDir()
	base := t.TempDir()
	p := store.Open(filepath.Join(t.TempDir(), "targets.txt"))
	if _, err := p.Add(ctx, "nas", base); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	journal := history.Load(t.TempDir())

	c := Copy{
		Source:      source,
		Nickname:    "nas",
		Persistence: p,
		Resolver:    fixedResolver("2024-01-01"),
		Copier:      failingCopier{},
		Journal:     journal,
	}
	err := c.Do(ctx)
	var exitErr *robocopy.ExitError
	if !errors.As(err, &exitErr) || exitErr.Code != 8 {
		t.Fatalf("expected exit code 8 failure, got %v", err)
	}

	// The versioned directory stays for inspection, no cleanup.
	entries, readErr := os.ReadDir(base)
	if readErr != nil {
		t.Fatalf("unexpected error: %v", readErr)
	}
	if len(entries) != 1 {
		t.Fatalf("partial destination should remain, got %d entries", len(entries))
	}

	records := journal.List(ctx, "nas")
	if len(records) != 1 || !records[0].Failed || records[0].ExitCode != 8 {
		t.Fatalf("expected one failed run recorded, got %+v", records)
	}
}
