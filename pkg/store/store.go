package store

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/paloj/copyto/pkg/logging"
	"github.com/paloj/copyto/pkg/target"
)

// Header is the literal schema marker written as the first record of the
// targets file.
const Header = "#copyto targets v1"

var (
	ErrDuplicateNickname = errors.New("nickname already in use")
	ErrUnknownNickname   = errors.New("unknown nickname")
	ErrInvalidPath       = errors.New("path is not an existing directory")
	ErrIndexOutOfRange   = errors.New("selection out of range")
)

// Persistence is the target store contract. The file on disk is the single
// source of truth, every operation re-reads it rather than trusting a
// cached copy.
type Persistence interface {
	Load(ctx context.Context) (target.Registry, error)
	Save(ctx context.Context, reg target.Registry) error
	Add(ctx context.Context, nickname, path string) (target.Target, error)
	Remove(ctx context.Context, index int) (target.Target, error)
	RemoveNickname(ctx context.Context, nickname string) (target.Target, error)
	Path() string
}

// Load creates a Persistence backed by the targets file named in cfg.
func Load(cfg Config) (Persistence, error) {
	if cfg == nil {
		var err error
		cfg, err = LoadConfig()
		if err != nil {
			return nil, err
		}
	}
	return &persistence{path: cfg.StorePath()}, nil
}

// Open creates a Persistence on an explicit file path, bypassing config.
func Open(path string) Persistence {
	return &persistence{path: path}
}

type persistence struct {
	path string
}

func (p *persistence) Path() string {
	return p.path
}

// Load reads the persisted registry. A missing file is created empty with
// the header. A malformed or unreadable file degrades to an empty registry
// with a warning, it never fails the caller. Records missing the separator
// and blank lines are skipped.
func (p *persistence) Load(ctx context.Context) (target.Registry, error) {
	logger := logging.GetLogger("store")

	data, err := os.ReadFile(p.path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			logger.Warn().Err(err).Str("path", p.path).Msg("target store unreadable, treating as empty")
			return target.Registry{}, nil
		}
		if err := p.writeFile(nil); err != nil {
			logger.Warn().Err(err).Str("path", p.path).Msg("could not create target store, treating as empty")
			return target.Registry{}, nil
		}
		logger.Debug().Str("path", p.path).Msg("created empty target store")
		return target.Registry{}, nil
	}

	reg := target.Registry{}
	scanner := bufio.NewScanner(strings.NewReader(strings.TrimPrefix(string(data), "\uFEFF")))
	first := true
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if first {
			first = false
			if line == Header {
				continue
			}
			logger.Warn().Str("path", p.path).Msg("target store missing schema header, treating as empty")
			return target.Registry{}, nil
		}
		if line == "" {
			continue
		}
		t, err := target.ParseRecord(line)
		if err != nil {
			logger.Debug().Err(err).Str("path", p.path).Msg("skipping malformed target record")
			continue
		}
		if reg.Contains(t.Nickname) {
			logger.Debug().Str("nickname", t.Nickname).Msg("skipping duplicate target record")
			continue
		}
		reg = append(reg, t)
	}
	return reg, nil
}

// Save overwrites the store with the header followed by one record per
// target, in the given order. The write goes through a temp file and a
// rename so a crash never leaves a half-written store.
func (p *persistence) Save(ctx context.Context, reg target.Registry) error {
	if err := p.writeFile(reg); err != nil {
		return fmt.Errorf("saving target store: %w", err)
	}
	return nil
}

func (p *persistence) Add(ctx context.Context, nickname, path string) (target.Target, error) {
	t, err := target.New(nickname, path)
	if err != nil {
		return target.Target{}, err
	}
	info, err := os.Stat(t.Path)
	if err != nil || !info.IsDir() {
		return target.Target{}, fmt.Errorf("%w: %s", ErrInvalidPath, t.Path)
	}

	reg, err := p.Load(ctx)
	if err != nil {
		return target.Target{}, err
	}
	if reg.Contains(t.Nickname) {
		return target.Target{}, fmt.Errorf("%w: %s", ErrDuplicateNickname, t.Nickname)
	}
	if err := p.Save(ctx, append(reg, t)); err != nil {
		return target.Target{}, err
	}
	return t, nil
}

// Remove deletes the target at the given 1-based position. Removing the
// last target deletes the store file outright rather than leaving a file
// holding only the header.
func (p *persistence) Remove(ctx context.Context, index int) (target.Target, error) {
	reg, err := p.Load(ctx)
	if err != nil {
		return target.Target{}, err
	}
	t, ok := reg.At(index)
	if !ok {
		return target.Target{}, fmt.Errorf("%w: %d", ErrIndexOutOfRange, index)
	}
	return t, p.removeLoaded(ctx, reg, t.Nickname)
}

// RemoveNickname deletes the target bound to nickname, the sole removal key.
func (p *persistence) RemoveNickname(ctx context.Context, nickname string) (target.Target, error) {
	reg, err := p.Load(ctx)
	if err != nil {
		return target.Target{}, err
	}
	t, ok := reg.Lookup(nickname)
	if !ok {
		return target.Target{}, fmt.Errorf("%w: %s", ErrUnknownNickname, nickname)
	}
	return t, p.removeLoaded(ctx, reg, nickname)
}

func (p *persistence) removeLoaded(ctx context.Context, reg target.Registry, nickname string) error {
	rest := reg.Without(nickname)
	if len(rest) == 0 {
		if err := os.Remove(p.path); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("deleting empty target store: %w", err)
		}
		logger := logging.GetLogger("store")
		logger.Debug().Str("path", p.path).Msg("removed last target, deleted store file")
		return nil
	}
	return p.Save(ctx, rest)
}

func (p *persistence) writeFile(reg target.Registry) error {
	if dir := filepath.Dir(p.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	var b strings.Builder
	b.WriteString(Header + "\n")
	for _, t := range reg {
		b.WriteString(t.Record() + "\n")
	}
	tmp := p.path + ".tmp"
	if err := os.WriteFile(tmp, []byte(b.String()), 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, p.path)
}
