package menu

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ScriptsRegistrar maintains a directory of executable command scripts,
// one per menu child, in the layout file managers read their context-menu
// scripts from. The group is a subdirectory, a full replace is a
// remove-and-recreate of that subdirectory.
type ScriptsRegistrar struct {
	// BaseDir overrides the default $XDG_DATA_HOME/copyto/menu location.
	BaseDir string
}

func (s *ScriptsRegistrar) base() (string, error) {
	if s.BaseDir != "" {
		return s.BaseDir, nil
	}
	data := os.Getenv("XDG_DATA_HOME")
	if data == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("locating data directory: %w", err)
		}
		data = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(data, "copyto", "menu"), nil
}

func (s *ScriptsRegistrar) Register(group, label string, children []Entry) error {
	base, err := s.base()
	if err != nil {
		return err
	}
	dir := filepath.Join(base, group)
	// Full replace: clear whatever the last registration wrote.
	if err := os.RemoveAll(dir); err != nil {
		return fmt.Errorf("clearing menu directory: %w", err)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating menu directory: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, ".label"), []byte(label+"\n"), 0o644); err != nil {
		return fmt.Errorf("writing menu label: %w", err)
	}
	for _, child := range children {
		script := "#!/bin/sh\nexec " + strings.ReplaceAll(child.Command, SourcePlaceholder, "$1") + "\n"
		path := filepath.Join(dir, child.Label)
		if err := os.WriteFile(path, []byte(script), 0o755); err != nil {
			return fmt.Errorf("writing menu script %s: %w", child.Label, err)
		}
	}
	return nil
}

func (s *ScriptsRegistrar) Unregister(group string) error {
	base, err := s.base()
	if err != nil {
		return err
	}
	if err := os.RemoveAll(filepath.Join(base, group)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("removing menu directory: %w", err)
	}
	return nil
}
