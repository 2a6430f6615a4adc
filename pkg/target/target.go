// Package target defines the named destination record and the ordered
// registry the rest of copyto operates on.
package target

import (
	"errors"
	"fmt"
	"strings"
)

// Separator splits nickname from path in the persisted record format.
// Windows and POSIX paths may not contain it, nicknames must not either.
const Separator = "|"

var (
	ErrEmptyNickname           = errors.New("nickname must not be empty")
	ErrSeparatorInNickname     = fmt.Errorf("nickname must not contain %q", Separator)
	ErrPathSeparatorInNickname = errors.New("nickname must not contain path separators")
	ErrEmptyPath               = errors.New("path must not be empty")
)

// Target is a named remote destination. Targets are immutable once
// created; remove and re-add is the only way to change one.
type Target struct {
	Nickname string `json:"nickname"`
	Path     string `json:"path"`
}

// New validates and builds a Target. It does not check that the path
// exists on disk, that is the store's add-time concern.
func New(nickname, path string) (Target, error) {
	nickname = strings.TrimSpace(nickname)
	path = strings.TrimSpace(path)
	if nickname == "" {
		return Target{}, ErrEmptyNickname
	}
	if strings.Contains(nickname, Separator) {
		return Target{}, ErrSeparatorInNickname
	}
	// Nicknames name registry keys and menu script files downstream.
	if strings.ContainsAny(nickname, `/\`) {
		return Target{}, ErrPathSeparatorInNickname
	}
	if path == "" {
		return Target{}, ErrEmptyPath
	}
	return Target{Nickname: nickname, Path: path}, nil
}

// ParseRecord turns one persisted line into a Target. Records with fewer
// than two fields after trimming are rejected so the caller can skip them.
func ParseRecord(line string) (Target, error) {
	parts := strings.SplitN(line, Separator, 2)
	if len(parts) < 2 {
		return Target{}, fmt.Errorf("record %q: missing separator", line)
	}
	return New(parts[0], parts[1])
}

// Record renders the Target as one persisted line.
func (t Target) Record() string {
	return t.Nickname + Separator + t.Path
}

func (t Target) String() string {
	return fmt.Sprintf("%s -> %s", t.Nickname, t.Path)
}
