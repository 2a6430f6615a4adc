// Package vdir computes and creates the versioned destination directory
// for a copy run: "{date} {source base name} V{n}" with the smallest n
// whose directory does not already exist under the destination base.
package vdir

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

const layoutISO = "2006-01-02"

// maxVersions bounds the create-if-absent probe loop. A base directory
// holding this many same-day copies of one source is not a real workload.
const maxVersions = 10000

var (
	ErrSourceNotFound      = errors.New("source directory does not exist")
	ErrDestinationNotFound = errors.New("destination base directory does not exist")
	ErrExhausted           = errors.New("no free versioned directory name")
)

// Resolver picks versioned destination names. The zero value is not
// usable, call New.
type Resolver struct {
	// Now is the clock used for the date stamp.
	Now func() time.Time
}

func New() *Resolver {
	return &Resolver{Now: time.Now}
}

// Resolve validates both paths, then creates and returns the first free
// "{date} {base} V{n}" directory under destinationBase, probing n from 1
// upward. The scan is fresh on every call, what exists on disk is
// authoritative rather than any counter. Creation uses mkdir's
// create-if-absent semantics so two racing invocations cannot both claim
// the same name.
func (r *Resolver) Resolve(sourcePath, destinationBase string) (string, error) {
	if info, err := os.Stat(sourcePath); err != nil || !info.IsDir() {
		return "", fmt.Errorf("%w: %s", ErrSourceNotFound, sourcePath)
	}
	if info, err := os.Stat(destinationBase); err != nil || !info.IsDir() {
		return "", fmt.Errorf("%w: %s", ErrDestinationNotFound, destinationBase)
	}

	date := r.Now().Format(layoutISO)
	base := filepath.Base(filepath.Clean(sourcePath))

	for n := 1; n <= maxVersions; n++ {
		candidate := filepath.Join(destinationBase, fmt.Sprintf("%s %s V%d", date, base, n))
		err := os.Mkdir(candidate, 0o755)
		if err == nil {
			return candidate, nil
		}
		if errors.Is(err, os.ErrExist) {
			continue
		}
		return "", fmt.Errorf("creating destination directory: %w", err)
	}
	return "", fmt.Errorf("%w under %s", ErrExhausted, destinationBase)
}
