// Package copyrun performs one versioned copy to a named target: nickname
// lookup, destination resolution, and the hand-off to the copy tool.
package copyrun

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/paloj/copyto/pkg/history"
	"github.com/paloj/copyto/pkg/printers"
	"github.com/paloj/copyto/pkg/robocopy"
	"github.com/paloj/copyto/pkg/store"
	"github.com/paloj/copyto/pkg/vdir"
)

type Copy struct {
	Source   string
	Nickname string

	Persistence store.Persistence
	Resolver    *vdir.Resolver
	Copier      robocopy.Copier
	Journal     history.Persistence
	Config      store.Config
}

// Do runs the copy. The resolved destination directory is created as a
// side effect even when the transfer later fails, the partial tree is
// deliberately left in place for inspection.
func (c *Copy) Do(ctx context.Context) error {
	if c.Persistence == nil {
		return errors.New("can not copy, no persistence")
	}
	if c.Copier == nil {
		return errors.New("can not copy, no copier")
	}
	if c.Resolver == nil {
		c.Resolver = vdir.New()
	}

	reg, err := c.Persistence.Load(ctx)
	if err != nil {
		return err
	}
	t, ok := reg.Lookup(c.Nickname)
	if !ok {
		return fmt.Errorf("%w: %s", store.ErrUnknownNickname, c.Nickname)
	}

	dest, err := c.Resolver.Resolve(c.Source, t.Path)
	if err != nil {
		return err
	}

	opts := robocopy.Options{}
	if c.Config != nil {
		opts.Retries = c.Config.Retries()
		opts.RetryWait = c.Config.RetryWait()
		opts.Exclusions = c.Config.Exclusions()
		if c.Config.LogEnabled() {
			opts.LogPath = filepath.Join(dest, c.Config.LogName())
		}
	}

	started := time.Now()
	outcome, copyErr := c.Copier.Copy(ctx, c.Source, dest, opts)
	c.record(dest, started, outcome)

	pp := printers.PrettyPrint{}
	pp.Copied(dest, outcome.Failed() || copyErr != nil)
	return copyErr
}

// record appends the run to the journal. Journal trouble never fails the
// copy itself.
func (c *Copy) record(dest string, started time.Time, outcome robocopy.Outcome) {
	if c.Journal == nil {
		return
	}
	err := c.Journal.Store(&history.Record{
		Nickname:    c.Nickname,
		Source:      c.Source,
		Destination: dest,
		Started:     started,
		Duration:    time.Since(started),
		ExitCode:    outcome.Code,
		Failed:      outcome.Failed(),
	})
	if err != nil {
		pp := printers.PrettyPrint{}
		pp.Error(fmt.Errorf("recording history for %s: %w", c.Nickname, err))
	}
}
