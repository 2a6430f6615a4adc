// Package hist lists the recorded copy runs.
package hist

import (
	"context"
	"errors"
	"time"

	"github.com/paloj/copyto/pkg/history"
	"github.com/paloj/copyto/pkg/printers"
	"github.com/paloj/copyto/pkg/timeutil"
)

type List struct {
	// Nickname filters the listing, empty shows every run.
	Nickname string

	// Since limits the listing to runs started inside the window,
	// zero shows every run. Window is the human label for the title.
	Since  time.Duration
	Window string

	Journal history.Persistence

	// Now is the clock used for window filtering, nil means time.Now.
	Now func() time.Time
}

func (l *List) Do(ctx context.Context) error {
	if l.Journal == nil {
		return errors.New("can not list history, no journal")
	}

	records := l.Journal.List(ctx, l.Nickname)
	records = l.filter(records)

	pp := printers.PrettyPrint{}
	pp.NewLine()
	pp.Title(l.title())
	pp.History(records)
	return nil
}

func (l *List) filter(records []*history.Record) []*history.Record {
	if l.Since <= 0 {
		return records
	}
	now := time.Now
	if l.Now != nil {
		now = l.Now
	}
	cutoff := now().Add(-l.Since)

	kept := make([]*history.Record, 0, len(records))
	for _, r := range records {
		if r.Started.Before(cutoff) {
			continue
		}
		kept = append(kept, r)
	}
	return kept
}

func (l *List) title() string {
	title := "Copy history"
	if l.Nickname != "" {
		title += " for " + l.Nickname
	}
	if l.Since > 0 {
		window := l.Window
		if window == "" {
			window = timeutil.FormatWindow(l.Since)
		}
		title += ", last " + window
	}
	return title
}
