// Package history records past copy runs in a small on-disk journal so
// the user can see when a target last received a copy and how it went.
package history

import (
	"context"
	"crypto/md5"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/peterbourgon/diskv/v3"

	"github.com/paloj/copyto/pkg/logging"
)

const layoutISO = "2006-01-02"

// Record is one completed (or failed) copy run.
type Record struct {
	ID          string        `json:"id,omitempty"`
	Nickname    string        `json:"nickname"`
	Source      string        `json:"source"`
	Destination string        `json:"destination"`
	Started     time.Time     `json:"started"`
	Duration    time.Duration `json:"duration"`
	ExitCode    int           `json:"exit_code"`
	Failed      bool          `json:"failed"`
}

// Outcome renders the run result for listings.
func (r *Record) Outcome() string {
	if r.Failed {
		return fmt.Sprintf("failed (%d)", r.ExitCode)
	}
	return "ok"
}

// Persistence is the journal contract.
type Persistence interface {
	Store(r *Record) error
	List(ctx context.Context, nickname string) []*Record
	ListAll(ctx context.Context) []*Record
}

// Load creates a journal rooted at basePath.
func Load(basePath string) Persistence {
	return &persistence{d: diskv.New(diskv.Options{
		BasePath:          basePath,
		AdvancedTransform: keyToPathTransform,
		InverseTransform:  pathToKeyTransform,
		CacheSizeMax:      1024 * 1024, // 1MB
	})}
}

type persistence struct {
	d *diskv.Diskv
}

func (p *persistence) read(key string) (*Record, error) {
	val, err := p.d.Read(key)
	if err != nil {
		return nil, err
	}
	r := &Record{}
	if err := json.Unmarshal(val, r); err != nil {
		return nil, err
	}
	pk := keyToPathTransform(key)
	r.ID = pk.FileName
	return r, nil
}

func (p *persistence) Store(r *Record) error {
	key := toKey(r)
	data, err := json.Marshal(r)
	if err != nil {
		return err
	}
	return p.d.Write(key, data)
}

func (p *persistence) List(ctx context.Context, nickname string) []*Record {
	if nickname == "" {
		return p.ListAll(ctx)
	}
	logger := logging.GetLogger("history")
	ck := toSegment(nickname)
	all := make([]*Record, 0)
	for key := range p.d.Keys(ctx.Done()) {
		if pk := keyToPathTransform(key); pk.Path[0] != ck {
			continue
		}
		r, err := p.read(key)
		if err != nil {
			logger.Warn().Err(err).Str("key", key).Msg("skipping unreadable history record")
			continue
		}
		all = append(all, r)
	}
	sortRecords(all)
	return all
}

func (p *persistence) ListAll(ctx context.Context) []*Record {
	logger := logging.GetLogger("history")
	all := make([]*Record, 0)
	for key := range p.d.Keys(ctx.Done()) {
		r, err := p.read(key)
		if err != nil {
			logger.Warn().Err(err).Str("key", key).Msg("skipping unreadable history record")
			continue
		}
		all = append(all, r)
	}
	sortRecords(all)
	return all
}

func sortRecords(records []*Record) {
	sort.SliceStable(records, func(i, j int) bool {
		if records[i].Started.Equal(records[j].Started) {
			return records[i].ID < records[j].ID
		}
		return records[i].Started.Before(records[j].Started)
	})
}

func keyToPathTransform(s string) *diskv.PathKey {
	parts := strings.Split(s, "-")
	return &diskv.PathKey{
		Path:     parts[:len(parts)-1],
		FileName: parts[len(parts)-1],
	}
}

func pathToKeyTransform(pathKey *diskv.PathKey) string {
	return fmt.Sprintf("%s-%s", strings.Join(pathKey.Path, "-"), pathKey.FileName)
}

// toKey makes `nickname-date-id`. The nickname segment is base64 encoded
// so arbitrary nicknames stay filesystem-safe.
func toKey(r *Record) string {
	segment := toSegment(r.Nickname)
	day := r.Started.Format(layoutISO)

	if r.ID == "" {
		b, _ := json.Marshal(r)
		id := md5.Sum(b)
		r.ID = fmt.Sprintf("%x", id[:8])
	}

	return fmt.Sprintf("%s-%s-%s", segment, day, r.ID)
}

func toSegment(nickname string) string {
	return base64.StdEncoding.EncodeToString([]byte(nickname))
}
