package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/paloj/copyto/pkg/commands/options"
	"github.com/paloj/copyto/pkg/history"
	"github.com/paloj/copyto/pkg/runner/hist"
	"github.com/paloj/copyto/pkg/store"
	"github.com/paloj/copyto/pkg/timeutil"
)

func addHistory(topLevel *cobra.Command) {
	oo := &options.OutputOptions{}
	wo := &options.WindowOptions{}
	cmd := &cobra.Command{
		Use:   "history [nickname]",
		Short: "Show past copy runs",
		Example: `
copyto history
copyto history vacation-drive
copyto history --since 2w
`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := store.LoadConfig()
			if err != nil {
				return err
			}
			nickname := ""
			if len(args) == 1 {
				nickname = args[0]
			}
			var since time.Duration
			var window string
			if wo.Since != "" {
				since, window, err = timeutil.ParseWindow(wo.Since)
				if err != nil {
					return err
				}
			}
			journal := history.Load(cfg.HistoryPath())

			if oo.JSON {
				records := journal.List(context.Background(), nickname)
				if since > 0 {
					cutoff := time.Now().Add(-since)
					kept := records[:0]
					for _, r := range records {
						if r.Started.Before(cutoff) {
							continue
						}
						kept = append(kept, r)
					}
					records = kept
				}
				b, err := json.MarshalIndent(records, "", "  ")
				if err != nil {
					return oo.HandleError(err)
				}
				_, _ = fmt.Fprintln(color.Output, string(b))
				return nil
			}

			l := hist.List{Nickname: nickname, Since: since, Window: window, Journal: journal}
			return l.Do(context.Background())
		},
	}
	options.AddOutputArg(cmd, oo)
	options.AddWindowArgs(cmd, wo)
	topLevel.AddCommand(cmd)
}
