package commands

import (
	"bufio"
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"

	"github.com/paloj/copyto/pkg/commands/options"
	"github.com/paloj/copyto/pkg/history"
	"github.com/paloj/copyto/pkg/logging"
	"github.com/paloj/copyto/pkg/menu"
	"github.com/paloj/copyto/pkg/robocopy"
	"github.com/paloj/copyto/pkg/runner/copyrun"
	"github.com/paloj/copyto/pkg/runner/interactive"
	"github.com/paloj/copyto/pkg/store"
)

var (
	so = &options.StoreOptions{}
	vo = &options.VerboseOptions{}
)

func New() *cobra.Command {

	cmd := &cobra.Command{
		Use:   "copyto [sourcePath] [targetNickname]",
		Short: base.Wrap80("Copy a folder to a remembered destination, into a fresh dated, versioned directory."),
		Example: `
copyto                                  interactive menu
copyto ./photos vacation-drive          copy now, non-interactively
`,
		Args:          cobra.MaximumNArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.Setup(vo.Verbosity)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := store.LoadConfig()
			if err != nil {
				return err
			}
			p := loadPersistence(cfg)

			if len(args) == 2 {
				c := copyrun.Copy{
					Source:      args[0],
					Nickname:    args[1],
					Persistence: p,
					Copier:      &robocopy.Runner{Tool: cfg.Tool()},
					Journal:     history.Load(cfg.HistoryPath()),
					Config:      cfg,
				}
				err := c.Do(context.Background())
				promptBeforeExit(cfg)
				return err
			}

			m := interactive.Menu{
				Persistence: p,
				Registrar:   menu.DefaultRegistrar(),
				Copier:      &robocopy.Runner{Tool: cfg.Tool()},
				Journal:     history.Load(cfg.HistoryPath()),
				Config:      cfg,
			}
			if len(args) == 1 {
				m.Source = args[0]
			}
			return m.Do(context.Background())
		},
	}

	options.AddStoreArg(cmd, so)
	options.AddVerboseArg(cmd, vo)

	AddCommands(cmd)
	return cmd
}

func AddCommands(topLevel *cobra.Command) {
	addTarget(topLevel)
	addMenu(topLevel)
	addHistory(topLevel)
	addVersion(topLevel)
}

// loadPersistence honors the --store override, otherwise the configured
// store path.
func loadPersistence(cfg store.Config) store.Persistence {
	if so.Path != "" {
		return store.Open(so.Path)
	}
	return store.Open(cfg.StorePath())
}

// promptBeforeExit keeps a console window opened by the shell menu on
// screen until the user has read the outcome.
func promptBeforeExit(cfg store.Config) {
	if cfg == nil || !cfg.PromptBeforeExit() {
		return
	}
	fmt.Print("Press Enter to close.")
	_ = bufio.NewScanner(os.Stdin).Scan()
}
