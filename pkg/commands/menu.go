package commands

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/paloj/copyto/pkg/commands/options"
	"github.com/paloj/copyto/pkg/menu"
	"github.com/paloj/copyto/pkg/runner/menuops"
	"github.com/paloj/copyto/pkg/store"
)

func addMenu(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "menu",
		Short: "Manage the shell context menu",
		Long: options.Wrap80("The context menu holds one entry per remembered target. " +
			"It is rebuilt in full from the target list, never patched, " +
			"so syncing is always safe to repeat."),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	addMenuSync(cmd)
	addMenuRemove(cmd)

	topLevel.AddCommand(cmd)
}

func addMenuSync(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Rebuild the context menu from the target list",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := store.LoadConfig()
			if err != nil {
				return err
			}
			s := menuops.Sync{
				Persistence: loadPersistence(cfg),
				Registrar:   menu.DefaultRegistrar(),
			}
			return s.Do(context.Background())
		},
	}
	topLevel.AddCommand(cmd)
}

func addMenuRemove(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "remove",
		Aliases: []string{"rm"},
		Short:   "Remove the whole context menu group",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r := menuops.Remove{Registrar: menu.DefaultRegistrar()}
			return r.Do(context.Background())
		},
	}
	topLevel.AddCommand(cmd)
}
