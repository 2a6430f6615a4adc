package commands

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/paloj/copyto/pkg/commands/options"
	"github.com/paloj/copyto/pkg/menu"
	"github.com/paloj/copyto/pkg/runner/targets"
	"github.com/paloj/copyto/pkg/store"
)

func addTarget(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "target",
		Short: "Manage remembered destinations",
		Example: `
copyto target add vacation-drive /mnt/nas/vacation
copyto target list
copyto target remove vacation-drive
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	addTargetAdd(cmd)
	addTargetRemove(cmd)
	addTargetList(cmd)

	topLevel.AddCommand(cmd)
}

func addTargetAdd(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "add <nickname> <path>",
		Short: "Remember a destination under a nickname",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := store.LoadConfig()
			if err != nil {
				return err
			}
			a := targets.Add{
				Nickname:    args[0],
				Path:        args[1],
				Persistence: loadPersistence(cfg),
				Registrar:   menu.DefaultRegistrar(),
			}
			return a.Do(context.Background())
		},
	}
	topLevel.AddCommand(cmd)
}

func addTargetRemove(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "remove <nickname or #>",
		Aliases: []string{"rm"},
		Short:   "Forget a destination",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(args[0]) == "" {
				return errors.New("nothing to remove")
			}
			cfg, err := store.LoadConfig()
			if err != nil {
				return err
			}
			r := targets.Remove{
				Selector:    args[0],
				Persistence: loadPersistence(cfg),
				Registrar:   menu.DefaultRegistrar(),
			}
			return r.Do(context.Background())
		},
	}
	topLevel.AddCommand(cmd)
}

func addTargetList(topLevel *cobra.Command) {
	oo := &options.OutputOptions{}
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List remembered destinations",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := store.LoadConfig()
			if err != nil {
				return err
			}
			p := loadPersistence(cfg)

			if oo.JSON {
				reg, err := p.Load(context.Background())
				if err != nil {
					return oo.HandleError(err)
				}
				b, err := json.MarshalIndent(reg, "", "  ")
				if err != nil {
					return oo.HandleError(err)
				}
				_, _ = fmt.Fprintln(color.Output, string(b))
				return nil
			}

			l := targets.List{Persistence: p}
			return l.Do(context.Background())
		},
	}
	options.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}
