package options

import (
	"github.com/spf13/cobra"
)

// VerboseOptions
type VerboseOptions struct {
	Verbosity int
}

func AddVerboseArg(cmd *cobra.Command, o *VerboseOptions) {
	cmd.PersistentFlags().CountVarP(&o.Verbosity, "verbose", "v",
		"Increase diagnostic logging (-v info, -vv debug).")
}
