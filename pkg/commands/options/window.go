package options

import (
	"github.com/spf13/cobra"
)

// WindowOptions
type WindowOptions struct {
	Since string
}

func AddWindowArgs(cmd *cobra.Command, o *WindowOptions) {
	cmd.Flags().StringVarP(&o.Since, "since", "s", "",
		"Only show runs started inside the window, e.g. 1w, 3d, 6h30m.")
}
