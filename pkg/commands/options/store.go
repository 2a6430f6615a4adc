package options

import (
	"github.com/spf13/cobra"
)

// StoreOptions
type StoreOptions struct {
	Path string
}

func AddStoreArg(cmd *cobra.Command, o *StoreOptions) {
	cmd.PersistentFlags().StringVar(&o.Path, "store", "",
		"Override the target store file path.")
}
