package cli

import (
	"context"

	"github.com/eleven-am/bistro/internal/store"
	"github.com/spf13/cobra"
)

func newDumpCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "dump",
		Short: "List the contents of every table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withRestaurant(cmd, func(ctx context.Context, r store.Restaurant, out *printer) error {
				snapshot, err := r.Snapshot(ctx)
				if err != nil {
					return err
				}
				out.snapshot(snapshot)
				return nil
			})
		},
	}
}
