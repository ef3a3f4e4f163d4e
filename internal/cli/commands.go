package cli

import (
	"context"
	"fmt"

	"github.com/eleven-am/bistro/internal/store"
	"github.com/spf13/cobra"
)

// The get, list and delete commands are identical for every entity kind
// apart from the store method they call.

func newGetCommand[T fmt.Stringer](opts *rootOptions, k kind, get func(r store.Restaurant, ctx context.Context, id int64) (T, bool, error)) *cobra.Command {
	return &cobra.Command{
		Use:   "get ID",
		Short: fmt.Sprintf("Show one %s", k.singular()),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return opts.withRestaurant(cmd, func(ctx context.Context, r store.Restaurant, out *printer) error {
				record, found, err := get(r, ctx, id)
				if err != nil {
					return err
				}
				if !found {
					out.notFound(k, id)
					return nil
				}
				out.line("%s", record)
				return nil
			})
		},
	}
}

func newListCommand[T fmt.Stringer](opts *rootOptions, k kind, list func(r store.Restaurant, ctx context.Context) ([]T, error)) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: fmt.Sprintf("List every %s", k.singular()),
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withRestaurant(cmd, func(ctx context.Context, r store.Restaurant, out *printer) error {
				records, err := list(r, ctx)
				if err != nil {
					return err
				}
				printAll(out, k, records)
				return nil
			})
		},
	}
}

func newDeleteCommand(opts *rootOptions, k kind, remove func(r store.Restaurant, ctx context.Context, id int64) (bool, error)) *cobra.Command {
	return &cobra.Command{
		Use:   "delete ID",
		Short: fmt.Sprintf("Delete a %s; rows referencing it are kept", k.singular()),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return opts.withRestaurant(cmd, func(ctx context.Context, r store.Restaurant, out *printer) error {
				deleted, err := remove(r, ctx, id)
				if err != nil {
					return err
				}
				if !deleted {
					out.notFound(k, id)
					return nil
				}
				out.deleted(k, id)
				return nil
			})
		},
	}
}

// runUpdate reports the outcome of an update the same way for every kind
func runUpdate[T fmt.Stringer](out *printer, k kind, id int64, record T, found bool, err error) error {
	if err != nil {
		return err
	}
	if !found {
		out.notFound(k, id)
		return nil
	}
	out.updated(k, record)
	return nil
}

func runCreate[T fmt.Stringer](out *printer, k kind, record T, err error) error {
	if err != nil {
		return err
	}
	out.created(k, record)
	return nil
}
