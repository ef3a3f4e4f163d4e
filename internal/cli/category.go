package cli

import (
	"context"

	"github.com/eleven-am/bistro/internal/store"
	"github.com/spf13/cobra"
)

func newCategoryCommand(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "category",
		Aliases: []string{"categories"},
		Short:   "Manage menu categories",
	}

	var name string
	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Create a category",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withRestaurant(cmd, func(ctx context.Context, r store.Restaurant, out *printer) error {
				category, err := r.CreateCategory(ctx, store.Category{Name: name})
				return runCreate(out, categoryKind, category, err)
			})
		},
	}
	createCmd.Flags().StringVar(&name, "name", "", "category name")
	_ = createCmd.MarkFlagRequired("name")

	var newName string
	updateCmd := &cobra.Command{
		Use:   "update ID",
		Short: "Change the category fields given as flags",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			var patch store.CategoryPatch
			if cmd.Flags().Changed("name") {
				patch.Name = &newName
			}

			return opts.withRestaurant(cmd, func(ctx context.Context, r store.Restaurant, out *printer) error {
				category, found, err := r.UpdateCategory(ctx, id, patch)
				return runUpdate(out, categoryKind, id, category, found, err)
			})
		},
	}
	updateCmd.Flags().StringVar(&newName, "name", "", "new category name")

	cmd.AddCommand(
		createCmd,
		newGetCommand(opts, categoryKind, store.Restaurant.GetCategory),
		newListCommand(opts, categoryKind, store.Restaurant.ListCategories),
		updateCmd,
		newDeleteCommand(opts, categoryKind, store.Restaurant.DeleteCategory),
	)
	return cmd
}
