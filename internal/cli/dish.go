package cli

import (
	"context"

	"github.com/eleven-am/bistro/internal/store"
	"github.com/spf13/cobra"
)

func newDishCommand(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "dish",
		Aliases: []string{"dishes"},
		Short:   "Manage dishes",
	}

	var (
		name       string
		price      int64
		categoryID int64
	)
	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Create a dish",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dish := store.Dish{Name: name, Price: price}
			if cmd.Flags().Changed("category") {
				dish.CategoryID = &categoryID
			}
			return opts.withRestaurant(cmd, func(ctx context.Context, r store.Restaurant, out *printer) error {
				created, err := r.CreateDish(ctx, dish)
				return runCreate(out, dishKind, created, err)
			})
		},
	}
	createCmd.Flags().StringVar(&name, "name", "", "dish name")
	createCmd.Flags().Int64Var(&price, "price", 0, "price in whole currency units")
	createCmd.Flags().Int64Var(&categoryID, "category", 0, "category id (optional)")
	_ = createCmd.MarkFlagRequired("name")
	_ = createCmd.MarkFlagRequired("price")

	var (
		newName       string
		newPrice      int64
		newCategoryID int64
	)
	updateCmd := &cobra.Command{
		Use:   "update ID",
		Short: "Change the dish fields given as flags",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			var patch store.DishPatch
			if cmd.Flags().Changed("name") {
				patch.Name = &newName
			}
			if cmd.Flags().Changed("price") {
				patch.Price = &newPrice
			}
			if cmd.Flags().Changed("category") {
				patch.CategoryID = &newCategoryID
			}

			return opts.withRestaurant(cmd, func(ctx context.Context, r store.Restaurant, out *printer) error {
				dish, found, err := r.UpdateDish(ctx, id, patch)
				return runUpdate(out, dishKind, id, dish, found, err)
			})
		},
	}
	updateCmd.Flags().StringVar(&newName, "name", "", "new dish name")
	updateCmd.Flags().Int64Var(&newPrice, "price", 0, "new price")
	updateCmd.Flags().Int64Var(&newCategoryID, "category", 0, "new category id")

	cmd.AddCommand(
		createCmd,
		newGetCommand(opts, dishKind, store.Restaurant.GetDish),
		newListCommand(opts, dishKind, store.Restaurant.ListDishes),
		updateCmd,
		newDeleteCommand(opts, dishKind, store.Restaurant.DeleteDish),
	)
	return cmd
}
