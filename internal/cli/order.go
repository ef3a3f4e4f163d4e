package cli

import (
	"context"

	"github.com/eleven-am/bistro/internal/store"
	"github.com/spf13/cobra"
)

func newOrderCommand(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "order",
		Aliases: []string{"orders"},
		Short:   "Manage orders",
	}

	var (
		clientID int64
		dishID   int64
		date     string
	)
	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Create an order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			orderDate, err := store.ParseDate(date)
			if err != nil {
				return err
			}
			order := store.Order{ClientID: clientID, DishID: dishID, Date: orderDate}
			return opts.withRestaurant(cmd, func(ctx context.Context, r store.Restaurant, out *printer) error {
				created, err := r.CreateOrder(ctx, order)
				return runCreate(out, orderKind, created, err)
			})
		},
	}
	createCmd.Flags().Int64Var(&clientID, "client", 0, "client id")
	createCmd.Flags().Int64Var(&dishID, "dish", 0, "dish id")
	createCmd.Flags().StringVar(&date, "date", "", "order date (YYYY-MM-DD)")
	_ = createCmd.MarkFlagRequired("client")
	_ = createCmd.MarkFlagRequired("dish")
	_ = createCmd.MarkFlagRequired("date")

	var (
		newClientID int64
		newDishID   int64
		newDate     string
	)
	updateCmd := &cobra.Command{
		Use:   "update ID",
		Short: "Change the order fields given as flags",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			var patch store.OrderPatch
			if cmd.Flags().Changed("client") {
				patch.ClientID = &newClientID
			}
			if cmd.Flags().Changed("dish") {
				patch.DishID = &newDishID
			}
			if cmd.Flags().Changed("date") {
				orderDate, err := store.ParseDate(newDate)
				if err != nil {
					return err
				}
				patch.Date = &orderDate
			}

			return opts.withRestaurant(cmd, func(ctx context.Context, r store.Restaurant, out *printer) error {
				order, found, err := r.UpdateOrder(ctx, id, patch)
				return runUpdate(out, orderKind, id, order, found, err)
			})
		},
	}
	updateCmd.Flags().Int64Var(&newClientID, "client", 0, "new client id")
	updateCmd.Flags().Int64Var(&newDishID, "dish", 0, "new dish id")
	updateCmd.Flags().StringVar(&newDate, "date", "", "new order date (YYYY-MM-DD)")

	detailsCmd := newListCommand(opts, orderKind, store.Restaurant.ListOrderDetails)
	detailsCmd.Use = "details"
	detailsCmd.Short = "List orders with their client and dish names"

	cmd.AddCommand(
		createCmd,
		newGetCommand(opts, orderKind, store.Restaurant.GetOrder),
		newListCommand(opts, orderKind, store.Restaurant.ListOrders),
		updateCmd,
		newDeleteCommand(opts, orderKind, store.Restaurant.DeleteOrder),
		detailsCmd,
	)
	return cmd
}
