package cli

import (
	"context"

	"github.com/eleven-am/bistro/internal/store"
	"github.com/spf13/cobra"
)

func newClientCommand(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "client",
		Aliases: []string{"clients"},
		Short:   "Manage clients",
	}

	var name, phone string
	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Create a client",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withRestaurant(cmd, func(ctx context.Context, r store.Restaurant, out *printer) error {
				client, err := r.CreateClient(ctx, store.Client{Name: name, Phone: phone})
				return runCreate(out, clientKind, client, err)
			})
		},
	}
	createCmd.Flags().StringVar(&name, "name", "", "client name")
	createCmd.Flags().StringVar(&phone, "phone", "", "client phone number")
	_ = createCmd.MarkFlagRequired("name")
	_ = createCmd.MarkFlagRequired("phone")

	var newName, newPhone string
	updateCmd := &cobra.Command{
		Use:   "update ID",
		Short: "Change the client fields given as flags",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			var patch store.ClientPatch
			if cmd.Flags().Changed("name") {
				patch.Name = &newName
			}
			if cmd.Flags().Changed("phone") {
				patch.Phone = &newPhone
			}

			return opts.withRestaurant(cmd, func(ctx context.Context, r store.Restaurant, out *printer) error {
				client, found, err := r.UpdateClient(ctx, id, patch)
				return runUpdate(out, clientKind, id, client, found, err)
			})
		},
	}
	updateCmd.Flags().StringVar(&newName, "name", "", "new client name")
	updateCmd.Flags().StringVar(&newPhone, "phone", "", "new phone number")

	cmd.AddCommand(
		createCmd,
		newGetCommand(opts, clientKind, store.Restaurant.GetClient),
		newListCommand(opts, clientKind, store.Restaurant.ListClients),
		updateCmd,
		newDeleteCommand(opts, clientKind, store.Restaurant.DeleteClient),
	)
	return cmd
}
