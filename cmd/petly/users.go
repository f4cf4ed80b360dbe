package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/petly-community/petly/internal/ui/forms"
	"github.com/petly-community/petly/internal/ui/i18n"
	"github.com/petly-community/petly/internal/ui/types"
)

// newUsersCmd groups the user administration commands. All of them require the ADMIN role
func newUsersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "users",
		Short: "Administer user accounts (admins only)",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List users",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return run(cmd, i18n.MsgLoadUsersFailed, func(ctx context.Context, a *app) error {
					if err := a.requireRole(ctx, types.RoleAdmin); err != nil {
						return err
					}
					users, err := a.client.ListUsers(ctx, a.store.Token())
					if err != nil {
						return err
					}
					printUsers(a.stdout, users)
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "get ID",
			Short: "Show a user",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return run(cmd, i18n.MsgLoadUsersFailed, func(ctx context.Context, a *app) error {
					userID, err := parseID(a.messages, args[0])
					if err != nil {
						return err
					}
					if err := a.requireRole(ctx, types.RoleAdmin); err != nil {
						return err
					}
					user, err := a.client.GetUser(ctx, a.store.Token(), userID)
					if err != nil {
						return err
					}
					return printJSON(a.stdout, user)
				})
			},
		},
		newUsersUpdateCmd(),
		&cobra.Command{
			Use:   "delete ID",
			Short: "Remove a user",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return run(cmd, i18n.MsgDeleteUserFailed, func(ctx context.Context, a *app) error {
					userID, err := parseID(a.messages, args[0])
					if err != nil {
						return err
					}
					if err := a.requireRole(ctx, types.RoleAdmin); err != nil {
						return err
					}
					if _, err := a.client.DeleteUser(ctx, a.store.Token(), userID); err != nil {
						return err
					}
					return printFeedback(a.stdout, a.messages.Get(i18n.MsgUserDeleted), nil)
				})
			},
		},
	)
	return cmd
}

func newUsersUpdateCmd() *cobra.Command {
	var name, email, role, phone, address string

	cmd := &cobra.Command{
		Use:   "update ID",
		Short: "Update the given fields of a user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, i18n.MsgUpdateUserFailed, func(ctx context.Context, a *app) error {
				userID, err := parseID(a.messages, args[0])
				if err != nil {
					return err
				}
				if err := a.requireRole(ctx, types.RoleAdmin); err != nil {
					return err
				}

				changed := func(flag string, value *string) *string {
					if cmd.Flags().Changed(flag) {
						return value
					}
					return nil
				}
				payload := types.UpdateUserPayload{
					Name:    changed("name", &name),
					Email:   changed("email", &email),
					Phone:   changed("phone", &phone),
					Address: changed("address", &address),
				}
				if cmd.Flags().Changed("role") {
					parsed, err := forms.ParseRole(a.messages, role)
					if err != nil {
						return err
					}
					payload.Role = &parsed
				}

				user, err := a.client.UpdateUser(ctx, a.store.Token(), userID, payload)
				if err != nil {
					return err
				}
				return printFeedback(a.stdout, a.messages.Get(i18n.MsgUserUpdated), user)
			})
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "display name")
	cmd.Flags().StringVar(&email, "email", "", "email")
	cmd.Flags().StringVar(&role, "role", "", "USER, ONG, VET or ADMIN")
	cmd.Flags().StringVar(&phone, "phone", "", "phone number")
	cmd.Flags().StringVar(&address, "address", "", "address")
	return cmd
}
