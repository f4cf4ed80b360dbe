package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/petly-community/petly/internal/ui/forms"
	"github.com/petly-community/petly/internal/ui/i18n"
)

func newAdoptionsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "adoptions",
		Short: "Manage adoption requests",
	}

	create := &cobra.Command{
		Use:   "create PET_ID",
		Short: "Request the adoption of a pet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, i18n.MsgCreateAdoptionFailed, func(ctx context.Context, a *app) error {
				petID, err := parseID(a.messages, args[0])
				if err != nil {
					return err
				}
				if err := a.requireSession(ctx); err != nil {
					return err
				}
				adoption, err := a.client.CreateAdoption(ctx, a.store.Token(), petID)
				if err != nil {
					return err
				}
				return printFeedback(a.stdout, a.messages.Get(i18n.MsgAdoptionRequested), adoption)
			})
		},
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List the adoption requests visible to the logged in user",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return run(cmd, i18n.MsgLoadAdoptionsFailed, func(ctx context.Context, a *app) error {
					if err := a.requireSession(ctx); err != nil {
						return err
					}
					adoptions, err := a.client.ListAdoptions(ctx, a.store.Token())
					if err != nil {
						return err
					}
					printAdoptions(a.stdout, adoptions)
					return nil
				})
			},
		},
		create,
		&cobra.Command{
			Use:   "status ID STATUS",
			Short: "Set the status of a request (PENDING, APPROVED or REJECTED)",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				return run(cmd, i18n.MsgUpdateAdoptionFailed, func(ctx context.Context, a *app) error {
					requestID, err := parseID(a.messages, args[0])
					if err != nil {
						return err
					}
					status, err := forms.ParseRequestStatus(a.messages, args[1])
					if err != nil {
						return err
					}
					if err := a.requireSession(ctx); err != nil {
						return err
					}
					adoption, err := a.client.UpdateAdoptionStatus(ctx, a.store.Token(), requestID, status)
					if err != nil {
						return err
					}
					return printFeedback(a.stdout, a.messages.Get(i18n.MsgAdoptionUpdated), adoption)
				})
			},
		},
		&cobra.Command{
			Use:   "delete ID",
			Short: "Remove an adoption request",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return run(cmd, i18n.MsgDeleteAdoptionFailed, func(ctx context.Context, a *app) error {
					requestID, err := parseID(a.messages, args[0])
					if err != nil {
						return err
					}
					if err := a.requireSession(ctx); err != nil {
						return err
					}
					if _, err := a.client.DeleteAdoption(ctx, a.store.Token(), requestID); err != nil {
						return err
					}
					return printFeedback(a.stdout, a.messages.Get(i18n.MsgAdoptionDeleted), nil)
				})
			},
		},
	)
	return cmd
}
