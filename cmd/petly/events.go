package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/petly-community/petly/internal/ui/forms"
	"github.com/petly-community/petly/internal/ui/i18n"
	"github.com/petly-community/petly/internal/ui/types"
)

func newEventsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "events",
		Short: "Browse and manage events",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List events",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return run(cmd, i18n.MsgLoadEventsFailed, func(ctx context.Context, a *app) error {
					events, err := a.client.ListEvents(ctx)
					if err != nil {
						return err
					}
					printEvents(a.stdout, events)
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "get ID",
			Short: "Show an event",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return run(cmd, i18n.MsgLoadEventsFailed, func(ctx context.Context, a *app) error {
					eventID, err := parseID(a.messages, args[0])
					if err != nil {
						return err
					}
					event, err := a.client.GetEvent(ctx, eventID)
					if err != nil {
						return err
					}
					return printJSON(a.stdout, event)
				})
			},
		},
		newEventWriteCmd("create", i18n.MsgCreateEventFailed),
		newEventWriteCmd("update ID", i18n.MsgUpdateEventFailed),
		&cobra.Command{
			Use:   "delete ID",
			Short: "Remove an event",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return run(cmd, i18n.MsgDeleteEventFailed, func(ctx context.Context, a *app) error {
					eventID, err := parseID(a.messages, args[0])
					if err != nil {
						return err
					}
					if err := a.requireSession(ctx); err != nil {
						return err
					}
					if _, err := a.client.DeleteEvent(ctx, a.store.Token(), eventID); err != nil {
						return err
					}
					return printFeedback(a.stdout, a.messages.Get(i18n.MsgEventDeleted), nil)
				})
			},
		},
		&cobra.Command{
			Use:   "approve ID",
			Short: "Approve a pending event (admins only)",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return run(cmd, i18n.MsgApproveEventFailed, func(ctx context.Context, a *app) error {
					eventID, err := parseID(a.messages, args[0])
					if err != nil {
						return err
					}
					if err := a.requireRole(ctx, types.RoleAdmin); err != nil {
						return err
					}
					event, err := a.client.ApproveEvent(ctx, a.store.Token(), eventID)
					if err != nil {
						return err
					}
					return printFeedback(a.stdout, a.messages.Get(i18n.MsgEventApproved), event)
				})
			},
		},
	)
	return cmd
}

// newEventWriteCmd builds the create and update commands, which send the same payload
func newEventWriteCmd(use, fallbackKey string) *cobra.Command {
	var form forms.EventForm
	update := use != "create"

	cmd := &cobra.Command{
		Use:   use,
		Short: "Submit an event for approval",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, fallbackKey, func(ctx context.Context, a *app) error {
				var eventID int64
				if update {
					var err error
					if eventID, err = parseID(a.messages, args[0]); err != nil {
						return err
					}
				}
				if err := a.requireSession(ctx); err != nil {
					return err
				}

				payload, err := form.Payload(a.messages)
				if err != nil {
					return err
				}

				if update {
					event, err := a.client.UpdateEvent(ctx, a.store.Token(), eventID, payload)
					if err != nil {
						return err
					}
					return printFeedback(a.stdout, a.messages.Get(i18n.MsgEventUpdated), event)
				}

				event, err := a.client.CreateEvent(ctx, a.store.Token(), payload)
				if err != nil {
					return err
				}
				return printFeedback(a.stdout, a.messages.Get(i18n.MsgEventCreated), event)
			})
		},
	}
	if update {
		cmd.Short = "Replace an event"
		cmd.Args = cobra.ExactArgs(1)
	}

	cmd.Flags().StringVar(&form.Title, "title", "", "event title")
	cmd.Flags().StringVar(&form.Description, "description", "", "description")
	cmd.Flags().StringVar(&form.Date, "date", "", "date, e.g. 2025-05-01T10:00:00Z")
	cmd.Flags().StringVar(&form.Location, "location", "", "location")
	return cmd
}
