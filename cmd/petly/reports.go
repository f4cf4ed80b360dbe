package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/petly-community/petly/internal/ui/forms"
	"github.com/petly-community/petly/internal/ui/i18n"
	"github.com/petly-community/petly/internal/ui/types"
)

func newReportsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reports",
		Short: "Send and follow animal abuse reports",
	}
	cmd.AddCommand(
		newReportsCreateCmd(),
		&cobra.Command{
			Use:   "list",
			Short: "List reports",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return run(cmd, i18n.MsgLoadReportsFailed, func(ctx context.Context, a *app) error {
					if err := a.requireSession(ctx); err != nil {
						return err
					}
					reports, err := a.client.ListReports(ctx, a.store.Token())
					if err != nil {
						return err
					}
					printReports(a.stdout, reports)
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "get ID",
			Short: "Show a report",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return run(cmd, i18n.MsgLoadReportsFailed, func(ctx context.Context, a *app) error {
					reportID, err := parseID(a.messages, args[0])
					if err != nil {
						return err
					}
					if err := a.requireSession(ctx); err != nil {
						return err
					}
					report, err := a.client.GetReport(ctx, a.store.Token(), reportID)
					if err != nil {
						return err
					}
					return printJSON(a.stdout, report)
				})
			},
		},
		&cobra.Command{
			Use:   "status ID STATUS",
			Short: "Set the status of a report (OPEN, IN_PROGRESS or RESOLVED)",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				return run(cmd, i18n.MsgUpdateReportFailed, func(ctx context.Context, a *app) error {
					reportID, err := parseID(a.messages, args[0])
					if err != nil {
						return err
					}
					status, err := forms.ParseReportStatus(a.messages, args[1])
					if err != nil {
						return err
					}
					if err := a.requireSession(ctx); err != nil {
						return err
					}
					report, err := a.client.UpdateReportStatus(ctx, a.store.Token(), reportID, types.UpdateReportPayload{Status: &status})
					if err != nil {
						return err
					}
					return printFeedback(a.stdout, a.messages.Get(i18n.MsgReportUpdated), report)
				})
			},
		},
	)
	return cmd
}

// newReportsCreateCmd sends a report. Logging in is optional: anonymous reports are sent without a token
func newReportsCreateCmd() *cobra.Command {
	var (
		form                forms.ReportForm
		latitude, longitude float64
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Send a report",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, i18n.MsgCreateReportFailed, func(ctx context.Context, a *app) error {
				if cmd.Flags().Changed("latitude") {
					form.Latitude = &latitude
				}
				if cmd.Flags().Changed("longitude") {
					form.Longitude = &longitude
				}

				payload, err := form.Payload(a.messages)
				if err != nil {
					return err
				}
				report, err := a.client.CreateReport(ctx, a.store.Token(), payload)
				if err != nil {
					return err
				}
				return printFeedback(a.stdout, a.messages.Get(i18n.MsgReportCreated), report)
			})
		},
	}

	cmd.Flags().StringVar(&form.Description, "description", "", "what happened")
	cmd.Flags().StringVar(&form.PhotoURL, "photo-url", "", "photo URL")
	cmd.Flags().StringVar(&form.VideoURL, "video-url", "", "video URL")
	cmd.Flags().Float64Var(&latitude, "latitude", 0, "latitude")
	cmd.Flags().Float64Var(&longitude, "longitude", 0, "longitude")
	return cmd
}
