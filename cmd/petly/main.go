package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/petly-community/petly/internal/version"
	"github.com/spf13/cobra"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmd := newRootCmd()
	if err := cmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "petly",
		Short:         "petly client",
		Long:          `Command line client and local ui-api server for the petly pet adoption platform`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	v := version.Get()
	cmd.Version = fmt.Sprintf("%s (built %s, commit %s)", v.Version, v.BuildDate, v.GitCommit)

	cmd.AddCommand(
		newServeCmd(),
		newMigrateCmd(),
		newLoginCmd(),
		newRegisterCmd(),
		newLogoutCmd(),
		newWhoamiCmd(),
		newPetsCmd(),
		newEventsCmd(),
		newAdoptionsCmd(),
		newReportsCmd(),
		newUsersCmd(),
	)
	return cmd
}
