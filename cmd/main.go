package cmd

import (
	"context"

	"github.com/spf13/cobra"
)

func Run() error {
	ctx := context.Background()

	cmd := &cobra.Command{
		Use:          "biblioteca",
		Short:        "library lending service: catalog, rentals and accounts",
		SilenceUsage: true,
	}

	cmd.AddCommand(HTTPCommand(ctx))
	cmd.AddCommand(IndexesCommand(ctx))

	if err := cmd.Execute(); err != nil {
		return err
	}

	return nil
}
