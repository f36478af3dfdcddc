package main

import (
	"context"
	"errors"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/n42/gewe-go/internal/store"
)

var errNoDatabase = errors.New("database.uri is not configured")

func sessionsCmd(g *globals) *cobra.Command {
	withStore := func(ctx context.Context, fn func(*store.Database) error) error {
		db, err := g.openStore(ctx)
		if err != nil {
			return err
		}
		if db == nil {
			return errNoDatabase
		}
		defer db.Close()
		return fn(db)
	}

	cmd := &cobra.Command{
		Use:   "sessions",
		Short: "List stored gateway sessions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withStore(cmd.Context(), func(db *store.Database) error {
				sessions, err := db.Sessions.List(cmd.Context())
				if err != nil {
					return err
				}
				tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
				fmt.Fprintln(tw, "APP ID\tWXID\tNICKNAME\tCALLBACK\tUPDATED")
				for _, s := range sessions {
					fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
						s.AppID, s.Wxid, s.Nickname, s.CallbackURL, s.UpdatedAt.Format(time.RFC3339))
				}
				return tw.Flush()
			})
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "delete <app-id>",
		Short: "Forget a stored session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd.Context(), func(db *store.Database) error {
				return db.Sessions.Delete(cmd.Context(), args[0])
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "callbacks <app-id>",
		Short: "Show the most recent callbacks logged for a device",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd.Context(), func(db *store.Database) error {
				entries, err := db.Callbacks.Recent(cmd.Context(), args[0], 20)
				if err != nil {
					return err
				}
				for _, e := range entries {
					fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s\n", e.ReceivedAt.Format(time.RFC3339), e.TypeName, e.Payload)
				}
				return nil
			})
		},
	})
	return cmd
}
