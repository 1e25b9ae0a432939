package admin

import (
	"fmt"
	"strconv"

	"github.com/caarlos0/tablewriter"
	"github.com/craftplan/craftplan/cmd"
	"github.com/craftplan/craftplan/pkg/backend"
	"github.com/craftplan/craftplan/pkg/db"
	"github.com/craftplan/craftplan/pkg/db/migrate"
	"github.com/craftplan/craftplan/pkg/db/models"
	"github.com/craftplan/craftplan/pkg/proto"
	"github.com/craftplan/craftplan/pkg/store"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

var (
	// Command is the admin command.
	Command = &cobra.Command{
		Use:   "admin",
		Short: "Administrate the server",
	}

	migrateCmd = &cobra.Command{
		Use:                "migrate",
		Short:              "Migrate the database to the latest version",
		PersistentPreRunE:  cmd.InitBackendContext,
		PersistentPostRunE: cmd.CloseDBContext,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			db := db.FromContext(ctx)
			if err := migrate.Migrate(ctx, db); err != nil {
				return fmt.Errorf("migration: %w", err)
			}

			return nil
		},
	}

	rollbackCmd = &cobra.Command{
		Use:                "rollback",
		Short:              "Rollback the database to the previous version",
		PersistentPreRunE:  cmd.InitBackendContext,
		PersistentPostRunE: cmd.CloseDBContext,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			db := db.FromContext(ctx)
			if err := migrate.Rollback(ctx, db); err != nil {
				return fmt.Errorf("rollback: %w", err)
			}

			return nil
		},
	}

	syncContactsCmd = &cobra.Command{
		Use:                "sync-contacts",
		Short:              "Relink contacts to users by email",
		PersistentPreRunE:  cmd.InitBackendContext,
		PersistentPostRunE: cmd.CloseDBContext,
		RunE: func(c *cobra.Command, _ []string) error {
			ctx := c.Context()
			be := backend.FromContext(ctx)
			linked, err := be.SyncContacts(ctx)
			if err != nil {
				return fmt.Errorf("sync contacts: %w", err)
			}

			c.Printf("Linked %d contacts\n", linked)
			return nil
		},
	}

	listUsersCmd = &cobra.Command{
		Use:                "users",
		Aliases:            []string{"list-users"},
		Short:              "List all users",
		Args:               cobra.NoArgs,
		PersistentPreRunE:  cmd.InitBackendContext,
		PersistentPostRunE: cmd.CloseDBContext,
		RunE: func(c *cobra.Command, _ []string) error {
			ctx := c.Context()
			be := backend.FromContext(ctx)

			users, err := be.Users(ctx)
			if err != nil {
				return err
			}

			return tablewriter.Render(
				c.OutOrStdout(),
				users,
				[]string{"ID", "Email", "Name", "External ID"},
				func(u proto.User) ([]string, error) {
					return []string{
						strconv.FormatInt(u.ID(), 10),
						u.Email(),
						u.DisplayName(),
						u.ExternalID(),
					}, nil
				},
			)
		},
	}

	listOrgsCmd = &cobra.Command{
		Use:                "orgs",
		Aliases:            []string{"list-orgs"},
		Short:              "List all organizations",
		Args:               cobra.NoArgs,
		PersistentPreRunE:  cmd.InitBackendContext,
		PersistentPostRunE: cmd.CloseDBContext,
		RunE: func(c *cobra.Command, _ []string) error {
			ctx := c.Context()
			dbx := db.FromContext(ctx)
			st := store.FromContext(ctx)

			orgs, err := st.GetAllOrgs(ctx, dbx)
			if err != nil {
				return err
			}

			return tablewriter.Render(
				c.OutOrStdout(),
				orgs,
				[]string{"ID", "Name", "Created"},
				func(o models.Organization) ([]string, error) {
					return []string{
						strconv.FormatInt(o.ID, 10),
						o.Name,
						humanize.Time(o.CreatedAt),
					}, nil
				},
			)
		},
	}
)

func init() {
	Command.AddCommand(
		migrateCmd,
		rollbackCmd,
		syncContactsCmd,
		listUsersCmd,
		listOrgsCmd,
	)
}
