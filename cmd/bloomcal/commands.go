package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/terraincognita07/bloomcal/internal/cli"
	"github.com/terraincognita07/bloomcal/internal/security"
	"github.com/terraincognita07/bloomcal/internal/services"
)

const secretKeyLength = 48

func newRootCommand() *cobra.Command {
	var dbPath string

	root := &cobra.Command{
		Use:          "bloomcal",
		Short:        "Cycle calendar server and maintenance tools",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&dbPath, "db", defaultDBPath(), "path to the SQLite database (env DB_PATH)")

	root.AddCommand(
		newServeCommand(&dbPath),
		newUserCommand(&dbPath),
		newImportCommand(&dbPath),
		newCyclesCommand(&dbPath),
		newMigrateCommand(&dbPath),
		newSecretCommand(),
	)
	return root
}

func newServeCommand(dbPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(*dbPath)
		},
	}
}

func newUserCommand(dbPath *string) *cobra.Command {
	userCmd := &cobra.Command{
		Use:   "user",
		Short: "Manage accounts",
	}

	var generate bool
	createCmd := &cobra.Command{
		Use:   "create <email>",
		Short: "Create an account",
		Long: `Create an account for the given email.

The password is read from the terminal without echo. With --generate a
random password is created and printed once.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			password := ""
			if !generate {
				var err error
				password, err = cli.PromptPassword(os.Stdin, cmd.OutOrStdout(), "Password: ")
				if err != nil {
					return err
				}
			}
			return cli.RunCreateUserCommand(*dbPath, args[0], password, cmd.OutOrStdout())
		},
	}
	createCmd.Flags().BoolVar(&generate, "generate", false, "generate a random password")

	resetCmd := &cobra.Command{
		Use:   "reset-password <email>",
		Short: "Replace an account password with a generated one",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cli.RunResetPasswordCommand(*dbPath, args[0], cmd.OutOrStdout())
		},
	}

	deleteCmd := &cobra.Command{
		Use:   "delete <email>",
		Short: "Delete an account and all of its entries",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cli.RunDeleteUserCommand(*dbPath, args[0], cmd.OutOrStdout())
		},
	}

	userCmd.AddCommand(createCmd, resetCmd, deleteCmd)
	return userCmd
}

func newImportCommand(dbPath *string) *cobra.Command {
	var email string
	var preferredSource string
	cmd := &cobra.Command{
		Use:   "import <export.json>",
		Short: "Load a JSON document export into an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := cli.RunImportCommand(cmd.Context(), *dbPath, email, args[0], preferredSource, cmd.OutOrStdout())
			return err
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "account that receives the documents")
	cmd.Flags().StringVar(&preferredSource, "preferred-source", getEnv("PREFERRED_SOURCE", ""), "source kept when a day has several documents")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

func newCyclesCommand(dbPath *string) *cobra.Command {
	var email string
	var preferredSource string
	cmd := &cobra.Command{
		Use:   "cycles",
		Short: "Print the cycle table for an account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			now := services.LocalDay(time.Now(), mustLoadLocation(getEnv("TZ", "UTC")))
			return cli.RunCyclesCommand(cmd.Context(), *dbPath, email, preferredSource, now, cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "account to report on")
	cmd.Flags().StringVar(&preferredSource, "preferred-source", getEnv("PREFERRED_SOURCE", ""), "source that wins when a day has several documents")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

func newMigrateCommand(dbPath *string) *cobra.Command {
	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Inspect schema migrations",
	}
	migrateCmd.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "List embedded migrations and whether they are applied",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cli.RunMigrationStatusCommand(*dbPath, cmd.OutOrStdout())
		},
	})
	return migrateCmd
}

func newSecretCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "secret",
		Short: "Print a random value suitable for SECRET_KEY",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			secret, err := security.GenerateSecretKey(secretKeyLength)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), secret)
			return nil
		},
	}
}
