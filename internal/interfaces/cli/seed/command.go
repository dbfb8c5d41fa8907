package seed

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dggcrm/dggcrm/internal/infrastructure/database"
	"github.com/dggcrm/dggcrm/internal/infrastructure/repository"
	"github.com/dggcrm/dggcrm/internal/interfaces/cli/bootstrap"
)

var (
	env      string
	seedFile string
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load accounts, roles and tags from a YAML file",
		Long:  `Create or update accounts with their roles and the tag catalogue described in a YAML seed file. Safe to run repeatedly.`,
		RunE:  run,
	}

	cmd.Flags().StringVarP(&env, "env", "e", "development", "Environment (development, test, production)")
	cmd.Flags().StringVarP(&seedFile, "file", "f", "seed.yaml", "Path to the seed file")

	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	fh, err := os.Open(seedFile)
	if err != nil {
		return fmt.Errorf("failed to open seed file: %w", err)
	}
	defer fh.Close()

	doc, err := Parse(fh)
	if err != nil {
		return err
	}

	cfg, log, err := bootstrap.Init(bootstrap.ResolveEnv(env), true)
	if err != nil {
		return err
	}
	defer database.Close()

	enforcer, err := bootstrap.Enforcer(cfg, log)
	if err != nil {
		return err
	}

	gdb := database.Get()
	seeder := NewSeeder(
		repository.NewUserRepository(gdb, log),
		repository.NewTagRepository(gdb),
		enforcer,
		log,
	)

	res, err := seeder.Run(context.Background(), doc)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "accounts: %d created, %d updated\ntags: %d created, %d updated\n",
		res.AccountsCreated, res.AccountsUpdated, res.TagsCreated, res.TagsUpdated)
	return nil
}
