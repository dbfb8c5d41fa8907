package user

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	userDomain "github.com/dggcrm/dggcrm/internal/domain/user"
	"github.com/dggcrm/dggcrm/internal/infrastructure/database"
	"github.com/dggcrm/dggcrm/internal/infrastructure/repository"
	"github.com/dggcrm/dggcrm/internal/interfaces/cli/bootstrap"
	"github.com/dggcrm/dggcrm/internal/shared/authorization"
)

var env string

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Account administration",
	}

	cmd.PersistentFlags().StringVarP(&env, "env", "e", "development", "Environment (development, test, production)")
	cmd.AddCommand(newRoleCommand())

	return cmd
}

func newRoleCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "role <email> <role>",
		Short: "Set the role of an account",
		Long:  `Set the role of an account (needs_approval, organizer or admin). Useful for promoting the first admin.`,
		Args:  cobra.ExactArgs(2),
		RunE:  runRole,
	}
}

// RoleSyncer mirrors account roles into the policy enforcer.
type RoleSyncer interface {
	SetUserRole(userID uint, role authorization.UserRole) error
}

// SetRole changes the role of the account with the given primary email and
// mirrors it into the enforcer.
func SetRole(ctx context.Context, users userDomain.Repository, roles RoleSyncer, email, roleName string) (*userDomain.User, error) {
	role, ok := authorization.ParseUserRole(roleName)
	if !ok {
		return nil, fmt.Errorf("unknown role %q", roleName)
	}

	u, err := users.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to find account %s: %w", email, err)
	}

	if err := u.ChangeRole(role); err != nil {
		return nil, err
	}
	if err := users.Update(ctx, u); err != nil {
		return nil, err
	}
	if err := roles.SetUserRole(u.ID(), role); err != nil {
		return nil, fmt.Errorf("failed to sync role: %w", err)
	}
	return u, nil
}

func runRole(cmd *cobra.Command, args []string) error {
	cfg, log, err := bootstrap.Init(bootstrap.ResolveEnv(env), true)
	if err != nil {
		return err
	}
	defer database.Close()

	enforcer, err := bootstrap.Enforcer(cfg, log)
	if err != nil {
		return err
	}

	u, err := SetRole(context.Background(), repository.NewUserRepository(database.Get(), log), enforcer, args[0], args[1])
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s is now %s\n", u.Email(), u.Role())
	return nil
}
