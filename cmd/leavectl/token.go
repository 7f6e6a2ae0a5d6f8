package main

import (
	"fmt"
	"time"

	"github.com/cmlabs-hris/leave-calendar/internal/config"
	"github.com/cmlabs-hris/leave-calendar/internal/domain/user"
	"github.com/cmlabs-hris/leave-calendar/internal/pkg/jwt"
	"github.com/spf13/cobra"
)

func newTokenCmd() *cobra.Command {
	var (
		identity user.Identity
		role     string
	)

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue an access token signed with JWT_SECRET_KEY",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			identity.Role = user.Role(role)
			if _, ok := user.RolePermissions[identity.Role]; !ok && identity.Role != user.RolePending {
				return fmt.Errorf("unknown role %q", role)
			}

			cfg, err := config.Load()
			if err != nil {
				return err
			}

			token, expiresAt, err := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration).GenerateAccessToken(identity)
			if err != nil {
				return fmt.Errorf("failed to generate access token: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), token)
			fmt.Fprintf(cmd.ErrOrStderr(), "expires at %s\n", time.Unix(expiresAt, 0).UTC().Format(time.RFC3339))
			return nil
		},
	}
	cmd.Flags().StringVar(&identity.UserID, "user", "", "user ID")
	cmd.Flags().StringVar(&identity.EmployeeID, "employee", "", "employee ID")
	cmd.Flags().StringVar(&identity.CompanyID, "company", "", "company ID")
	cmd.Flags().StringVar(&role, "role", string(user.RoleEmployee), "owner, manager, employee or pending")
	_ = cmd.MarkFlagRequired("user")
	return cmd
}
