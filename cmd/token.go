package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/frahmantamala/safety-lms/internal/auth"
)

var tokenCmd = &cobra.Command{
	Use:   "token [profile-id]",
	Short: "Issue a development access token for a profile",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(configPath)
		if err != nil {
			return err
		}
		deps, err := initializeDataLayer(cfg)
		if err != nil {
			return err
		}
		defer deps.Close()

		tokens := auth.NewJWTTokenGenerator(cfg.Security.JWTSecret, cfg.Security.GetAccessTokenDuration())
		svc := auth.NewService(tokens, deps.Facade, deps.Logger)

		token, err := svc.IssueToken(args[0])
		if err != nil {
			return fmt.Errorf("sign token: %w", err)
		}
		// a token is only useful for a profile that resolves
		uc, err := svc.Authenticate(context.Background(), token)
		if err != nil {
			return fmt.Errorf("profile %s cannot authenticate: %w", args[0], err)
		}
		fmt.Printf("plants: %v\n", uc.AccessiblePlants)
		fmt.Println(token)
		return nil
	},
}
