package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dtroode/identity-merge/internal/model"
	"github.com/dtroode/identity-merge/internal/service"
	"github.com/dtroode/identity-merge/internal/token"
)

func newTokenCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue tokens for the admin API",
	}

	cmd.AddCommand(newTokenIssueCommand())
	cmd.AddCommand(newTokenStateCommand())

	return cmd
}

func newTokenIssueCommand() *cobra.Command {
	var userName string

	cmd := &cobra.Command{
		Use:   "issue",
		Short: "Issue an access token for an existing account",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := loadConfig(os.Stderr, "token")
			if err != nil {
				return err
			}

			a, err := newApp(cmd.Context(), cfg, logger)
			if err != nil {
				return err
			}
			defer a.Close()

			tokens := service.NewTokenService(a.tokens, a.uow.Stores().Accounts, logger)
			accessToken, err := tokens.Issue(cmd.Context(), userName)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), accessToken)
			return nil
		},
	}

	cmd.Flags().StringVar(&userName, "user", "", "user name of the account")
	_ = cmd.MarkFlagRequired("user")

	return cmd
}

// newTokenStateCommand seals the state an external login callback carries.
// It needs no database.
func newTokenStateCommand() *cobra.Command {
	var (
		scheme    string
		userID    string
		returnURL string
	)

	cmd := &cobra.Command{
		Use:   "state",
		Short: "Seal external login state for ResolveExternalLogin",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := loadConfig(os.Stderr, "token")
			if err != nil {
				return err
			}

			props := model.AuthProperties{Items: map[string]string{model.ItemScheme: scheme}}
			if userID != "" {
				props.Items[model.ItemUserID] = userID
			}
			if returnURL != "" {
				props.Items[model.ItemReturnURL] = returnURL
				props.RedirectURI = returnURL
			}

			jwt := token.NewJWT(cfg.JWT.Secret).WithTTL(cfg.JWT.AccessTTL, cfg.JWT.StateTTL)
			state, err := jwt.SealState(props)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), state)
			return nil
		},
	}

	cmd.Flags().StringVar(&scheme, "scheme", "", "external login scheme, e.g. github")
	cmd.Flags().StringVar(&userID, "user-id", "", "account to connect the login to")
	cmd.Flags().StringVar(&returnURL, "return-url", "", "URL to return to after login")
	_ = cmd.MarkFlagRequired("scheme")

	return cmd
}
