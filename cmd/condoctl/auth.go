package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/condohub/condoctl/internal/client"
	"github.com/condohub/condoctl/internal/session"
)

func newLoginCmd(a *app) *cobra.Command {
	var usuario, senha string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Authenticate against the backend and store the credential",
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := a.client.Login(cmd.Context(), client.LoginDTO{
				Nome:  usuario,
				Senha: senha,
			})
			if err != nil {
				return err
			}
			a.center.Success(fmt.Sprintf("logged in as %s", resp.Nome))
			return nil
		},
	}

	cmd.Flags().StringVarP(&usuario, "usuario", "u", "", "user name")
	cmd.Flags().StringVarP(&senha, "senha", "p", "", "password")
	cmd.MarkFlagRequired("usuario")
	cmd.MarkFlagRequired("senha")
	return cmd
}

func newLogoutCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Drop the stored credential",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.client.Logout(); err != nil {
				return err
			}
			a.center.Info("logged out")
			return nil
		},
	}
}

func newWhoamiCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the logged-in user and role",
		RunE: func(cmd *cobra.Command, args []string) error {
			profile := a.store.Profile()
			if profile == nil || a.store.Token() == "" {
				return fmt.Errorf("not logged in")
			}
			role := session.CurrentRole(a.store)
			fmt.Fprintf(cmd.OutOrStdout(), "%s (%s)\n", profile.Nome, role)
			return nil
		},
	}
}
