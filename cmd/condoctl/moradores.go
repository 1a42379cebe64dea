package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/condohub/condoctl/internal/client"
	"github.com/condohub/condoctl/internal/controller"
	"github.com/condohub/condoctl/internal/model"
	"github.com/condohub/condoctl/internal/session"
	"github.com/condohub/condoctl/pkg/errors"
)

// moradorDraft is the page-level form shape: password optional on edit.
type moradorDraft struct {
	Nome  string `validate:"required"`
	Senha string `validate:"omitempty,min=6"`
}

func newMoradoresCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "moradores",
		Short: "Manage resident accounts",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !session.CanManageUsers(session.CurrentRole(a.store)) {
				return fmt.Errorf("your role cannot manage moradores")
			}
			return nil
		},
	}
	cmd.AddCommand(
		newMoradoresListCmd(a),
		newMoradoresGetCmd(a),
		newMoradoresCreateCmd(a),
		newMoradoresUpdateCmd(a),
		newMoradoresRemoveCmd(a),
	)
	return cmd
}

func (a *app) moradoresController() (*client.Moradores, *controller.ListController[model.Usuario]) {
	res := client.NewMoradores(a.client)
	ctrl := controller.NewListController[model.Usuario](res, a.center, "morador",
		controller.WithDebounce[model.Usuario](0),
		controller.WithLogger[model.Usuario](a.log),
	)
	return res, ctrl
}

func newMoradoresListCmd(a *app) *cobra.Command {
	var search string
	var fuzzy bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List active residents",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, ctrl := a.moradoresController()
			defer ctrl.Close()

			ctrl.SetFuzzy(fuzzy)
			ctrl.SetSearchText(search)
			ctrl.Load(cmd.Context())
			if ctrl.State() == controller.StateError {
				return fmt.Errorf("%s", ctrl.ErrorMessage())
			}

			switch ctrl.Empty() {
			case controller.EmptyNoRecords:
				fmt.Fprintln(cmd.OutOrStdout(), "no moradores yet")
				return nil
			case controller.EmptyNoMatches:
				fmt.Fprintln(cmd.OutOrStdout(), "no moradores match the current filters")
				return nil
			}

			rows := make([][]string, 0)
			for _, u := range ctrl.Filtered() {
				rows = append(rows, []string{
					strconv.Itoa(u.ID),
					u.Nome,
					u.Email,
					u.Role,
					u.Inclusao.Format("2006-01-02"),
				})
			}
			table(cmd, []string{"ID", "NOME", "EMAIL", "PERFIL", "DESDE"}, rows)
			return nil
		},
	}

	cmd.Flags().StringVarP(&search, "search", "s", "", "filter by name or email")
	cmd.Flags().BoolVar(&fuzzy, "fuzzy", false, "fuzzy text matching")
	return cmd
}

func newMoradoresGetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show one resident",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid id %q", args[0])
			}
			res, _ := a.moradoresController()
			u, err := res.GetByID(cmd.Context(), id)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "#%d %s (%s)\n", u.ID, u.Nome, u.Role)
			if u.Email != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "email: %s\n", u.Email)
			}
			return nil
		},
	}
}

func (a *app) moradoresForm(ctx context.Context, res *client.Moradores, ctrl *controller.ListController[model.Usuario]) *controller.Form[moradorDraft] {
	return controller.NewForm[moradorDraft](
		func(ctx context.Context, draft moradorDraft) error {
			if draft.Senha == "" {
				return errors.NewLocalValidation("senha is required")
			}
			_, err := res.Create(ctx, model.CreateUsuarioDTO{
				Nome:  draft.Nome,
				Senha: draft.Senha,
			})
			return err
		},
		func(ctx context.Context, id int, draft moradorDraft) error {
			_, err := res.Update(ctx, id, model.UpdateUsuarioDTO{
				Nome:  draft.Nome,
				Senha: draft.Senha,
			})
			return err
		},
		func() { ctrl.FormSuccess(ctx) },
	)
}

func newMoradoresCreateCmd(a *app) *cobra.Command {
	var nome, senha string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Register a resident",
		RunE: func(cmd *cobra.Command, args []string) error {
			res, ctrl := a.moradoresController()
			defer ctrl.Close()

			form := a.moradoresForm(cmd.Context(), res, ctrl)
			form.OpenCreate()
			form.SetDraft(moradorDraft{Nome: nome, Senha: senha})
			return form.Submit(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&nome, "nome", "", "resident user name")
	cmd.Flags().StringVar(&senha, "senha", "", "initial password")
	return cmd
}

func newMoradoresUpdateCmd(a *app) *cobra.Command {
	var nome, senha string

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a resident",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid id %q", args[0])
			}
			res, ctrl := a.moradoresController()
			defer ctrl.Close()

			existing, err := res.GetByID(cmd.Context(), id)
			if err != nil {
				return err
			}
			draft := moradorDraft{Nome: existing.Nome}
			if cmd.Flags().Changed("nome") {
				draft.Nome = nome
			}
			if cmd.Flags().Changed("senha") {
				draft.Senha = senha
			}

			form := a.moradoresForm(cmd.Context(), res, ctrl)
			form.OpenEdit(id, draft)
			return form.Submit(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&nome, "nome", "", "new user name")
	cmd.Flags().StringVar(&senha, "senha", "", "new password")
	return cmd
}

func newMoradoresRemoveCmd(a *app) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "remove <id>",
		Short: "Deactivate a resident",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid id %q", args[0])
			}
			_, ctrl := a.moradoresController()
			defer ctrl.Close()

			ctrl.RequestDelete(id)
			title, message, _ := ctrl.Confirmation().Prompt()
			if !confirmPrompt(cmd, title, message, yes) {
				ctrl.CancelDelete()
				return nil
			}
			ctrl.ConfirmDelete(cmd.Context())
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip confirmation")
	return cmd
}
