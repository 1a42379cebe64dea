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
)

func newAvisosCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "avisos",
		Short: "Manage announcements",
	}
	cmd.AddCommand(
		newAvisosListCmd(a),
		newAvisosGetCmd(a),
		newAvisosCreateCmd(a),
		newAvisosUpdateCmd(a),
		newAvisosRemoveCmd(a),
	)
	return cmd
}

func (a *app) avisosController() (*client.Avisos, *controller.ListController[model.Aviso]) {
	res := client.NewAvisos(a.client)
	ctrl := controller.NewListController[model.Aviso](res, a.center, "aviso",
		controller.WithDebounce[model.Aviso](0),
		controller.WithLogger[model.Aviso](a.log),
	)
	return res, ctrl
}

func newAvisosListCmd(a *app) *cobra.Command {
	var search string
	var fuzzy bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List active announcements",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, ctrl := a.avisosController()
			defer ctrl.Close()

			ctrl.SetFuzzy(fuzzy)
			ctrl.SetSearchText(search)
			ctrl.Load(cmd.Context())
			if ctrl.State() == controller.StateError {
				return fmt.Errorf("%s", ctrl.ErrorMessage())
			}

			switch ctrl.Empty() {
			case controller.EmptyNoRecords:
				fmt.Fprintln(cmd.OutOrStdout(), "no avisos yet")
				return nil
			case controller.EmptyNoMatches:
				fmt.Fprintln(cmd.OutOrStdout(), "no avisos match the current filters")
				return nil
			}

			rows := make([][]string, 0)
			for _, aviso := range ctrl.Filtered() {
				author := ""
				if aviso.Usuario != nil {
					author = aviso.Usuario.Nome
				}
				rows = append(rows, []string{
					strconv.Itoa(aviso.ID),
					aviso.Nome,
					aviso.Descricao,
					author,
					aviso.Inclusao.Format("2006-01-02"),
				})
			}
			table(cmd, []string{"ID", "TITULO", "DESCRICAO", "AUTOR", "CRIADO"}, rows)
			return nil
		},
	}

	cmd.Flags().StringVarP(&search, "search", "s", "", "filter by title or description")
	cmd.Flags().BoolVar(&fuzzy, "fuzzy", false, "fuzzy text matching")
	return cmd
}

func newAvisosGetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show one announcement",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid id %q", args[0])
			}
			res, _ := a.avisosController()
			aviso, err := res.GetByID(cmd.Context(), id)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "#%d %s\n%s\n", aviso.ID, aviso.Nome, aviso.Descricao)
			return nil
		},
	}
}

func (a *app) avisosForm(ctx context.Context, res *client.Avisos, ctrl *controller.ListController[model.Aviso]) *controller.Form[model.CreateAvisoDTO] {
	return controller.NewForm[model.CreateAvisoDTO](
		func(ctx context.Context, draft model.CreateAvisoDTO) error {
			_, err := res.Create(ctx, draft)
			return err
		},
		func(ctx context.Context, id int, draft model.CreateAvisoDTO) error {
			_, err := res.Update(ctx, id, model.UpdateAvisoDTO{
				Nome:      draft.Nome,
				Descricao: draft.Descricao,
			})
			return err
		},
		func() { ctrl.FormSuccess(ctx) },
	)
}

func newAvisosCreateCmd(a *app) *cobra.Command {
	var titulo, descricao string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create an announcement",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !session.CanCreateAviso(session.CurrentRole(a.store)) {
				return fmt.Errorf("your role cannot create avisos")
			}
			profile := a.store.Profile()
			if profile == nil {
				return fmt.Errorf("not logged in")
			}

			res, ctrl := a.avisosController()
			defer ctrl.Close()
			form := a.avisosForm(cmd.Context(), res, ctrl)

			form.OpenCreate()
			form.SetDraft(model.CreateAvisoDTO{
				UsuarioID: profile.UsuarioID,
				Nome:      titulo,
				Descricao: descricao,
			})
			return form.Submit(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&titulo, "titulo", "", "announcement title")
	cmd.Flags().StringVar(&descricao, "descricao", "", "announcement body")
	return cmd
}

func newAvisosUpdateCmd(a *app) *cobra.Command {
	var titulo, descricao string

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update an announcement",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid id %q", args[0])
			}
			res, ctrl := a.avisosController()
			defer ctrl.Close()

			existing, err := res.GetByID(cmd.Context(), id)
			if err != nil {
				return err
			}
			draft := model.CreateAvisoDTO{
				UsuarioID: existing.UsuarioID,
				Nome:      existing.Nome,
				Descricao: existing.Descricao,
			}
			if cmd.Flags().Changed("titulo") {
				draft.Nome = titulo
			}
			if cmd.Flags().Changed("descricao") {
				draft.Descricao = descricao
			}

			form := a.avisosForm(cmd.Context(), res, ctrl)
			form.OpenEdit(id, draft)
			return form.Submit(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&titulo, "titulo", "", "new title")
	cmd.Flags().StringVar(&descricao, "descricao", "", "new body")
	return cmd
}

func newAvisosRemoveCmd(a *app) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "remove <id>",
		Short: "Deactivate an announcement",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid id %q", args[0])
			}
			_, ctrl := a.avisosController()
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
