package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/condohub/condoctl/internal/client"
	"github.com/condohub/condoctl/internal/controller"
	"github.com/condohub/condoctl/internal/model"
)

func newDenunciasCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "denuncias",
		Short: "Manage complaints",
	}
	cmd.AddCommand(
		newDenunciasListCmd(a),
		newDenunciasGetCmd(a),
		newDenunciasCreateCmd(a),
		newDenunciasUpdateCmd(a),
		newDenunciasRemoveCmd(a),
	)
	return cmd
}

func (a *app) denunciasController() (*client.Denuncias, *controller.ListController[model.Denuncia]) {
	res := client.NewDenuncias(a.client)
	ctrl := controller.NewListController[model.Denuncia](res, a.center, "denuncia",
		controller.WithDebounce[model.Denuncia](0),
		controller.WithLogger[model.Denuncia](a.log),
	)
	return res, ctrl
}

func newDenunciasListCmd(a *app) *cobra.Command {
	var search, status, prioridade, categoria string
	var fuzzy bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List active complaints",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, ctrl := a.denunciasController()
			defer ctrl.Close()

			ctrl.SetFuzzy(fuzzy)
			ctrl.SetSearchText(search)
			ctrl.SetFieldFilter(model.FieldStatus, status)
			ctrl.SetFieldFilter(model.FieldPrioridade, prioridade)
			ctrl.SetFieldFilter(model.FieldCategoria, categoria)
			ctrl.Load(cmd.Context())
			if ctrl.State() == controller.StateError {
				return fmt.Errorf("%s", ctrl.ErrorMessage())
			}

			switch ctrl.Empty() {
			case controller.EmptyNoRecords:
				fmt.Fprintln(cmd.OutOrStdout(), "no denuncias yet")
				return nil
			case controller.EmptyNoMatches:
				fmt.Fprintln(cmd.OutOrStdout(), "no denuncias match the current filters")
				return nil
			}

			rows := make([][]string, 0)
			for _, d := range ctrl.Filtered() {
				rows = append(rows, []string{
					strconv.Itoa(d.ID),
					d.Nome,
					d.Status,
					d.Prioridade,
					d.Inclusao.Format("2006-01-02"),
				})
			}
			table(cmd, []string{"ID", "TITULO", "STATUS", "PRIORIDADE", "CRIADO"}, rows)
			return nil
		},
	}

	cmd.Flags().StringVarP(&search, "search", "s", "", "filter by title or description")
	cmd.Flags().StringVar(&status, "status", model.FilterAll, "filter by status")
	cmd.Flags().StringVar(&prioridade, "prioridade", model.FilterAll, "filter by priority")
	cmd.Flags().StringVar(&categoria, "categoria", model.FilterAll, "filter by category id")
	cmd.Flags().BoolVar(&fuzzy, "fuzzy", false, "fuzzy text matching")
	return cmd
}

func newDenunciasGetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show one complaint",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid id %q", args[0])
			}
			res, _ := a.denunciasController()
			d, err := res.GetByID(cmd.Context(), id)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "#%d %s [%s/%s]\n%s\n", d.ID, d.Nome, d.Status, d.Prioridade, d.Descricao)
			return nil
		},
	}
}

func (a *app) denunciasForm(ctx context.Context, res *client.Denuncias, ctrl *controller.ListController[model.Denuncia]) *controller.Form[model.CreateDenunciaDTO] {
	return controller.NewForm[model.CreateDenunciaDTO](
		func(ctx context.Context, draft model.CreateDenunciaDTO) error {
			_, err := res.Create(ctx, draft)
			return err
		},
		func(ctx context.Context, id int, draft model.CreateDenunciaDTO) error {
			_, err := res.Update(ctx, id, model.UpdateDenunciaDTO{
				Nome:      draft.Nome,
				Descricao: draft.Descricao,
			})
			return err
		},
		func() { ctrl.FormSuccess(ctx) },
	)
}

func newDenunciasCreateCmd(a *app) *cobra.Command {
	var titulo, descricao, prioridade string
	var categoriaID int

	cmd := &cobra.Command{
		Use:   "create",
		Short: "File a complaint",
		RunE: func(cmd *cobra.Command, args []string) error {
			profile := a.store.Profile()
			if profile == nil {
				return fmt.Errorf("not logged in")
			}

			res, ctrl := a.denunciasController()
			defer ctrl.Close()

			if categoriaID != 0 {
				// Resolve against the cached category list so typos fail here
				// instead of on the backend.
				categorias, err := client.NewCategorias(a.client).ListAll(cmd.Context())
				if err == nil && !categoriaExists(categorias, categoriaID) {
					return fmt.Errorf("unknown categoria %d", categoriaID)
				}
			}

			form := a.denunciasForm(cmd.Context(), res, ctrl)
			form.OpenCreate()
			form.SetDraft(model.CreateDenunciaDTO{
				UsuarioID:   profile.UsuarioID,
				CategoriaID: categoriaID,
				Nome:        titulo,
				Descricao:   descricao,
				Prioridade:  prioridade,
			})
			return form.Submit(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&titulo, "titulo", "", "complaint title")
	cmd.Flags().StringVar(&descricao, "descricao", "", "complaint description")
	cmd.Flags().StringVar(&prioridade, "prioridade", model.PrioridadeMedia, "priority (Baixa|Média|Alta|Urgente)")
	cmd.Flags().IntVar(&categoriaID, "categoria", 0, "category id")
	return cmd
}

func categoriaExists(categorias []model.Categoria, id int) bool {
	for _, c := range categorias {
		if c.ID == id {
			return true
		}
	}
	return false
}

func newDenunciasUpdateCmd(a *app) *cobra.Command {
	var titulo, descricao string

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a complaint",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid id %q", args[0])
			}
			res, ctrl := a.denunciasController()
			defer ctrl.Close()

			existing, err := res.GetByID(cmd.Context(), id)
			if err != nil {
				return err
			}
			draft := model.CreateDenunciaDTO{
				UsuarioID:   existing.UsuarioID,
				CategoriaID: existing.CategoriaID,
				Nome:        existing.Nome,
				Descricao:   existing.Descricao,
				Prioridade:  existing.Prioridade,
			}
			if draft.Prioridade == "" {
				draft.Prioridade = model.PrioridadeMedia
			}
			if cmd.Flags().Changed("titulo") {
				draft.Nome = titulo
			}
			if cmd.Flags().Changed("descricao") {
				draft.Descricao = descricao
			}

			form := a.denunciasForm(cmd.Context(), res, ctrl)
			form.OpenEdit(id, draft)
			return form.Submit(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&titulo, "titulo", "", "new title")
	cmd.Flags().StringVar(&descricao, "descricao", "", "new description")
	return cmd
}

func newDenunciasRemoveCmd(a *app) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "remove <id>",
		Short: "Deactivate a complaint",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid id %q", args[0])
			}
			_, ctrl := a.denunciasController()
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
