package main

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/condohub/condoctl/internal/client"
	"github.com/condohub/condoctl/internal/controller"
	"github.com/condohub/condoctl/internal/model"
)

func newEventosCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "eventos",
		Short: "Manage events",
	}
	cmd.AddCommand(
		newEventosListCmd(a),
		newEventosGetCmd(a),
		newEventosCreateCmd(a),
		newEventosUpdateCmd(a),
		newEventosRemoveCmd(a),
	)
	return cmd
}

// eventosController sorts the filtered view ascending by event date, an
// explicit display step on top of order-preserving filtering.
func (a *app) eventosController() (*client.Eventos, *controller.ListController[model.Evento]) {
	res := client.NewEventos(a.client)
	ctrl := controller.NewListController[model.Evento](res, a.center, "evento",
		controller.WithDebounce[model.Evento](0),
		controller.WithLogger[model.Evento](a.log),
		controller.WithSort[model.Evento](func(x, y model.Evento) bool {
			return x.DataEvento.Before(y.DataEvento)
		}),
	)
	return res, ctrl
}

func newEventosListCmd(a *app) *cobra.Command {
	var search string
	var fuzzy bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List events by date",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, ctrl := a.eventosController()
			defer ctrl.Close()

			ctrl.SetFuzzy(fuzzy)
			ctrl.SetSearchText(search)
			ctrl.Load(cmd.Context())
			if ctrl.State() == controller.StateError {
				return fmt.Errorf("%s", ctrl.ErrorMessage())
			}

			switch ctrl.Empty() {
			case controller.EmptyNoRecords:
				fmt.Fprintln(cmd.OutOrStdout(), "no eventos yet")
				return nil
			case controller.EmptyNoMatches:
				fmt.Fprintln(cmd.OutOrStdout(), "no eventos match the current filters")
				return nil
			}

			now := time.Now()
			rows := make([][]string, 0)
			for _, e := range ctrl.Filtered() {
				status := "realizado"
				if e.Upcoming(now) {
					status = "próximo"
				}
				rows = append(rows, []string{
					strconv.Itoa(e.ID),
					e.Titulo,
					e.DataEvento.Format("2006-01-02 15:04"),
					e.Local,
					status,
				})
			}
			table(cmd, []string{"ID", "TITULO", "DATA", "LOCAL", "STATUS"}, rows)
			return nil
		},
	}

	cmd.Flags().StringVarP(&search, "search", "s", "", "filter by title or description")
	cmd.Flags().BoolVar(&fuzzy, "fuzzy", false, "fuzzy text matching")
	return cmd
}

func newEventosGetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show one event",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid id %q", args[0])
			}
			res, _ := a.eventosController()
			e, err := res.GetByID(cmd.Context(), id)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "#%d %s\n%s\n%s", e.ID, e.Titulo, e.DataEvento.Format("2006-01-02 15:04"), e.Descricao)
			if e.Local != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "\nlocal: %s", e.Local)
			}
			fmt.Fprintln(cmd.OutOrStdout())
			return nil
		},
	}
}

func (a *app) eventosForm(ctx context.Context, res *client.Eventos, ctrl *controller.ListController[model.Evento]) *controller.Form[model.CreateEventoDTO] {
	return controller.NewForm[model.CreateEventoDTO](
		func(ctx context.Context, draft model.CreateEventoDTO) error {
			_, err := res.Create(ctx, draft)
			return err
		},
		func(ctx context.Context, id int, draft model.CreateEventoDTO) error {
			data := draft.DataEvento
			_, err := res.Update(ctx, id, model.UpdateEventoDTO{
				Titulo:     draft.Titulo,
				Descricao:  draft.Descricao,
				DataEvento: &data,
				Local:      draft.Local,
			})
			return err
		},
		func() { ctrl.FormSuccess(ctx) },
	)
}

func parseEventDate(s string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339, "2006-01-02 15:04", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q, use YYYY-MM-DD or RFC3339", s)
}

func newEventosCreateCmd(a *app) *cobra.Command {
	var titulo, descricao, data, local string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create an event",
		RunE: func(cmd *cobra.Command, args []string) error {
			res, ctrl := a.eventosController()
			defer ctrl.Close()

			var when time.Time
			if data != "" {
				parsed, err := parseEventDate(data)
				if err != nil {
					return err
				}
				when = parsed
			}

			form := a.eventosForm(cmd.Context(), res, ctrl)
			form.OpenCreate()
			form.SetDraft(model.CreateEventoDTO{
				Titulo:     titulo,
				Descricao:  descricao,
				DataEvento: when,
				Local:      local,
			})
			return form.Submit(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&titulo, "titulo", "", "event title")
	cmd.Flags().StringVar(&descricao, "descricao", "", "event description")
	cmd.Flags().StringVar(&data, "data", "", "event date")
	cmd.Flags().StringVar(&local, "local", "", "event location")
	return cmd
}

func newEventosUpdateCmd(a *app) *cobra.Command {
	var titulo, descricao, data, local string

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update an event",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid id %q", args[0])
			}
			res, ctrl := a.eventosController()
			defer ctrl.Close()

			existing, err := res.GetByID(cmd.Context(), id)
			if err != nil {
				return err
			}
			draft := model.CreateEventoDTO{
				Titulo:     existing.Titulo,
				Descricao:  existing.Descricao,
				DataEvento: existing.DataEvento,
				Local:      existing.Local,
			}
			if cmd.Flags().Changed("titulo") {
				draft.Titulo = titulo
			}
			if cmd.Flags().Changed("descricao") {
				draft.Descricao = descricao
			}
			if cmd.Flags().Changed("data") {
				parsed, err := parseEventDate(data)
				if err != nil {
					return err
				}
				draft.DataEvento = parsed
			}
			if cmd.Flags().Changed("local") {
				draft.Local = local
			}

			form := a.eventosForm(cmd.Context(), res, ctrl)
			form.OpenEdit(id, draft)
			return form.Submit(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&titulo, "titulo", "", "new title")
	cmd.Flags().StringVar(&descricao, "descricao", "", "new description")
	cmd.Flags().StringVar(&data, "data", "", "new date")
	cmd.Flags().StringVar(&local, "local", "", "new location")
	return cmd
}

func newEventosRemoveCmd(a *app) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "remove <id>",
		Short: "Deactivate an event",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid id %q", args[0])
			}
			_, ctrl := a.eventosController()
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
