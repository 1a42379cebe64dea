package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/condohub/condoctl/internal/client"
	"github.com/condohub/condoctl/internal/ops"
	"github.com/condohub/condoctl/internal/session"
)

func newCategoriasCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "categorias",
		Short: "Manage complaint categories",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List categories",
		RunE: func(cmd *cobra.Command, args []string) error {
			categorias, err := client.NewCategorias(a.client).ListAll(cmd.Context())
			if err != nil {
				return err
			}
			rows := make([][]string, 0)
			for _, c := range categorias {
				rows = append(rows, []string{strconv.Itoa(c.ID), c.Nome, c.Descricao})
			}
			table(cmd, []string{"ID", "NOME", "DESCRICAO"}, rows)
			return nil
		},
	})
	return cmd
}

func newDashboardCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Show the condominium dashboard",
		RunE: func(cmd *cobra.Command, args []string) error {
			stats, err := a.client.GetDashboardStats(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "avisos ativos:     %d\n", stats.AvisosAtivos)
			fmt.Fprintf(out, "denuncias abertas: %d\n", stats.DenunciasAbertas)
			fmt.Fprintf(out, "usuarios ativos:   %d\n", stats.UsuariosAtivos)
			fmt.Fprintf(out, "taxa de resolução: %.1f%%\n", stats.TaxaResolucao)
			for status, count := range stats.DenunciasPorStatus {
				fmt.Fprintf(out, "  %-12s %d\n", status, count)
			}
			return nil
		},
	}
}

func newThemeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "theme",
		Short: "Show the persisted theme mode",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), a.store.ThemeMode())
			return nil
		},
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "toggle",
		Short: "Flip between light and dark",
		RunE: func(cmd *cobra.Command, args []string) error {
			mode, err := session.ToggleTheme(a.store)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), mode)
			return nil
		},
	})
	return cmd
}

func newWatchCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Poll resources and expose /healthz and /metrics",
		RunE: func(cmd *cobra.Command, args []string) error {
			targets, closers := a.watchTargets()
			defer func() {
				for _, closeFn := range closers {
					closeFn()
				}
			}()
			if len(targets) == 0 {
				return fmt.Errorf("no resources configured for watch")
			}

			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()

			watcher := ops.NewWatcher(a.cfg.Watch.Interval, targets, a.log)
			go watcher.Run(ctx)

			return ops.NewServer(a.cfg.Watch.Addr, a.log).Run(ctx)
		},
	}
}

func (a *app) watchTargets() ([]ops.Target, []func()) {
	var targets []ops.Target
	var closers []func()
	for _, name := range a.cfg.Watch.Resources {
		switch name {
		case "avisos":
			_, ctrl := a.avisosController()
			targets = append(targets, ops.Target{Name: name, Load: ctrl.Load})
			closers = append(closers, ctrl.Close)
		case "denuncias":
			_, ctrl := a.denunciasController()
			targets = append(targets, ops.Target{Name: name, Load: ctrl.Load})
			closers = append(closers, ctrl.Close)
		case "eventos":
			_, ctrl := a.eventosController()
			targets = append(targets, ops.Target{Name: name, Load: ctrl.Load})
			closers = append(closers, ctrl.Close)
		case "moradores":
			_, ctrl := a.moradoresController()
			targets = append(targets, ops.Target{Name: name, Load: ctrl.Load})
			closers = append(closers, ctrl.Close)
		default:
			a.log.Warn("unknown watch resource", "resource", name)
		}
	}
	return targets, closers
}
