package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/condohub/condoctl/config"
	"github.com/condohub/condoctl/internal/client"
	"github.com/condohub/condoctl/internal/notifier"
	"github.com/condohub/condoctl/internal/session"
	"github.com/condohub/condoctl/pkg/logger"
	"github.com/condohub/condoctl/pkg/metrics"
)

type app struct {
	cfg     *config.Config
	log     *logger.Logger
	store   *session.FileStore
	client  *client.Client
	metrics *metrics.Metrics
	center  *notifier.Center
}

func newApp() (*app, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}

	log := logger.NewLogger(&logger.Config{
		Level:  logger.ParseLevel(cfg.Log.Level),
		Output: os.Stderr,
	})

	store, err := session.NewFileStore(cfg.Storage.Dir)
	if err != nil {
		return nil, err
	}

	m := metrics.NewMetrics("condoctl", "client")
	apiClient := client.New(store, client.Options{
		BaseURL:           cfg.API.BaseURL,
		Timeout:           cfg.API.Timeout,
		RequestsPerSecond: cfg.API.RequestsPerSecond,
		Burst:             cfg.API.Burst,
		Metrics:           m,
		Logger:            log,
	})

	center := notifier.NewCenter(
		notifier.WithTTL(cfg.Notifier.TTL),
		notifier.WithMetrics(m),
	)
	center.Subscribe(func(n notifier.Notification) {
		fmt.Fprintf(os.Stderr, "[%s] %s\n", n.Severity, n.Message)
	})

	return &app{
		cfg:     cfg,
		log:     log,
		store:   store,
		client:  apiClient,
		metrics: m,
		center:  center,
	}, nil
}

func (a *app) close() {
	a.center.Close()
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "condoctl",
		Short:         "Manage condominium avisos, denuncias, eventos and moradores",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	root.AddCommand(
		newLoginCmd(a),
		newLogoutCmd(a),
		newWhoamiCmd(a),
		newAvisosCmd(a),
		newDenunciasCmd(a),
		newEventosCmd(a),
		newMoradoresCmd(a),
		newCategoriasCmd(a),
		newDashboardCmd(a),
		newThemeCmd(a),
		newWatchCmd(a),
	)
	return root
}

// confirmPrompt asks y/N on the terminal; yes skips the prompt.
func confirmPrompt(cmd *cobra.Command, title, message string, yes bool) bool {
	if yes {
		return true
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s\n%s [y/N]: ", title, message)
	reader := bufio.NewReader(cmd.InOrStdin())
	answer, _ := reader.ReadString('\n')
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "s" || answer == "yes" || answer == "sim"
}

// table writes aligned columns to the command's stdout.
func table(cmd *cobra.Command, header []string, rows [][]string) {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, strings.Join(header, "\t"))
	for _, row := range rows {
		fmt.Fprintln(w, strings.Join(row, "\t"))
	}
	w.Flush()
}
