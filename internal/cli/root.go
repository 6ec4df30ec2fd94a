package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/shenikar/citizen_report/internal/app"
	"github.com/shenikar/citizen_report/internal/config"
	"github.com/shenikar/citizen_report/pkg/logger"
	"github.com/spf13/cobra"
)

// state - состояние, общее для всех команд одного запуска
type state struct {
	logOutput io.Writer
	app       *app.App
}

// newRootCommand собирает дерево команд клиента.
// Вызывающий закрывает state после выполнения: cobra не вызывает post-run при ошибке.
func newRootCommand(logOutput io.Writer) (*cobra.Command, *state) {
	st := &state{logOutput: logOutput}

	root := &cobra.Command{
		Use:           "citizen-report",
		Short:         "Client for the Citizen Report incident reporting service",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return st.open(cmd.Context())
		},
	}

	root.AddCommand(
		newLoginCommand(st),
		newLogoutCommand(st),
		newWhoamiCommand(st),
		newIncidentsCommand(st),
		newMineCommand(st),
		newReportCommand(st),
		newCategoriesCommand(st),
		newLocateCommand(st),
		newSettingsCommand(st),
		newRegisterPushCommand(st),
		newServeCommand(st),
	)
	return root, st
}

func (st *state) open(ctx context.Context) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	log := logger.NewWithOutput(cfg.LogLevel, st.logOutput)

	a, err := app.Open(ctx, cfg, log)
	if err != nil {
		return fmt.Errorf("failed to start client: %w", err)
	}
	st.app = a
	return nil
}

func (st *state) close() error {
	if st.app == nil {
		return nil
	}
	err := st.app.Close()
	st.app = nil
	return err
}

// Execute запускает CLI и возвращает код выхода
func Execute(ctx context.Context) int {
	cmd, st := newRootCommand(os.Stderr)
	err := cmd.ExecuteContext(ctx)
	if closeErr := st.close(); err == nil {
		err = closeErr
	}
	if err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), "Error:", err)
		return 1
	}
	return 0
}
