// ABOUTME: Terminal UI subcommand running the Bubble Tea program
// ABOUTME: Logs go to the configured file so they do not draw over the screen

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/newspulse/newspulse-client/internal/chat"
	"github.com/newspulse/newspulse-client/internal/dashboard"
	"github.com/newspulse/newspulse-client/internal/tui"
)

func runTUI(ctx context.Context, configPath string, args []string) error {
	fs := flag.NewFlagSet("tui", flag.ExitOnError)
	topic := fs.String("ask", "", "open the chat with a question about this topic")
	_ = fs.Parse(args)

	cfg, err := loadConfig(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	logOut, closeLog, err := openLogFile(cfg.Logging.File)
	if err != nil {
		return err
	}
	defer closeLog()

	// No banners are shown in the TUI; navigation is reported after exit.
	a, err := newApp(ctx, configPath, logOut, newConsoleSurface(logOut), nil)
	if err != nil {
		return err
	}
	defer a.Close()

	user, _ := a.session.ID()
	model := tui.New(ctx, tui.Deps{
		Asker:    chat.NewClient(cfg.Backend.BaseURL, nil),
		Fetcher:  dashboard.NewClient(cfg.Backend.BaseURL, nil),
		PageURL:  cfg.Backend.PageURL,
		Logout:   a.forms.Logout,
		AskTopic: *topic,
		User:     user,
		Logger:   a.logger,
	})

	final, err := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	if err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("running terminal UI: %w", err)
	}

	if m, ok := final.(tui.Model); ok && m.LoggedOut {
		fmt.Printf("Signed out. → %s\n", a.navigator.Destination())
	}
	return nil
}
