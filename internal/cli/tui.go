package cli

import (
	"mailchips/internal/docs"
	"mailchips/internal/tui"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

func runTUI(cmd *cobra.Command, app *App, args []string) error {
	seed := append([]string{}, args...)
	var progOpts []tea.ProgramOption
	if app.flags.stdin {
		more, err := readAddresses(cmd.InOrStdin())
		if err != nil {
			return writeErr(cmd, err)
		}
		seed = append(seed, more...)
		// Stdin was consumed; read keys from the terminal instead.
		progOpts = append(progOpts, tea.WithInputTTY())
	}

	log, err := newLogger(app.cfg.LogFile, app.Verbose, true)
	if err != nil {
		return writeErr(cmd, err)
	}
	app.log = log

	sess := newSession(app.cfg, log, seed)
	defer sess.Close()

	helpMD, _ := docs.Get("keys")
	m := tui.New(sess.ctl, tui.Options{
		ShowInvalidContainer: app.cfg.ShowInvalidContainer,
		DisplayOnly:          app.cfg.DisplayOnly,
		HelpMarkdown:         helpMD,
		Theme:                app.cfg.Theme,
	})
	progOpts = append(progOpts, tea.WithAltScreen(), tea.WithOutput(cmd.ErrOrStderr()))
	if _, err := tui.Run(m, progOpts...); err != nil {
		return writeErr(cmd, err)
	}
	return writeOut(cmd, app, map[string]any{"data": sess.list()})
}
