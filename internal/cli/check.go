package cli

import (
	"errors"

	"mailchips/internal/emails"

	"github.com/spf13/cobra"
)

func newCheckCmd(app *App) *cobra.Command {
	var fromStdin bool
	var strict bool

	cmd := &cobra.Command{
		Use:   "check [address...]",
		Short: "Add addresses through the widget's rules and report the result",
		Long: `Runs every address through the same add path the interactive widget uses
(validation, duplicate handling, sorting and display limits) and prints the
resulting containers and the notifications that fired.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			inputs := append([]string{}, args...)
			if fromStdin {
				more, err := readAddresses(cmd.InOrStdin())
				if err != nil {
					return writeErr(cmd, err)
				}
				inputs = append(inputs, more...)
			}
			if len(inputs) == 0 && len(app.cfg.InitialAddresses) == 0 {
				return writeErr(cmd, errors.New("no addresses given (pass them as arguments or use --stdin)"))
			}

			log, err := newLogger(app.cfg.LogFile, app.Verbose, false)
			if err != nil {
				return writeErr(cmd, err)
			}
			app.log = log

			sess := newSession(app.cfg, log, nil)
			defer sess.Close()

			var duplicates []string
			sess.store.OnEvent(func(ev emails.Event) {
				if ev.Kind == emails.EventDuplicate {
					duplicates = append(duplicates, ev.Email)
				}
			})
			for _, in := range inputs {
				if err := sess.ctl.Submit(emails.Enter, in); err != nil {
					return writeErr(cmd, err)
				}
			}

			view := sess.store.View()
			out := map[string]any{
				"list":       sess.list(),
				"duplicates": nonNil(duplicates),
				"events":     sess.events(),
			}
			if app.cfg.ShowInvalidContainer {
				out["valid"] = view.Valid
				out["invalid"] = view.Invalid
			} else {
				out["all"] = view.All
			}
			if err := writeOut(cmd, app, map[string]any{"data": out}); err != nil {
				return err
			}
			if strict && len(sess.list().Invalid) > 0 {
				return errInvalidAddresses
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&fromStdin, "stdin", false, "Also read addresses from stdin")
	cmd.Flags().BoolVar(&strict, "strict", false, "Exit non-zero when any address is invalid")
	return cmd
}

var errInvalidAddresses = errors.New("invalid addresses present")

func nonNil(xs []string) []string {
	if xs == nil {
		return []string{}
	}
	return xs
}
