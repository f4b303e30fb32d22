package cli

import (
	"fmt"
	"io"
	"strings"

	"mailchips/internal/config"
	"mailchips/internal/format"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type App struct {
	ConfigPath string
	Format     string
	PrettyJSON bool
	LogFile    string
	Verbose    bool

	flags widgetFlags

	cfg *config.Config
	log *zap.Logger
}

// widgetFlags override config values, but only when set on the command line.
type widgetFlags struct {
	limit          int
	showInvalid    bool
	displayOnly    bool
	preventDups    bool
	bindForm       bool
	sort           string
	validator      string
	allowedDomains []string
	theme          string
	labelAll       string
	labelValid     string
	labelInvalid   string
	stdin          bool
}

func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:          "mailchips [address...]",
		Short:        "Edit a list of email addresses as tags",
		SilenceUsage: true,
		Args:         cobra.ArbitraryArgs,
		Example: strings.TrimSpace(`
  # Start the interactive editor seeded with two addresses
  mailchips iron.man@avengers.net black.widow

  # Separate valid and invalid addresses, no duplicates
  mailchips --show-invalid --prevent-duplicates

  # Non-interactive report
  mailchips check hulk@avengers thor@asgard.com

  # Seed from a file
  mailchips --stdin < recipients.txt
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd, app, args)
		},
	}

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		penv, err := config.ProcessEnv()
		if err != nil {
			return writeErr(cmd, err)
		}
		if !cmd.Flags().Changed("config") {
			app.ConfigPath = penv.ConfigPath
		}
		if !cmd.Flags().Changed("format") {
			app.Format = penv.Format
		}

		cfg, err := config.Load(app.ConfigPath)
		if err != nil {
			return writeErr(cmd, err)
		}
		app.applyFlags(cmd, cfg)
		if err := cfg.Validate(); err != nil {
			return writeErr(cmd, err)
		}
		app.cfg = cfg
		return nil
	}

	cmd.PersistentPostRun = func(cmd *cobra.Command, args []string) {
		if app.log != nil {
			_ = app.log.Sync()
		}
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&app.ConfigPath, "config", "", "Path to a config file (yaml or json; env MAILCHIPS_CONFIG)")
	pf.StringVar(&app.Format, "format", "json", "Output format (json|edn; env MAILCHIPS_FORMAT)")
	pf.BoolVar(&app.PrettyJSON, "pretty", false, "Pretty-print output")
	pf.StringVar(&app.LogFile, "log", "", "Write a debug log to this file")
	pf.BoolVarP(&app.Verbose, "verbose", "v", false, "Log address events (to --log, or stderr for non-interactive commands)")

	f := &app.flags
	pf.IntVar(&f.limit, "limit", 0, "Tags shown per container before \"show more\" (0 = no limit)")
	pf.BoolVar(&f.showInvalid, "show-invalid", false, "Show invalid addresses in a separate container")
	pf.BoolVar(&f.displayOnly, "display-only", false, "Hide the input; view and delete only")
	pf.BoolVar(&f.preventDups, "prevent-duplicates", false, "Reject addresses already in the list")
	pf.BoolVar(&f.bindForm, "bind-form", false, "Keep the list in a host form array")
	pf.StringVar(&f.sort, "sort", "", "Display order (none|asc|desc|domain)")
	pf.StringVar(&f.validator, "validator", "", "Validator (default|domains)")
	pf.StringSliceVar(&f.allowedDomains, "allowed-domain", nil, "Domain accepted by the domains validator (repeatable)")
	pf.StringVar(&f.theme, "theme", "", "Color theme (auto|light|dark)")
	pf.StringVar(&f.labelAll, "label-all", "", "Label above the all-addresses container")
	pf.StringVar(&f.labelValid, "label-valid", "", "Label above the valid container")
	pf.StringVar(&f.labelInvalid, "label-invalid", "", "Label above the invalid container")
	cmd.Flags().BoolVar(&f.stdin, "stdin", false, "Read seed addresses from stdin")

	cmd.AddCommand(newCheckCmd(app))
	cmd.AddCommand(newDocsCmd(app))

	return cmd
}

func (app *App) applyFlags(cmd *cobra.Command, cfg *config.Config) {
	fl := cmd.Flags()
	f := app.flags
	if fl.Changed("limit") {
		cfg.DisplayLimit = f.limit
	}
	if fl.Changed("show-invalid") {
		cfg.ShowInvalidContainer = f.showInvalid
	}
	if fl.Changed("display-only") {
		cfg.DisplayOnly = f.displayOnly
	}
	if fl.Changed("prevent-duplicates") {
		cfg.PreventDuplicates = f.preventDups
	}
	if fl.Changed("bind-form") {
		cfg.BindForm = f.bindForm
	}
	if fl.Changed("sort") {
		cfg.Sort = f.sort
	}
	if fl.Changed("validator") {
		cfg.Validator = f.validator
	}
	if fl.Changed("allowed-domain") {
		cfg.AllowedDomains = f.allowedDomains
	}
	if fl.Changed("theme") {
		cfg.Theme = f.theme
	}
	if fl.Changed("label-all") {
		cfg.Labels.All = f.labelAll
	}
	if fl.Changed("label-valid") {
		cfg.Labels.Valid = f.labelValid
	}
	if fl.Changed("label-invalid") {
		cfg.Labels.Invalid = f.labelInvalid
	}
	if fl.Changed("log") {
		cfg.LogFile = app.LogFile
	}
}

// readAddresses splits r on commas, semicolons and whitespace.
func readAddresses(r io.Reader) ([]string, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read addresses: %w", err)
	}
	return splitAddresses(string(b)), nil
}

func splitAddresses(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ';' || r == ' ' || r == '\t' || r == '\n' || r == '\r'
	})
}

func writeOut(cmd *cobra.Command, app *App, v any) error {
	return format.Write(cmd.OutOrStdout(), v, app.Format, app.PrettyJSON)
}

func writeErr(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), err.Error())
	return err
}
