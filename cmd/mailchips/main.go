package main

import (
	"os"

	"mailchips/internal/cli"
)

// rewriteStdinArg turns a lone "-" positional into --stdin, so
// `mailchips -` and `mailchips check -` read addresses from stdin.
func rewriteStdinArg(argv []string) []string {
	out := make([]string, 0, len(argv))
	seen := false
	for i, a := range argv {
		if a == "--" {
			// Everything after "--" is a literal address.
			return append(out, argv[i:]...)
		}
		if a == "-" && i > 0 {
			if !seen {
				out = append(out, "--stdin")
				seen = true
			}
			continue
		}
		out = append(out, a)
	}
	return out
}

func main() {
	os.Args = rewriteStdinArg(os.Args)

	cmd := cli.NewRootCmd()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
