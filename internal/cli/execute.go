package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
)

// legacyFlags maps multi-letter single-dash flags, which pflag cannot
// express as shorthands, to their long form.
var legacyFlags = map[string]string{
	"-of": "--oformat",
}

// NormalizeArgs rewrites legacy multi-letter flags such as "-of MIF" or
// "-of=MIF" to their long form. Arguments after "--" are left alone.
func NormalizeArgs(args []string) []string {
	out := make([]string, 0, len(args))
	for i, arg := range args {
		if arg == "--" {
			out = append(out, args[i:]...)
			break
		}
		name, value, hasValue := strings.Cut(arg, "=")
		if long, ok := legacyFlags[name]; ok {
			if hasValue {
				arg = long + "=" + value
			} else {
				arg = long
			}
		}
		out = append(out, arg)
	}
	return out
}

// Execute runs the meminit command with args and returns the process exit
// code. Errors the command did not already report (flag parsing, argument
// count) are printed to stderr as usage errors.
func Execute(cmd *cobra.Command, args []string, stdout, stderr io.Writer) int {
	cmd.SetArgs(NormalizeArgs(args))
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	err := cmd.Execute()
	var exitErr *ExitError
	if err != nil && !errors.As(err, &exitErr) {
		// cobra/pflag errors: unknown flag, bad integer, wrong argument count.
		fmt.Fprintf(stderr, "Error [%s]: %v\n", ErrCodeUsage, err)
		fmt.Fprintf(stderr, "Run '%s --help' for usage.\n", cmd.CommandPath())
		err = WrapExitError(ExitCommandError, "usage", err)
	}
	return GetExitCode(err)
}
