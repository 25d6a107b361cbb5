/*
Package cli provides command-line interface utilities for astroncheck.

The cli package includes output formatters, error types with exit codes,
and signal handling used by the astroncheck command.

Output Formatting:

Command results can be rendered as text, JSON or CSV. CSV output requires
the value to implement Records:

	format, err := cli.ParseFormat("csv")
	if err != nil {
		return err
	}
	if err := cli.NewFormatter(format).FormatTo(os.Stdout, run); err != nil {
		return err
	}

Exit Codes:

ExitCode maps a command error to a process exit status: 0 for success,
1 for a CommandError (the command ran and the checked input was invalid)
and 2 for anything else (bad flags, unreadable settings).

Signal Handling:

For graceful shutdown on SIGINT/SIGTERM:

	ctx, stop := cli.SetupSignalHandler(context.Background())
	defer stop()
*/
package cli
