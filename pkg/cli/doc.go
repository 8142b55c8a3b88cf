/*
Package cli provides command-line interface utilities for the demystify
command.

Output Formatting:

Parse trees and batch results can be printed as text (S-expressions),
JSON, YAML, or, for values implementing Tabular, as an aligned table or CSV:

	format, err := cli.ParseOutputFormat(flagValue)
	if err != nil {
		return err
	}
	if err := cli.NewFormatter(format).FormatTo(os.Stdout, tree); err != nil {
		return err
	}

Progress Reporting:

	progress := cli.NewProgressReporter(os.Stderr)
	progress.Start(total)
	progress.Update(done)
	progress.Finish()

Styles:

Text output can be colored with Styles. Colors are dropped when the writer
is not a terminal:

	styles := cli.NewStyles(os.Stdout)
	fmt.Println(styles.Status(summary.Status, summary.String()))

Exit Codes:

ExitCode maps command errors to process exit codes: 2 when a clause failed
to lex or parse, 1 for every other error.

Signal Handling:

	ctx, stop := cli.SetupSignalHandler(context.Background())
	defer stop()
*/
package cli
