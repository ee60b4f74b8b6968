package main

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/nihei9/nixfmt/format"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var cliFlags = struct {
	check             *bool
	quiet             *bool
	verbose           *bool
	experimentalConfig *string
}{}

var rootCmd = &cobra.Command{
	Use:   "nixfmt [file...]",
	Short: "Format Nix source files",
	Long: `nixfmt rewrites Nix source into a single canonical layout.
With no file arguments, it reads an expression from stdin and writes the
formatted result to stdout.`,
	SilenceErrors: true,
	SilenceUsage:  true,
	RunE:          runFormat,
}

func init() {
	cliFlags.check = rootCmd.Flags().Bool("check", false, "don't write files; report whether they would change")
	cliFlags.quiet = rootCmd.Flags().BoolP("quiet", "q", false, "suppress per-file diagnostics")
	cliFlags.verbose = rootCmd.Flags().BoolP("verbose", "v", false, "print each file as it's processed")
	cliFlags.experimentalConfig = rootCmd.Flags().String("experimental-config", "", "reserved for future use")
}

// Execute runs the CLI and returns the process exit code: 0 success, 1
// internal error or unparseable input, 2 when --check reports a pending
// diff. Grounded on the teacher's cmd/vartan Execute()/main() split, but
// returns a code instead of an error so the three distinct exit statuses
// spec.md §6 requires can be told apart.
func Execute() int {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return 1
	}
	return exitCode
}

// exitCode is set by runFormat once every file has been processed; cobra's
// RunE only carries an error, which isn't expressive enough to distinguish
// "internal error" (1) from "--check found a diff" (2).
var exitCode int

func runFormat(cmd *cobra.Command, args []string) error {
	logger := logrus.New()
	if *cliFlags.quiet {
		logger.SetLevel(logrus.ErrorLevel)
	} else if *cliFlags.verbose {
		logger.SetLevel(logrus.DebugLevel)
	} else {
		logger.SetLevel(logrus.InfoLevel)
	}

	if len(args) == 0 {
		out, err := format.Format("<stdin>", os.Stdin)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			exitCode = 1
			return nil
		}
		fmt.Fprint(os.Stdout, out)
		return nil
	}

	results := formatFilesConcurrently(args, logger)

	changed := false
	failed := false
	for _, r := range results {
		switch {
		case r.err != nil:
			logger.Errorf("%s: %v", r.path, r.err)
			failed = true
		case r.changed:
			changed = true
			if *cliFlags.verbose {
				logger.Infof("%s: reformatted", r.path)
			}
		default:
			if *cliFlags.verbose {
				logger.Infof("%s: unchanged", r.path)
			}
		}
	}

	switch {
	case failed:
		exitCode = 1
	case *cliFlags.check && changed:
		exitCode = 2
	default:
		exitCode = 0
	}
	return nil
}

type fileResult struct {
	path    string
	changed bool
	err     error
}

// maxFormatWorkers bounds the worker pool formatting multiple files
// concurrently: a fixed-size job-channel pool, the same shape the
// retrieved opal-lang-opal pack's @parallel decorator uses for bounding
// concurrent command execution.
const maxFormatWorkers = 8

func formatFilesConcurrently(paths []string, logger *logrus.Logger) []fileResult {
	results := make([]fileResult, len(paths))
	jobs := make(chan int)
	var wg sync.WaitGroup

	worker := func() {
		defer wg.Done()
		for i := range jobs {
			results[i] = formatOneFile(paths[i])
		}
	}

	workers := maxFormatWorkers
	if workers > len(paths) {
		workers = len(paths)
	}
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go worker()
	}
	for i := range paths {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	return results
}

func formatOneFile(path string) (res fileResult) {
	// A panic while formatting one file fails that file only.
	defer func() {
		if r := recover(); r != nil {
			res = fileResult{path: path, err: fmt.Errorf("%s: internal error: %v", path, r)}
		}
	}()

	f, err := os.Open(path)
	if err != nil {
		return fileResult{path: path, err: err}
	}
	orig, err := io.ReadAll(f)
	f.Close()
	if err != nil {
		return fileResult{path: path, err: err}
	}

	formatted, err := format.Format(path, bytes.NewReader(orig))
	if err != nil {
		return fileResult{path: path, err: err}
	}

	if formatted == string(orig) {
		return fileResult{path: path, changed: false}
	}
	if *cliFlags.check {
		return fileResult{path: path, changed: true}
	}

	if err := os.WriteFile(path, []byte(formatted), 0o644); err != nil {
		return fileResult{path: path, err: err}
	}
	return fileResult{path: path, changed: true}
}
