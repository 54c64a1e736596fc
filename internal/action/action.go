// Package action implements the GitHub Actions conventions for reading
// inputs, writing outputs, and signalling failure.
package action

import (
	"fmt"
	"io"
	"os"
	"strings"
)

const (
	// OutputEnv is the environment variable holding the output file path.
	OutputEnv = "GITHUB_OUTPUT"

	// DefaultOutputPath receives outputs when OutputEnv is not set.
	DefaultOutputPath = "default_output.txt"

	inputPrefix = "INPUT_"
)

// exitFunc and failWriter are swapped out in tests so Fail can be
// exercised without terminating the test process.
var (
	exitFunc             = os.Exit
	failWriter io.Writer = os.Stdout
)

// GetInput retrieves the value of an action input from the environment.
// The variable name is derived from the input name by replacing hyphens
// with underscores, upper-casing, and prefixing with "INPUT_". A missing
// input yields an empty string.
func GetInput(name string) string {
	key := inputPrefix + strings.ToUpper(strings.ReplaceAll(name, "-", "_"))
	return os.Getenv(key)
}

// SetOutput appends an action output to the file named by GITHUB_OUTPUT,
// or to DefaultOutputPath when the variable is not set. The output is
// written as a delimited block in the format GitHub Actions expects.
func SetOutput(name, value string) error {
	path := os.Getenv(OutputEnv)
	if path == "" {
		path = DefaultOutputPath
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open output file %s: %w", path, err)
	}
	defer f.Close()

	if _, err := fmt.Fprintf(f, "%s<<EOF\n%sEOF\n", name, value); err != nil {
		return fmt.Errorf("failed to write output %s: %w", name, err)
	}
	return nil
}

// Fail marks the action as failed by emitting the error marker GitHub
// Actions recognizes and terminating the process with a non-zero status.
func Fail(message string) {
	fmt.Fprintf(failWriter, "::error::%s\n", message)
	exitFunc(1)
}
