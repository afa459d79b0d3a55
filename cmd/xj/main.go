// Command xj converts a document between the JSON-like and XML-like
// formats, sniffing the input format from its first character.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/soldang/go-xj"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		outputFile string
		lenient    bool
		maxDepth   int
	)
	cmd := &cobra.Command{
		Use:   "xj [file]",
		Short: "convert between JSON-like and XML-like documents",
		Long: `xj reads a JSON-like or XML-like document from a file (or stdin),
detects the format from the first character, and writes the document
converted to the opposite format.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := readInput(args)
			if err != nil {
				color.Red("%v", err)
				return err
			}

			opts := []xj.Option{xj.MaxDepth(maxDepth)}
			if lenient {
				opts = append(opts, xj.Lenient())
			}
			out, err := xj.Convert(input, opts...)
			if errors.Is(err, xj.ErrEmptyInput) {
				fmt.Println("Input is Empty")
				return nil
			}
			if err != nil {
				color.Red("%v", err)
				return err
			}

			if outputFile == "" {
				fmt.Println(string(out))
				return nil
			}
			if err := os.WriteFile(outputFile, append(out, '\n'), 0o644); err != nil {
				color.Red("cannot write to file: %v", err)
				return err
			}
			fmt.Println("Conversion successful.")
			return nil
		},
	}
	cmd.Flags().StringVarP(&outputFile, "output", "o", "", "write the result to a file instead of stdout")
	cmd.Flags().BoolVar(&lenient, "lenient", false, "skip unparseable regions instead of failing")
	cmd.Flags().IntVar(&maxDepth, "max-depth", 1000, "maximum nesting depth")
	return cmd
}

func readInput(args []string) ([]byte, error) {
	if len(args) == 0 {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("cannot read stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return nil, fmt.Errorf("file not found: %s", args[0])
	}
	return data, nil
}
