package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

func newReadCommand() *cobra.Command {
	var rangeFlag string

	cmd := &cobra.Command{
		Use:   "read <file>",
		Short: "Print a file's contents, or a 1-based inclusive line range of it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			start, end := 0, 0
			if rangeFlag != "" {
				var err error
				start, end, err = parseLineRange(rangeFlag)
				if err != nil {
					return fmt.Errorf("read: %w", err)
				}
			}

			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("read: %w", err)
			}
			defer f.Close()

			out := cmd.OutOrStdout()
			scanner := bufio.NewScanner(f)
			scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
			line := 0
			for scanner.Scan() {
				line++
				if start > 0 && (line < start || line > end) {
					continue
				}
				fmt.Fprintln(out, scanner.Text())
			}
			return scanner.Err()
		},
	}

	cmd.Flags().StringVar(&rangeFlag, "lines", "", "1-based inclusive line range, e.g. 10-25")
	return cmd
}

func parseLineRange(s string) (start, end int, err error) {
	parts := strings.SplitN(s, "-", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid range %q: want START-END", s)
	}
	start, err = strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid range start %q", parts[0])
	}
	end, err = strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid range end %q", parts[1])
	}
	if start < 1 || end < start {
		return 0, 0, fmt.Errorf("invalid range %q", s)
	}
	return start, end, nil
}
