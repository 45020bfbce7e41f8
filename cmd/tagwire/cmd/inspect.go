package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"tagwire/log"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect [file]",
	Short: "Decodes a tagged byte stream and prints each value.",
	Long: "Decodes a tagged byte stream from the given file, or from stdin " +
		"when no file is given, and prints one line per value. Decode " +
		"limits come from the config file.",
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		lgr := log.WithModule("inspect")

		var in io.Reader = os.Stdin
		if len(args) == 1 {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()
			in = f
		}

		if isatty.IsTerminal(os.Stdout.Fd()) {
			fmt.Println("OFFSET  TAG       VALUE")
		}

		limits := cfg.CodecLimits()
		r := &countingReader{r: bufio.NewReader(in)}
		for {
			off := r.n
			tag, val, err := limits.DecodeAny(r)
			if err == io.EOF {
				return nil
			}
			if err != nil {
				lgr.Error("decode failed", "offset", off, "err", err)
				return err
			}
			fmt.Printf("%06x  %-8s  %v\n", off, tag, val)
		}
	},
}

type countingReader struct {
	r io.Reader
	n int
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += n
	return n, err
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}
