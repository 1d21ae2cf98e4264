package main

import (
	"os"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"objtree/backend"
)

func (a *app) convertCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "convert <input> [output]",
		Short: "rewrite a tree in another backend format",
		Long: `Reads the tree in <input> with the --from backend and writes it with the
--to backend into [output], or to standard output when it is missing or "-".
Use "-" as <input> to read standard input.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := stdStream
			if len(args) == 2 {
				output = args[1]
			}

			return a.convert(args[0], output)
		},
	}
}

func (a *app) convert(input, output string) error {
	src, err := a.readTree(input)
	if err != nil {
		return err
	}

	dst, err := backend.New(a.cfg.Backend.Output)
	if err != nil {
		return err
	}

	if err := backend.Convert(dst, src); err != nil {
		return err
	}

	out := a.out
	if output != stdStream {
		f, err := os.Create(output)
		if err != nil {
			return errors.Wrapf(err, "failed to create %s", output)
		}
		defer f.Close()

		out = f
	}

	if err := dst.Write(out); err != nil {
		return errors.Wrapf(err, "failed to write %s as %s", output, dst.ImplementationName())
	}

	a.logger.Info("tree converted",
		zap.String("from", src.ImplementationName()),
		zap.String("to", dst.ImplementationName()),
		zap.String("output", output))

	return nil
}
