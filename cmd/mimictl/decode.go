package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/ZentaChain/zentalk-content/pkg/protocol"
	"github.com/ZentaChain/zentalk-content/pkg/wire"
)

var decodeCmd = &cobra.Command{
	Use:   "decode [file|-]",
	Short: "Decode and validate an envelope",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		buf, err := readInput(args, cmd.InOrStdin(), hexIO)
		if err != nil {
			return err
		}
		env, err := codec.Decode(buf)
		if err != nil {
			return err
		}
		return printSummary(cmd.OutOrStdout(), env, len(buf), codec.Limits())
	},
}

var inspectCmd = &cobra.Command{
	Use:   "inspect [file|-]",
	Short: "Decode an envelope and report validation problems without failing",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		buf, err := readInput(args, cmd.InOrStdin(), hexIO)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()

		version, err := protocol.ReadVersion(buf)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "version:     %s\n", protocol.FormatVersion(version))

		env, err := codec.DecodeStructural(buf)
		switch {
		case protocol.KindOf(err) == wire.KindValidation:
			// Framing problems leave no envelope to summarize.
			printProblem(out, err)
			return nil
		case err != nil:
			return err
		}
		if err := printSummary(out, env, len(buf), codec.Limits()); err != nil {
			return err
		}

		if verr := codec.Validate(env); verr != nil {
			printProblem(out, verr)
			return nil
		}
		fmt.Fprintln(out, "valid:       yes")
		return nil
	},
}

var fallbackCmd = &cobra.Command{
	Use:   "fallback [file|-]",
	Short: "Print the plain text fallback of an envelope",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		buf, err := readInput(args, cmd.InOrStdin(), hexIO)
		if err != nil {
			return err
		}
		env, err := codec.Decode(buf)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), env.Fallback())
		return err
	},
}

func printProblem(w io.Writer, err error) {
	fmt.Fprintf(w, "valid:       no (%s)\n", protocol.KindOf(err))
	fmt.Fprintf(w, "problem:     %v\n", err)
}

func init() {
	rootCmd.AddCommand(decodeCmd)
	rootCmd.AddCommand(inspectCmd)
	rootCmd.AddCommand(fallbackCmd)
}
