package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/ezrec/ucircuit/circuit"
	"github.com/ezrec/ucircuit/emulator"
	"github.com/ezrec/ucircuit/translate"
)

var errRunFailed = errors.New("run failed")

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run <program>",
		Short: "Run a program on a bench against a level",
		Long: `Run a program on a bench against a level.

The bench is checked against the level's circuit requirements, the
program against its instruction rules, and then the program runs on a
copy of the bench. On success the resulting component states are
printed. Use "-" to read the program from standard input.

Examples:
  ucircuit run --level 2 --bench amplifier.yaml amplifier.asm
  ucircuit run --level 1 --bench blink.yaml --steps 1000 blink.asm`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			levelId, _ := cmd.Flags().GetInt("level")
			benchPath, _ := cmd.Flags().GetString("bench")
			steps, _ := cmd.Flags().GetInt("steps")

			sess, err := newSession(cmd)
			if err != nil {
				return err
			}

			emu := emulator.NewEmulator(sess.catalog)
			emu.Logger = sess.logger
			emu.Verbose = sess.verbose
			emu.StepLimit = sess.config.Cpu.StepLimit
			if steps > 0 {
				emu.StepLimit = steps
			}

			if len(benchPath) != 0 {
				data, err := readInput(cmd, benchPath)
				if err != nil {
					return err
				}
				bench, err := ParseBench(data)
				if err != nil {
					return fmt.Errorf("%s: %w", benchPath, err)
				}
				if err = bench.Apply(emu); err != nil {
					return fmt.Errorf("%s: %w", benchPath, err)
				}
			}

			text, err := readInput(cmd, args[0])
			if err != nil {
				return err
			}
			emu.SetCode(string(text))

			outcome, err := emu.Run(levelId)
			if err != nil {
				return fmt.Errorf("level %d: %w", levelId, err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, outcome.String())
			if !outcome.Ok() {
				return errRunFailed
			}

			printGraph(out, emu.Graph)
			fmt.Fprintf(out, "%s: %d\n", translate.From("Attempts remaining"), emu.Remaining(levelId))

			return nil
		},
	}

	cmd.Flags().IntP("level", "l", 1, "Level id")
	cmd.Flags().StringP("bench", "b", "", "Bench YAML file")
	cmd.Flags().Int("steps", 0, "Instruction budget (default from configuration)")

	return cmd
}

// printGraph lists the components and their state.
func printGraph(out io.Writer, g *circuit.Graph) {
	for comp := range g.Components() {
		state := comp.State
		switch comp.Type {
		case circuit.TYPE_MICROCONTROLLER:
			fmt.Fprintf(out, "%s powered=%v\n", comp.Id, state.Powered)
		case circuit.TYPE_LED:
			fmt.Fprintf(out, "%s powered=%v blinking=%v\n", comp.Id, state.Powered, state.Blinking)
		case circuit.TYPE_POWER_SOURCE:
			fmt.Fprintf(out, "%s value=%d\n", comp.Id, state.Value)
		case circuit.TYPE_SIGNAL_SOURCE:
			fmt.Fprintf(out, "%s signal=%d\n", comp.Id, state.Signal)
		case circuit.TYPE_SIGNAL_TARGET:
			fmt.Fprintf(out, "%s value=%d\n", comp.Id, state.Value)
		}
	}
}
