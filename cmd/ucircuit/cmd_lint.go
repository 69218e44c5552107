package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ezrec/ucircuit/emulator"
)

func newLintCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lint <program>",
		Short: "Check a program against a level's instruction rules",
		Long: `Check a program against a level's instruction rules.

Only mnemonics are checked: every one must be allowed by the level, and
every one the level requires must appear. Use "-" to read standard input.

Examples:
  ucircuit lint --level 1 blink.asm
  ucircuit lint --level 2 - < amplifier.asm`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			levelId, _ := cmd.Flags().GetInt("level")

			sess, err := newSession(cmd)
			if err != nil {
				return err
			}

			text, err := readInput(cmd, args[0])
			if err != nil {
				return err
			}

			emu := emulator.NewEmulator(sess.catalog)
			lvl, err := emu.Level(levelId)
			if err != nil {
				return fmt.Errorf("level %d: %w", levelId, err)
			}

			err = lvl.Lint(string(text))
			if err != nil {
				return fmt.Errorf("%s: %w", args[0], err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s: ok\n", args[0])
			return nil
		},
	}

	cmd.Flags().IntP("level", "l", 1, "Level id")

	return cmd
}
