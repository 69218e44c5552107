package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ezrec/ucircuit/translate"
)

func newLevelsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "levels [id]",
		Short: "List the levels, or describe one",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := newSession(cmd)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			f := translate.From

			if len(args) == 0 {
				for _, lvl := range sess.catalog.All() {
					state := ""
					if lvl.Locked {
						state = f(" (locked)")
					}
					fmt.Fprintf(out, "%2d  %s%s\n", lvl.Id, lvl.Title, state)
				}
				return nil
			}

			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("level id %q: %w", args[0], err)
			}
			lvl := sess.catalog.Level(id)
			if lvl == nil {
				return fmt.Errorf("level %d: %s", id, f("level unknown"))
			}

			fmt.Fprintf(out, "%s %d: %s\n", f("Level"), lvl.Id, lvl.Title)
			fmt.Fprintf(out, "%s\n", lvl.Description)
			fmt.Fprintf(out, "%s: %d\n", f("Attempts"), lvl.MaxAttempts)
			if lvl.Locked {
				fmt.Fprintln(out, f("Locked"))
				return nil
			}

			if len(lvl.Allow) != 0 {
				fmt.Fprintf(out, "%s: %s\n", f("Instructions"), strings.Join(lvl.Allow, " "))
			}
			if len(lvl.Require) != 0 {
				fmt.Fprintf(out, "%s: %s\n", f("Required"), strings.Join(lvl.Require, " "))
			}
			for _, hint := range lvl.Hints {
				fmt.Fprintf(out, "  - %s\n", hint)
			}

			return nil
		},
	}

	return cmd
}
