// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"arxmlmerge/pkg/merge"
)

// terminalChooser answers user_choice conflicts by prompting on the
// terminal. It satisfies merge.Chooser and is wired into the engine only
// for the interactive strategy, so non-interactive runs never block on
// stdin.
type terminalChooser struct {
	in  *bufio.Reader
	out io.Writer
}

func newTerminalChooser(in io.Reader, out io.Writer) *terminalChooser {
	return &terminalChooser{in: bufio.NewReader(in), out: out}
}

// Choose renders the conflict and reads a single-letter answer. Unknown
// answers reprompt; a closed input stream returns an error, which the
// engine degrades to keep_first.
func (c *terminalChooser) Choose(ctx merge.ConflictContext) (merge.Choice, error) {
	fmt.Fprintln(c.out)
	fmt.Fprintln(c.out, WarningStyle.Render("Conflict: ")+ctx.Type.String())
	fmt.Fprintln(c.out, "  Element: "+CmdStyle.Render(ctx.ElementType())+" "+ctx.ElementName())
	fmt.Fprintln(c.out, "  Path:    "+VerboseStyle.Render(ctx.Path))
	fmt.Fprintln(c.out, "  Sources: "+ctx.LeftSource+" (first) vs "+ctx.RightSource+" (second)")

	for {
		fmt.Fprint(c.out, promptStyle.Render("Keep [f]irst, keep [l]ast, [m]erge, or [s]kip? "))
		line, err := c.in.ReadString('\n')
		if err != nil {
			return merge.ChooseLeft, fmt.Errorf("reading choice: %w", err)
		}
		switch strings.ToLower(strings.TrimSpace(line)) {
		case "f", "first", "1":
			return merge.ChooseLeft, nil
		case "l", "last", "2":
			return merge.ChooseRight, nil
		case "m", "merge", "3":
			return merge.ChooseMerge, nil
		case "s", "skip", "4":
			return merge.ChooseSkip, nil
		default:
			fmt.Fprintln(c.out, VerboseStyle.Render("unrecognized answer, expected f, l, m, or s"))
		}
	}
}
