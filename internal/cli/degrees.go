package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/synthgraph/pkg/degree"
	"github.com/matzehuels/synthgraph/pkg/errors"
)

// degreesCommand creates the degree sequence check command.
func (c *CLI) degreesCommand() *cobra.Command {
	var strict bool

	cmd := &cobra.Command{
		Use:   "degrees <degree>...",
		Short: "Check whether a degree sequence is graphical",
		Long: `Check whether a degree sequence can be realized by a simple undirected graph.

Both the Erdős–Gallai and the Havel–Hakimi tests are run; they always agree.
Degrees may be separated by spaces or commas.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			degrees, err := parseDegrees(args)
			if err != nil {
				return err
			}
			return runDegrees(degree.New(degrees...), strict)
		},
	}
	cmd.Flags().BoolVar(&strict, "strict", false, "exit with an error when the sequence is not graphical")

	return cmd
}

func runDegrees(s degree.Sequence, strict bool) error {
	eg := degree.ErdosGallai(s)
	hh := degree.HavelHakimi(s)

	printKeyValue("Nodes", StyleNumber.Render(fmt.Sprint(s.Len())))
	printKeyValue("Degree sum", StyleNumber.Render(fmt.Sprint(s.Sum())))
	printKeyValue("Erdős–Gallai", verdict(eg))
	printKeyValue("Havel–Hakimi", verdict(hh))

	if err := degree.Check(s); err != nil {
		printDetail("%s", errors.UserMessage(err))
		if strict {
			return err
		}
		return nil
	}
	printNewline()
	printNextStep("Generate", "synthgraph simple "+joinInts(s.Degrees()))
	return nil
}

func verdict(ok bool) string {
	if ok {
		return StyleSuccess.Render(iconSuccess + " graphical")
	}
	return StyleWarning.Render(iconError + " not graphical")
}

func joinInts(xs []int) string {
	out := make([]byte, 0, len(xs)*3)
	for i, x := range xs {
		if i > 0 {
			out = append(out, ' ')
		}
		out = fmt.Append(out, x)
	}
	return string(out)
}
