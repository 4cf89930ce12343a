// prime.go implements "tagidx index prime".
//
// Design: A bare prime raises the level by one, matching how a derivative
// index is usually made. --plev sets an absolute level; it is turned into a
// relative step against the stored level so both paths share one update.

package index

import (
	"fmt"
	"strconv"

	"github.com/jpl-au/tagidx/cmd"
	"github.com/jpl-au/tagidx/extension"
	"github.com/jpl-au/tagidx/internal/log"
	"github.com/spf13/cobra"
)

func (e *Extension) newPrimeCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "prime <id> [n]",
		Short: "Raise the prime level of an index",
		Long: `Raise the prime level of an index by n (default 1). A negative n lowers it,
but never below zero. --plev sets the level outright; --plev 0 removes all
primes.

  tagidx index prime 3f2a
  tagidx index prime 3f2a -- -1
  tagidx index prime 3f2a --plev 0`,
		Args: cobra.RangeArgs(1, 2),
		RunE: e.runPrime,
	}
	c.Flags().Int(extension.FlagPlev, 0, "Set an absolute prime level")
	return c
}

func (e *Extension) runPrime(c *cobra.Command, args []string) error {
	ctx := c.Context()
	id := args[0]
	absolute := c.Flags().Changed(extension.FlagPlev)

	if absolute && len(args) > 1 {
		return cmd.PrintJSONError(fmt.Errorf("cannot combine n with --%s", extension.FlagPlev))
	}

	n := 1
	if len(args) > 1 {
		v, err := strconv.Atoi(args[1])
		if err != nil {
			return cmd.PrintJSONError(fmt.Errorf("prime step %q is not a number", args[1]))
		}
		n = v
	}
	if absolute {
		plev, _ := c.Flags().GetInt(extension.FlagPlev)
		cur, err := e.svc.Resolve(ctx, id, false)
		if err != nil {
			return cmd.PrintJSONError(fmt.Errorf("index prime %q: %w", id, err))
		}
		n = plev - cur.Index.Plev
	}

	en, err := e.svc.Prime(ctx, id, n)

	l := log.Event("index:prime", "prime").Author(cmd.Author()).Index(id).Detail("n", n)
	if en != nil {
		l.Resolved(en.Index.ID.String()).Detail("plev", en.Index.Plev)
	}
	l.Write(err)

	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("index prime %q: %w", id, err))
	}
	return created(cmd.Out(), "Primed", en)
}
