package client

import (
	"fmt"

	"github.com/rzbill/tape/pkg/log"
	"github.com/rzbill/tape/pkg/tape"
	"github.com/spf13/cobra"
)

// car is the walkthrough collaborator: it holds the Appender capability and
// resolves the active recorder at call time.
type car struct {
	log tape.Appender
}

func (c *car) travel(distance int) error {
	return c.log.Append(fmt.Sprintf("Traveled Distance %d", distance))
}

// NewDemoCommand constructs the `demo` subcommand: it runs one recorded
// window end to end and dumps it.
func NewDemoCommand(logger log.Logger) *cobra.Command {
	demoCmd := &cobra.Command{
		Use:   "demo",
		Short: "Run a sample window and dump its entries",
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := openRuntime(cmd, logger)
			if err != nil {
				return err
			}
			defer rt.Close()

			slot := rt.NewSlot()
			c := &car{log: slot}

			var rec *tape.Recorder
			err = slot.With(func(r *tape.Recorder) error {
				rec = r
				if err := slot.Append("Hi!"); err != nil {
					return err
				}
				return c.travel(5)
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if _, err := rec.WriteTo(out); err != nil {
				return err
			}
			fmt.Fprintf(out, "window %s closed with %d entries\n", rec.ID().String(), rec.Len())
			return nil
		},
	}
	addCommonFlags(demoCmd)
	return demoCmd
}
