package tape_test

import (
	"fmt"

	"github.com/rzbill/tape/pkg/tape"
)

// Car is a collaborator that emits entries through an injected Appender
// capability instead of inheriting logging behavior. It resolves the active
// recorder at call time, so the same Car logs into whichever window is open.
type Car struct {
	log tape.Appender
}

// Travel records the traveled distance on the active window.
func (c *Car) Travel(distance int) error {
	return c.log.Append(fmt.Sprintf("Traveled Distance %d", distance))
}

func Example() {
	slot := tape.NewSlot()

	rec, err := slot.Open()
	if err != nil {
		panic(err)
	}
	_ = rec.Append("Hi!")
	_ = rec.Close()
	rec.Dump()
	// Output: Hi!
}

func Example_collaborator() {
	slot := tape.NewSlot()
	car := &Car{log: slot}

	var rec *tape.Recorder
	err := slot.With(func(r *tape.Recorder) error {
		rec = r
		return car.Travel(5)
	})
	if err != nil {
		panic(err)
	}
	rec.Dump()

	// With no window open, the same call fails loudly.
	fmt.Println(car.Travel(5))
	// Output:
	// Traveled Distance 5
	// tape: log append outside of an active window
}
