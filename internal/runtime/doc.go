// Package runtime wires storage, config, and the window archive into a
// single tape instance. It exposes Open/Close, a basic health check, and a
// slot factory that attaches the archive close-hook when archiving is
// enabled.
//
// Example:
//
//	cfg := config.Default()
//	rt, _ := runtime.Open(runtime.Options{DataDir: "./data", Config: cfg})
//	defer rt.Close()
//	slot := rt.NewSlot()
//	_ = slot.With(func(r *tape.Recorder) error {
//	    return slot.Append("Hi!")
//	})
//	// the closed window is now in rt.Archive()
package runtime
