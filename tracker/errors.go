package tracker

import (
	"errors"
	"fmt"
)

var (
	// ErrRegionNotFound is returned when a query names a region absent
	// from the loaded world.
	ErrRegionNotFound = errors.New("tracker: region not found")

	// ErrComputeDiverged is returned if the fixpoint exceeds its pass
	// bound. The bound follows from monotonicity, so hitting it means a
	// rule mutated state it must not touch.
	ErrComputeDiverged = errors.New("tracker: fixpoint exceeded pass bound")
)

// BadHelperArgsError reports a helper invoked with the wrong argument
// shape, which is fatal in authoritative mode.
type BadHelperArgsError struct {
	Helper string
	Args   []any
}

func (e *BadHelperArgsError) Error() string {
	return fmt.Sprintf("tracker: helper %q called with bad arguments %v", e.Helper, e.Args)
}
