package physics

import (
	"fmt"
	"time"
)

// Report counts what one frame processed.
type Report struct {
	Time           time.Duration // wall time spent in Step
	Bodies         int
	BroadContacts  int
	NarrowContacts int
}

func (r Report) String() string {
	return fmt.Sprintf("%d bodies, %d broad, %d narrow in %s",
		r.Bodies, r.BroadContacts, r.NarrowContacts, r.Time)
}
