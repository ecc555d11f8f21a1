package ordinals

import "fmt"

// Degree is the (cycle, epoch-offset, period-offset, block-offset)
// rendering of a sat's issuing height and in-block position.
type Degree struct {
	Hour   uint32
	Minute uint32
	Second uint32
	Third  uint64
}

// String renders the degree as "H°M′S″T‴".
func (d Degree) String() string {
	return fmt.Sprintf("%d°%d′%d″%d‴", d.Hour, d.Minute, d.Second, d.Third)
}
