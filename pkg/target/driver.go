package target

import (
	"context"

	"github.com/golang/glog"
)

// AnyDesigner makes a driver eligible regardless of the session's designer.
const AnyDesigner uint16 = 0

// Driver identifies one device family. Probe returns true when it recognised
// the device and attached its record to the session; false means "not mine"
// and the next driver gets a turn.
type Driver struct {
	Name     string
	Designer uint16
	Probe    func(ctx context.Context, t *Target) bool
}

// ProbeDrivers runs each eligible driver in order and stops at the first one
// that claims the device. It returns the name of that driver.
func ProbeDrivers(ctx context.Context, t *Target, drivers []Driver) (string, bool) {
	for _, d := range drivers {
		if d.Designer != AnyDesigner && d.Designer != t.Designer {
			continue
		}
		glog.V(2).Infof("probing %s (designer 0x%03x part 0x%04x)", d.Name, t.Designer, t.PartID)
		if d.Probe(ctx, t) {
			return d.Name, true
		}
	}
	return "", false
}
