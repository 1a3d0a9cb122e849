package pid

// Axis is one of the three rotational control channels.
type Axis int

const (
	Roll Axis = iota
	Pitch
	Yaw
)

// AxisCount is fixed, all per-axis state is held in arrays of this size.
const AxisCount = 3

// Axes lists all axes in computation order.
var Axes = [AxisCount]Axis{Roll, Pitch, Yaw}

func (a Axis) String() string {
	switch a {
	case Roll:
		return "roll"
	case Pitch:
		return "pitch"
	case Yaw:
		return "yaw"
	}
	return "unknown"
}
