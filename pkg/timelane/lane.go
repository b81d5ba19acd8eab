package timelane

// LaneType is a kind of lane a visualization plots data on.
type LaneType int

const (
	// LaneSubscription plots subscriptions as color-coded bars.
	LaneSubscription LaneType = iota
	// LaneEvent plots emitted values and events as placemarks.
	LaneEvent
)

// AllLaneTypes returns every lane type.
func AllLaneTypes() []LaneType {
	return []LaneType{LaneSubscription, LaneEvent}
}

// String returns the lane type name.
func (t LaneType) String() string {
	switch t {
	case LaneSubscription:
		return "subscription"
	case LaneEvent:
		return "event"
	default:
		return "unknown"
	}
}

// LaneTypeOptions is a set of lane types a caller wants to log to.
// The registry does not enforce it; it is consumed by instrumentation code
// deciding which records to emit.
type LaneTypeOptions uint8

const (
	// LaneOptionSubscription logs to the subscription lane.
	LaneOptionSubscription LaneTypeOptions = 1 << 0
	// LaneOptionEvent logs to the events lane.
	LaneOptionEvent LaneTypeOptions = 1 << 1
	// LaneOptionAll logs to both lanes.
	LaneOptionAll = LaneOptionSubscription | LaneOptionEvent
)

// Contains reports whether every lane in other is also in o.
func (o LaneTypeOptions) Contains(other LaneTypeOptions) bool {
	return o&other == other
}

// Has reports whether the lane type is selected.
func (o LaneTypeOptions) Has(t LaneType) bool {
	switch t {
	case LaneSubscription:
		return o.Contains(LaneOptionSubscription)
	case LaneEvent:
		return o.Contains(LaneOptionEvent)
	default:
		return false
	}
}
