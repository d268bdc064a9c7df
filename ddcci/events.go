package ddcci

/*------------------------------------------------------------------
 *
 * Purpose:	Drain the monitor's "new control value" notification
 *		FIFO: a queue of VCP feature codes the monitor changed
 *		out from under the host (e.g. front-panel buttons).
 *
 * Description:	Modeled as an explicit Idle/Draining/Done state
 *		machine rather than a lazy iterator, since each step
 *		is a DDC/CI round trip through MonitorDevice and the
 *		caller needs to drive it one exchange at a time.
 *
 *------------------------------------------------------------------*/

type eventQueueState int

const (
	eventQueueIdle eventQueueState = iota
	eventQueueDraining
	eventQueueDone
)

// FeatureChange is one entry drained from the notification FIFO: the
// feature code that changed and, when recognized, its new value.
type FeatureChange struct {
	Feature VcpFeatureCode
	Value   VcpValue
}

// ChangeEventQueue drains a MonitorDevice's pending change
// notifications one at a time. Create one with NewChangeEventQueue;
// the zero value has no device to poll.
type ChangeEventQueue struct {
	device *MonitorDevice
	state  eventQueueState
}

// NewChangeEventQueue returns a queue that polls device for changes.
func NewChangeEventQueue(device *MonitorDevice) *ChangeEventQueue {
	return &ChangeEventQueue{device: device, state: eventQueueIdle}
}

// Next advances the state machine by one step, returning the next
// queued change. ok is false once the queue has drained (the monitor
// reported CodePage, ending the FIFO) or the monitor had nothing
// queued to begin with.
func (q *ChangeEventQueue) Next() (change FeatureChange, ok bool, err error) {
	if q.state == eventQueueDone {
		return FeatureChange{}, false, nil
	}

	if q.state == eventQueueIdle {
		present, err := GetVcpFeature[NewControlValue, *NewControlValue](q.device)
		if err != nil {
			return FeatureChange{}, false, err
		}
		if present != NewControlValuesPresent {
			q.state = eventQueueDone
			return FeatureChange{}, false, nil
		}
		q.state = eventQueueDraining
	}

	code, err := GetVcpFeature[VcpFeatureCode, *VcpFeatureCode](q.device)
	if err != nil {
		return FeatureChange{}, false, err
	}

	if code == CodePage {
		finished := NewControlValueFinished
		if err := SetVcpFeature(q.device, finished); err != nil {
			return FeatureChange{}, false, err
		}
		q.state = eventQueueDone
		return FeatureChange{}, false, nil
	}

	value, err := readChangedValue(q.device, code)
	if err != nil {
		return FeatureChange{}, false, err
	}
	return FeatureChange{Feature: code, Value: value}, true, nil
}

// readChangedValue fetches the current value of a feature code
// reported through the notification FIFO. Feature codes this package
// doesn't materialize into a typed value are not read: they surface
// as a zero AnonymousVcpValue, with the code itself carried in
// FeatureChange.Feature.
func readChangedValue(device *MonitorDevice, code VcpFeatureCode) (VcpValue, error) {
	switch code {
	case LuminanceCode:
		v, err := GetVcpFeature[LuminanceValue, *LuminanceValue](device)
		if err != nil {
			return nil, err
		}
		return &v, nil
	case ContrastCode:
		v, err := GetVcpFeature[ContrastValue, *ContrastValue](device)
		if err != nil {
			return nil, err
		}
		return &v, nil
	case OsdLanguageCode:
		v, err := GetVcpFeature[OsdLanguages, *OsdLanguages](device)
		if err != nil {
			return nil, err
		}
		return &v, nil
	case InputSelectCode:
		v, err := GetVcpFeature[InputSource, *InputSource](device)
		if err != nil {
			return nil, err
		}
		return &v, nil
	default:
		var v AnonymousVcpValue
		return &v, nil
	}
}
