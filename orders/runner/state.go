package runner

// State is the lifecycle phase of a run.
type State int

// The lifecycle phases in the order a successful run passes through them.
const (
	StateStarting State = iota
	StateAborted
	StateConnected
	StateRunning
	StateStopping
	StateClosed
)

func (s State) String() string {
	switch s {
	case StateStarting:
		return "starting"
	case StateAborted:
		return "aborted"
	case StateConnected:
		return "connected"
	case StateRunning:
		return "running"
	case StateStopping:
		return "stopping"
	case StateClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// StopReason tells why a run ended.
type StopReason string

// Reasons for a run to end.
const (
	StopReasonUnreachable   StopReason = "store_unreachable"
	StopReasonInterrupted   StopReason = "interrupted"
	StopReasonLimitReached  StopReason = "limit_reached"
	StopReasonWriteFailed   StopReason = "write_failed"
	StopReasonOpenFailed    StopReason = "open_failed"
	StopReasonInvalidConfig StopReason = "invalid_config"
)
