package cache

// Status is the provenance of the loaded quote data.
type Status int

const (
	StatusUninitialized Status = iota
	StatusLoading
	StatusOffline
	StatusCached
	StatusOnline
)

// Ready reports whether s is one of the terminal states. All three share the
// same read contract.
func (s Status) Ready() bool {
	return s == StatusOffline || s == StatusCached || s == StatusOnline
}

func (s Status) String() string {
	switch s {
	case StatusUninitialized:
		return "uninitialized"
	case StatusLoading:
		return "loading"
	case StatusOffline:
		return "offline"
	case StatusCached:
		return "cached"
	case StatusOnline:
		return "online"
	default:
		return "unknown"
	}
}

// MarshalText renders the status name in JSON and logs.
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}
