package valueobjects

// ResponseStatus is the lifecycle shared by invites and applications. Anything other than
// pending is terminal.
type ResponseStatus string

const (
	ResponseStatusPending  ResponseStatus = "pending"
	ResponseStatusAccepted ResponseStatus = "accepted"
	ResponseStatusRejected ResponseStatus = "rejected"
)

func ResponseFor(accept bool) ResponseStatus {
	if accept {
		return ResponseStatusAccepted
	}
	return ResponseStatusRejected
}

func (s ResponseStatus) IsValid() bool {
	switch s {
	case ResponseStatusPending, ResponseStatusAccepted, ResponseStatusRejected:
		return true
	}
	return false
}

func (s ResponseStatus) IsPending() bool {
	return s == ResponseStatusPending
}

func (s ResponseStatus) String() string {
	return string(s)
}
