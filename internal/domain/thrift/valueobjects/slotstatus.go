package valueobjects

type SlotStatus string

const (
	SlotStatusPending   SlotStatus = "pending"
	SlotStatusPaid      SlotStatus = "paid"
	SlotStatusCollected SlotStatus = "collected"
)

func (s SlotStatus) IsValid() bool {
	switch s {
	case SlotStatusPending, SlotStatusPaid, SlotStatusCollected:
		return true
	}
	return false
}

func (s SlotStatus) String() string {
	return string(s)
}
