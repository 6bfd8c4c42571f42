package valueobjects

type ContributorStatus string

const (
	ContributorStatusPending   ContributorStatus = "pending"
	ContributorStatusConfirmed ContributorStatus = "confirmed"
	ContributorStatusRejected  ContributorStatus = "rejected"
)

func (s ContributorStatus) IsValid() bool {
	switch s {
	case ContributorStatusPending, ContributorStatusConfirmed, ContributorStatusRejected:
		return true
	}
	return false
}

func (s ContributorStatus) IsPending() bool   { return s == ContributorStatusPending }
func (s ContributorStatus) IsConfirmed() bool { return s == ContributorStatusConfirmed }

func (s ContributorStatus) String() string {
	return string(s)
}
