package valueobjects

type PackageStatus string

const (
	PackageStatusDraft     PackageStatus = "draft"
	PackageStatusPending   PackageStatus = "pending"
	PackageStatusOngoing   PackageStatus = "ongoing"
	PackageStatusCompleted PackageStatus = "completed"
	PackageStatusRejected  PackageStatus = "rejected"
)

var packageTransitions = map[PackageStatus][]PackageStatus{
	PackageStatusDraft:   {PackageStatusPending, PackageStatusOngoing, PackageStatusRejected},
	PackageStatusPending: {PackageStatusDraft, PackageStatusOngoing, PackageStatusRejected},
	PackageStatusOngoing: {PackageStatusCompleted},
}

func (s PackageStatus) IsValid() bool {
	switch s {
	case PackageStatusDraft, PackageStatusPending, PackageStatusOngoing, PackageStatusCompleted, PackageStatusRejected:
		return true
	}
	return false
}

// IsInitial reports whether a package may be created directly in this status.
func (s PackageStatus) IsInitial() bool {
	return s == PackageStatusDraft || s == PackageStatusPending
}

func (s PackageStatus) IsFinal() bool {
	return s == PackageStatusCompleted || s == PackageStatusRejected
}

func (s PackageStatus) CanTransitionTo(next PackageStatus) bool {
	for _, allowed := range packageTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

func (s PackageStatus) String() string {
	return string(s)
}
