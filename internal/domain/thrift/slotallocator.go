package thrift

import (
	"sort"

	vo "github.com/thriftwise/thriftwise/internal/domain/thrift/valueobjects"
	"github.com/thriftwise/thriftwise/internal/shared/biztime"
	"github.com/thriftwise/thriftwise/internal/shared/errors"
)

// AllocateSlots assigns rotation slots to confirmed contributors in admission order.
//
// The earliest admitted contributor gets "001". Only the first min(slot_count, confirmed)
// contributors are slotted; an under-subscribed package simply gets fewer slots. The result
// is a full replacement set: callers discard any previous slots for the package, so slot
// history is not preserved across regeneration.
func AllocateSlots(pkg *Package, contributors []*Contributor) ([]*Slot, error) {
	confirmed := make([]*Contributor, 0, len(contributors))
	for _, c := range contributors {
		if c.PackageID() == pkg.ID() && c.IsConfirmed() {
			confirmed = append(confirmed, c)
		}
	}
	if len(confirmed) == 0 {
		return nil, errors.NewStateError(errors.ReasonNoConfirmedContributors, "package has no confirmed contributors")
	}

	sort.SliceStable(confirmed, func(i, j int) bool {
		a, b := confirmed[i], confirmed[j]
		if !a.CreatedAt().Equal(b.CreatedAt()) {
			return a.CreatedAt().Before(b.CreatedAt())
		}
		return a.ID() < b.ID()
	})

	n := min(pkg.SlotCount(), len(confirmed))
	now := biztime.NowUTC()
	slots := make([]*Slot, 0, n)
	for i := 0; i < n; i++ {
		slots = append(slots, &Slot{
			packageID:     pkg.ID(),
			contributorID: confirmed[i].ID(),
			slotNo:        FormatSlotNo(i + 1),
			status:        vo.SlotStatusPending,
			createdAt:     now,
		})
	}
	return slots, nil
}
