package thrift

import (
	"fmt"
	"time"

	vo "github.com/thriftwise/thriftwise/internal/domain/thrift/valueobjects"
)

// Slot is one numbered rotation position bound to a confirmed contributor.
type Slot struct {
	id            uint
	packageID     uint
	contributorID uint
	slotNo        string
	status        vo.SlotStatus
	createdAt     time.Time
}

// FormatSlotNo renders the 1-based position as a three-digit, zero-padded number.
func FormatSlotNo(position int) string {
	return fmt.Sprintf("%03d", position)
}

func ReconstructSlot(id, packageID, contributorID uint, slotNo string, status vo.SlotStatus, createdAt time.Time) *Slot {
	return &Slot{
		id:            id,
		packageID:     packageID,
		contributorID: contributorID,
		slotNo:        slotNo,
		status:        status,
		createdAt:     createdAt,
	}
}

func (s *Slot) SetID(id uint) { s.id = id }

func (s *Slot) ID() uint              { return s.id }
func (s *Slot) PackageID() uint       { return s.packageID }
func (s *Slot) ContributorID() uint   { return s.contributorID }
func (s *Slot) SlotNo() string        { return s.slotNo }
func (s *Slot) Status() vo.SlotStatus { return s.status }
func (s *Slot) CreatedAt() time.Time  { return s.createdAt }
