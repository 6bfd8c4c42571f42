package usecases

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/thriftwise/thriftwise/internal/application/directory"
	"github.com/thriftwise/thriftwise/internal/domain/shared/events"
	"github.com/thriftwise/thriftwise/internal/domain/shared/party"
	"github.com/thriftwise/thriftwise/internal/domain/thrift"
	vo "github.com/thriftwise/thriftwise/internal/domain/thrift/valueobjects"
	"github.com/thriftwise/thriftwise/internal/shared/errors"
	"github.com/thriftwise/thriftwise/internal/shared/logger"
)

// memPackageRepository keeps packages by id and enforces per-creator name uniqueness.
type memPackageRepository struct {
	mu       sync.Mutex
	packages map[uint]*thrift.Package
	nextID   uint
	locked   []uint

	GetByIDFunc func(ctx context.Context, id uint) (*thrift.Package, error)
}

func newMemPackageRepository() *memPackageRepository {
	return &memPackageRepository{packages: make(map[uint]*thrift.Package)}
}

func (m *memPackageRepository) Create(_ context.Context, pkg *thrift.Package) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.packages {
		if p.Creator() == pkg.Creator() && p.Name() == pkg.Name() {
			return errors.NewConflictError("duplicate").WithReason(errors.ReasonDuplicateName)
		}
	}
	m.nextID++
	pkg.SetID(m.nextID)
	m.packages[pkg.ID()] = pkg
	return nil
}

func (m *memPackageRepository) Update(_ context.Context, pkg *thrift.Package) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.packages[pkg.ID()] = pkg
	return nil
}

func (m *memPackageRepository) GetByID(ctx context.Context, id uint) (*thrift.Package, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.packages[id], nil
}

func (m *memPackageRepository) GetBySID(_ context.Context, sid string) (*thrift.Package, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.packages {
		if p.SID() == sid {
			return p, nil
		}
	}
	return nil, nil
}

func (m *memPackageRepository) ExistsByCreatorAndName(_ context.Context, creator party.Ref, name string, excludeID uint) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.packages {
		if p.ID() != excludeID && p.Creator() == creator && p.Name() == name {
			return true, nil
		}
	}
	return false, nil
}

func (m *memPackageRepository) ListForPrincipal(_ context.Context, principal party.Ref, _, _ int) ([]*thrift.Package, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*thrift.Package
	for _, p := range m.packages {
		if p.Creator() == principal {
			out = append(out, p)
		}
	}
	return out, int64(len(out)), nil
}

func (m *memPackageRepository) ListPublic(_ context.Context, _, _ int) ([]*thrift.Package, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*thrift.Package
	for _, p := range m.packages {
		if p.IsPublic() {
			out = append(out, p)
		}
	}
	return out, int64(len(out)), nil
}

func (m *memPackageRepository) LockForUpdate(_ context.Context, id uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.locked = append(m.locked, id)
	return nil
}

func (m *memPackageRepository) ListRejectedForUser(_ context.Context, _ uint) ([]*thrift.Package, error) {
	return nil, nil
}

type memAdminRepository struct {
	mu     sync.Mutex
	admins map[uint][]party.Ref

	ListFunc func(ctx context.Context, packageID uint) ([]party.Ref, error)
}

func newMemAdminRepository() *memAdminRepository {
	return &memAdminRepository{admins: make(map[uint][]party.Ref)}
}

func (m *memAdminRepository) Add(_ context.Context, packageID uint, admin party.Ref) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range m.admins[packageID] {
		if a == admin {
			return nil
		}
	}
	m.admins[packageID] = append(m.admins[packageID], admin)
	return nil
}

func (m *memAdminRepository) IsAdmin(_ context.Context, packageID uint, principal party.Ref) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range m.admins[packageID] {
		if a == principal {
			return true, nil
		}
	}
	return false, nil
}

func (m *memAdminRepository) List(ctx context.Context, packageID uint) ([]party.Ref, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, packageID)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]party.Ref(nil), m.admins[packageID]...), nil
}

type contributorRow struct {
	id          uint
	packageID   uint
	participant party.Ref
	status      vo.ContributorStatus
	createdAt   time.Time
}

func (r contributorRow) entity() *thrift.Contributor {
	return thrift.ReconstructContributor(r.id, r.packageID, r.participant, r.status, r.createdAt, r.createdAt)
}

// memContributorRepository stores rows by value so callers cannot mutate stored state.
// Each insert advances a fake clock to keep admission order observable.
type memContributorRepository struct {
	mu     sync.Mutex
	rows   []contributorRow
	nextID uint
	clock  time.Time
	// slots, when set, loses the slots of deleted contributors like the real schema does.
	slots *memSlotRepository
}

func newMemContributorRepository() *memContributorRepository {
	return &memContributorRepository{clock: time.Date(2024, 12, 1, 9, 0, 0, 0, time.UTC)}
}

func (m *memContributorRepository) FindOrCreate(_ context.Context, c *thrift.Contributor) (*thrift.Contributor, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.rows {
		if r.packageID == c.PackageID() && r.participant == c.Participant() {
			return r.entity(), false, nil
		}
	}
	m.nextID++
	m.clock = m.clock.Add(time.Minute)
	row := contributorRow{
		id:          m.nextID,
		packageID:   c.PackageID(),
		participant: c.Participant(),
		status:      c.Status(),
		createdAt:   m.clock,
	}
	m.rows = append(m.rows, row)
	return row.entity(), true, nil
}

func (m *memContributorRepository) GetByParticipant(_ context.Context, packageID uint, participant party.Ref) (*thrift.Contributor, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.rows {
		if r.packageID == packageID && r.participant == participant {
			return r.entity(), nil
		}
	}
	return nil, nil
}

func (m *memContributorRepository) list(packageID uint, keep func(contributorRow) bool) []*thrift.Contributor {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*thrift.Contributor
	for _, r := range m.rows {
		if r.packageID == packageID && keep(r) {
			out = append(out, r.entity())
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt().Before(out[j].CreatedAt()) })
	return out
}

func (m *memContributorRepository) ListByPackage(_ context.Context, packageID uint) ([]*thrift.Contributor, error) {
	return m.list(packageID, func(contributorRow) bool { return true }), nil
}

func (m *memContributorRepository) ListConfirmed(_ context.Context, packageID uint) ([]*thrift.Contributor, error) {
	return m.list(packageID, func(r contributorRow) bool { return r.status.IsConfirmed() }), nil
}

func (m *memContributorRepository) TransitionPending(_ context.Context, packageID uint, ids []uint, status vo.ContributorStatus) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	wanted := make(map[uint]bool, len(ids))
	for _, id := range ids {
		wanted[id] = true
	}
	var n int64
	for i, r := range m.rows {
		if r.packageID != packageID || !r.status.IsPending() {
			continue
		}
		if ids != nil && !wanted[r.id] {
			continue
		}
		m.rows[i].status = status
		n++
	}
	return n, nil
}

func (m *memContributorRepository) DeleteByParticipant(_ context.Context, packageID uint, participant party.Ref) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	var dropped []uint
	kept := m.rows[:0]
	for _, r := range m.rows {
		if r.packageID == packageID && r.participant == participant {
			dropped = append(dropped, r.id)
			continue
		}
		kept = append(kept, r)
	}
	m.rows = kept
	m.slots.dropContributors(packageID, dropped)
	return nil
}

func (m *memContributorRepository) DeleteExcept(_ context.Context, packageID uint, keep []party.Ref) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	allowed := make(map[party.Ref]bool, len(keep))
	for _, ref := range keep {
		allowed[ref] = true
	}
	var dropped []uint
	kept := m.rows[:0]
	for _, r := range m.rows {
		if r.packageID == packageID && !allowed[r.participant] {
			dropped = append(dropped, r.id)
			continue
		}
		kept = append(kept, r)
	}
	m.rows = kept
	m.slots.dropContributors(packageID, dropped)
	return int64(len(dropped)), nil
}

type responseRow struct {
	id          uint
	packageID   uint
	userID      uint
	invitedBy   party.Ref
	status      vo.ResponseStatus
	respondedAt *time.Time
	createdAt   time.Time
}

type memInviteRepository struct {
	mu     sync.Mutex
	rows   map[uint]responseRow
	nextID uint
}

func newMemInviteRepository() *memInviteRepository {
	return &memInviteRepository{rows: make(map[uint]responseRow)}
}

func (m *memInviteRepository) Replace(_ context.Context, inv *thrift.Invite) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, r := range m.rows {
		if r.packageID == inv.PackageID() && r.userID == inv.InvitedUserID() {
			delete(m.rows, id)
		}
	}
	m.nextID++
	inv.SetID(m.nextID)
	m.rows[inv.ID()] = responseRow{
		id:        inv.ID(),
		packageID: inv.PackageID(),
		userID:    inv.InvitedUserID(),
		invitedBy: inv.InvitedBy(),
		status:    inv.Status(),
		createdAt: inv.CreatedAt(),
	}
	return nil
}

func (m *memInviteRepository) GetByID(_ context.Context, id uint) (*thrift.Invite, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.rows[id]
	if !ok {
		return nil, nil
	}
	return thrift.ReconstructInvite(r.id, r.packageID, r.userID, r.invitedBy, r.status, r.respondedAt, r.createdAt), nil
}

func (m *memInviteRepository) SaveResponse(_ context.Context, inv *thrift.Invite) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.rows[inv.ID()]
	if !ok || !r.status.IsPending() {
		return false, nil
	}
	r.status = inv.Status()
	r.respondedAt = inv.RespondedAt()
	m.rows[inv.ID()] = r
	return true, nil
}

func (m *memInviteRepository) HasPending(_ context.Context, packageID, userID uint) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.rows {
		if r.packageID == packageID && r.userID == userID && r.status.IsPending() {
			return true, nil
		}
	}
	return false, nil
}

func (m *memInviteRepository) ListByUser(_ context.Context, userID uint) ([]*thrift.Invite, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*thrift.Invite
	for _, r := range m.rows {
		if r.userID == userID {
			out = append(out, thrift.ReconstructInvite(r.id, r.packageID, r.userID, r.invitedBy, r.status, r.respondedAt, r.createdAt))
		}
	}
	return out, nil
}

type memApplicationRepository struct {
	mu     sync.Mutex
	rows   map[uint]responseRow
	nextID uint
}

func newMemApplicationRepository() *memApplicationRepository {
	return &memApplicationRepository{rows: make(map[uint]responseRow)}
}

func (m *memApplicationRepository) entity(r responseRow) *thrift.Application {
	return thrift.ReconstructApplication(r.id, r.packageID, r.userID, r.status, r.respondedAt, r.createdAt)
}

func (m *memApplicationRepository) Create(_ context.Context, app *thrift.Application) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	app.SetID(m.nextID)
	m.rows[app.ID()] = responseRow{
		id:        app.ID(),
		packageID: app.PackageID(),
		userID:    app.UserID(),
		status:    app.Status(),
		createdAt: app.CreatedAt(),
	}
	return nil
}

func (m *memApplicationRepository) GetByID(_ context.Context, id uint) (*thrift.Application, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.rows[id]
	if !ok {
		return nil, nil
	}
	return m.entity(r), nil
}

func (m *memApplicationRepository) SaveResponse(_ context.Context, app *thrift.Application) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.rows[app.ID()]
	if !ok || !r.status.IsPending() {
		return false, nil
	}
	r.status = app.Status()
	r.respondedAt = app.RespondedAt()
	m.rows[app.ID()] = r
	return true, nil
}

func (m *memApplicationRepository) HasPending(_ context.Context, packageID, userID uint) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.rows {
		if r.packageID == packageID && r.userID == userID && r.status.IsPending() {
			return true, nil
		}
	}
	return false, nil
}

func (m *memApplicationRepository) ListByPackage(_ context.Context, packageID uint) ([]*thrift.Application, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*thrift.Application
	for _, r := range m.rows {
		if r.packageID == packageID {
			out = append(out, m.entity(r))
		}
	}
	return out, nil
}

func (m *memApplicationRepository) ListByUser(_ context.Context, userID uint) ([]*thrift.Application, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*thrift.Application
	for _, r := range m.rows {
		if r.userID == userID {
			out = append(out, m.entity(r))
		}
	}
	return out, nil
}

type memSlotRepository struct {
	mu       sync.Mutex
	slots    map[uint][]*thrift.Slot
	replaces int
}

func newMemSlotRepository() *memSlotRepository {
	return &memSlotRepository{slots: make(map[uint][]*thrift.Slot)}
}

func (m *memSlotRepository) ReplaceAll(_ context.Context, packageID uint, slots []*thrift.Slot) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.replaces++
	m.slots[packageID] = append([]*thrift.Slot(nil), slots...)
	return nil
}

func (m *memSlotRepository) dropContributors(packageID uint, contributorIDs []uint) {
	if m == nil || len(contributorIDs) == 0 {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	gone := make(map[uint]bool, len(contributorIDs))
	for _, id := range contributorIDs {
		gone[id] = true
	}
	var kept []*thrift.Slot
	for _, s := range m.slots[packageID] {
		if !gone[s.ContributorID()] {
			kept = append(kept, s)
		}
	}
	m.slots[packageID] = kept
}

func (m *memSlotRepository) ListByPackage(_ context.Context, packageID uint) ([]*thrift.Slot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.slots[packageID], nil
}

// mockTransactor runs fn inline and records how often a transaction was opened.
type mockTransactor struct {
	calls int
}

func (m *mockTransactor) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	m.calls++
	return fn(ctx)
}

type mockDirectory struct {
	users     map[uint]*directory.UserInfo
	merchants map[uint]*directory.MerchantInfo
	contacts  map[uint]*directory.ContactInfo
}

func (m *mockDirectory) ResolveUser(_ context.Context, id uint) (*directory.UserInfo, error) {
	return m.users[id], nil
}

func (m *mockDirectory) ResolveMerchant(_ context.Context, id uint) (*directory.MerchantInfo, error) {
	return m.merchants[id], nil
}

func (m *mockDirectory) ResolveContact(_ context.Context, id uint) (*directory.ContactInfo, error) {
	return m.contacts[id], nil
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.DomainEvent

	PublishFunc func(event events.DomainEvent) error
}

func (p *recordingPublisher) Publish(event events.DomainEvent) error {
	if p.PublishFunc != nil {
		if err := p.PublishFunc(event); err != nil {
			return err
		}
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return nil
}

func (p *recordingPublisher) ofType(eventType string) []*thrift.AdmissionEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	var out []*thrift.AdmissionEvent
	for _, e := range p.events {
		if ae, ok := e.(*thrift.AdmissionEvent); ok && e.GetEventType() == eventType {
			out = append(out, ae)
		}
	}
	return out
}

type recordingMetrics struct {
	mu         sync.Mutex
	admissions map[string]int
	slots      []int
}

func (m *recordingMetrics) RecordAdmission(path, outcome string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.admissions == nil {
		m.admissions = make(map[string]int)
	}
	m.admissions[path+":"+outcome]++
}

func (m *recordingMetrics) RecordSlotsGenerated(count int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slots = append(m.slots, count)
}

type mockLogger struct{}

func (m *mockLogger) Debug(string, ...any)          {}
func (m *mockLogger) Info(string, ...any)           {}
func (m *mockLogger) Warn(string, ...any)           {}
func (m *mockLogger) Error(string, ...any)          {}
func (m *mockLogger) With(...any) logger.Interface  { return m }
func (m *mockLogger) Named(string) logger.Interface { return m }
func (m *mockLogger) Debugw(string, ...any)         {}
func (m *mockLogger) Infow(string, ...any)          {}
func (m *mockLogger) Warnw(string, ...any)          {}
func (m *mockLogger) Errorw(string, ...any)         {}
