package usecases

import (
	"context"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/thriftwise/thriftwise/internal/application/directory"
	"github.com/thriftwise/thriftwise/internal/domain/shared/party"
	"github.com/thriftwise/thriftwise/internal/domain/thrift"
	thriftvo "github.com/thriftwise/thriftwise/internal/domain/thrift/valueobjects"
	"github.com/thriftwise/thriftwise/internal/domain/wallet"
	vo "github.com/thriftwise/thriftwise/internal/domain/wallet/valueobjects"
	"github.com/thriftwise/thriftwise/internal/shared/errors"
	"github.com/thriftwise/thriftwise/internal/shared/logger"
)

type walletRow struct {
	id      uint
	owner   party.Ref
	balance decimal.Decimal
}

// memWalletRepository keeps balances by value; Debit enforces the covering balance.
type memWalletRepository struct {
	mu     sync.Mutex
	rows   map[uint]*walletRow
	nextID uint

	contactWalletOf map[uint]uint
	CreditFunc      func(ctx context.Context, walletID uint, amount decimal.Decimal) error
}

func newMemWalletRepository() *memWalletRepository {
	return &memWalletRepository{rows: make(map[uint]*walletRow), contactWalletOf: make(map[uint]uint)}
}

func (m *memWalletRepository) seed(owner party.Ref, balance int64) uint {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	m.rows[m.nextID] = &walletRow{id: m.nextID, owner: owner, balance: decimal.NewFromInt(balance)}
	return m.nextID
}

func (m *memWalletRepository) balance(owner party.Ref) decimal.Decimal {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.rows {
		if r.owner == owner {
			return r.balance
		}
	}
	return decimal.Zero
}

func (m *memWalletRepository) entity(r *walletRow) *wallet.Wallet {
	return wallet.ReconstructWallet(r.id, r.owner, r.balance, time.Time{}, time.Time{})
}

func (m *memWalletRepository) GetByID(_ context.Context, id uint) (*wallet.Wallet, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if r, ok := m.rows[id]; ok {
		return m.entity(r), nil
	}
	return nil, nil
}

func (m *memWalletRepository) GetByOwner(_ context.Context, owner party.Ref) (*wallet.Wallet, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.rows {
		if r.owner == owner {
			return m.entity(r), nil
		}
	}
	return nil, nil
}

func (m *memWalletRepository) GetOrCreate(ctx context.Context, owner party.Ref) (*wallet.Wallet, error) {
	if w, _ := m.GetByOwner(ctx, owner); w != nil {
		return w, nil
	}
	id := m.seed(owner, 0)
	return m.GetByID(ctx, id)
}

func (m *memWalletRepository) FirstOwnedByMerchantContacts(ctx context.Context, merchantID uint) (*wallet.Wallet, error) {
	m.mu.Lock()
	id, ok := m.contactWalletOf[merchantID]
	m.mu.Unlock()
	if !ok {
		return nil, nil
	}
	return m.GetByID(ctx, id)
}

func (m *memWalletRepository) Credit(ctx context.Context, walletID uint, amount decimal.Decimal) error {
	if m.CreditFunc != nil {
		return m.CreditFunc(ctx, walletID, amount)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	r := m.rows[walletID]
	r.balance = r.balance.Add(amount)
	return nil
}

func (m *memWalletRepository) Debit(_ context.Context, walletID uint, amount decimal.Decimal) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r := m.rows[walletID]
	if r == nil || r.balance.LessThan(amount) {
		return false, nil
	}
	r.balance = r.balance.Sub(amount)
	return true, nil
}

type memTransactionRepository struct {
	mu     sync.Mutex
	rows   []*wallet.Transaction
	nextID uint
}

func (m *memTransactionRepository) Create(_ context.Context, tx *wallet.Transaction) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.rows {
		if r.Type() == tx.Type() && r.Reference() == tx.Reference() {
			return errors.NewConflictError("duplicate transaction reference")
		}
	}
	m.nextID++
	tx.SetID(m.nextID)
	m.rows = append(m.rows, tx)
	return nil
}

func (m *memTransactionRepository) GetByID(_ context.Context, id uint) (*wallet.Transaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.rows {
		if r.ID() == id {
			return r, nil
		}
	}
	return nil, nil
}

func (m *memTransactionRepository) GetByReference(_ context.Context, t vo.TransactionType, reference string) (*wallet.Transaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.rows {
		if r.Type() == t && r.Reference() == reference {
			return r, nil
		}
	}
	return nil, nil
}

func (m *memTransactionRepository) FindByReference(_ context.Context, reference string) (*wallet.Transaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.rows {
		if r.Reference() == reference {
			return r, nil
		}
	}
	return nil, nil
}

func (m *memTransactionRepository) ListByWallet(_ context.Context, walletID uint, _, _ int) ([]*wallet.Transaction, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*wallet.Transaction
	for _, r := range m.rows {
		if r.WalletID() == walletID {
			out = append(out, r)
		}
	}
	return out, int64(len(out)), nil
}

func (m *memTransactionRepository) ListByPackage(_ context.Context, packageID uint, _, _ int) ([]*wallet.Transaction, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*wallet.Transaction
	for _, r := range m.rows {
		if r.PackageID() != nil && *r.PackageID() == packageID {
			out = append(out, r)
		}
	}
	return out, int64(len(out)), nil
}

func (m *memTransactionRepository) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.rows)
}

type mockPackageRepository struct {
	GetByIDFunc func(ctx context.Context, id uint) (*thrift.Package, error)
}

func (m *mockPackageRepository) Create(context.Context, *thrift.Package) error { return nil }
func (m *mockPackageRepository) Update(context.Context, *thrift.Package) error { return nil }

func (m *mockPackageRepository) GetByID(ctx context.Context, id uint) (*thrift.Package, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockPackageRepository) GetBySID(context.Context, string) (*thrift.Package, error) {
	return nil, nil
}

func (m *mockPackageRepository) ExistsByCreatorAndName(context.Context, party.Ref, string, uint) (bool, error) {
	return false, nil
}

func (m *mockPackageRepository) ListForPrincipal(context.Context, party.Ref, int, int) ([]*thrift.Package, int64, error) {
	return nil, 0, nil
}

func (m *mockPackageRepository) ListPublic(context.Context, int, int) ([]*thrift.Package, int64, error) {
	return nil, 0, nil
}

func (m *mockPackageRepository) LockForUpdate(context.Context, uint) error {
	return nil
}

func (m *mockPackageRepository) ListRejectedForUser(context.Context, uint) ([]*thrift.Package, error) {
	return nil, nil
}

type mockAdminRepository struct {
	admins []party.Ref
}

func (m *mockAdminRepository) Add(context.Context, uint, party.Ref) error { return nil }

func (m *mockAdminRepository) IsAdmin(_ context.Context, _ uint, principal party.Ref) (bool, error) {
	for _, a := range m.admins {
		if a == principal {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockAdminRepository) List(context.Context, uint) ([]party.Ref, error) {
	return m.admins, nil
}

type mockContributorRepository struct {
	GetByParticipantFunc func(ctx context.Context, packageID uint, participant party.Ref) (*thrift.Contributor, error)
}

func (m *mockContributorRepository) FindOrCreate(_ context.Context, c *thrift.Contributor) (*thrift.Contributor, bool, error) {
	return c, true, nil
}

func (m *mockContributorRepository) GetByParticipant(ctx context.Context, packageID uint, participant party.Ref) (*thrift.Contributor, error) {
	if m.GetByParticipantFunc != nil {
		return m.GetByParticipantFunc(ctx, packageID, participant)
	}
	return nil, nil
}

func (m *mockContributorRepository) ListByPackage(context.Context, uint) ([]*thrift.Contributor, error) {
	return nil, nil
}

func (m *mockContributorRepository) ListConfirmed(context.Context, uint) ([]*thrift.Contributor, error) {
	return nil, nil
}

func (m *mockContributorRepository) TransitionPending(context.Context, uint, []uint, thriftvo.ContributorStatus) (int64, error) {
	return 0, nil
}

func (m *mockContributorRepository) DeleteByParticipant(context.Context, uint, party.Ref) error {
	return nil
}

func (m *mockContributorRepository) DeleteExcept(context.Context, uint, []party.Ref) (int64, error) {
	return 0, nil
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

type mockTransactor struct{}

func (mockTransactor) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type recordingMetrics struct {
	mu            sync.Mutex
	verifications map[string]int
	credited      decimal.Decimal
	payouts       map[string]int
}

func (m *recordingMetrics) RecordVerification(outcome string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.verifications == nil {
		m.verifications = make(map[string]int)
	}
	m.verifications[outcome]++
}

func (m *recordingMetrics) RecordCredit(amount decimal.Decimal) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.credited = m.credited.Add(amount)
}

func (m *recordingMetrics) RecordPayout(outcome string, _ decimal.Decimal) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.payouts == nil {
		m.payouts = make(map[string]int)
	}
	m.payouts[outcome]++
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
