package usecases

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/thriftwise/thriftwise/internal/application/directory"
	"github.com/thriftwise/thriftwise/internal/application/payment/paymentgateway"
	"github.com/thriftwise/thriftwise/internal/domain/shared/party"
	"github.com/thriftwise/thriftwise/internal/domain/thrift"
)

var (
	merchantM = party.Merchant(1)
	merchantX = party.Merchant(2)
	userU     = party.User(7)
	userV     = party.User(8)
	contactC  = party.Contact(11)
	contactD  = party.Contact(21)
)

type ledgerFixture struct {
	pkg          *thrift.Package
	packages     *mockPackageRepository
	admins       *mockAdminRepository
	contributors *mockContributorRepository
	wallets      *memWalletRepository
	transactions *memTransactionRepository
	dir          *mockDirectory
	gateway      *paymentgateway.MockGateway
	metrics      *recordingMetrics
	log          *mockLogger
}

func newLedgerFixture(t *testing.T) *ledgerFixture {
	t.Helper()

	pkg, err := thrift.NewPackage(merchantM, thrift.Details{
		Name:         "Xmas Club",
		TotalAmount:  decimal.NewFromInt(120000),
		DurationDays: 30,
		SlotCount:    5,
	}, "")
	require.NoError(t, err)
	pkg.SetID(1)

	f := &ledgerFixture{
		pkg:          pkg,
		admins:       &mockAdminRepository{},
		contributors: &mockContributorRepository{},
		wallets:      newMemWalletRepository(),
		transactions: &memTransactionRepository{},
		gateway:      paymentgateway.NewMockGateway(),
		metrics:      &recordingMetrics{},
		log:          &mockLogger{},
		dir: &mockDirectory{
			users: map[uint]*directory.UserInfo{
				7: {ID: 7, Email: "u7@example.com", Name: "Ada"},
				8: {ID: 8, Email: "u8@example.com", Name: "Bola"},
			},
			merchants: map[uint]*directory.MerchantInfo{
				1: {ID: 1, Email: "m1@example.com", BusinessName: "Mama Put"},
				2: {ID: 2, Email: "m2@example.com", BusinessName: "Iya Basira"},
			},
			contacts: map[uint]*directory.ContactInfo{
				11: {ID: 11, MerchantID: 1, Email: "c11@example.com", Name: "Chidi"},
				21: {ID: 21, MerchantID: 2, Email: "c21@example.com", Name: "Dayo"},
			},
		},
	}
	f.packages = &mockPackageRepository{
		GetByIDFunc: func(_ context.Context, id uint) (*thrift.Package, error) {
			if id == pkg.ID() {
				return pkg, nil
			}
			return nil, nil
		},
	}
	return f
}

func (f *ledgerFixture) initialize() *InitializeContributionUseCase {
	return NewInitializeContributionUseCase(f.packages, f.admins, f.contributors, f.dir, f.gateway, "NGN", "https://app.local/callback", f.log)
}

func (f *ledgerFixture) verify() *VerifyContributionUseCase {
	return NewVerifyContributionUseCase(f.wallets, f.transactions, f.dir, f.gateway, mockTransactor{}, f.metrics, f.log)
}

func (f *ledgerFixture) payout() *PayoutUseCase {
	return NewPayoutUseCase(f.packages, f.wallets, f.transactions, f.gateway, mockTransactor{}, "NGN", f.metrics, f.log)
}

// pendingPayment registers a gateway transaction as if InitializeContribution had run.
func (f *ledgerFixture) pendingPayment(t *testing.T, reference string, payer party.Ref, amount int64) {
	t.Helper()
	_, err := f.gateway.InitializeTransaction(context.Background(), paymentgateway.InitializeRequest{
		Email:     "payer@example.com",
		Amount:    paymentgateway.ToMinorUnits(decimal.NewFromInt(amount)),
		Currency:  "NGN",
		Reference: reference,
		Metadata: map[string]any{
			MetaPackageID:       f.pkg.ID(),
			MetaContributorType: payer.Kind.String(),
			MetaContributorID:   payer.ID,
		},
	})
	require.NoError(t, err)
}

func validPayout(principal party.Ref, amount int64) PayoutCommand {
	return PayoutCommand{
		Principal:     principal,
		PackageID:     1,
		Amount:        decimal.NewFromInt(amount),
		BankCode:      "058",
		AccountNumber: "0123456789",
		AccountName:   "Ada Obi",
	}
}
