package constants

const (
	EnvDevelopment = "development"
	EnvTest        = "test"
	EnvProduction  = "production"

	DefaultPage     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100

	HeaderAuthorization = "Authorization"
	HeaderXRequestID    = "X-Request-ID"

	// Gin context keys set by the auth middleware.
	ContextKeyPrincipal = "principal"
	ContextKeyRequestID = "request_id"

	// JWT claim names carrying the authenticated principal.
	ClaimPrincipalType = "principal_type"
	ClaimPrincipalID   = "principal_id"
)

// Table names.
const (
	TableUsers                = "users"
	TableMerchants            = "merchants"
	TableContacts             = "contacts"
	TableThriftPackages       = "thrift_packages"
	TableThriftContributors   = "thrift_contributors"
	TableThriftInvites        = "thrift_invites"
	TableThriftApplications   = "thrift_applications"
	TableThriftSlots          = "thrift_slots"
	TableThriftAdmins         = "thrift_admins"
	TableThriftMerchantAdmins = "thrift_merchant_admins"
	TableWallets              = "wallets"
	TableWalletTransactions   = "wallet_transactions"
)
