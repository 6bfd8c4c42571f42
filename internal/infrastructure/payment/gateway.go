package payment

import (
	"fmt"

	"github.com/thriftwise/thriftwise/internal/application/payment/paymentgateway"
	"github.com/thriftwise/thriftwise/internal/shared/config"
	"github.com/thriftwise/thriftwise/internal/shared/logger"
)

const (
	ProviderPaystack = "paystack"
	ProviderMock     = "mock"
)

// NewGateway builds the adapter selected by cfg.Provider.
func NewGateway(cfg config.GatewayConfig, observer CallObserver, log logger.Interface) (paymentgateway.Gateway, error) {
	switch cfg.Provider {
	case ProviderPaystack:
		if cfg.SecretKey == "" {
			return nil, fmt.Errorf("gateway.secret_key is required for the paystack provider")
		}
		return NewPaystackGateway(cfg, observer, log), nil
	case ProviderMock, "":
		log.Warnw("using the in-memory mock payment gateway; payments are not real")
		return paymentgateway.NewMockGateway(), nil
	default:
		return nil, fmt.Errorf("unknown payment gateway provider %q", cfg.Provider)
	}
}
