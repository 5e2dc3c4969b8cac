package payments

import (
	"context"
	"fmt"

	mpconfig "github.com/mercadopago/sdk-go/pkg/config"
	"github.com/mercadopago/sdk-go/pkg/preference"
	"go.uber.org/zap"

	"github.com/ericfrick132/beauty-salon-sub003/internal/models"
)

// MercadoPago cria a preferência de pagamento do sinal exigido pelo salão.
// O fluxo de checkout em si acontece fora daqui, no gateway.
type MercadoPago struct {
	prefs preference.Client
	log   *zap.Logger
}

func NewMercadoPago(accessToken string, log *zap.Logger) (*MercadoPago, error) {
	cfg, err := mpconfig.New(accessToken)
	if err != nil {
		return nil, err
	}

	return &MercadoPago{
		prefs: preference.NewClient(cfg),
		log:   log,
	}, nil
}

func (m *MercadoPago) CreateDepositPreference(
	ctx context.Context,
	salon *models.Salon,
	service *models.Service,
	clientEmail string,
) (string, error) {

	req := buildDepositRequest(salon, service, clientEmail)

	res, err := m.prefs.Create(ctx, req)
	if err != nil {
		m.log.Warn("mercadopago preference failed", zap.Error(err))
		return "", err
	}

	return res.ID, nil
}

// buildDepositRequest monta a preferência: um item só, no valor do sinal do
// salão (ou do serviço inteiro quando o salão não configurou sinal).
func buildDepositRequest(
	salon *models.Salon,
	service *models.Service,
	clientEmail string,
) preference.Request {

	amount := salon.DepositAmount
	if amount <= 0 {
		amount = service.Price
	}

	req := preference.Request{
		Items: []preference.ItemRequest{
			{
				Title:     fmt.Sprintf("Sinal - %s (%s)", service.Name, salon.Name),
				Quantity:  1,
				UnitPrice: amount,
			},
		},
		ExternalReference: fmt.Sprintf("salon:%d:service:%d", salon.ID, service.ID),
	}

	if clientEmail != "" {
		req.Payer = &preference.PayerRequest{Email: clientEmail}
	}

	return req
}
