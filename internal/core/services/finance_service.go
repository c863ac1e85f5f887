package services

import (
	"context"

	"golang.org/x/sync/singleflight"

	"github.com/ampliar/clinic-data-gateway/internal/core/domain"
	"github.com/ampliar/clinic-data-gateway/internal/core/ports/in"
	"github.com/ampliar/clinic-data-gateway/internal/core/ports/out"
	"github.com/ampliar/clinic-data-gateway/internal/utils"
)

const (
	paymentsLoadKey = "payments"
	payersLoadKey   = "payers"
)

// FinanceService owns both the payment and the payer mirrors because payer
// deletion cascades to payments and the two caches must move together.
type FinanceService struct {
	remote   out.RemotePort
	logger   out.LoggerPort
	loads    *singleflight.Group
	payments entityCache[domain.Payment]
	payers   entityCache[domain.Payer]
}

func NewFinanceService(remote out.RemotePort, logger out.LoggerPort, loads *singleflight.Group) *FinanceService {
	return &FinanceService{
		remote: remote,
		logger: logger.WithModule("FinanceService"),
		loads:  loads,
	}
}

func (s *FinanceService) GetPayments(ctx context.Context, force bool) ([]domain.Payment, error) {
	if !force {
		if items, ok := s.payments.snapshot(); ok {
			s.logger.Debug("payments.cache.hit", out.LogFields{
				"count": len(items),
			})
			return items, nil
		}
	}

	if force {
		return s.loadPayments(ctx)
	}

	v, err, _ := s.loads.Do(paymentsLoadKey, func() (interface{}, error) {
		return s.loadPayments(ctx)
	})
	if err != nil {
		return nil, err
	}

	shared := v.([]domain.Payment)
	items := make([]domain.Payment, len(shared))
	copy(items, shared)
	return items, nil
}

func (s *FinanceService) loadPayments(ctx context.Context) ([]domain.Payment, error) {
	dtos, err := s.remote.ListPayments(ctx)
	if err != nil {
		s.logger.Error("payments.load.failed", out.LogFields{
			"error": err.Error(),
		})
		return nil, err
	}

	items := make([]domain.Payment, 0, len(dtos))
	for _, dto := range dtos {
		items = append(items, mapPaymentDTO(dto))
	}

	s.logger.Info("payments.loaded", out.LogFields{
		"count": len(items),
	})

	return s.payments.replace(items), nil
}

func (s *FinanceService) CreatePayment(ctx context.Context, input in.CreatePaymentInput) (*domain.Payment, error) {
	// The remote calls the amount field valor.
	body := out.Body{
		"valor":       input.Amount,
		"paymentDate": input.PaymentDate,
		"payerId":     remoteID(input.PayerID),
	}

	dto, err := s.remote.CreatePayment(ctx, body)
	if err != nil {
		s.logger.Error("payments.create.failed", out.LogFields{
			"error": err.Error(),
		})
		return nil, err
	}

	payment := mapPaymentDTO(*dto)
	s.payments.insert(payment, true)

	s.logger.Info("payments.created", out.LogFields{
		"paymentId": payment.ID,
	})
	return &payment, nil
}

func (s *FinanceService) UpdatePayment(ctx context.Context, id string, input in.UpdatePaymentInput) (*domain.Payment, error) {
	body := out.Body{}
	if input.Amount != nil {
		body["valor"] = *input.Amount
	}
	if input.PaymentDate != nil {
		body["paymentDate"] = *input.PaymentDate
	}
	if input.PayerID != nil {
		body["payerId"] = remoteID(*input.PayerID)
	}

	dto, err := s.remote.UpdatePayment(ctx, id, body)
	if err != nil {
		s.logger.Error("payments.update.failed", out.LogFields{
			"paymentId": id,
			"error":     err.Error(),
		})
		return nil, err
	}

	payment := mapPaymentDTO(*dto)
	s.payments.update(func(p domain.Payment) bool { return p.ID == id }, payment)

	s.logger.Info("payments.updated", out.LogFields{
		"paymentId": payment.ID,
	})
	return &payment, nil
}

func (s *FinanceService) DeletePayment(ctx context.Context, id string) error {
	if err := s.remote.DeletePayment(ctx, id); err != nil {
		s.logger.Error("payments.delete.failed", out.LogFields{
			"paymentId": id,
			"error":     err.Error(),
		})
		return err
	}

	s.payments.remove(func(p domain.Payment) bool { return p.ID == id })

	s.logger.Info("payments.deleted", out.LogFields{
		"paymentId": id,
	})
	return nil
}

func (s *FinanceService) GetPayers(ctx context.Context, force bool) ([]domain.Payer, error) {
	if !force {
		if items, ok := s.payers.snapshot(); ok {
			s.logger.Debug("payers.cache.hit", out.LogFields{
				"count": len(items),
			})
			return items, nil
		}
	}

	if force {
		return s.loadPayers(ctx)
	}

	v, err, _ := s.loads.Do(payersLoadKey, func() (interface{}, error) {
		return s.loadPayers(ctx)
	})
	if err != nil {
		return nil, err
	}

	shared := v.([]domain.Payer)
	items := make([]domain.Payer, len(shared))
	copy(items, shared)
	return items, nil
}

func (s *FinanceService) loadPayers(ctx context.Context) ([]domain.Payer, error) {
	dtos, err := s.remote.ListPayers(ctx)
	if err != nil {
		s.logger.Error("payers.load.failed", out.LogFields{
			"error": err.Error(),
		})
		return nil, err
	}

	items := make([]domain.Payer, 0, len(dtos))
	for _, dto := range dtos {
		items = append(items, mapPayerDTO(dto))
	}

	s.logger.Info("payers.loaded", out.LogFields{
		"count": len(items),
	})

	return s.payers.replace(items), nil
}

func (s *FinanceService) CreatePayer(ctx context.Context, input in.CreatePayerInput) (*domain.Payer, error) {
	body := out.Body{
		"fullName":    input.FullName,
		"cpf":         input.CPF,
		"phoneNumber": input.PhoneNumber,
	}

	dto, err := s.remote.CreatePayer(ctx, body)
	if err != nil {
		s.logger.Error("payers.create.failed", out.LogFields{
			"error": err.Error(),
		})
		return nil, err
	}

	payer := mapPayerDTO(*dto)
	s.payers.insert(payer, false)

	s.logger.Info("payers.created", out.LogFields{
		"payerId": payer.ID,
	})
	return &payer, nil
}

func (s *FinanceService) UpdatePayer(ctx context.Context, id string, input in.UpdatePayerInput) (*domain.Payer, error) {
	body := out.Body{}
	if input.FullName != nil {
		body["fullName"] = *input.FullName
	}
	if input.CPF != nil {
		body["cpf"] = *input.CPF
	}
	if input.PhoneNumber != nil {
		body["phoneNumber"] = *input.PhoneNumber
	}

	dto, err := s.remote.UpdatePayer(ctx, id, body)
	if err != nil {
		s.logger.Error("payers.update.failed", out.LogFields{
			"payerId": id,
			"error":   err.Error(),
		})
		return nil, err
	}

	payer := mapPayerDTO(*dto)
	s.payers.update(func(p domain.Payer) bool { return p.ID == id }, payer)

	s.logger.Info("payers.updated", out.LogFields{
		"payerId": payer.ID,
	})
	return &payer, nil
}

func (s *FinanceService) DeletePayer(ctx context.Context, id string) error {
	if err := s.remote.DeletePayer(ctx, id); err != nil {
		s.logger.Error("payers.delete.failed", out.LogFields{
			"payerId": id,
			"error":   err.Error(),
		})
		return err
	}

	s.payers.remove(func(p domain.Payer) bool { return p.ID == id })
	// The remote cascades the delete to the payer's payments; mirror that
	// locally so the payment list never shows orphans.
	s.payments.remove(func(p domain.Payment) bool { return p.PayerID == id })

	s.logger.Info("payers.deleted", out.LogFields{
		"payerId": id,
	})
	return nil
}

func (s *FinanceService) ClearCache() {
	s.payments.clear()
	s.payers.clear()
	s.logger.Debug("finance.cache.cleared", nil)
}

func mapPaymentDTO(dto out.PaymentDTO) domain.Payment {
	paymentDate := ""
	if !dto.PaymentDate.Date.IsZero() {
		paymentDate = utils.DateString(dto.PaymentDate.Date)
	}

	return domain.Payment{
		ID:          formatID(dto.ID),
		Amount:      dto.Valor,
		PaymentDate: paymentDate,
		PayerID:     formatID(dto.PayerID),
	}
}

func mapPayerDTO(dto out.PayerDTO) domain.Payer {
	return domain.Payer{
		ID:          formatID(dto.ID),
		FullName:    dto.FullName,
		CPF:         dto.CPF,
		PhoneNumber: dto.PhoneNumber,
	}
}
