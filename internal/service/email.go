package service

import (
	"context"
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"localizei-backend/internal/domain"
	"localizei-backend/internal/money"
)

type emailService struct {
	client *sendgrid.Client
	from   string
}

func NewEmailService(apiKey, from string) EmailService {
	return &emailService{
		client: sendgrid.NewSendClient(apiKey),
		from:   from,
	}
}

func (s *emailService) SendApprovalReceipt(ctx context.Context, email string, tx *domain.CashbackTransaction) error {
	body := fmt.Sprintf(
		"Your purchase of R$ %s was approved.\n\nPaid now: R$ %s\nCashback used: R$ %s\nCashback earned: R$ %s\n\nLocalizei JPA",
		money.FormatCents(tx.TotalAmountCents),
		money.FormatCents(tx.AmountToPayNowCents),
		money.FormatCents(tx.CashbackUsedCents),
		money.FormatCents(tx.CashbackToEarnCents),
	)
	return s.send(ctx, email, "Compra aprovada - Localizei", body)
}

func (s *emailService) SendRejectionNotice(ctx context.Context, email string, tx *domain.CashbackTransaction) error {
	body := fmt.Sprintf(
		"Your purchase of R$ %s was rejected by the store. No amount was deducted from your cashback balance.\n\nLocalizei JPA",
		money.FormatCents(tx.TotalAmountCents),
	)
	return s.send(ctx, email, "Compra recusada - Localizei", body)
}

func (s *emailService) send(ctx context.Context, email, subject, body string) error {
	from := mail.NewEmail("Localizei", s.from)
	to := mail.NewEmail("", email)
	message := mail.NewSingleEmail(from, subject, to, body, "")

	resp, err := s.client.SendWithContext(ctx, message)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("sendgrid returned status %d", resp.StatusCode)
	}
	return nil
}
