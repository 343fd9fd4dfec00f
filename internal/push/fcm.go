package push

import (
	"context"
	"fmt"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"google.golang.org/api/option"

	"localizei-backend/internal/domain"
	"localizei-backend/internal/money"
)

// FCMSender pushes approval requests through Firebase Cloud Messaging.
type FCMSender struct {
	client *messaging.Client
}

func NewFCMSender(ctx context.Context, credentialsFile string) (*FCMSender, error) {
	app, err := firebase.NewApp(ctx, nil, option.WithCredentialsFile(credentialsFile))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize firebase app: %w", err)
	}
	client, err := app.Messaging(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize messaging client: %w", err)
	}
	return &FCMSender{client: client}, nil
}

func (s *FCMSender) SendApprovalRequest(ctx context.Context, deviceToken string, tx *domain.CashbackTransaction) error {
	msg := &messaging.Message{
		Token: deviceToken,
		Notification: &messaging.Notification{
			Title: "Nova venda com cashback",
			Body:  fmt.Sprintf("Compra de R$ %s aguardando sua aprovação", money.FormatCents(tx.TotalAmountCents)),
		},
		Data: map[string]string{
			"type":           "CASHBACK_APPROVAL_REQUEST",
			"transaction_id": tx.ID,
			"store_id":       tx.StoreID,
		},
	}
	if _, err := s.client.Send(ctx, msg); err != nil {
		return fmt.Errorf("failed to send approval request push: %w", err)
	}
	return nil
}
