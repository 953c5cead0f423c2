package repository

import (
	"context"
	"fmt"
	"os"
	"strings"

	"go.mau.fi/whatsmeow"
	"go.mau.fi/whatsmeow/proto/waE2E"
	"go.mau.fi/whatsmeow/types"
	"gopkg.in/gomail.v2"

	"schoolhealth/domain"
)

type notifierRepository struct {
	meowClient  *whatsmeow.Client
	mailer      *gomail.Dialer
	emailSender string
	schoolPhone string
}

// NewNotifierRepository wires the two delivery channels. Either client may be
// nil; Send skips the missing one.
func NewNotifierRepository(meow *whatsmeow.Client, mailer *gomail.Dialer, emailSender, schoolPhone string) domain.Notifier {
	return &notifierRepository{
		meowClient:  meow,
		mailer:      mailer,
		emailSender: emailSender,
		schoolPhone: schoolPhone,
	}
}

// Send tries WhatsApp first, then falls back to email, and reports which
// channel delivered the notice.
func (n *notifierRepository) Send(ctx context.Context, notice *domain.ParentNotice) (string, error) {
	var lastErr error

	if n.meowClient != nil && notice.Parent.Telephone != nil && *notice.Parent.Telephone != "" {
		if err := n.sendWA(ctx, notice); err == nil {
			return domain.NotifyMethodWhatsApp, nil
		} else {
			lastErr = err
		}
	}

	if n.mailer != nil && notice.Parent.Email != nil && *notice.Parent.Email != "" {
		if err := n.sendEmail(notice); err == nil {
			return domain.NotifyMethodEmail, nil
		} else {
			lastErr = err
		}
	}

	if lastErr != nil {
		return "", fmt.Errorf("failed to notify parent %d: %w", notice.Parent.UserID, lastErr)
	}
	return "", fmt.Errorf("parent %d has no reachable contact channel", notice.Parent.UserID)
}

func (n *notifierRepository) sendWA(ctx context.Context, notice *domain.ParentNotice) error {
	number := *notice.Parent.Telephone
	countryCode := os.Getenv("WA_COUNTRY_CODE")
	if countryCode == "" {
		countryCode = "84"
	}
	if strings.HasPrefix(number, "0") {
		number = countryCode + number[1:]
	}

	jid := types.NewJID(number, types.DefaultUserServer)

	body := notice.Body
	conversationMessage := &waE2E.Message{
		Conversation: &body,
	}

	if _, err := n.meowClient.SendMessage(ctx, jid, conversationMessage); err != nil {
		return fmt.Errorf("failed to send whatsapp message: %w", err)
	}
	return nil
}

func (n *notifierRepository) sendEmail(notice *domain.ParentNotice) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", n.emailSender)
	msg.SetHeader("To", *notice.Parent.Email)
	msg.SetHeader("Subject", notice.Subject)
	msg.SetBody("text/plain", notice.Body)

	if err := n.mailer.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}
