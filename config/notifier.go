package config

import (
	"context"
	"fmt"
	"os"
	"strconv"

	qrcode "github.com/skip2/go-qrcode"
	"go.mau.fi/whatsmeow"
	"go.mau.fi/whatsmeow/store/sqlstore"
	"gopkg.in/gomail.v2"
)

var meowWhatsapp *whatsmeow.Client

func NotifierEnabled() bool {
	return os.Getenv("NOTIFIER_ENABLED") == "true"
}

func GetSchoolPhone() string {
	return os.Getenv("SCHOOL_PHONE")
}

func GetEmailSender() (string, error) {
	sender := os.Getenv("EMAIL_SENDER")
	if sender == "" {
		return "", fmt.Errorf("email sender invalid, value : %s", sender)
	}
	return sender, nil
}

// InitMailer builds the SMTP dialer for parent notification emails.
func InitMailer() (*gomail.Dialer, string, error) {
	sender, err := GetEmailSender()
	if err != nil {
		return nil, "", err
	}

	host := os.Getenv("SMTP_HOST")
	if host == "" {
		return nil, "", fmt.Errorf("smtp host invalid, value : %s", host)
	}

	portRaw := os.Getenv("SMTP_PORT")
	port, err := strconv.Atoi(portRaw)
	if err != nil {
		return nil, "", fmt.Errorf("smtp port invalid, value : %s", portRaw)
	}

	password := os.Getenv("EMAIL_SENDER_PASSWORD")
	if password == "" {
		return nil, "", fmt.Errorf("email password is missing")
	}

	return gomail.NewDialer(host, port, sender, password), sender, nil
}

// InitMeow connects the WhatsApp client, reusing the session stored in
// Postgres. On first run it writes the pairing QR to qrcode.png and blocks
// until an admin scans it.
func InitMeow(ctx context.Context) (*whatsmeow.Client, error) {
	meowAddress := fmt.Sprintf("user=%s password=%s dbname=%s sslmode=disable",
		os.Getenv("DB_USER"), os.Getenv("DB_PASSWORD"), os.Getenv("DB_DATABASE"))

	container, err := sqlstore.New(ctx, "postgres", meowAddress, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open whatsapp session store: %w", err)
	}

	deviceStore, err := container.GetFirstDevice(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load whatsapp device: %w", err)
	}

	client := whatsmeow.NewClient(deviceStore, nil)
	meowWhatsapp = client

	if client.Store.ID == nil {
		qrChan, _ := client.GetQRChannel(ctx)
		if err := client.Connect(); err != nil {
			return nil, fmt.Errorf("failed to connect whatsapp client: %w", err)
		}

		for evt := range qrChan {
			if evt.Event == "code" {
				if err := generateQRCode(evt.Code, "qrcode.png"); err != nil {
					return nil, err
				}
				fmt.Println("Need admin to scan qrcode.png for the notifier to run!")
			} else {
				fmt.Println("Login event:", evt.Event)
			}
		}
	} else {
		if err := client.Connect(); err != nil {
			return nil, fmt.Errorf("failed to connect whatsapp client: %w", err)
		}
	}

	return client, nil
}

func generateQRCode(data, filePath string) error {
	err := qrcode.WriteFile(data, qrcode.Medium, 256, filePath)
	if err != nil {
		return fmt.Errorf("failed to generate QR code: %v", err)
	}
	return nil
}
