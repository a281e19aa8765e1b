package ses

import (
	"context"
	"fmt"
	"html"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"

	"gstsync/internal/port"
)

type sesSender struct {
	client      *sesv2.Client
	fromAddress string
	fromName    string
}

// NewSESSender creates a new SES-backed EmailSender.
func NewSESSender(region, fromAddress, fromName string) (port.EmailSender, error) {
	cfg, err := awsconfig.LoadDefaultConfig(context.Background(), awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("loading AWS config for SES: %w", err)
	}
	return &sesSender{
		client:      sesv2.NewFromConfig(cfg),
		fromAddress: fromAddress,
		fromName:    fromName,
	}, nil
}

func (s *sesSender) SendInvoiceEmail(ctx context.Context, msg port.InvoiceEmail) error {
	subject := invoiceSubject(msg)
	htmlBody := buildInvoiceHTML(msg)
	textBody := buildInvoiceText(msg)

	from := fmt.Sprintf("%s <%s>", s.fromName, s.fromAddress)
	if msg.CompanyName != "" {
		from = fmt.Sprintf("%s <%s>", msg.CompanyName, s.fromAddress)
	}

	_, err := s.client.SendEmail(ctx, &sesv2.SendEmailInput{
		FromEmailAddress: &from,
		Destination: &types.Destination{
			ToAddresses: []string{msg.ToEmail},
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{Data: &subject},
				Body: &types.Body{
					Html: &types.Content{Data: &htmlBody},
					Text: &types.Content{Data: &textBody},
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("SES SendEmail: %w", err)
	}
	return nil
}

func invoiceSubject(msg port.InvoiceEmail) string {
	return fmt.Sprintf("Your invoice %s for order %s", msg.InvoiceNumber, msg.OrderNumber)
}

func greetingName(msg port.InvoiceEmail) string {
	if msg.ToName == "" {
		return "there"
	}
	return msg.ToName
}

func buildInvoiceText(msg port.InvoiceEmail) string {
	return fmt.Sprintf("Hi %s,\n\nThank you for your order %s. Your GST invoice %s is ready:\n%s\n\nThis link expires in 7 days.\n\n%s",
		greetingName(msg), msg.OrderNumber, msg.InvoiceNumber, msg.DocumentURL, msg.CompanyName)
}

func buildInvoiceHTML(msg port.InvoiceEmail) string {
	name := html.EscapeString(greetingName(msg))
	company := html.EscapeString(msg.CompanyName)
	link := html.EscapeString(msg.DocumentURL)
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"></head>
<body style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
  <h2 style="color: #333;">Your invoice is ready</h2>
  <p>Hi %s,</p>
  <p>Thank you for your order <strong>%s</strong>. Your GST invoice <strong>%s</strong> is ready to download.</p>
  <p style="text-align: center; margin: 30px 0;">
    <a href="%s" style="background-color: #4F46E5; color: white; padding: 12px 24px; text-decoration: none; border-radius: 6px; display: inline-block;">Download Invoice</a>
  </p>
  <p>Or copy and paste this link into your browser:</p>
  <p style="word-break: break-all; color: #666;">%s</p>
  <p style="color: #999; font-size: 12px;">This link expires in 7 days.</p>
  <hr style="border: none; border-top: 1px solid #eee; margin: 20px 0;">
  <p style="color: #999; font-size: 12px;">%s</p>
</body>
</html>`, name, html.EscapeString(msg.OrderNumber), html.EscapeString(msg.InvoiceNumber), link, link, company)
}
