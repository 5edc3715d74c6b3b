package services

import (
	"fmt"

	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
)

// Notifier sends templated customer email. Delivery failures are logged and
// never propagated to the operation that triggered them.
type Notifier interface {
	Send(template, recipient string, data map[string]any) error
}

const (
	TemplateOrderConfirmation = "order_confirmation"
	TemplatePickupReminder    = "pickup_reminder"
	TemplateBirthdayBonus     = "birthday_bonus"
)

var templateSubjects = map[string]string{
	TemplateOrderConfirmation: "We got your order",
	TemplatePickupReminder:    "Your pickup is coming up",
	TemplateBirthdayBonus:     "Happy birthday, points on us",
}

// SMTPNotifier delivers mail through the configured SMTP relay.
type SMTPNotifier struct {
	dialer *gomail.Dialer
	from   string
}

func NewSMTPNotifier(host string, port int, username, password, from string) *SMTPNotifier {
	return &SMTPNotifier{
		dialer: gomail.NewDialer(host, port, username, password),
		from:   from,
	}
}

func (n *SMTPNotifier) Send(template, recipient string, data map[string]any) error {
	subject, ok := templateSubjects[template]
	if !ok {
		subject = template
	}

	body := fmt.Sprintf("[%s]\n", template)
	for k, v := range data {
		body += fmt.Sprintf("%s: %v\n", k, v)
	}

	m := gomail.NewMessage()
	m.SetHeader("From", n.from)
	m.SetHeader("To", recipient)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	return n.dialer.DialAndSend(m)
}

// SendAsync fires the notification on its own goroutine and swallows the
// error after logging it. Order creation must succeed even when the
// confirmation mail does not.
func SendAsync(n Notifier, template, recipient string, data map[string]any) {
	go func() {
		if err := n.Send(template, recipient, data); err != nil {
			zap.L().Error("notification send failed",
				zap.String("template", template),
				zap.String("recipient", recipient),
				zap.Error(err))
		}
	}()
}
