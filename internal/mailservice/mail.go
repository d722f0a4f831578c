package mailservice

import (
	"time"

	"github.com/go-mail/mail/v2"
)

const dialTimeout = 5 * time.Second

func NewMailer(host string, port int, username, password, sender string, tp TemplateParser) *Mail {
	dialer := mail.NewDialer(host, port, username, password)
	dialer.Timeout = dialTimeout

	return &Mail{
		dialer: dialer,
		sender: sender,
		parser: tp,
	}
}

func (m *Mail) message(recipient string, r *Rendered) *mail.Message {
	msg := mail.NewMessage()
	msg.SetHeaders(map[string][]string{
		"From":    {m.sender},
		"To":      {recipient},
		"Subject": {r.Subject},
	})
	msg.SetBody("text/plain", r.PlainBody)
	msg.AddAlternative("text/html", r.HTMLBody)

	return msg
}

// send renders templateFile for recipient and hands it to the SMTP dialer. Dials are serialized.
func (m *Mail) send(recipient string, data any, templateFile string) error {
	r, err := m.parser.Render(templateFile, data)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	return m.dialer.DialAndSend(m.message(recipient, r))
}
