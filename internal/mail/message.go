package mail

import (
	"fmt"
	"net/mail"
	"strings"

	"github.com/go-gomail/gomail"
	"golang.org/x/net/idna"
)

// Message is one report e-mail.
type Message struct {
	From        string
	To          string
	Subject     string
	Body        string
	Attachments []string
}

// Validate normalizes the addresses of m and checks that both are usable.
func (m *Message) Validate() error {
	to, err := NormalizeAddress(m.To)
	if err != nil {
		return fmt.Errorf("%w: %q: %v", ErrInvalidRecipient, m.To, err)
	}
	from, err := NormalizeAddress(m.From)
	if err != nil {
		return fmt.Errorf("%w: %q: %v", ErrInvalidSender, m.From, err)
	}
	m.To, m.From = to, from
	return nil
}

// NormalizeAddress parses addr and converts an internationalized domain to
// its ASCII form. The display name, if any, is dropped.
func NormalizeAddress(addr string) (string, error) {
	addr = strings.TrimSpace(addr)
	if addr == "" {
		return "", fmt.Errorf("empty address")
	}

	parsed, err := mail.ParseAddress(addr)
	if err != nil {
		return "", err
	}

	at := strings.LastIndex(parsed.Address, "@")
	if at <= 0 || at == len(parsed.Address)-1 {
		return "", fmt.Errorf("missing domain in %q", parsed.Address)
	}
	domain, err := idna.Lookup.ToASCII(parsed.Address[at+1:])
	if err != nil {
		return "", fmt.Errorf("invalid domain: %w", err)
	}
	return parsed.Address[:at+1] + domain, nil
}

// mime builds the gomail message.
func (m *Message) mime() *gomail.Message {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.From)
	msg.SetHeader("To", m.To)
	msg.SetHeader("Subject", m.Subject)
	msg.SetBody("text/plain", m.Body)

	for _, f := range m.Attachments {
		msg.Attach(f)
	}
	return msg
}
