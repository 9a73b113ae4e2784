package core

import (
	"net/mail"
	"strings"
)

type (
	EmailMessage struct {
		To      []mail.Address
		Cc      []mail.Address
		Subject string
		Body    string // text/plain

		// Categories tag the message for the provider's stats (e.g. "alert", "critical").
		Categories []string
	}

	// EmailService is any service that can send emails
	EmailService interface {
		// SendMessages sends messages concurrently
		SendMessages(messages ...*EmailMessage)
	}
)

func (m *EmailMessage) HasRecipients() bool { return len(m.To) > 0 }
func (m *EmailMessage) HasContent() bool    { return strings.TrimSpace(m.Body) != "" }

// ParseAddressList parses a comma separated list of addresses, skipping invalid ones.
func ParseAddressList(list string) []mail.Address {
	var addrs []mail.Address
	for _, raw := range strings.Split(list, ",") {
		if raw = CleanString(raw); raw == "" {
			continue
		}
		if addr, err := mail.ParseAddress(raw); err == nil {
			addrs = append(addrs, *addr)
		}
	}
	return addrs
}
