package email

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/gomail.v2"
)

type captureSender struct {
	sent []*gomail.Message
}

func (c *captureSender) DialAndSend(m ...*gomail.Message) error {
	c.sent = append(c.sent, m...)
	return nil
}

func TestNotifyTicketAssigned(t *testing.T) {
	capture := &captureSender{}
	svc := NewSMTPEmailService(SMTPConfig{FromAddress: "crm@example.com", FromName: "CRM", FrontendURL: "https://crm.example.com"})
	svc.sender = capture

	err := svc.NotifyTicketAssigned(context.Background(), "jane@example.com", "Jane", 7, "Call <Bob>")
	require.NoError(t, err)
	require.Len(t, capture.sent, 1)

	msg := capture.sent[0]
	assert.Equal(t, []string{"jane@example.com"}, msg.GetHeader("To"))
	assert.Equal(t, []string{"Ticket #7 assigned to you"}, msg.GetHeader("Subject"))

	var buf bytes.Buffer
	_, err = msg.WriteTo(&buf)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "https://crm.example.com/tickets/7")
	assert.Contains(t, buf.String(), `The ticket "Call <Bob>" was assigned to you.`)
	assert.Contains(t, buf.String(), "Call &lt;Bob&gt;")
}

func TestNotifyTicketAssigned_RequiresAddress(t *testing.T) {
	svc := NewSMTPEmailService(SMTPConfig{})
	svc.sender = &captureSender{}
	assert.Error(t, svc.NotifyTicketAssigned(context.Background(), "", "Jane", 1, "x"))
}

func TestDisabledNotifier(t *testing.T) {
	err := DisabledNotifier{}.NotifyTicketAssigned(context.Background(), "a@b.c", "A", 1, "t")
	assert.ErrorIs(t, err, ErrEmailServiceNotConfigured)
}
