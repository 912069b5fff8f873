package contact

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"recetario-backend/domain"
)

type fakeMailer struct {
	to      string
	subject string
	body    string
	err     error
}

func (f *fakeMailer) Send(toEmail string, subject string, body string) error {
	f.to = toEmail
	f.subject = subject
	f.body = body
	return f.err
}

func TestSendMessage(t *testing.T) {
	mailer := &fakeMailer{}
	svc := NewContactService(mailer)

	err := svc.SendMessage(context.Background(), domain.ContactRequest{
		Name:    "Ana",
		Email:   "ana@test.com",
		Message: "Hola, una consulta.",
	})
	require.NoError(t, err)
	require.Equal(t, "Nuevo mensaje de contacto de Ana", mailer.subject)
	require.Contains(t, mailer.body, "ana@test.com")
	require.Contains(t, mailer.body, "Hola, una consulta.")
}

func TestSendMessageEscapesHTML(t *testing.T) {
	mailer := &fakeMailer{}
	svc := NewContactService(mailer)

	err := svc.SendMessage(context.Background(), domain.ContactRequest{
		Name:    "Ana",
		Email:   "ana@test.com",
		Message: "<script>alert(1)</script>",
	})
	require.NoError(t, err)
	require.NotContains(t, mailer.body, "<script>")
	require.Contains(t, mailer.body, "&lt;script&gt;")
}

func TestSendMessagePropagatesMailerError(t *testing.T) {
	mailer := &fakeMailer{err: fmt.Errorf("dial tcp: connection refused")}
	svc := NewContactService(mailer)

	err := svc.SendMessage(context.Background(), domain.ContactRequest{
		Name:    "Ana",
		Email:   "ana@test.com",
		Message: "Hola",
	})
	require.ErrorContains(t, err, "connection refused")
}
