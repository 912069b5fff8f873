package contact

import (
	"context"
	"fmt"
	"html"

	"recetario-backend/domain"
	"recetario-backend/internal/utils"
	"recetario-backend/internal/utils/mailing"
)

type (
	ContactService interface {
		SendMessage(ctx context.Context, req domain.ContactRequest) error
	}

	contactService struct {
		mailer mailing.Mailer
	}
)

func NewContactService(mailer mailing.Mailer) ContactService {
	return &contactService{mailer: mailer}
}

func (s *contactService) SendMessage(_ context.Context, req domain.ContactRequest) error {
	inbox := utils.GetConfig("CONTACT_INBOX")
	if inbox == "" {
		inbox = utils.GetConfig("SMTP_AUTH_EMAIL")
	}

	subject := fmt.Sprintf("Nuevo mensaje de contacto de %s", req.Name)
	body := fmt.Sprintf(
		"<p><b>Nombre:</b> %s</p><p><b>Email:</b> %s</p><p>%s</p>",
		html.EscapeString(req.Name),
		html.EscapeString(req.Email),
		html.EscapeString(req.Message),
	)

	return s.mailer.Send(inbox, subject, body)
}
