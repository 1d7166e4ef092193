// Package notify announces new service requests to operators by email. It
// replaces the implicit post-save hook the legacy backend used with an
// explicit call from the submission service.
package notify

import (
	"fmt"

	"github.com/desatorate/desatorate-backend/internal/mail"
	"github.com/desatorate/desatorate-backend/internal/request"
)

type EmailNotifier struct {
	mailer    mail.Mailer
	staffAddr string
}

func NewEmailNotifier(mailer mail.Mailer, staffAddr string) *EmailNotifier {
	return &EmailNotifier{mailer: mailer, staffAddr: staffAddr}
}

func (n *EmailNotifier) NotifyNewRequest(req request.Request) error {
	if n.staffAddr == "" {
		return fmt.Errorf("no staff address configured")
	}

	subject := fmt.Sprintf("Nueva solicitud de servicio #%d", req.ID)
	body := fmt.Sprintf(
		"Solicitante: %s\nEmail: %s\nTeléfono: %s\nDispositivo: %s\nFecha: %s\n\n%s\n",
		req.FullName(), req.Email, req.Phone, req.DeviceOS, req.RequestDate, req.Comment,
	)

	return n.mailer.Send(n.staffAddr, subject, body, "")
}
