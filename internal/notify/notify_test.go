package notify

import (
	"errors"
	"strings"
	"testing"

	"github.com/desatorate/desatorate-backend/internal/request"
)

type recordingMailer struct {
	to, subject, body string
	err               error
}

func (m *recordingMailer) Send(to, subject, body, html string) error {
	m.to, m.subject, m.body = to, subject, body
	return m.err
}

func TestNotifyNewRequest(t *testing.T) {
	mailer := &recordingMailer{}
	n := NewEmailNotifier(mailer, "staff@desatorate.com")

	err := n.NotifyNewRequest(request.Request{
		ID:       12,
		Name:     "Ana",
		LastName: "García",
		Email:    "ana@x.com",
		Phone:    "555",
		DeviceOS: "android",
		Comment:  "Fuga de agua",
	})
	if err != nil {
		t.Fatalf("notify failed: %v", err)
	}
	if mailer.to != "staff@desatorate.com" {
		t.Fatalf("mail sent to %q", mailer.to)
	}
	if !strings.Contains(mailer.subject, "#12") {
		t.Fatalf("subject missing request id: %q", mailer.subject)
	}
	for _, want := range []string{"Ana García", "ana@x.com", "Fuga de agua"} {
		if !strings.Contains(mailer.body, want) {
			t.Fatalf("body missing %q: %q", want, mailer.body)
		}
	}
}

func TestNotifyNewRequest_NoStaffAddress(t *testing.T) {
	n := NewEmailNotifier(&recordingMailer{}, "")
	if err := n.NotifyNewRequest(request.Request{ID: 1}); err == nil {
		t.Fatalf("expected error without staff address")
	}
}

func TestNotifyNewRequest_TransportError(t *testing.T) {
	wantErr := errors.New("smtp down")
	n := NewEmailNotifier(&recordingMailer{err: wantErr}, "staff@desatorate.com")
	if err := n.NotifyNewRequest(request.Request{ID: 1}); !errors.Is(err, wantErr) {
		t.Fatalf("expected transport error surfaced, got %v", err)
	}
}
