package mailer

import (
	"bytes"
	"fmt"
	"html/template"
	"mime"
	"mime/multipart"
	"mime/quotedprintable"
	"net/mail"
	"net/textproto"
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/google/uuid"

	"github.com/m04kA/SMC-TrainingScheduler/internal/domain"
)

const (
	inviteFilename = "invite.ics"
	productID      = "-//SMC//Training Scheduler//PT"
	whenLayout     = "02/01/2006 15:04"
)

var bodyTemplate = template.Must(template.New("invite").Parse(`<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <p>Olá,</p>
  <p>Você foi convidado para um treinamento {{.Type}} da {{.Company}}.</p>
  <p><strong>Data e hora:</strong> {{.When}}</p>
  <p><strong>Empresa:</strong> {{.Company}}</p>
  {{- if .MeetingLink}}
  <p><strong>Link da reunião:</strong> <a href="{{.MeetingLink}}" target="_blank">{{.MeetingLink}}</a></p>
  {{- end}}
  <p>Este convite contém o arquivo "invite.ics" para adicionar o evento ao seu calendário.</p>
</div>
`))

// newInvite собирает данные приглашения для записи на тренинг
func newInvite(t *domain.Training, loc *time.Location, duration time.Duration, link string) invite {
	start := t.ScheduledAt.In(loc)
	return invite{
		Company:     t.Company,
		Type:        string(t.TrainingType),
		When:        start.Format(whenLayout),
		MeetingLink: link,
		Start:       start,
		End:         start.Add(duration),
	}
}

// subject тема письма: "<префикс>: <тип> - <компания> (dd/mm/yyyy hh:mm)"
func subject(prefix string, inv invite) string {
	return fmt.Sprintf("%s: %s - %s (%s)", prefix, inv.Type, inv.Company, inv.When)
}

// buildCalendar календарное событие METHOD:REQUEST со всеми участниками
func buildCalendar(t *domain.Training, inv invite, organizer, organizerName string, now time.Time) string {
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodRequest)
	cal.SetProductId(productID)

	event := cal.AddEvent(uuid.NewString())
	event.SetDtStampTime(now.UTC())
	event.SetStartAt(inv.Start)
	event.SetEndAt(inv.End)
	event.SetSummary(fmt.Sprintf("Treinamento %s - %s", inv.Type, inv.Company))

	description := fmt.Sprintf("Treinamento %s para %s.", inv.Type, inv.Company)
	if inv.MeetingLink != "" {
		description += "\n\nLink da reunião: " + inv.MeetingLink
		event.SetURL(inv.MeetingLink)
		event.SetLocation("Online")
	}
	event.SetDescription(description)
	event.SetStatus(ics.ObjectStatusConfirmed)

	if organizer != "" {
		event.SetOrganizer("mailto:"+organizer, ics.WithCN(organizerName))
	}

	for _, p := range t.Participants {
		if p.Email == "" {
			continue
		}
		event.AddAttendee(p.Email,
			ics.WithCN(p.Name),
			ics.CalendarUserTypeIndividual,
			ics.ParticipationStatusNeedsAction,
			ics.ParticipationRoleReqParticipant,
			ics.WithRSVP(true),
		)
	}

	return cal.Serialize()
}

// buildMessage письмо multipart/mixed: HTML тело и вложение invite.ics
func buildMessage(from mail.Address, to string, subj string, inv invite, calendar string, now time.Time) ([]byte, error) {
	var html bytes.Buffer
	if err := bodyTemplate.Execute(&html, inv); err != nil {
		return nil, fmt.Errorf("%w: render body: %v", ErrBuildMessage, err)
	}

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)

	if err := writePart(mw, textproto.MIMEHeader{
		"Content-Type":              {"text/html; charset=UTF-8"},
		"Content-Transfer-Encoding": {"quoted-printable"},
	}, html.Bytes()); err != nil {
		return nil, err
	}

	if err := writePart(mw, textproto.MIMEHeader{
		"Content-Type":              {`text/calendar; charset=UTF-8; method=REQUEST; name="` + inviteFilename + `"`},
		"Content-Disposition":       {`attachment; filename="` + inviteFilename + `"`},
		"Content-Transfer-Encoding": {"quoted-printable"},
	}, []byte(calendar)); err != nil {
		return nil, err
	}

	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("%w: close multipart: %v", ErrBuildMessage, err)
	}

	var msg strings.Builder
	msg.WriteString("From: " + from.String() + "\r\n")
	msg.WriteString("To: " + to + "\r\n")
	msg.WriteString("Subject: " + mime.QEncoding.Encode("UTF-8", subj) + "\r\n")
	msg.WriteString("Date: " + now.Format(time.RFC1123Z) + "\r\n")
	msg.WriteString("Message-ID: <" + uuid.NewString() + "@" + messageDomain(from.Address) + ">\r\n")
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: multipart/mixed; boundary=" + mw.Boundary() + "\r\n")
	msg.WriteString("\r\n")
	msg.Write(body.Bytes())

	return []byte(msg.String()), nil
}

func writePart(mw *multipart.Writer, header textproto.MIMEHeader, content []byte) error {
	part, err := mw.CreatePart(header)
	if err != nil {
		return fmt.Errorf("%w: create part: %v", ErrBuildMessage, err)
	}
	qp := quotedprintable.NewWriter(part)
	if _, err := qp.Write(content); err != nil {
		return fmt.Errorf("%w: write part: %v", ErrBuildMessage, err)
	}
	if err := qp.Close(); err != nil {
		return fmt.Errorf("%w: write part: %v", ErrBuildMessage, err)
	}
	return nil
}

func messageDomain(address string) string {
	if i := strings.LastIndex(address, "@"); i >= 0 && i < len(address)-1 {
		return address[i+1:]
	}
	return "localhost"
}
