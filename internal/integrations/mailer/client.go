package mailer

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"math/rand/v2"
	"net"
	"net/mail"
	"net/smtp"
	"strconv"
	"time"

	"github.com/m04kA/SMC-TrainingScheduler/internal/domain"
)

// Client отправляет приглашения на тренинг по SMTP
type Client struct {
	settings Settings
	send     sendFunc
	pickLink func(n int) int
	now      func() time.Time
	log      Logger
}

// NewClient создает новый экземпляр почтового клиента
func NewClient(settings Settings, log Logger) *Client {
	if settings.Location == nil {
		settings.Location = time.UTC
	}
	if settings.Duration <= 0 {
		settings.Duration = domain.DefaultInviteDuration
	}

	c := &Client{
		settings: settings,
		pickLink: rand.IntN,
		now:      time.Now,
		log:      log,
	}
	c.send = c.sendSMTP
	return c
}

// SendInvite отправляет приглашение каждому участнику с e-mail отдельным письмом.
// Возвращает число успешных отправок. Ошибка возвращается, только если не удалось
// отправить ни одного письма
func (c *Client) SendInvite(ctx context.Context, t *domain.Training) (int, error) {
	if !c.settings.Enabled {
		return 0, ErrDisabled
	}

	recipients := t.Emails()
	if len(recipients) == 0 {
		return 0, nil
	}

	link := c.meetingLink()
	inv := newInvite(t, c.settings.Location, c.settings.Duration, link)
	now := c.now()
	calendar := buildCalendar(t, inv, c.settings.From, c.organizerName(), now)
	subj := subject(c.settings.Subject, inv)
	from := mail.Address{Name: c.settings.FromName, Address: c.settings.From}

	c.log.Info("Mailer: sending invite for training id=%d to %d recipients", t.ID, len(recipients))

	sent := 0
	var errs []error
	for _, to := range recipients {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}

		msg, err := buildMessage(from, to, subj, inv, calendar, now)
		if err != nil {
			return sent, err
		}

		if err := c.send(ctx, c.settings.From, to, msg); err != nil {
			c.log.Error("Mailer: failed to send invite to %s: %v", to, err)
			errs = append(errs, fmt.Errorf("%s: %w", to, err))
			continue
		}
		sent++
	}

	if sent == 0 {
		return 0, fmt.Errorf("%w: %v", ErrSendFailed, errors.Join(errs...))
	}
	if len(errs) > 0 {
		c.log.Warn("Mailer: invite for training id=%d delivered partially: %d of %d", t.ID, sent, len(recipients))
	}
	return sent, nil
}

func (c *Client) meetingLink() string {
	links := c.settings.MeetingLinks
	if len(links) == 0 {
		return ""
	}
	return links[c.pickLink(len(links))]
}

func (c *Client) organizerName() string {
	if c.settings.Organizer != "" {
		return c.settings.Organizer
	}
	return c.settings.FromName
}

// sendSMTP доставляет письмо через SMTP сервер. При TLS=false используется STARTTLS, если сервер его поддерживает
func (c *Client) sendSMTP(ctx context.Context, from, to string, msg []byte) error {
	addr := net.JoinHostPort(c.settings.Host, strconv.Itoa(c.settings.Port))

	dialer := &net.Dialer{Timeout: c.settings.Timeout}
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("dial %s: %w", addr, err)
	}
	if c.settings.Timeout > 0 {
		_ = conn.SetDeadline(time.Now().Add(c.settings.Timeout))
	}

	tlsConfig := &tls.Config{ServerName: c.settings.Host}
	if c.settings.TLS {
		conn = tls.Client(conn, tlsConfig)
	}

	client, err := smtp.NewClient(conn, c.settings.Host)
	if err != nil {
		conn.Close()
		return fmt.Errorf("smtp handshake: %w", err)
	}
	defer client.Close()

	if !c.settings.TLS {
		if ok, _ := client.Extension("STARTTLS"); ok {
			if err := client.StartTLS(tlsConfig); err != nil {
				return fmt.Errorf("starttls: %w", err)
			}
		}
	}

	if c.settings.Username != "" {
		auth := smtp.PlainAuth("", c.settings.Username, c.settings.Password, c.settings.Host)
		if err := client.Auth(auth); err != nil {
			return fmt.Errorf("auth: %w", err)
		}
	}

	if err := client.Mail(from); err != nil {
		return fmt.Errorf("mail from: %w", err)
	}
	if err := client.Rcpt(to); err != nil {
		return fmt.Errorf("rcpt to: %w", err)
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("data: %w", err)
	}
	if _, err := w.Write(msg); err != nil {
		return fmt.Errorf("write body: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("close body: %w", err)
	}

	return client.Quit()
}
