package adapter

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/pilot-docs-intake/internal/config"
	"github.com/MKhiriev/pilot-docs-intake/internal/logger"
	"github.com/MKhiriev/pilot-docs-intake/internal/utils"
	"github.com/MKhiriev/pilot-docs-intake/models"
	"github.com/wneessen/go-mail"
)

// HeaderSubmissionID carries the submission id on every outgoing message.
const HeaderSubmissionID mail.Header = "X-Submission-ID"

// implicitTLSPort is the SMTPS port; every other port uses STARTTLS.
const implicitTLSPort = 465

type smtpTransport struct {
	cfg    config.Mail
	ids    *utils.UUIDGenerator
	logger *logger.Logger

	// send is replaced in tests.
	send func(ctx context.Context, msg *mail.Msg) error
}

// NewSMTPTransport constructs a [MailTransport] that authenticates with
// cfg.Username/cfg.Password and sends from cfg.Username.
//
// The SMTP connection is opened per message; there is no pooling.
func NewSMTPTransport(cfg config.Mail, logger *logger.Logger) MailTransport {
	t := &smtpTransport{
		cfg:    cfg,
		ids:    utils.NewUUIDGenerator(),
		logger: logger,
	}
	t.send = t.dialAndSend
	return t
}

func (t *smtpTransport) Send(ctx context.Context, notification models.NotificationMessage) (models.SendResult, error) {
	log := logger.FromContext(ctx)

	messageID := utils.MessageID(t.ids.Generate(), t.cfg.Username)
	msg, err := composeMessage(t.cfg.Username, messageID, notification)
	if err != nil {
		log.Err(err).Str("func", "smtpTransport.Send").
			Str(logger.FieldSubmissionID, notification.SubmissionID).
			Msg("failed to compose message")
		return models.SendResult{}, err
	}

	sendErr := t.send(ctx, msg)
	result, err := mapSendError(sendErr, messageID, []string{notification.To})
	if err != nil {
		log.Err(err).Str("func", "smtpTransport.Send").
			Str(logger.FieldSubmissionID, notification.SubmissionID).
			Str("host", t.cfg.Host).
			Int("port", t.cfg.Port).
			Msg("smtp send failed")
		return models.SendResult{}, err
	}

	if len(result.Rejected) > 0 {
		log.Warn().Err(sendErr).
			Str(logger.FieldSubmissionID, notification.SubmissionID).
			Strs("rejected", result.Rejected).
			Msg("smtp server refused recipients")
	}
	return result, nil
}

func (t *smtpTransport) dialAndSend(ctx context.Context, msg *mail.Msg) error {
	opts := []mail.Option{
		mail.WithPort(t.cfg.Port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(t.cfg.Username),
		mail.WithPassword(t.cfg.Password),
	}
	if t.cfg.Timeout > 0 {
		opts = append(opts, mail.WithTimeout(t.cfg.Timeout))
	}
	if t.cfg.Port == implicitTLSPort {
		opts = append(opts, mail.WithSSL())
	} else {
		opts = append(opts, mail.WithTLSPolicy(mail.TLSMandatory))
	}

	client, err := mail.NewClient(t.cfg.Host, opts...)
	if err != nil {
		return fmt.Errorf("error creating smtp client: %w", err)
	}

	return client.DialAndSendWithContext(ctx, msg)
}

// composeMessage renders notification into a MIME message with the archive
// as its only attachment.
func composeMessage(from, messageID string, notification models.NotificationMessage) (*mail.Msg, error) {
	msg := mail.NewMsg()

	if err := msg.From(from); err != nil {
		return nil, fmt.Errorf("%w: sender: %w", ErrComposeMessage, err)
	}
	if err := msg.To(notification.To); err != nil {
		return nil, fmt.Errorf("%w: recipient: %w", ErrComposeMessage, err)
	}

	msg.Subject(notification.Subject)
	msg.SetMessageIDWithValue(messageID)
	msg.SetDateWithValue(time.Now())
	msg.SetBodyString(mail.TypeTextHTML, notification.HTMLBody)

	if notification.SubmissionID != "" {
		msg.SetGenHeader(HeaderSubmissionID, notification.SubmissionID)
	}
	if notification.Priority == models.PriorityHigh {
		msg.SetImportance(mail.ImportanceHigh)
	}

	if archive := notification.Archive; archive != nil {
		err := msg.AttachReader(archive.FileName, bytes.NewReader(archive.Data),
			mail.WithFileContentType(mail.ContentType("application/zip")))
		if err != nil {
			return nil, fmt.Errorf("%w: attachment: %w", ErrComposeMessage, err)
		}
	}

	return msg, nil
}
