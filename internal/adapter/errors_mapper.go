package adapter

import (
	"errors"
	"fmt"

	"github.com/MKhiriev/pilot-docs-intake/models"
	"github.com/wneessen/go-mail"
)

// mapSendError turns the go-mail result of sending to recipients into a
// [models.SendResult]. A RCPT TO refusal is a per-recipient outcome, every
// other failure is a transport error.
func mapSendError(err error, messageID string, recipients []string) (models.SendResult, error) {
	result := models.SendResult{MessageID: messageID}
	if err == nil {
		result.Accepted = recipients
		return result, nil
	}

	var sendErr *mail.SendError
	if !errors.As(err, &sendErr) || sendErr.Reason != mail.ErrSMTPRcptTo {
		return models.SendResult{}, fmt.Errorf("%w: %w", ErrTransport, err)
	}

	// go-mail resets the transaction when any RCPT TO fails, so none of the
	// recipients got the message.
	result.Rejected = recipients
	return result, nil
}
