package adapter

import "errors"

var (
	ErrComposeMessage = errors.New("could not compose mail message")
	ErrTransport      = errors.New("mail transport failure")
)
