package mail

import "errors"

var (
	// ErrInvalidRecipient is returned when the recipient address is empty or malformed.
	ErrInvalidRecipient = errors.New("invalid recipient address")

	// ErrInvalidSender is returned when the sender address is empty or malformed.
	ErrInvalidSender = errors.New("invalid sender address")

	// ErrInvalidCredentials is returned when the credential file is unusable.
	ErrInvalidCredentials = errors.New("invalid e-mail credentials")

	// ErrMissingAttachment is returned when the report file does not exist.
	ErrMissingAttachment = errors.New("attachment not found")

	// ErrFailedToSendEmail wraps delivery failures.
	ErrFailedToSendEmail = errors.New("failed to send email")
)
