package chatbot

import "fmt"

// TelegramAPIError reports a failed call to the Telegram Bot API.
type TelegramAPIError struct {
	Operation string
	Cause     error
}

func (e TelegramAPIError) Error() string {
	return fmt.Sprintf("telegram api call %s failed: %v", e.Operation, e.Cause)
}

func (e TelegramAPIError) Unwrap() error {
	return e.Cause
}

// WebhookParsingError reports an update payload that could not be decoded
// or was missing the fields its update type requires.
type WebhookParsingError struct {
	UpdateType string
	Details    string
	Cause      error
}

func (e WebhookParsingError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("cannot parse %s update: %s: %v", e.UpdateType, e.Details, e.Cause)
	}
	return fmt.Sprintf("cannot parse %s update: %s", e.UpdateType, e.Details)
}

func (e WebhookParsingError) Unwrap() error {
	return e.Cause
}

// CommandProcessingError reports a bot command that reached the service
// but could not be completed.
type CommandProcessingError struct {
	Command string
	Reason  string
	UserID  string
	ChatID  string
	Cause   error
}

func (e CommandProcessingError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("command %s failed: %s: %v", e.Command, e.Reason, e.Cause)
	}
	return fmt.Sprintf("command %s failed: %s", e.Command, e.Reason)
}

func (e CommandProcessingError) Unwrap() error {
	return e.Cause
}

func WrapTelegramError(err error, operation string) error {
	if err == nil {
		return nil
	}
	return TelegramAPIError{Operation: operation, Cause: err}
}

func WrapParsingError(err error, updateType string) error {
	if err == nil {
		return nil
	}
	return WebhookParsingError{UpdateType: updateType, Details: err.Error(), Cause: err}
}
