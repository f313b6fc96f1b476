package mailer

import (
	"errors"
	"net/textproto"
)

var (
	ErrMailConfigMissing = errors.New("mail configuration is missing")
	ErrMailAuthRejected  = errors.New("mail relay rejected the credentials")
	ErrMailTransport     = errors.New("mail transport failed")
)

// authRejectionCodes are the SMTP replies a relay uses to refuse AUTH.
var authRejectionCodes = map[int]struct{}{
	530: {},
	534: {},
	535: {},
}

// classify wraps err with the sentinel that describes it.
func classify(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrMailConfigMissing) || errors.Is(err, ErrMailAuthRejected) || errors.Is(err, ErrMailTransport) {
		return err
	}
	var protocolErr *textproto.Error
	if errors.As(err, &protocolErr) {
		if _, rejected := authRejectionCodes[protocolErr.Code]; rejected {
			return &mailError{kind: ErrMailAuthRejected, cause: err}
		}
	}
	return &mailError{kind: ErrMailTransport, cause: err}
}

type mailError struct {
	kind  error
	cause error
}

func (e *mailError) Error() string {
	return e.kind.Error() + ": " + e.cause.Error()
}

func (e *mailError) Is(target error) bool { return target == e.kind }

func (e *mailError) Unwrap() error { return e.cause }

func retryable(err error) bool {
	return errors.Is(err, ErrMailTransport)
}
