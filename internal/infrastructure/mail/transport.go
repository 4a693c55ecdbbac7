package mail

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
	"gopkg.in/gomail.v2"
)

var ErrNoTransport = errors.New("no mail transport configured")

// Transport delivers a fully built message.
type Transport interface {
	Name() string
	Send(ctx context.Context, msg *gomail.Message) error
}

// Chain tries its transports in order and stops at the first one that delivers.
type Chain struct {
	transports []Transport
}

func CreateChain(transports ...Transport) *Chain {
	return &Chain{transports: transports}
}

// Send returns the name of the transport that delivered msg. When every transport fails the
// returned error joins all failures; the last one is reachable with LastError.
func (c *Chain) Send(ctx context.Context, msg *gomail.Message) (string, error) {
	if len(c.transports) == 0 {
		return "", ErrNoTransport
	}

	var failures []error
	for _, t := range c.transports {
		err := t.Send(ctx, msg)
		if err == nil {
			log.Ctx(ctx).Info().Str("component", "MailChain").Str("transport", t.Name()).Strs("to", msg.GetHeader("To")).Msg("mail delivered")
			return t.Name(), nil
		}

		log.Ctx(ctx).Warn().Err(err).Str("component", "MailChain").Str("transport", t.Name()).Msg("mail transport failed")
		failures = append(failures, &TransportError{Transport: t.Name(), Err: err})

		if ctx.Err() != nil {
			break
		}
	}

	return "", errors.Join(failures...)
}

type TransportError struct {
	Transport string
	Err       error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: %s", e.Transport, e.Err.Error())
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// LastError returns the underlying error of the last transport that failed in err.
func LastError(err error) error {
	joined, ok := err.(interface{ Unwrap() []error })
	if !ok {
		var te *TransportError
		if errors.As(err, &te) {
			return te.Err
		}
		return err
	}

	errList := joined.Unwrap()
	if len(errList) == 0 {
		return err
	}
	return LastError(errList[len(errList)-1])
}
