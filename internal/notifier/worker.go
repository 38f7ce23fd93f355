package notifier

import (
	"context"
	"encoding/json"

	"github.com/wb-go/wbf/zlog"

	"csaweb/internal/dto"
	"csaweb/internal/mailer"
	"csaweb/internal/rabbit"
)

// Reader consumes registration-decision notices published by the admin
// handlers and emails the registrant.
type Reader struct {
	RMQ    *rabbit.Client
	mail   *mailer.Mailer
	done   chan struct{}
	cancel context.CancelFunc
}

func NewReader(rmq *rabbit.Client, mail *mailer.Mailer) *Reader {
	return &Reader{
		RMQ:  rmq,
		mail: mail,
		done: make(chan struct{}),
	}
}

func (r *Reader) Start(ctx context.Context) {
	cctx, cancel := context.WithCancel(ctx)
	r.cancel = cancel

	zlog.Logger.Info().Msg("notification reader started")

	go func() {
		defer close(r.done)

		handler := func(body []byte) error {
			var notice dto.RegistrationNotice
			if err := json.Unmarshal(body, &notice); err != nil {
				zlog.Logger.Error().
					Err(err).
					Msgf("failed to unmarshal notice: %s", string(body))
				return err
			}

			zlog.Logger.Info().
				Str("registration_id", notice.RegistrationID).
				Str("event_id", notice.EventID).
				Str("status", string(notice.Status)).
				Msg("received registration notice")

			if notice.Email == "" {
				zlog.Logger.Warn().
					Str("registration_id", notice.RegistrationID).
					Msg("notice has no recipient email, skipping")
				return nil
			}

			if err := r.mail.SendRegistrationEmail(notice.EventTitle, notice.Status, notice.Email); err != nil {
				zlog.Logger.Warn().
					Err(err).
					Str("email", notice.Email).
					Msg("failed to send decision email")
			}
			return nil
		}

		if err := r.RMQ.Consume(handler); err != nil {
			zlog.Logger.Error().Err(err).Msg("failed to start consuming")
			return
		}

		<-cctx.Done()
		zlog.Logger.Info().Msg("notification reader stopped by context")
	}()
}

func (r *Reader) Stop() {
	if r.cancel != nil {
		r.cancel()
		<-r.done
	}
}
