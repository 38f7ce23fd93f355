package service

import (
	"encoding/json"
	"time"

	"github.com/wb-go/wbf/ginext"

	"csaweb/internal/dto"
	"csaweb/internal/model"
)

func (s *service) EventRegistrations(ctx *ginext.Context) {
	caller, ok := s.requireAdmin(ctx)
	if !ok {
		return
	}

	regs, err := s.api.Registrations(ctx.Request.Context(), caller.token, ctx.Param("id"))
	if err != nil {
		s.backendFail(ctx, err, "list registrations")
		return
	}
	dto.SuccessResponse(ctx, regs)
}

func (s *service) VerifyRegistration(ctx *ginext.Context) {
	s.decideRegistration(ctx, model.RegistrationVerified)
}

func (s *service) RejectRegistration(ctx *ginext.Context) {
	s.decideRegistration(ctx, model.RegistrationRejected)
}

// decideRegistration forwards the admin's verdict to the backend and, on
// success, publishes a notice so the notifier worker can email the
// registrant. A publish failure is logged, not surfaced: the decision
// already happened.
func (s *service) decideRegistration(ctx *ginext.Context, status model.RegistrationStatus) {
	caller, ok := s.requireAdmin(ctx)
	if !ok {
		return
	}
	regID := ctx.Param("id")

	reg, err := s.api.SetRegistrationStatus(ctx.Request.Context(), caller.token, regID, status)
	if err != nil {
		s.backendFail(ctx, err, "set registration status")
		return
	}

	s.log.Info().
		Str("registration_id", regID).
		Str("status", string(status)).
		Msg("registration decided")

	s.publishNotice(ctx, caller, reg, status)
	dto.SuccessResponse(ctx, reg)
}

func (s *service) publishNotice(ctx *ginext.Context, caller authInfo, reg *model.Registration, status model.RegistrationStatus) {
	if s.rbt == nil {
		return
	}

	notice := dto.RegistrationNotice{
		RegistrationID: reg.ID,
		EventID:        reg.EventID,
		Status:         status,
		DecidedAt:      time.Now(),
	}
	if reg.User != nil {
		notice.Email = reg.User.Email
	}
	if event, err := s.api.Event(ctx.Request.Context(), reg.EventID); err == nil {
		notice.EventTitle = event.Title
	} else {
		s.log.Warn().Err(err).Str("event_id", reg.EventID).Msg("could not resolve event title for notice")
	}

	payload, err := json.Marshal(notice)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to marshal registration notice")
		return
	}
	if err := s.rbt.Publish(payload); err != nil {
		s.log.Error().Err(err).Msg("failed to publish registration notice")
	}
}
