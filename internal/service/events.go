package service

import (
	"context"
	"strings"

	"github.com/wb-go/wbf/ginext"

	"csaweb/internal/dto"
	"csaweb/internal/model"
	"csaweb/pkg/validator"
)

// GetEventInfo returns the event together with the caller's registration
// state and the computed register-button view. The my-status lookup fails
// open: an anonymous caller or an unreachable status endpoint both read as
// "not registered".
func (s *service) GetEventInfo(ctx *ginext.Context) {
	eventID := ctx.Param("id")

	event, err := s.api.Event(ctx.Request.Context(), eventID)
	if err != nil {
		s.backendFail(ctx, err, "get event")
		return
	}

	reg, count := s.registrationState(ctx.Request.Context(), s.auth(ctx), event)

	dto.SuccessResponse(ctx, dto.EventInfoResponse{
		Event:            *event,
		RegisteredCount:  count,
		UserRegistration: reg,
		Button:           RegisterButton(event, reg, count),
	})
}

func (s *service) registrationState(ctx context.Context, caller authInfo, event *model.Event) (*model.Registration, int) {
	count := event.RegisteredCount
	if !caller.loggedIn() {
		return nil, count
	}
	status, err := s.api.MyStatus(ctx, caller.token, event.ID)
	if err != nil {
		s.log.Debug().Err(err).Str("event_id", event.ID).Msg("my-status fetch failed, treating as unregistered")
		return nil, count
	}
	return status.Registration, status.RegisteredCount
}

type freeRegistration struct {
	Telegram  string   `validate:"required"`
	Questions []string `validate:"max=20"`
}

type paidRegistration struct {
	ReceiptImage string   `validate:"required,httpurl"`
	Mobile       string   `validate:"required,mobile"`
	Telegram     string   `validate:"omitempty"`
	Questions    []string `validate:"max=20"`
}

// Register handles both the free and the paid path; the event decides which.
// Required-field failures are caught here and never reach the backend.
func (s *service) Register(ctx *ginext.Context) {
	caller := s.auth(ctx)
	if !caller.loggedIn() {
		dto.AuthRequiredError(ctx)
		return
	}

	eventID := ctx.Param("id")
	event, err := s.api.Event(ctx.Request.Context(), eventID)
	if err != nil {
		s.backendFail(ctx, err, "get event")
		return
	}

	switch event.RegistrationStatus {
	case model.WindowClosed:
		dto.BadResponseError(ctx, dto.RegistrationClosed, "ثبت‌نام این رویداد به پایان رسیده است")
		return
	case model.WindowScheduled:
		dto.BadResponseError(ctx, dto.RegistrationScheduled, "ثبت‌نام این رویداد هنوز آغاز نشده است")
		return
	}

	var req dto.RegisterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		s.log.Error().Err(err).Msg("failed to parse register request")
		dto.BadResponseError(ctx, dto.FieldIncorrect, "Invalid JSON format")
		return
	}

	questions := filterQuestions(req.Questions)
	if !event.HasQuestions {
		questions = nil
	}

	var payload dto.RegisterPayload
	if event.IsFree {
		form := freeRegistration{Telegram: req.Telegram, Questions: questions}
		if verr := validator.Validate(ctx, form); verr != nil {
			dto.BadResponseError(ctx, dto.FieldIncorrect, verr.Error())
			return
		}
		payload = dto.RegisterPayload{
			Telegram:  req.Telegram,
			Questions: questions,
		}
	} else {
		form := paidRegistration{
			ReceiptImage: req.ReceiptImage,
			Mobile:       req.Mobile,
			Telegram:     req.Telegram,
			Questions:    questions,
		}
		if verr := validator.Validate(ctx, form); verr != nil {
			dto.BadResponseError(ctx, dto.FieldIncorrect, verr.Error())
			return
		}
		payload = dto.RegisterPayload{
			PricePaid:    event.Price,
			ReceiptImage: req.ReceiptImage,
			Mobile:       req.Mobile,
			Telegram:     req.Telegram,
			Questions:    questions,
		}
	}

	reg, err := s.api.Register(ctx.Request.Context(), caller.token, eventID, payload)
	if err != nil {
		s.backendFail(ctx, err, "register")
		return
	}

	s.log.Info().
		Str("registration_id", reg.ID).
		Str("event_id", eventID).
		Bool("free", event.IsFree).
		Msg("registration submitted")

	// Mutate, then re-fetch: the response reflects server truth, not a
	// locally patched copy.
	freshReg, count := s.registrationState(ctx.Request.Context(), caller, event)
	if freshReg == nil {
		freshReg = reg
	}

	dto.SuccessCreatedResponse(ctx, dto.EventInfoResponse{
		Event:            *event,
		RegisteredCount:  count,
		UserRegistration: freshReg,
		Button:           RegisterButton(event, freshReg, count),
	})
}

// filterQuestions drops empty entries while keeping order.
func filterQuestions(in []string) []string {
	var out []string
	for _, q := range in {
		if strings.TrimSpace(q) != "" {
			out = append(out, q)
		}
	}
	return out
}
