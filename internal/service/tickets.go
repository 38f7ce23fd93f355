package service

import (
	"strconv"

	"github.com/wb-go/wbf/ginext"

	"csaweb/internal/dto"
	"csaweb/internal/model"
	"csaweb/pkg/validator"
)

func (s *service) MyTickets(ctx *ginext.Context) {
	caller := s.auth(ctx)
	if !caller.loggedIn() {
		dto.AuthRequiredError(ctx)
		return
	}

	tickets, err := s.api.Tickets(ctx.Request.Context(), caller.token)
	if err != nil {
		s.backendFail(ctx, err, "list tickets")
		return
	}
	dto.SuccessResponse(ctx, tickets)
}

func (s *service) AllTickets(ctx *ginext.Context) {
	caller, ok := s.requireAdmin(ctx)
	if !ok {
		return
	}

	tickets, err := s.api.AllTickets(ctx.Request.Context(), caller.token)
	if err != nil {
		s.backendFail(ctx, err, "list all tickets")
		return
	}
	dto.SuccessResponse(ctx, tickets)
}

func (s *service) GetTicket(ctx *ginext.Context) {
	caller := s.auth(ctx)
	if !caller.loggedIn() {
		dto.AuthRequiredError(ctx)
		return
	}

	ticket, err := s.api.Ticket(ctx.Request.Context(), caller.token, ctx.Param("id"))
	if err != nil {
		s.backendFail(ctx, err, "get ticket")
		return
	}
	dto.SuccessResponse(ctx, ticket)
}

func (s *service) CreateTicket(ctx *ginext.Context) {
	caller := s.auth(ctx)
	if !caller.loggedIn() {
		dto.AuthRequiredError(ctx)
		return
	}

	var req dto.CreateTicketRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		dto.BadResponseError(ctx, dto.FieldIncorrect, "Invalid JSON format")
		return
	}
	if verr := validator.Validate(ctx, req); verr != nil {
		dto.BadResponseError(ctx, dto.FieldIncorrect, verr.Error())
		return
	}

	ticket, err := s.api.CreateTicket(ctx.Request.Context(), caller.token, req.Subject, req.Message)
	if err != nil {
		s.backendFail(ctx, err, "create ticket")
		return
	}

	s.log.Info().Str("ticket_id", ticket.ID).Msg("ticket created")
	dto.SuccessCreatedResponse(ctx, ticket)
}

// ReplyTicket appends a message to an open ticket. The backend infers the
// sender role from the token; a closed ticket is rejected here without a
// backend write.
func (s *service) ReplyTicket(ctx *ginext.Context) {
	caller := s.auth(ctx)
	if !caller.loggedIn() {
		dto.AuthRequiredError(ctx)
		return
	}
	ticketID := ctx.Param("id")

	var req dto.TicketReplyRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		dto.BadResponseError(ctx, dto.FieldIncorrect, "Invalid JSON format")
		return
	}
	if verr := validator.Validate(ctx, req); verr != nil {
		dto.BadResponseError(ctx, dto.FieldIncorrect, verr.Error())
		return
	}

	ticket, err := s.api.Ticket(ctx.Request.Context(), caller.token, ticketID)
	if err != nil {
		s.backendFail(ctx, err, "get ticket")
		return
	}
	if ticket.Status == model.TicketClosed {
		dto.TicketClosedError(ctx)
		return
	}

	if err := s.api.ReplyTicket(ctx.Request.Context(), caller.token, ticketID, req.Message); err != nil {
		s.backendFail(ctx, err, "reply ticket")
		return
	}

	fresh, err := s.api.Ticket(ctx.Request.Context(), caller.token, ticketID)
	if err != nil {
		s.backendFail(ctx, err, "refresh ticket")
		return
	}
	dto.SuccessResponse(ctx, fresh)
}

// EditTicketMessage lets a sender rewrite one of their own messages while
// the ticket is still open. Authorship is checked against the caller's role;
// the backend re-checks against the authenticated identity.
func (s *service) EditTicketMessage(ctx *ginext.Context) {
	caller := s.auth(ctx)
	if !caller.loggedIn() {
		dto.AuthRequiredError(ctx)
		return
	}
	ticketID := ctx.Param("id")

	index, err := strconv.Atoi(ctx.Param("index"))
	if err != nil || index < 0 {
		dto.BadResponseError(ctx, dto.FieldIncorrect, "Invalid message index")
		return
	}

	var req dto.EditMessageRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		dto.BadResponseError(ctx, dto.FieldIncorrect, "Invalid JSON format")
		return
	}
	if verr := validator.Validate(ctx, req); verr != nil {
		dto.BadResponseError(ctx, dto.FieldIncorrect, verr.Error())
		return
	}

	ticket, err := s.api.Ticket(ctx.Request.Context(), caller.token, ticketID)
	if err != nil {
		s.backendFail(ctx, err, "get ticket")
		return
	}
	if ticket.Status == model.TicketClosed {
		dto.TicketClosedError(ctx)
		return
	}
	if index >= len(ticket.Messages) {
		dto.BadResponseError(ctx, dto.FieldIncorrect, "Invalid message index")
		return
	}

	sender := model.SenderUser
	if caller.isAdmin() {
		sender = model.SenderAdmin
	}
	if ticket.Messages[index].Sender != sender {
		dto.BadResponseError(ctx, dto.MessageNotEditable, "You can only edit your own messages")
		return
	}

	if err := s.api.EditTicketMessage(ctx.Request.Context(), caller.token, ticketID, index, req.Content); err != nil {
		s.backendFail(ctx, err, "edit ticket message")
		return
	}

	fresh, err := s.api.Ticket(ctx.Request.Context(), caller.token, ticketID)
	if err != nil {
		s.backendFail(ctx, err, "refresh ticket")
		return
	}
	dto.SuccessResponse(ctx, fresh)
}

// CloseTicket is terminal: there is no reopen operation anywhere.
func (s *service) CloseTicket(ctx *ginext.Context) {
	caller, ok := s.requireAdmin(ctx)
	if !ok {
		return
	}
	ticketID := ctx.Param("id")

	if err := s.api.CloseTicket(ctx.Request.Context(), caller.token, ticketID); err != nil {
		s.backendFail(ctx, err, "close ticket")
		return
	}

	s.log.Info().Str("ticket_id", ticketID).Msg("ticket closed")
	dto.SuccessResponse(ctx, map[string]string{"id": ticketID, "status": string(model.TicketClosed)})
}
