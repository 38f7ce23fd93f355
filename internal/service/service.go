package service

import (
	"errors"
	"strings"

	"github.com/rs/zerolog"
	"github.com/wb-go/wbf/ginext"

	"csaweb/internal/backend"
	"csaweb/internal/dto"
	"csaweb/internal/model"
	"csaweb/internal/rabbit"
	"csaweb/internal/session"
)

const SessionCookie = "csa_session"

type Service interface {
	Login(ctx *ginext.Context)
	Logout(ctx *ginext.Context)
	Me(ctx *ginext.Context)
	WatchAuth(ctx *ginext.Context)

	GetEventInfo(ctx *ginext.Context)
	Register(ctx *ginext.Context)

	AdminComments(ctx *ginext.Context)
	ApproveComment(ctx *ginext.Context)
	DeleteComment(ctx *ginext.Context)

	MyTickets(ctx *ginext.Context)
	AllTickets(ctx *ginext.Context)
	GetTicket(ctx *ginext.Context)
	CreateTicket(ctx *ginext.Context)
	ReplyTicket(ctx *ginext.Context)
	EditTicketMessage(ctx *ginext.Context)
	CloseTicket(ctx *ginext.Context)

	EventRegistrations(ctx *ginext.Context)
	VerifyRegistration(ctx *ginext.Context)
	RejectRegistration(ctx *ginext.Context)

	UploadImage(ctx *ginext.Context)
}

type service struct {
	api      *backend.Client
	sessions *session.Store
	log      *zerolog.Logger
	rbt      *rabbit.Client
}

func NewService(api *backend.Client, sessions *session.Store, logger *zerolog.Logger, rbt *rabbit.Client) Service {
	return &service{
		api:      api,
		sessions: sessions,
		log:      logger,
		rbt:      rbt,
	}
}

// authInfo is what a request could prove about its caller. A session cookie
// yields both token and user; a raw Authorization header yields only the
// token, which is still enough for backend calls made on the caller's behalf.
type authInfo struct {
	token     string
	user      *model.User
	sessionID string
}

func (a authInfo) loggedIn() bool { return a.token != "" }

func (a authInfo) isAdmin() bool { return a.user != nil && a.user.IsAdmin() }

func (s *service) auth(ctx *ginext.Context) authInfo {
	if sid, err := ctx.Cookie(SessionCookie); err == nil && sid != "" {
		if sess, ok := s.sessions.Get(sid); ok {
			user := sess.User
			return authInfo{token: sess.Token, user: &user, sessionID: sid}
		}
	}
	if h := ctx.GetHeader("Authorization"); strings.HasPrefix(h, "Bearer ") {
		return authInfo{token: strings.TrimPrefix(h, "Bearer ")}
	}
	return authInfo{}
}

// requireAdmin resolves the caller and writes the appropriate error response
// when the caller is missing or not an admin.
func (s *service) requireAdmin(ctx *ginext.Context) (authInfo, bool) {
	caller := s.auth(ctx)
	if !caller.loggedIn() {
		dto.AuthRequiredError(ctx)
		return caller, false
	}
	if !caller.isAdmin() {
		dto.AdminOnlyError(ctx)
		return caller, false
	}
	return caller, true
}

// backendFail translates client errors into responses. Server-rejected
// requests carry the backend's message verbatim; transport failures get the
// generic fallback. Nothing is retried.
func (s *service) backendFail(ctx *ginext.Context, err error, op string) {
	var apiErr *backend.APIError
	switch {
	case errors.As(err, &apiErr):
		s.log.Warn().Int("status", apiErr.StatusCode).Str("op", op).Msg("backend rejected request")
		dto.BackendError(ctx, apiErr.StatusCode, apiErr.Message)
	case errors.Is(err, backend.ErrUnavailable):
		s.log.Error().Err(err).Str("op", op).Msg("backend unreachable")
		dto.BackendError(ctx, 502, "")
	default:
		s.log.Error().Err(err).Str("op", op).Msg("backend call failed")
		dto.InternalServerError(ctx)
	}
}
