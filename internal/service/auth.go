package service

import (
	"encoding/json"
	"fmt"

	"github.com/wb-go/wbf/ginext"

	"csaweb/internal/dto"
	"csaweb/pkg/validator"
)

const sessionMaxAge = 7 * 24 * 60 * 60

// Login proxies the credentials to the backend and, on success, pins the
// returned token and user into a server-side session. The browser only ever
// sees the opaque session cookie, never the bearer token.
func (s *service) Login(ctx *ginext.Context) {
	var req dto.LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		dto.BadResponseError(ctx, dto.FieldIncorrect, "Invalid JSON format")
		return
	}
	if verr := validator.Validate(ctx, req); verr != nil {
		dto.BadResponseError(ctx, dto.FieldIncorrect, verr.Error())
		return
	}

	token, user, err := s.api.Login(ctx.Request.Context(), req.Email, req.Password)
	if err != nil {
		s.backendFail(ctx, err, "login")
		return
	}

	sid := s.sessions.Create(token, user)
	ctx.SetCookie(SessionCookie, sid, sessionMaxAge, "/", "", false, true)

	s.log.Info().Str("user_id", user.ID).Msg("user logged in")
	dto.SuccessResponse(ctx, dto.LoginResponse{User: user})
}

func (s *service) Logout(ctx *ginext.Context) {
	if sid, err := ctx.Cookie(SessionCookie); err == nil && sid != "" {
		s.sessions.Delete(sid)
	}
	ctx.SetCookie(SessionCookie, "", -1, "/", "", false, true)
	dto.SuccessResponse(ctx, map[string]string{"status": "logged_out"})
}

func (s *service) Me(ctx *ginext.Context) {
	caller := s.auth(ctx)
	if caller.user == nil {
		dto.AuthRequiredError(ctx)
		return
	}
	dto.SuccessResponse(ctx, *caller.user)
}

// WatchAuth streams login/logout notifications over SSE. This is the
// server-side replacement for the auth-change event the browser components
// used to broadcast to each other.
func (s *service) WatchAuth(ctx *ginext.Context) {
	ctx.Writer.Header().Set("Content-Type", "text/event-stream")
	ctx.Writer.Header().Set("Cache-Control", "no-cache")
	ctx.Writer.Header().Set("Connection", "keep-alive")

	events, cancel := s.sessions.Subscribe()
	defer cancel()

	ctx.Writer.WriteHeader(200)
	ctx.Writer.Flush()

	for {
		select {
		case <-ctx.Request.Context().Done():
			return
		case e, ok := <-events:
			if !ok {
				return
			}
			payload, err := json.Marshal(e)
			if err != nil {
				s.log.Error().Err(err).Msg("failed to marshal auth event")
				continue
			}
			fmt.Fprintf(ctx.Writer, "data: %s\n\n", payload)
			ctx.Writer.Flush()
		}
	}
}
