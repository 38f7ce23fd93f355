package service

import (
	"github.com/wb-go/wbf/ginext"

	"csaweb/internal/dto"
)

// 8 MiB, matching the backend's own receipt-image limit.
const maxUploadBytes = 8 << 20

// UploadImage streams a multipart file to the backend upload collaborator
// and hands the resulting public URL back untouched.
func (s *service) UploadImage(ctx *ginext.Context) {
	caller := s.auth(ctx)
	if !caller.loggedIn() {
		dto.AuthRequiredError(ctx)
		return
	}

	header, err := ctx.FormFile("image")
	if err != nil {
		dto.BadResponseError(ctx, dto.FieldIncorrect, "Field 'image' is required")
		return
	}
	if header.Size > maxUploadBytes {
		dto.BadResponseError(ctx, dto.FieldIncorrect, "File is too large")
		return
	}

	file, err := header.Open()
	if err != nil {
		s.log.Error().Err(err).Msg("failed to open uploaded file")
		dto.InternalServerError(ctx)
		return
	}
	defer file.Close()

	url, err := s.api.Upload(ctx.Request.Context(), caller.token, header.Filename, file)
	if err != nil {
		s.backendFail(ctx, err, "upload")
		return
	}

	s.log.Info().Str("filename", header.Filename).Msg("image uploaded")
	dto.SuccessCreatedResponse(ctx, dto.UploadResponse{URL: url})
}
