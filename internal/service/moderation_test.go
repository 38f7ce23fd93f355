package service_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"csaweb/internal/dto"
	"csaweb/internal/model"
)

func adminUser() model.User {
	return model.User{ID: "adm", Name: "Admin", Role: "ADMIN"}
}

func TestAdminComments_PartitionsByApproval(t *testing.T) {
	app := newTestApp(t)
	app.backend.handle("GET /admin/comments", 200, []model.Comment{
		{ID: "a", Content: "first", IsApproved: false, User: &model.User{Name: "Sara"}, Post: &model.Post{Title: "Go 1.24"}},
		{ID: "b", Content: "second", IsApproved: true, User: &model.User{Name: "Reza"}, Post: &model.Post{Title: "Go 1.24"}},
	})

	cookie := app.loginAs("admtok", adminUser())
	req := httptest.NewRequest(http.MethodGet, "/v1/admin/comments", nil)
	req.AddCookie(cookie)
	rec := app.do(t, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	_, data := decode(t, rec)
	var board dto.CommentBoardResponse
	require.NoError(t, json.Unmarshal(data, &board))
	assert.Equal(t, 1, board.PendingCount)
	assert.Equal(t, 1, board.ApprovedCount)
	require.Len(t, board.Pending, 1)
	require.Len(t, board.Approved, 1)
	assert.Equal(t, "a", board.Pending[0].ID)
	assert.Equal(t, "b", board.Approved[0].ID)
}

func TestAdminComments_DeletedReferencesGetFallbackLabel(t *testing.T) {
	app := newTestApp(t)
	app.backend.handle("GET /admin/comments", 200, []model.Comment{
		{ID: "a", Content: "orphan", IsApproved: false},
	})

	cookie := app.loginAs("admtok", adminUser())
	req := httptest.NewRequest(http.MethodGet, "/v1/admin/comments", nil)
	req.AddCookie(cookie)
	rec := app.do(t, req)

	_, data := decode(t, rec)
	var board dto.CommentBoardResponse
	require.NoError(t, json.Unmarshal(data, &board))
	require.Len(t, board.Pending, 1)
	assert.Equal(t, model.DeletedEntityLabel, board.Pending[0].AuthorName)
	assert.Equal(t, model.DeletedEntityLabel, board.Pending[0].PostTitle)
}

func TestAdminComments_RequiresAdmin(t *testing.T) {
	app := newTestApp(t)

	// anonymous
	rec := app.do(t, httptest.NewRequest(http.MethodGet, "/v1/admin/comments", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// logged in, not admin
	cookie := app.loginAs("tok", model.User{ID: "u1", Role: "USER"})
	req := httptest.NewRequest(http.MethodGet, "/v1/admin/comments", nil)
	req.AddCookie(cookie)
	rec = app.do(t, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	assert.Zero(t, app.backend.count("GET /admin/comments"))
}

func TestApproveComment_ReturnsRefreshedBoard(t *testing.T) {
	app := newTestApp(t)
	approved := false
	app.backend.handleFunc("PUT /admin/comments/a/approve", func(w http.ResponseWriter, r *http.Request) {
		approved = true
		w.WriteHeader(200)
		w.Write([]byte(`{}`))
	})
	app.backend.handleFunc("GET /admin/comments", func(w http.ResponseWriter, r *http.Request) {
		comments := []model.Comment{{ID: "a", Content: "first", IsApproved: approved, AdminReplyContent: "خوش آمدید"}}
		raw, _ := json.Marshal(comments)
		w.Write(raw)
	})

	cookie := app.loginAs("admtok", adminUser())
	req := httptest.NewRequest(http.MethodPut, "/v1/admin/comments/a/approve", strings.NewReader(`{"reply":"خوش آمدید"}`))
	req.Header.Set("Content-Type", "application/json")
	req.AddCookie(cookie)
	rec := app.do(t, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, app.backend.count("PUT /admin/comments/a/approve"))

	// approving again edits the reply rather than erroring
	req = httptest.NewRequest(http.MethodPut, "/v1/admin/comments/a/approve", strings.NewReader(`{"reply":"ویرایش شد"}`))
	req.Header.Set("Content-Type", "application/json")
	req.AddCookie(cookie)
	rec = app.do(t, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 2, app.backend.count("PUT /admin/comments/a/approve"))

	_, data := decode(t, rec)
	var board dto.CommentBoardResponse
	require.NoError(t, json.Unmarshal(data, &board))
	assert.Equal(t, 1, board.ApprovedCount)
	assert.Equal(t, 0, board.PendingCount)
}

func TestDeleteComment_RefetchesList(t *testing.T) {
	app := newTestApp(t)
	app.backend.handle("DELETE /admin/comments/a", 200, map[string]string{})
	app.backend.handle("GET /admin/comments", 200, []model.Comment{})

	cookie := app.loginAs("admtok", adminUser())
	req := httptest.NewRequest(http.MethodDelete, "/v1/admin/comments/a", nil)
	req.AddCookie(cookie)
	rec := app.do(t, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, app.backend.count("DELETE /admin/comments/a"))
	assert.Equal(t, 1, app.backend.count("GET /admin/comments"))
}
