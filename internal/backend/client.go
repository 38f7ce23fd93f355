package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"time"

	"csaweb/internal/model"
)

// ErrUnavailable marks transport-level failures (no usable response).
var ErrUnavailable = errors.New("backend unavailable")

// APIError is a backend 4xx/5xx. Message is the server's own message,
// surfaced verbatim when the body carried one.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("backend returned %d", e.StatusCode)
	}
	return fmt.Sprintf("backend returned %d: %s", e.StatusCode, e.Message)
}

type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
	}
}

type MyStatus struct {
	Registration    *model.Registration `json:"registration"`
	RegisteredCount int                 `json:"registeredCount"`
}

func (c *Client) Event(ctx context.Context, id string) (*model.Event, error) {
	var event model.Event
	if err := c.do(ctx, http.MethodGet, "/events/"+url.PathEscape(id), "", nil, &event); err != nil {
		return nil, err
	}
	return &event, nil
}

func (c *Client) MyStatus(ctx context.Context, token, eventID string) (*MyStatus, error) {
	var status MyStatus
	path := "/events/" + url.PathEscape(eventID) + "/my-status"
	if err := c.do(ctx, http.MethodGet, path, token, nil, &status); err != nil {
		return nil, err
	}
	return &status, nil
}

func (c *Client) Register(ctx context.Context, token, eventID string, payload any) (*model.Registration, error) {
	var reg model.Registration
	path := "/events/" + url.PathEscape(eventID) + "/register"
	if err := c.do(ctx, http.MethodPost, path, token, payload, &reg); err != nil {
		return nil, err
	}
	return &reg, nil
}

func (c *Client) Comments(ctx context.Context, token string) ([]model.Comment, error) {
	var comments []model.Comment
	if err := c.do(ctx, http.MethodGet, "/admin/comments", token, nil, &comments); err != nil {
		return nil, err
	}
	return comments, nil
}

func (c *Client) ApproveComment(ctx context.Context, token, id, reply string) error {
	path := "/admin/comments/" + url.PathEscape(id) + "/approve"
	body := map[string]string{"adminReplyContent": reply}
	return c.do(ctx, http.MethodPut, path, token, body, nil)
}

func (c *Client) DeleteComment(ctx context.Context, token, id string) error {
	return c.do(ctx, http.MethodDelete, "/admin/comments/"+url.PathEscape(id), token, nil, nil)
}

// Tickets returns the caller's own tickets, normalized to the messages[]
// shape. Normalization happens here, at the data-access boundary, once.
func (c *Client) Tickets(ctx context.Context, token string) ([]model.ContactTicket, error) {
	return c.ticketList(ctx, token, "/contact")
}

func (c *Client) AllTickets(ctx context.Context, token string) ([]model.ContactTicket, error) {
	return c.ticketList(ctx, token, "/admin/contact")
}

func (c *Client) ticketList(ctx context.Context, token, path string) ([]model.ContactTicket, error) {
	var tickets []model.ContactTicket
	if err := c.do(ctx, http.MethodGet, path, token, nil, &tickets); err != nil {
		return nil, err
	}
	for i := range tickets {
		tickets[i].Normalize()
	}
	return tickets, nil
}

func (c *Client) Ticket(ctx context.Context, token, id string) (*model.ContactTicket, error) {
	var ticket model.ContactTicket
	if err := c.do(ctx, http.MethodGet, "/contact/"+url.PathEscape(id), token, nil, &ticket); err != nil {
		return nil, err
	}
	ticket.Normalize()
	return &ticket, nil
}

func (c *Client) CreateTicket(ctx context.Context, token, subject, message string) (*model.ContactTicket, error) {
	var ticket model.ContactTicket
	body := map[string]string{"subject": subject, "message": message}
	if err := c.do(ctx, http.MethodPost, "/contact", token, body, &ticket); err != nil {
		return nil, err
	}
	ticket.Normalize()
	return &ticket, nil
}

func (c *Client) ReplyTicket(ctx context.Context, token, id, message string) error {
	path := "/contact/" + url.PathEscape(id) + "/reply"
	return c.do(ctx, http.MethodPost, path, token, map[string]string{"message": message}, nil)
}

func (c *Client) EditTicketMessage(ctx context.Context, token, id string, index int, content string) error {
	path := fmt.Sprintf("/contact/%s/messages/%d", url.PathEscape(id), index)
	return c.do(ctx, http.MethodPut, path, token, map[string]string{"content": content}, nil)
}

func (c *Client) CloseTicket(ctx context.Context, token, id string) error {
	path := "/admin/contact/" + url.PathEscape(id) + "/close"
	return c.do(ctx, http.MethodPut, path, token, nil, nil)
}

func (c *Client) Registrations(ctx context.Context, token, eventID string) ([]model.Registration, error) {
	var regs []model.Registration
	path := "/admin/events/" + url.PathEscape(eventID) + "/registrations"
	if err := c.do(ctx, http.MethodGet, path, token, nil, &regs); err != nil {
		return nil, err
	}
	return regs, nil
}

func (c *Client) SetRegistrationStatus(ctx context.Context, token, id string, status model.RegistrationStatus) (*model.Registration, error) {
	var reg model.Registration
	path := "/admin/registrations/" + url.PathEscape(id)
	body := map[string]string{"status": string(status)}
	if err := c.do(ctx, http.MethodPut, path, token, body, &reg); err != nil {
		return nil, err
	}
	return &reg, nil
}

type loginResult struct {
	Token string     `json:"token"`
	User  model.User `json:"user"`
}

func (c *Client) Login(ctx context.Context, email, password string) (string, model.User, error) {
	var res loginResult
	body := map[string]string{"email": email, "password": password}
	if err := c.do(ctx, http.MethodPost, "/auth/login", "", body, &res); err != nil {
		return "", model.User{}, err
	}
	return res.Token, res.User, nil
}

// Upload forwards a file to the backend upload collaborator and returns the
// public URL. The multipart field name is fixed to "image".
func (c *Client) Upload(ctx context.Context, token, filename string, file io.Reader) (string, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("image", filename)
	if err != nil {
		return "", fmt.Errorf("create multipart part: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return "", fmt.Errorf("copy upload body: %w", err)
	}
	if err := mw.Close(); err != nil {
		return "", fmt.Errorf("close multipart writer: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/upload", &buf)
	if err != nil {
		return "", fmt.Errorf("build upload request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return "", readAPIError(resp)
	}

	var out struct {
		URL string `json:"url"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decode upload response: %w", err)
	}
	return out.URL, nil
}

func (c *Client) do(ctx context.Context, method, path, token string, in, out any) error {
	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("marshal request body: %w", err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return readAPIError(resp)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// readAPIError pulls the server's message field out of an error body. The
// backend is not consistent about its envelope, so both known shapes are
// tried before giving up on a message.
func readAPIError(resp *http.Response) error {
	apiErr := &APIError{StatusCode: resp.StatusCode}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	if err != nil {
		return apiErr
	}

	var flat struct {
		Message string `json:"message"`
	}
	if json.Unmarshal(raw, &flat) == nil && flat.Message != "" {
		apiErr.Message = flat.Message
		return apiErr
	}

	var wrapped struct {
		Error struct {
			Desc string `json:"desc"`
		} `json:"error"`
	}
	if json.Unmarshal(raw, &wrapped) == nil && wrapped.Error.Desc != "" {
		apiErr.Message = wrapped.Error.Desc
	}
	return apiErr
}
