package dto

import (
	"time"

	"github.com/wb-go/wbf/ginext"

	"csaweb/internal/model"
)

const (
	FieldBadFormat     = "FIELD_BADFORMAT"
	FieldIncorrect     = "FIELD_INCORRECT"
	ServiceUnavailable = "SERVICE_UNAVAILABLE"
	InternalError      = "Service is currently unavailable. Please try again later."

	AuthRequired       = "AUTH_REQUIRED"
	AdminOnly          = "ADMIN_ONLY"
	BackendUnavailable = "BACKEND_UNAVAILABLE"
	BackendRejected    = "BACKEND_REJECTED"

	EventNotFound         = "EVENT_NOT_FOUND"
	RegistrationClosed    = "REGISTRATION_CLOSED"
	RegistrationScheduled = "REGISTRATION_SCHEDULED"
	TicketNotFound        = "TICKET_NOT_FOUND"
	TicketClosed          = "TICKET_CLOSED"
	MessageNotEditable    = "MESSAGE_NOT_EDITABLE"
)

type RegisterRequest struct {
	Telegram     string   `json:"telegram"`
	Mobile       string   `json:"mobile"`
	ReceiptImage string   `json:"receiptImage"`
	Questions    []string `json:"questions"`
}

type RegisterPayload struct {
	PricePaid    int      `json:"pricePaid,omitempty"`
	ReceiptImage string   `json:"receiptImage,omitempty"`
	Mobile       string   `json:"mobile,omitempty"`
	Telegram     string   `json:"telegram,omitempty"`
	Questions    []string `json:"questions,omitempty"`
}

type EventInfoResponse struct {
	Event            model.Event         `json:"event"`
	RegisteredCount  int                 `json:"registeredCount"`
	UserRegistration *model.Registration `json:"userRegistration,omitempty"`
	Button           ButtonView          `json:"button"`
}

type ButtonView struct {
	State   string `json:"state"`
	Label   string `json:"label"`
	Enabled bool   `json:"enabled"`
}

type CommentBoardResponse struct {
	Pending       []CommentView `json:"pending"`
	Approved      []CommentView `json:"approved"`
	PendingCount  int           `json:"pendingCount"`
	ApprovedCount int           `json:"approvedCount"`
}

type CommentView struct {
	ID                string    `json:"id"`
	Content           string    `json:"content"`
	IsApproved        bool      `json:"isApproved"`
	AdminReplyContent string    `json:"adminReplyContent,omitempty"`
	AuthorName        string    `json:"authorName"`
	PostTitle         string    `json:"postTitle"`
	CreatedAt         time.Time `json:"createdAt"`
}

type ApproveCommentRequest struct {
	Reply string `json:"reply"`
}

type CreateTicketRequest struct {
	Subject string `json:"subject" validate:"required,max=255"`
	Message string `json:"message" validate:"required"`
}

type TicketReplyRequest struct {
	Message string `json:"message" validate:"required"`
}

type EditMessageRequest struct {
	Content string `json:"content" validate:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	User model.User `json:"user"`
}

type UploadResponse struct {
	URL string `json:"url"`
}

type RegistrationNotice struct {
	RegistrationID string                   `json:"registration_id"`
	EventID        string                   `json:"event_id"`
	EventTitle     string                   `json:"event_title"`
	Email          string                   `json:"email"`
	Status         model.RegistrationStatus `json:"status"`
	DecidedAt      time.Time                `json:"decided_at"`
}

type Response struct {
	Status string `json:"status"`
	Error  *Error `json:"error,omitempty"`
	Data   any    `json:"data,omitempty"`
}

type Error struct {
	Code string `json:"code"`
	Desc string `json:"desc"`
}

func BadResponseError(c *ginext.Context, code, desc string) {
	c.JSON(400, Response{
		Status: "error",
		Error: &Error{
			Code: code,
			Desc: desc,
		},
	})
}

func InternalServerError(c *ginext.Context) {
	c.JSON(500, Response{
		Status: "error",
		Error: &Error{
			Code: ServiceUnavailable,
			Desc: InternalError,
		},
	})
}

func AuthRequiredError(c *ginext.Context) {
	c.JSON(401, Response{
		Status: "error",
		Error: &Error{
			Code: AuthRequired,
			Desc: "You must be logged in to do this",
		},
	})
}

func AdminOnlyError(c *ginext.Context) {
	c.JSON(403, Response{
		Status: "error",
		Error: &Error{
			Code: AdminOnly,
			Desc: "Admin access required",
		},
	})
}

func BackendError(c *ginext.Context, statusCode int, desc string) {
	code := BackendRejected
	if desc == "" {
		code = BackendUnavailable
		desc = InternalError
	}
	if statusCode < 400 || statusCode > 599 {
		statusCode = 502
	}
	c.JSON(statusCode, Response{
		Status: "error",
		Error: &Error{
			Code: code,
			Desc: desc,
		},
	})
}

func EventNotFoundError(c *ginext.Context) {
	BadResponseError(c, EventNotFound, "Event not found")
}

func TicketNotFoundError(c *ginext.Context) {
	BadResponseError(c, TicketNotFound, "Ticket not found")
}

func TicketClosedError(c *ginext.Context) {
	BadResponseError(c, TicketClosed, "This ticket is closed")
}

func SuccessResponse(c *ginext.Context, data any) {
	c.JSON(200, Response{
		Status: "ok",
		Data:   data,
	})
}

func SuccessCreatedResponse(c *ginext.Context, data any) {
	c.JSON(201, Response{
		Status: "ok",
		Data:   data,
	})
}
