package model

import "time"

type RegistrationWindow string

const (
	WindowScheduled RegistrationWindow = "SCHEDULED"
	WindowOpen      RegistrationWindow = "OPEN"
	WindowClosed    RegistrationWindow = "CLOSED"
)

type RegistrationStatus string

const (
	RegistrationPending  RegistrationStatus = "PENDING"
	RegistrationVerified RegistrationStatus = "VERIFIED"
	RegistrationRejected RegistrationStatus = "REJECTED"
)

type Event struct {
	ID                  string             `json:"id"`
	Title               string             `json:"title"`
	Description         string             `json:"description,omitempty"`
	Date                time.Time          `json:"date"`
	Location            string             `json:"location,omitempty"`
	Capacity            int                `json:"capacity"`
	RegisteredCount     int                `json:"registeredCount"`
	IsFree              bool               `json:"isFree"`
	Price               int                `json:"price"`
	Thumbnail           string             `json:"thumbnail,omitempty"`
	RegistrationStatus  RegistrationWindow `json:"registrationStatus"`
	RegistrationOpensAt *time.Time         `json:"registrationOpensAt,omitempty"`
	HasQuestions        bool               `json:"hasQuestions"`
}

type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role,omitempty"`
}

func (u User) IsAdmin() bool { return u.Role == "ADMIN" }

type Registration struct {
	ID           string             `json:"id"`
	EventID      string             `json:"eventId"`
	User         *User              `json:"user,omitempty"`
	Status       RegistrationStatus `json:"status"`
	PricePaid    int                `json:"pricePaid"`
	ReceiptImage string             `json:"receiptImage,omitempty"`
	Mobile       string             `json:"mobile,omitempty"`
	Telegram     string             `json:"telegram,omitempty"`
	Questions    []string           `json:"questions,omitempty"`
	TrackingCode string             `json:"trackingCode,omitempty"`
	CreatedAt    time.Time          `json:"createdAt"`
}

type Post struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

type Comment struct {
	ID                string    `json:"id"`
	Content           string    `json:"content"`
	IsApproved        bool      `json:"isApproved"`
	AdminReplyContent string    `json:"adminReplyContent,omitempty"`
	User              *User     `json:"user,omitempty"`
	Post              *Post     `json:"post,omitempty"`
	CreatedAt         time.Time `json:"createdAt"`
}

// DeletedEntityLabel is rendered when a comment references a user or post
// that was removed on the backend.
const DeletedEntityLabel = "حذف شده"

func (c *Comment) AuthorName() string {
	if c.User == nil {
		return DeletedEntityLabel
	}
	return c.User.Name
}

func (c *Comment) PostTitle() string {
	if c.Post == nil {
		return DeletedEntityLabel
	}
	return c.Post.Title
}

type TicketStatus string

const (
	TicketOpen   TicketStatus = "OPEN"
	TicketClosed TicketStatus = "CLOSED"
)

type MessageSender string

const (
	SenderUser  MessageSender = "USER"
	SenderAdmin MessageSender = "ADMIN"
)

type Message struct {
	Sender    MessageSender `json:"sender"`
	Content   string        `json:"content"`
	CreatedAt time.Time     `json:"createdAt"`
}

// ContactTicket carries both the current messages[] shape and the legacy
// single message/reply pair. Normalize folds the legacy pair into Messages
// so nothing downstream has to branch on shape.
type ContactTicket struct {
	ID        string       `json:"id"`
	Subject   string       `json:"subject"`
	Requester *User        `json:"requester,omitempty"`
	Status    TicketStatus `json:"status"`
	Messages  []Message    `json:"messages,omitempty"`
	CreatedAt time.Time    `json:"createdAt"`

	LegacyMessage string `json:"message,omitempty"`
	LegacyReply   string `json:"reply,omitempty"`
}

func (t *ContactTicket) Normalize() {
	if len(t.Messages) == 0 {
		if t.LegacyMessage != "" {
			t.Messages = append(t.Messages, Message{
				Sender:    SenderUser,
				Content:   t.LegacyMessage,
				CreatedAt: t.CreatedAt,
			})
		}
		if t.LegacyReply != "" {
			t.Messages = append(t.Messages, Message{
				Sender:    SenderAdmin,
				Content:   t.LegacyReply,
				CreatedAt: t.CreatedAt,
			})
		}
	}
	t.LegacyMessage = ""
	t.LegacyReply = ""
}
