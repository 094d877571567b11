package mailservice

import (
	"bytes"
	"context"
	"sync"

	"github.com/go-mail/mail/v2"

	"github.com/sushihentaime/bloglist/internal/common"
)

// MailService drives email delivery off the message broker. It owns its
// own context so consumers can be stopped independently of the request
// lifecycle.
type MailService struct {
	mb     common.MessageConsumer
	m      Mailer
	logger MailLogger
	ctx    context.Context
	cancel context.CancelFunc
}

// MailLogger is the subset of slog.Logger the service needs.
type MailLogger interface {
	Error(msg string, args ...any)
	Info(msg string, args ...any)
}

// Mailer renders a named template with data and delivers it to the
// recipient.
type Mailer interface {
	send(recipient string, data any, templateFile string) error
}

// Mail is the SMTP-backed Mailer. The mutex serializes sends because the
// underlying dialer is not safe for concurrent use.
type Mail struct {
	mu     sync.Mutex
	dialer Dialer
	parser TemplateParser
	sender string
}

type Dialer interface {
	DialAndSend(m ...*mail.Message) error
}

// TemplateParser renders the subject, plain-text body, and HTML body of
// an email template.
type TemplateParser interface {
	ParseTemplate(name string, data any) (*bytes.Buffer, *bytes.Buffer, *bytes.Buffer, error)
}

// Template parses templates out of the embedded templates directory.
type Template struct{}
