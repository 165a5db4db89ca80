// Package notify доставляет письма пользователям в фоне.
package notify

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/iurnickita/autosalon/internal/model"
	"github.com/iurnickita/autosalon/internal/service/mailclient"
)

const (
	queueSize   = 100
	sendTimeout = 10 * time.Second
)

type Message struct {
	To      string
	Subject string
	Text    string
}

type Notifier interface {
	// Send queues msg and never blocks. It reports false when the queue is full.
	Send(msg Message) bool
	Run(ctx context.Context) error
}

type notifier struct {
	from   string
	client mailclient.MailClient
	queue  chan Message
	zaplog *zap.Logger
}

// NewNotifier with a nil client only logs messages.
func NewNotifier(from string, client mailclient.MailClient, zaplog *zap.Logger) Notifier {
	return &notifier{
		from:   from,
		client: client,
		queue:  make(chan Message, queueSize),
		zaplog: zaplog,
	}
}

func (n *notifier) Send(msg Message) bool {
	select {
	case n.queue <- msg:
		return true
	default:
		n.zaplog.Warn("mail queue is full, message dropped", zap.String("to", msg.To), zap.String("subject", msg.Subject))
		return false
	}
}

func (n *notifier) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg := <-n.queue:
			n.deliver(ctx, msg)
		}
	}
}

func (n *notifier) deliver(ctx context.Context, msg Message) {
	if n.client == nil {
		n.zaplog.Info("mail", zap.String("to", msg.To), zap.String("subject", msg.Subject), zap.String("text", msg.Text))
		return
	}

	ctx, cancel := context.WithTimeout(ctx, sendTimeout)
	defer cancel()

	_, err := n.client.Send(ctx, mailclient.Mail{
		From:    n.from,
		To:      msg.To,
		Subject: msg.Subject,
		Text:    msg.Text,
	})
	if err != nil {
		n.zaplog.Error("mail delivery failed", zap.String("to", msg.To), zap.Error(err))
		return
	}
	n.zaplog.Debug("mail sent", zap.String("to", msg.To), zap.String("subject", msg.Subject))
}

// Шаблоны писем

func Confirmation(email string) Message {
	return Message{
		To:      email,
		Subject: "Confirmation Email",
		Text:    "Please confirm your email",
	}
}

func Receipt(email string, history model.CustomerSaleHistory) Message {
	return Message{
		To:      email,
		Subject: "Purchase receipt",
		Text: fmt.Sprintf("Purchase #%d: car %d for %s on %s",
			history.ID, history.CarID, history.Price.StringFixed(2), history.Date.Format(time.RFC3339)),
	}
}
