package domain

import (
	"fmt"
	"time"

	"gitee.com/flycash/shift-handover/internal/errs"
)

// Channel is the outbound medium of a delivery Notification.
type Channel string

const (
	ChannelEmail Channel = "email"
	ChannelSMS   Channel = "sms"
	ChannelPush  Channel = "push"
	ChannelInApp Channel = "in_app"
)

func (c Channel) IsValid() bool {
	switch c {
	case ChannelEmail, ChannelSMS, ChannelPush, ChannelInApp:
		return true
	default:
		return false
	}
}

func (c Channel) String() string {
	return string(c)
}

// SendStatus 投递状态
type SendStatus string

const (
	SendStatusPending SendStatus = "pending"
	SendStatusSent    SendStatus = "sent"
	SendStatusFailed  SendStatus = "failed"
)

// MaxDeliveryAttempts is the attempt count at which a Notification becomes failed.
const MaxDeliveryAttempts = 3

// Payload is the structured body of an outbound message.
type Payload struct {
	Type    string            `json:"type"`
	Title   string            `json:"title"`
	Message string            `json:"message"`
	Link    string            `json:"link,omitempty"`
	Params  map[string]string `json:"params,omitempty"`
}

// Notification is one outbound message to one recipient.
type Notification struct {
	ID          uint64
	TaskID      uint64 // 0 when the notification is not tied to a pending task
	Channel     Channel
	Destination string
	Payload     Payload
	Status      SendStatus
	Attempts    int
	SentAt      time.Time // zero until sent
	Ctime       time.Time
	Utime       time.Time
}

func (n *Notification) Validate() error {
	if !n.Channel.IsValid() {
		return fmt.Errorf("%w: Channel = %q", errs.ErrInvalidParameter, n.Channel)
	}
	if n.Destination == "" {
		return fmt.Errorf("%w: Destination is empty", errs.ErrInvalidParameter)
	}
	if n.Payload.Message == "" && n.Payload.Title == "" {
		return fmt.Errorf("%w: Payload is empty", errs.ErrInvalidParameter)
	}
	return nil
}

// MarkSent records a successful delivery. sent is terminal.
func (n *Notification) MarkSent(now time.Time) {
	if n.Status != SendStatusPending {
		return
	}
	n.Status = SendStatusSent
	n.SentAt = now
	n.Utime = now
}

// MarkAttemptFailed counts a failed delivery attempt and moves the
// notification to failed once the cap is reached.
func (n *Notification) MarkAttemptFailed(now time.Time) {
	if n.Status != SendStatusPending {
		return
	}
	if n.Attempts < MaxDeliveryAttempts {
		n.Attempts++
	}
	if n.Attempts >= MaxDeliveryAttempts {
		n.Status = SendStatusFailed
	}
	n.Utime = now
}

// Deliverable reports whether the dispatcher may still pick this notification up.
func (n *Notification) Deliverable() bool {
	return n.Status == SendStatusPending && n.Attempts < MaxDeliveryAttempts
}

// SendResponse 渠道发送结果
type SendResponse struct {
	NotificationID uint64
	Status         SendStatus
	Provider       string
}

// DeliveryReport summarizes one dispatcher batch.
type DeliveryReport struct {
	Selected int
	Sent     int
	Retrying int
	Failed   int
	// Interrupted is true when the batch stopped early at a row boundary.
	Interrupted bool
}
