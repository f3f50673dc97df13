package model

import (
	"strings"
	"time"
)

// NotificationType は通知の種類を表します
type NotificationType string

const (
	// NotificationTypeBooking は予約申請の通知を表します
	NotificationTypeBooking NotificationType = "booking"
	// NotificationTypeApplication は講師応募の通知を表します
	NotificationTypeApplication NotificationType = "application"
	// NotificationTypeContact はお問い合わせの通知を表します
	NotificationTypeContact NotificationType = "contact"
)

// NotificationField は通知本文の1行(ラベルと値)です
type NotificationField struct {
	Label string
	Value string
}

// Notification は管理者チャンネルへ送る通知のドメインモデルです
// 描画(Markdownなど)は送信側が担当します
type Notification struct {
	Type      NotificationType
	Title     string
	Fields    []NotificationField
	CreatedAt time.Time
}

// Text はプレーンテキストとして通知を描画します
func (n Notification) Text() string {
	var b strings.Builder
	b.WriteString(n.Title)
	if len(n.Fields) > 0 {
		b.WriteString("\n")
	}
	for _, f := range n.Fields {
		b.WriteString("\n")
		b.WriteString(f.Label)
		b.WriteString(": ")
		b.WriteString(f.Value)
	}
	return b.String()
}

// NewBookingNotification は予約申請から通知を作成します
func NewBookingNotification(req *Request, tutorName string) Notification {
	if strings.TrimSpace(tutorName) == "" {
		tutorName = TutorPlaceholderName
	}
	return Notification{
		Type:  NotificationTypeBooking,
		Title: "🚀 Новая заявка!",
		Fields: []NotificationField{
			{Label: "👤 Имя", Value: req.UserName},
			{Label: "📞 Контакт", Value: req.Contact},
			{Label: "👨‍🏫 К кому", Value: tutorName},
		},
		CreatedAt: time.Now(),
	}
}

// NewApplicationNotification は講師応募から通知を作成します
func NewApplicationNotification(app *TeacherApplication) Notification {
	return Notification{
		Type:  NotificationTypeApplication,
		Title: "🎓 Новая анкета учителя!",
		Fields: []NotificationField{
			{Label: "👤 Имя", Value: app.FirstName + " " + app.LastName},
			{Label: "📚 Предмет", Value: app.Subject},
			{Label: "📞 Телефон", Value: app.Phone},
		},
		CreatedAt: time.Now(),
	}
}

// NewContactNotification はお問い合わせから通知を作成します
func NewContactNotification(msg *ContactMessage) Notification {
	fields := []NotificationField{
		{Label: "👤 Имя", Value: msg.Name},
		{Label: "✉️ Email", Value: msg.Email},
	}
	if msg.Phone != "" {
		fields = append(fields, NotificationField{Label: "📞 Телефон", Value: msg.Phone})
	}
	fields = append(fields,
		NotificationField{Label: "📌 Тема", Value: msg.Subject},
		NotificationField{Label: "💬 Сообщение", Value: msg.Message},
	)

	return Notification{
		Type:      NotificationTypeContact,
		Title:     "📩 Новое обращение!",
		Fields:    fields,
		CreatedAt: time.Now(),
	}
}

// DispatchStatus は通知送信の結果種別です
type DispatchStatus string

const (
	DispatchOK      DispatchStatus = "ok"
	DispatchFailed  DispatchStatus = "failed"
	DispatchSkipped DispatchStatus = "skipped"
)

// DispatchResult は通知送信の結果です
// 失敗はエラー値ではなく結果として返し、呼び出し側が明示的に破棄します
type DispatchResult struct {
	Status DispatchStatus
	Err    error
}

// DispatchSucceeded は成功結果を返します
func DispatchSucceeded() DispatchResult {
	return DispatchResult{Status: DispatchOK}
}

// DispatchFailedWith は失敗結果を返します
func DispatchFailedWith(channel string, err error) DispatchResult {
	return DispatchResult{Status: DispatchFailed, Err: &DispatchError{Channel: channel, Err: err}}
}

// Failed は送信に失敗したかどうかを返します
func (r DispatchResult) Failed() bool {
	return r.Status == DispatchFailed
}
