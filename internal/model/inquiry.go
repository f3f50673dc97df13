package model

import (
	"strings"
	"time"
)

// TeacherApplication は講師登録フォームから送られる応募です
type TeacherApplication struct {
	ID        int64     `json:"id" db:"id"`
	FirstName string    `json:"first_name" db:"first_name"`
	LastName  string    `json:"last_name" db:"last_name"`
	Subject   string    `json:"subject" db:"subject"`
	Phone     string    `json:"phone" db:"phone"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// Normalize は前後の空白を取り除きます
func (a TeacherApplication) Normalize() TeacherApplication {
	a.FirstName = strings.TrimSpace(a.FirstName)
	a.LastName = strings.TrimSpace(a.LastName)
	a.Subject = strings.TrimSpace(a.Subject)
	a.Phone = strings.TrimSpace(a.Phone)
	return a
}

// Validate は必須項目を検証します
func (a TeacherApplication) Validate() error {
	return requireFields(
		field{"first_name", a.FirstName},
		field{"last_name", a.LastName},
		field{"subject", a.Subject},
		field{"phone", a.Phone},
	)
}

// ContactMessage はお問い合わせフォームの内容です。phoneのみ任意
type ContactMessage struct {
	ID        int64     `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Email     string    `json:"email" db:"email"`
	Phone     string    `json:"phone" db:"phone"`
	Subject   string    `json:"subject" db:"subject"`
	Message   string    `json:"message" db:"message"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// Normalize は前後の空白を取り除きます
func (m ContactMessage) Normalize() ContactMessage {
	m.Name = strings.TrimSpace(m.Name)
	m.Email = strings.TrimSpace(m.Email)
	m.Phone = strings.TrimSpace(m.Phone)
	m.Subject = strings.TrimSpace(m.Subject)
	m.Message = strings.TrimSpace(m.Message)
	return m
}

// Validate は必須項目を検証します
func (m ContactMessage) Validate() error {
	return requireFields(
		field{"name", m.Name},
		field{"email", m.Email},
		field{"subject", m.Subject},
		field{"message", m.Message},
	)
}

type field struct {
	name  string
	value string
}

func requireFields(fields ...field) error {
	var missing []string
	for _, f := range fields {
		if f.value == "" {
			missing = append(missing, f.name)
		}
	}
	if len(missing) > 0 {
		return &ValidationError{Fields: missing}
	}
	return nil
}
