package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// TutorPlaceholderName は講師が見つからない場合に通知へ埋め込む名前です
const TutorPlaceholderName = "Учитель"

// TutorID は数値・数値文字列のどちらのJSONでも受け付ける講師IDです
type TutorID int64

// UnmarshalJSON は 1 / "1" / null を受け付けます
func (id *TutorID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*id = 0
		return nil
	}

	raw := string(data)
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		raw = strings.TrimSpace(s)
		if raw == "" {
			*id = 0
			return nil
		}
	}

	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid teacher_id %q", raw)
	}
	*id = TutorID(v)
	return nil
}

// Request は予約申請の台帳レコードです
type Request struct {
	ID        int64     `json:"id" db:"id"`
	TutorID   int64     `json:"teacher_id" db:"teacher_id"`
	UserName  string    `json:"user_name" db:"user_name"`
	Contact   string    `json:"contact" db:"contact"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// BookingInput は予約APIの入力です
type BookingInput struct {
	TutorID  TutorID `json:"teacher_id"`
	UserName string  `json:"user_name"`
	Contact  string  `json:"contact"`
}

// Normalize は前後の空白を取り除いた入力を返します
func (in BookingInput) Normalize() BookingInput {
	in.UserName = strings.TrimSpace(in.UserName)
	in.Contact = strings.TrimSpace(in.Contact)
	return in
}

// Validate は必須項目を検証します。呼び出し前にNormalizeしておくこと
func (in BookingInput) Validate() error {
	var missing []string
	if in.TutorID <= 0 {
		missing = append(missing, "teacher_id")
	}
	if in.UserName == "" {
		missing = append(missing, "user_name")
	}
	if in.Contact == "" {
		missing = append(missing, "contact")
	}
	if len(missing) > 0 {
		return &ValidationError{Fields: missing}
	}
	return nil
}

// ToRequest は入力を台帳レコードに変換します
func (in BookingInput) ToRequest() *Request {
	return &Request{
		TutorID:  int64(in.TutorID),
		UserName: in.UserName,
		Contact:  in.Contact,
	}
}

// BookingResult は予約パイプラインの結果です
type BookingResult struct {
	RequestID int64
	TutorName string
	Dispatch  DispatchResult
}

// BookingEvent は予約確定時に外部ワークフローへ発行されるイベントです
type BookingEvent struct {
	RequestID int64     `json:"request_id"`
	TutorID   int64     `json:"teacher_id"`
	TutorName string    `json:"teacher_name"`
	UserName  string    `json:"user_name"`
	Contact   string    `json:"contact"`
	CreatedAt time.Time `json:"created_at"`
}
