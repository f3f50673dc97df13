package model

import (
	"strconv"
	"strings"
)

// SubjectAll は全科目を表すフロントエンドのセンチネル値です
const SubjectAll = "Все"

// Tutor は講師ディレクトリの1行を表します
type Tutor struct {
	ID          int64   `json:"id" db:"id"`
	Name        string  `json:"name" db:"name"`
	Subject     string  `json:"subject" db:"subject"`
	Price       float64 `json:"price" db:"price"`
	Rating      float64 `json:"rating" db:"rating"`
	Experience  int     `json:"experience" db:"experience"`
	IsOnline    bool    `json:"is_online" db:"is_online"`
	Image       *string `json:"image" db:"image"`
	Description *string `json:"description" db:"description"`
}

// TutorSummary はAIアシスタントのコンテキストに渡す講師の要約です
type TutorSummary struct {
	Name    string  `db:"name"`
	Subject string  `db:"subject"`
	Price   float64 `db:"price"`
}

// String は "名前 (科目, 価格тг)" 形式の文字列を返します
func (s TutorSummary) String() string {
	return s.Name + " (" + s.Subject + ", " + strconv.FormatFloat(s.Price, 'f', -1, 64) + "тг)"
}

// IsAllSubjects は科目フィルタが未指定またはセンチネル値かどうかを判定します
func IsAllSubjects(subject string) bool {
	subject = strings.TrimSpace(subject)
	return subject == "" || subject == SubjectAll || strings.EqualFold(subject, "all")
}
