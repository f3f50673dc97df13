package model

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTutorIDUnmarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		want    TutorID
		wantErr bool
	}{
		{name: "数値", body: `{"teacher_id": 7}`, want: 7},
		{name: "数値文字列", body: `{"teacher_id": "12"}`, want: 12},
		{name: "null", body: `{"teacher_id": null}`, want: 0},
		{name: "未指定", body: `{}`, want: 0},
		{name: "空文字列", body: `{"teacher_id": ""}`, want: 0},
		{name: "数値でない文字列", body: `{"teacher_id": "abc"}`, wantErr: true},
		{name: "小数", body: `{"teacher_id": 1.5}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var in BookingInput
			err := json.Unmarshal([]byte(tt.body), &in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, in.TutorID)
		})
	}
}

func TestBookingInputValidate(t *testing.T) {
	tests := []struct {
		name          string
		input         BookingInput
		missingFields []string
	}{
		{
			name:  "正常系",
			input: BookingInput{TutorID: 1, UserName: "Aigerim", Contact: "+7700"},
		},
		{
			name:          "名前が空白のみ",
			input:         BookingInput{TutorID: 1, UserName: "   ", Contact: "+7700"},
			missingFields: []string{"user_name"},
		},
		{
			name:          "全項目なし",
			input:         BookingInput{},
			missingFields: []string{"teacher_id", "user_name", "contact"},
		},
		{
			name:          "連絡先なし",
			input:         BookingInput{TutorID: 3, UserName: "Aigerim", Contact: "\t"},
			missingFields: []string{"contact"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.input.Normalize().Validate()
			if tt.missingFields == nil {
				assert.NoError(t, err)
				return
			}
			var vErr *ValidationError
			require.True(t, errors.As(err, &vErr))
			assert.Equal(t, tt.missingFields, vErr.Fields)
		})
	}
}

func TestBookingInputToRequest(t *testing.T) {
	in := BookingInput{TutorID: 5, UserName: " Aigerim ", Contact: " @aigerim "}.Normalize()

	req := in.ToRequest()
	assert.Equal(t, int64(5), req.TutorID)
	assert.Equal(t, "Aigerim", req.UserName)
	assert.Equal(t, "@aigerim", req.Contact)
}

func TestInquiryValidate(t *testing.T) {
	app := TeacherApplication{FirstName: "Aliya", LastName: " ", Subject: "Физика", Phone: ""}.Normalize()
	var vErr *ValidationError
	require.ErrorAs(t, app.Validate(), &vErr)
	assert.Equal(t, []string{"last_name", "phone"}, vErr.Fields)

	msg := ContactMessage{Name: "Dana", Email: "d@example.com", Subject: "Q", Message: "Hi"}.Normalize()
	assert.NoError(t, msg.Validate(), "phone is optional")

	msg.Message = ""
	require.ErrorAs(t, msg.Validate(), &vErr)
	assert.Equal(t, []string{"message"}, vErr.Fields)
}

func TestIsAllSubjects(t *testing.T) {
	assert.True(t, IsAllSubjects(""))
	assert.True(t, IsAllSubjects("Все"))
	assert.True(t, IsAllSubjects("ALL"))
	assert.False(t, IsAllSubjects("Математика"))
}

func TestTutorSummaryString(t *testing.T) {
	s := TutorSummary{Name: "Aliya K.", Subject: "Математика", Price: 5000}
	assert.Equal(t, "Aliya K. (Математика, 5000тг)", s.String())

	s.Price = 4500.5
	assert.Equal(t, "Aliya K. (Математика, 4500.5тг)", s.String())
}
