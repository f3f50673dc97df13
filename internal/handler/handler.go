package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/bilimhub/bilimhub-backend/internal/model"
	"github.com/rs/zerolog/hlog"
)

// TutorLister は講師一覧の取得を表します
type TutorLister interface {
	ListTutors(ctx context.Context, subject string) ([]model.Tutor, error)
}

// Conversationalist はAIメンターとの会話を表します
type Conversationalist interface {
	Converse(ctx context.Context, message string) string
}

// BookingSubmitter は予約申請の受付を表します
type BookingSubmitter interface {
	SubmitRequest(ctx context.Context, in model.BookingInput) (*model.BookingResult, error)
}

// InquirySubmitter は講師応募とお問い合わせの受付を表します
type InquirySubmitter interface {
	RegisterTeacher(ctx context.Context, app model.TeacherApplication) (*model.TeacherApplication, error)
	SubmitContact(ctx context.Context, msg model.ContactMessage) (*model.ContactMessage, error)
}

// Handler はWebAppから呼ばれるJSON APIのハンドラです
type Handler struct {
	directory TutorLister
	assistant Conversationalist
	booking   BookingSubmitter
	inquiry   InquirySubmitter
}

// NewHandler は新しいHandlerを作成します
func NewHandler(directory TutorLister, assistant Conversationalist, booking BookingSubmitter, inquiry InquirySubmitter) *Handler {
	return &Handler{
		directory: directory,
		assistant: assistant,
		booking:   booking,
		inquiry:   inquiry,
	}
}

const serverErrorMessage = "Ошибка сервера"

type errorResponse struct {
	Error string `json:"error"`
}

type successResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

type chatRequest struct {
	Message string `json:"message"`
}

type chatResponse struct {
	Reply string `json:"reply"`
}

type healthResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// ListTeachers は GET /api/teachers?subject=X を処理します
func (h *Handler) ListTeachers(w http.ResponseWriter, r *http.Request) {
	subject := r.URL.Query().Get("subject")

	tutors, err := h.directory.ListTutors(r.Context(), subject)
	if err != nil {
		hlog.FromRequest(r).Error().Err(err).Str("subject", subject).Msg("Failed to list teachers")
		writeJSON(w, r, http.StatusInternalServerError, errorResponse{Error: serverErrorMessage})
		return
	}
	writeJSON(w, r, http.StatusOK, tutors)
}

// Chat は POST /api/chat を処理します。常に200で返答します
func (h *Handler) Chat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		hlog.FromRequest(r).Warn().Err(err).Msg("Malformed chat payload")
	}
	writeJSON(w, r, http.StatusOK, chatResponse{Reply: h.assistant.Converse(r.Context(), req.Message)})
}

// CreateRequest は POST /api/requests を処理します
func (h *Handler) CreateRequest(w http.ResponseWriter, r *http.Request) {
	var in model.BookingInput
	if !decodeBody(w, r, &in) {
		return
	}

	result, err := h.booking.SubmitRequest(r.Context(), in)
	if err != nil {
		writeFailure(w, r, err)
		return
	}

	hlog.FromRequest(r).Info().
		Int64("request_id", result.RequestID).
		Str("dispatch", string(result.Dispatch.Status)).
		Msg("Booking request created")
	writeJSON(w, r, http.StatusOK, successResponse{Success: true})
}

// RegisterTeacher は POST /api/register-teacher を処理します
func (h *Handler) RegisterTeacher(w http.ResponseWriter, r *http.Request) {
	var app model.TeacherApplication
	if !decodeBody(w, r, &app) {
		return
	}

	if _, err := h.inquiry.RegisterTeacher(r.Context(), app); err != nil {
		writeFailure(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, successResponse{Success: true})
}

// Contact は POST /api/contact を処理します
func (h *Handler) Contact(w http.ResponseWriter, r *http.Request) {
	var msg model.ContactMessage
	if !decodeBody(w, r, &msg) {
		return
	}

	if _, err := h.inquiry.SubmitContact(r.Context(), msg); err != nil {
		writeFailure(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, successResponse{Success: true})
}

// Health は GET /api/health を処理します
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, healthResponse{Status: "OK", Message: "BilimHub API is running"})
}

func decodeBody(w http.ResponseWriter, r *http.Request, dest interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dest); err != nil {
		hlog.FromRequest(r).Warn().Err(err).Msg("Malformed request payload")
		writeJSON(w, r, http.StatusBadRequest, successResponse{Success: false, Error: "invalid request payload"})
		return false
	}
	return true
}

// writeFailure はエラーの種類に応じて400または500を返します
func writeFailure(w http.ResponseWriter, r *http.Request, err error) {
	var vErr *model.ValidationError
	if errors.As(err, &vErr) {
		writeJSON(w, r, http.StatusBadRequest, successResponse{Success: false, Error: vErr.Error()})
		return
	}

	hlog.FromRequest(r).Error().Err(err).Msg("Request failed")
	writeJSON(w, r, http.StatusInternalServerError, successResponse{Success: false, Error: serverErrorMessage})
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("Failed to write response")
	}
}
