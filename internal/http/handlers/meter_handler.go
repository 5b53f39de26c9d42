// Danger-meter HTTP handlers.
//
// This file exposes the REST endpoints of the service:
//   - GET    /data           (whole document)
//   - POST   /comment        (add a comment)
//   - DELETE /comment/{id}   (remove a comment, password-protected)
//   - POST   /alert          (toggle the visual alert flag)
//
// Handlers are transport-thin: they bind input, delegate to the service,
// and translate service errors into HTTP results.
package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/miyukometro/go-backend/internal/domain"
	"github.com/miyukometro/go-backend/internal/services"
	"github.com/miyukometro/go-backend/internal/utils"
)

// MeterService defines the operations consumed by the HTTP handlers.
//
// Implementations must be safe for concurrent use; every call is a complete
// load-mutate-persist unit of work.
type MeterService interface {
	// Data returns the whole current document.
	Data(ctx context.Context) (*domain.Document, error)
	// AddComment validates and stores a new comment, returning it together
	// with the updated score.
	AddComment(ctx context.Context, in services.CommentInput) (*domain.Comment, int, error)
	// RemoveComment deletes a comment by id after checking the password and
	// returns the updated score.
	RemoveComment(ctx context.Context, id int64, password string) (int, error)
	// SetAlert sets the visual alert flag.
	SetAlert(ctx context.Context, enabled bool) error
}

// Handlers groups the HTTP endpoints of the danger meter.
type Handlers struct {
	svc MeterService
}

// New constructs a Handlers instance bound to the given service.
func New(svc MeterService) *Handlers {
	return &Handlers{svc: svc}
}

// AddCommentRequest is the JSON payload for creating a comment. Field names
// follow the frontend wire contract.
type AddCommentRequest struct {
	Text       string             `json:"texto"`
	Author     string             `json:"autor"`
	Anonymous  bool               `json:"anonimo"`
	Attachment *domain.Attachment `json:"arquivo"`
}

// AddCommentResponse is returned on successful comment creation.
type AddCommentResponse struct {
	Success bool            `json:"sucesso"`
	Comment *domain.Comment `json:"comentario"`
	Score   int             `json:"pontuacao"`
}

// DeleteCommentRequest carries the shared deletion password.
type DeleteCommentRequest struct {
	Password string `json:"senha"`
}

// DeleteCommentResponse is returned on successful deletion (including
// deletion of an id that no longer exists).
type DeleteCommentResponse struct {
	Success bool `json:"sucesso"`
	Score   int  `json:"pontuacao"`
}

// SetAlertRequest toggles the visual alert. Ativo is deliberately untyped:
// only a JSON boolean true enables the flag, anything else disables it.
type SetAlertRequest struct {
	Active any `json:"ativo"`
}

// SuccessResponse is the bare `{sucesso:true}` acknowledgment.
type SuccessResponse struct {
	Success bool `json:"sucesso"`
}

// GetData returns the full document: score, classification, comments, and
// the static profile. A missing or corrupt data file is not an error; the
// store serves defaults.
func (h *Handlers) GetData(c *gin.Context) {
	doc, err := h.svc.Data(c.Request.Context())
	if err != nil {
		fail(c, http.StatusInternalServerError, MsgLoadFailed)
		return
	}
	ok(c, http.StatusOK, doc)
}

// AddComment creates a comment from the request body. Empty submissions and
// oversized attachments are rejected with 400; persistence failures with 500.
func (h *Handlers) AddComment(c *gin.Context) {
	var req AddCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, MsgInvalidRequest)
		return
	}

	comment, score, err := h.svc.AddComment(c.Request.Context(), services.CommentInput{
		Text:       req.Text,
		Author:     req.Author,
		Anonymous:  req.Anonymous,
		Attachment: req.Attachment,
	})
	if err != nil {
		switch err {
		case services.ErrEmptyComment:
			fail(c, http.StatusBadRequest, MsgEmptyComment)
		case services.ErrAttachmentTooLarge:
			fail(c, http.StatusBadRequest, MsgAttachmentTooLarge)
		default:
			fail(c, http.StatusInternalServerError, MsgSaveCommentFailed)
		}
		return
	}

	ok(c, http.StatusOK, AddCommentResponse{Success: true, Comment: comment, Score: score})
}

// DeleteComment removes the comment whose id is in the path. The password is
// checked before existence, so a wrong password is 401 even for ids that
// were never assigned. A malformed or unknown id with the right password is
// still a success with the unchanged score.
func (h *Handlers) DeleteComment(c *gin.Context) {
	// A non-numeric id behaves like a nonexistent one; the password check
	// must still run first.
	id := utils.Atoi64Default(c.Param("id"), 0)

	var req DeleteCommentRequest
	// Ignore bind errors: an absent or unparseable password is simply a
	// password mismatch.
	_ = c.ShouldBindJSON(&req)

	score, err := h.svc.RemoveComment(c.Request.Context(), id, req.Password)
	if err != nil {
		switch err {
		case services.ErrWrongPassword:
			fail(c, http.StatusUnauthorized, MsgWrongPassword)
		default:
			fail(c, http.StatusInternalServerError, MsgDeleteCommentFailed)
		}
		return
	}

	ok(c, http.StatusOK, DeleteCommentResponse{Success: true, Score: score})
}

// SetAlert sets the visual alert flag. Only a JSON boolean true enables it;
// strings, numbers, and absent values all coerce to false.
func (h *Handlers) SetAlert(c *gin.Context) {
	var req SetAlertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, MsgInvalidRequest)
		return
	}

	enabled := req.Active == true

	if err := h.svc.SetAlert(c.Request.Context(), enabled); err != nil {
		fail(c, http.StatusInternalServerError, MsgUpdateAlertFailed)
		return
	}
	ok(c, http.StatusOK, SuccessResponse{Success: true})
}
