package handler

import (
	"errors"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"path/filepath"

	"github.com/GoArmGo/PhotoShare/internal/core/ports"
	"github.com/GoArmGo/PhotoShare/internal/domain"
	"github.com/GoArmGo/PhotoShare/internal/usecase"
	"github.com/go-chi/chi/v5"
)

const (
	uploadField     = "uploadedphoto"
	multipartMemory = 1 << 20
)

// PhotoHandler — фото, комментарии и раздача изображений.
type PhotoHandler struct {
	gallery        usecase.GalleryUseCase
	photoUseCase   usecase.PhotoUseCase
	fileStorage    ports.FileStorage
	uploadLimiter  chan struct{}
	uploadMaxBytes int64
	onRejected     func()
	logger         *slog.Logger
}

// NewPhotoHandler создаёт новый экземпляр PhotoHandler.
// onRejected вызывается, когда лимитер загрузок не удалось занять; может быть nil.
func NewPhotoHandler(
	gallery usecase.GalleryUseCase,
	uc usecase.PhotoUseCase,
	fileStorage ports.FileStorage,
	limiter chan struct{},
	uploadMaxBytes int64,
	onRejected func(),
	logger *slog.Logger,
) *PhotoHandler {
	return &PhotoHandler{
		gallery:        gallery,
		photoUseCase:   uc,
		fileStorage:    fileStorage,
		uploadLimiter:  limiter,
		uploadMaxBytes: uploadMaxBytes,
		onRejected:     onRejected,
		logger:         logger,
	}
}

// PhotosOfUser обрабатывает GET /photosOfUser/{id} и GET /photos/{id}.
func (h *PhotoHandler) PhotosOfUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		writeError(w, r, err, h.logger)
		return
	}
	photos, err := h.gallery.PhotosOfUser(r.Context(), id)
	if err != nil {
		writeError(w, r, err, h.logger)
		return
	}
	respondWithJSON(w, http.StatusOK, toPhotos(photos), h.logger)
}

// CommentsOfUser обрабатывает GET /commentsOfUser/{id}.
func (h *PhotoHandler) CommentsOfUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		writeError(w, r, err, h.logger)
		return
	}
	comments, err := h.gallery.CommentsAuthoredBy(r.Context(), id)
	if err != nil {
		writeError(w, r, err, h.logger)
		return
	}
	respondWithJSON(w, http.StatusOK, toAuthoredComments(comments), h.logger)
}

type addCommentRequest struct {
	Comment string `json:"comment"`
}

// AddComment обрабатывает POST /commentsOfPhoto/{photo_id}.
func (h *PhotoHandler) AddComment(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		writeError(w, r, domain.ErrUnauthorized, h.logger)
		return
	}
	photoID, err := pathUUID(r, "photo_id")
	if err != nil {
		writeError(w, r, domain.ErrPhotoNotFound, h.logger)
		return
	}

	var req addCommentRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err, h.logger)
		return
	}

	comment, err := h.photoUseCase.AddComment(r.Context(), userID, photoID, req.Comment)
	if err != nil {
		writeError(w, r, err, h.logger)
		return
	}
	respondWithJSON(w, http.StatusOK, toComment(*comment), h.logger)
}

// UploadPhoto обрабатывает POST /photos/new, multipart-поле uploadedphoto.
func (h *PhotoHandler) UploadPhoto(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		writeError(w, r, domain.ErrUnauthorized, h.logger)
		return
	}

	select {
	case h.uploadLimiter <- struct{}{}:
		defer func() { <-h.uploadLimiter }()
	case <-r.Context().Done():
		if h.onRejected != nil {
			h.onRejected()
		}
		h.logger.Warn("upload limiter not acquired", "user_id", userID, "error", r.Context().Err())
		writeError(w, r, errServerBusy, h.logger)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.uploadMaxBytes)
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, r, errTooLarge, h.logger)
			return
		}
		writeError(w, r, domain.ErrNoFile, h.logger)
		return
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	file, header, err := r.FormFile(uploadField)
	if err != nil {
		writeError(w, r, domain.ErrNoFile, h.logger)
		return
	}
	defer file.Close()

	if header.Size == 0 {
		writeError(w, r, domain.ErrNoFile, h.logger)
		return
	}

	photo, err := h.photoUseCase.UploadPhoto(r.Context(), userID, file, header.Filename, header.Header.Get("Content-Type"))
	if err != nil {
		writeError(w, r, err, h.logger)
		return
	}
	respondWithJSON(w, http.StatusOK, toUploadedPhoto(photo), h.logger)
}

// Image обрабатывает GET /images/{file_name}.
func (h *PhotoHandler) Image(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "file_name")
	rc, err := h.fileStorage.GetFile(r.Context(), name)
	if err != nil {
		writeError(w, r, err, h.logger)
		return
	}
	defer rc.Close()

	contentType := mime.TypeByExtension(filepath.Ext(name))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Cache-Control", "private, max-age=3600")
	w.WriteHeader(http.StatusOK)
	if _, err := io.Copy(w, rc); err != nil {
		h.logger.Warn("failed to stream image", "file_name", name, "error", err)
	}
}
