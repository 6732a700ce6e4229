package admin

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/polltech/smarttutors/internal/domain/settings"
	"github.com/polltech/smarttutors/internal/pkg/imaging"
	"github.com/polltech/smarttutors/internal/pkg/response"
	"github.com/polltech/smarttutors/internal/pkg/storage"
	"github.com/polltech/smarttutors/internal/pkg/validator"
)

const maxBrandingUpload = 60 * 1024 * 1024

// GetSettings handles GET /admin/settings
func (h *Handler) GetSettings(w http.ResponseWriter, r *http.Request) {
	s, err := h.settings.Get(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("failed to load settings")
		response.InternalError(w)
		return
	}

	response.OK(w, settings.NewView(s))
}

// UpdateSettings handles PATCH /admin/settings
func (h *Handler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var req settings.UpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	updated, err := h.settings.Update(r.Context(), &req)
	if err != nil {
		if errors.Is(err, settings.ErrValidation) {
			response.BadRequest(w, err.Error())
			return
		}
		log.Error().Err(err).Msg("failed to update settings")
		response.InternalError(w)
		return
	}

	response.OK(w, settings.NewView(updated))
}

// UploadBranding handles POST /admin/settings/branding. Multipart form with
// a "file" part; images are resized for display, videos stored as is. The
// stored URL becomes the login background.
func (h *Handler) UploadBranding(w http.ResponseWriter, r *http.Request) {
	if h.store == nil {
		response.ServiceUnavailable(w, "STORAGE_NOT_CONFIGURED", "Asset storage is not configured")
		return
	}

	if err := r.ParseMultipartForm(maxBrandingUpload); err != nil {
		response.BadRequest(w, "Invalid multipart form")
		return
	}
	file, _, err := r.FormFile("file")
	if err != nil {
		response.BadRequest(w, "Missing file")
		return
	}
	defer file.Close()

	category := storage.CategoryBackgroundImage
	if r.FormValue("type") == "video" {
		category = storage.CategoryBackgroundVideo
	}

	buf, mimeType, err := storage.ValidateAndBuffer(file, category)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrFileTooLarge):
			response.BadRequest(w, "File exceeds the maximum size")
		case errors.Is(err, storage.ErrInvalidMimeType):
			response.BadRequest(w, "File type not allowed")
		case errors.Is(err, storage.ErrEmptyFile):
			response.BadRequest(w, "File is empty")
		default:
			log.Error().Err(err).Msg("branding upload validation failed")
			response.InternalError(w)
		}
		return
	}

	backgroundType := "image"
	var key string
	if category == storage.CategoryBackgroundVideo {
		backgroundType = "video"
		key = "backgrounds/" + uuid.NewString() + storage.GetExtensionForMime(mimeType)
		if err := h.store.Put(r.Context(), key, buf, mimeType); err != nil {
			log.Error().Err(err).Msg("branding video upload failed")
			response.InternalError(w)
			return
		}
	} else {
		processed, err := h.processor.Process(buf)
		if err != nil {
			response.BadRequest(w, "Could not decode image")
			return
		}
		key, _ = imaging.BackgroundPaths(uuid.NewString(), storage.GetExtensionForMime(processed.ContentType))
		if err := h.store.Put(r.Context(), key, bytes.NewReader(processed.Display), processed.ContentType); err != nil {
			log.Error().Err(err).Msg("branding image upload failed")
			response.InternalError(w)
			return
		}
	}

	url := h.store.GetURL(key)
	updated, err := h.settings.Update(r.Context(), &settings.UpdateRequest{
		BackgroundType: &backgroundType,
		BackgroundURL:  &url,
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to persist branding settings")
		response.InternalError(w)
		return
	}

	response.OK(w, settings.NewView(updated))
}
