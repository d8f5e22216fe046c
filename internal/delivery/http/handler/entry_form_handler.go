package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"patientor/internal/converter"
	"patientor/internal/delivery/dto"
	"patientor/internal/delivery/http/middleware"
	"patientor/internal/form"
	"patientor/internal/usecase"
	"patientor/pkg/response"
	"patientor/pkg/validator"

	"github.com/gorilla/mux"
)

// EntryFormHandler is the JSON API of the patient page
type EntryFormHandler struct {
	pageUsecase usecase.PatientPageUsecase
	validator   *validator.CustomValidator
}

func NewEntryFormHandler(pageUsecase usecase.PatientPageUsecase, validator *validator.CustomValidator) *EntryFormHandler {
	return &EntryFormHandler{
		pageUsecase: pageUsecase,
		validator:   validator,
	}
}

func (h *EntryFormHandler) GetPage(w http.ResponseWriter, r *http.Request) {
	sessionID, _ := middleware.GetSessionIDFromContext(r.Context())

	page, err := h.pageUsecase.OpenPage(r.Context(), sessionID, mux.Vars(r)["id"])
	if err != nil {
		h.fail(w, err, nil)
		return
	}

	response.Success(w, http.StatusOK, "Patient retrieved successfully", dto.PatientPageResponse{
		SessionID: sessionID.String(),
		Page:      page,
	})
}

func (h *EntryFormHandler) DispatchActions(w http.ResponseWriter, r *http.Request) {
	sessionID, _ := middleware.GetSessionIDFromContext(r.Context())

	var req dto.FormActionsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}
	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	state, err := h.pageUsecase.Dispatch(r.Context(), sessionID, mux.Vars(r)["id"], converter.FormActionsFromRequest(&req))
	if err != nil {
		if state == nil {
			h.fail(w, err, nil)
			return
		}
		h.fail(w, err, state)
		return
	}

	response.Success(w, http.StatusOK, "Form updated successfully", state)
}

func (h *EntryFormHandler) Submit(w http.ResponseWriter, r *http.Request) {
	sessionID, _ := middleware.GetSessionIDFromContext(r.Context())

	result, err := h.pageUsecase.Submit(r.Context(), sessionID, mux.Vars(r)["id"])
	if err != nil {
		if errors.Is(err, form.ErrIncomplete) {
			response.ValidationError(w, h.validator.FormatValidationErrors(err))
			return
		}
		if result == nil {
			h.fail(w, err, nil)
			return
		}
		h.fail(w, err, result)
		return
	}

	response.Success(w, http.StatusCreated, form.SuccessMessage, result)
}

func (h *EntryFormHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	sessionID, _ := middleware.GetSessionIDFromContext(r.Context())

	state, err := h.pageUsecase.Cancel(r.Context(), sessionID, mux.Vars(r)["id"])
	if err != nil {
		h.fail(w, err, nil)
		return
	}

	response.Success(w, http.StatusOK, "Form cleared", state)
}

func (h *EntryFormHandler) fail(w http.ResponseWriter, err error, data interface{}) {
	status := statusFor(err)
	switch {
	case status == http.StatusNotFound:
		response.NotFound(w, "Patient not found")
	case status == http.StatusBadGateway:
		response.BadGateway(w, "")
	case data != nil:
		response.Failure(w, status, err.Error(), data)
	default:
		response.Error(w, status, err.Error(), nil)
	}
}
