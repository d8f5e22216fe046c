package handler

import (
	"errors"
	"net/http"
	"net/url"

	"patientor/internal/converter"
	"patientor/internal/delivery/dto"
	"patientor/internal/delivery/http/middleware"
	"patientor/internal/form"
	"patientor/internal/usecase"
	"patientor/internal/view"
	"patientor/pkg/validator"

	"github.com/gorilla/mux"
	"github.com/gorilla/schema"
	"github.com/sirupsen/logrus"
)

// PatientPageHandler serves the server-rendered patient page. Every form
// post updates the form and redirects back to the page.
type PatientPageHandler struct {
	pageUsecase usecase.PatientPageUsecase
	validator   *validator.CustomValidator
	decoder     *schema.Decoder
	log         *logrus.Logger
}

func NewPatientPageHandler(pageUsecase usecase.PatientPageUsecase, validator *validator.CustomValidator, log *logrus.Logger) *PatientPageHandler {
	decoder := schema.NewDecoder()
	decoder.IgnoreUnknownKeys(true)
	return &PatientPageHandler{
		pageUsecase: pageUsecase,
		validator:   validator,
		decoder:     decoder,
		log:         log,
	}
}

func (h *PatientPageHandler) ShowPage(w http.ResponseWriter, r *http.Request) {
	sessionID, _ := middleware.GetSessionIDFromContext(r.Context())
	patientID := mux.Vars(r)["id"]

	page, err := h.pageUsecase.OpenPage(r.Context(), sessionID, patientID)
	if err != nil {
		h.fail(w, err)
		return
	}
	h.render(w, http.StatusOK, page)
}

func (h *PatientPageHandler) UpdateForm(w http.ResponseWriter, r *http.Request) {
	h.post(w, r, nil)
}

func (h *PatientPageHandler) SelectKind(w http.ResponseWriter, r *http.Request) {
	h.post(w, r, func(req *dto.EntryFormRequest) []form.Action {
		return []form.Action{{Type: form.ActionSelectKind, Value: req.Kind}}
	})
}

func (h *PatientPageHandler) CancelForm(w http.ResponseWriter, r *http.Request) {
	sessionID, _ := middleware.GetSessionIDFromContext(r.Context())
	patientID := mux.Vars(r)["id"]

	if _, err := h.pageUsecase.Cancel(r.Context(), sessionID, patientID); err != nil {
		h.fail(w, err)
		return
	}
	h.redirect(w, r, patientID)
}

// SubmitEntry applies the posted fields and submits the form. An incomplete
// form is shown again with the missing fields; any other outcome is reported
// by the form's notification after the redirect.
func (h *PatientPageHandler) SubmitEntry(w http.ResponseWriter, r *http.Request) {
	sessionID, _ := middleware.GetSessionIDFromContext(r.Context())
	patientID := mux.Vars(r)["id"]

	if !h.applyFields(w, r, nil) {
		return
	}

	_, err := h.pageUsecase.Submit(r.Context(), sessionID, patientID)
	switch {
	case err == nil, errors.Is(err, form.ErrRejected), errors.Is(err, form.ErrEntryUnreadable), errors.Is(err, form.ErrSubmissionInFlight):
		h.redirect(w, r, patientID)
	case errors.Is(err, form.ErrIncomplete), errors.Is(err, form.ErrInvalidRating):
		page, perr := h.pageUsecase.GetPage(r.Context(), sessionID, patientID)
		if perr != nil {
			h.fail(w, perr)
			return
		}
		page.Form.Errors = h.validator.FormatValidationErrors(err)
		if len(page.Form.Errors) == 0 {
			page.Form.Errors = map[string]string{"form": err.Error()}
		}
		h.render(w, http.StatusBadRequest, page)
	default:
		h.fail(w, err)
	}
}

func (h *PatientPageHandler) post(w http.ResponseWriter, r *http.Request, extra func(*dto.EntryFormRequest) []form.Action) {
	if h.applyFields(w, r, extra) {
		h.redirect(w, r, mux.Vars(r)["id"])
	}
}

// applyFields decodes the posted form and dispatches one action per field
// the browser sent, followed by the actions from extra.
func (h *PatientPageHandler) applyFields(w http.ResponseWriter, r *http.Request, extra func(*dto.EntryFormRequest) []form.Action) bool {
	sessionID, _ := middleware.GetSessionIDFromContext(r.Context())
	patientID := mux.Vars(r)["id"]

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form", http.StatusBadRequest)
		return false
	}
	var req dto.EntryFormRequest
	if err := h.decoder.Decode(&req, r.PostForm); err != nil {
		http.Error(w, "Invalid form", http.StatusBadRequest)
		return false
	}

	actions := converter.FormRequestToActions(&req)
	if extra != nil {
		actions = append(actions, extra(&req)...)
	}
	if len(actions) == 0 {
		return true
	}
	if _, err := h.pageUsecase.Dispatch(r.Context(), sessionID, patientID, actions); err != nil {
		h.fail(w, err)
		return false
	}
	return true
}

func (h *PatientPageHandler) redirect(w http.ResponseWriter, r *http.Request, patientID string) {
	http.Redirect(w, r, "/patients/"+url.PathEscape(patientID), http.StatusSeeOther)
}

func (h *PatientPageHandler) render(w http.ResponseWriter, status int, page *view.Page) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := view.PatientPageTemplate.Render(w, page); err != nil {
		h.log.Errorf("Failed to render patient page %s: %+v", page.Patient.ID, err)
	}
}

func (h *PatientPageHandler) fail(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		h.log.Warnf("Patient page failed: %+v", err)
	}
	http.Error(w, http.StatusText(status), status)
}
