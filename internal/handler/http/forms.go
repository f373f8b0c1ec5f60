// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/go-form-keeper/internal/logger"
	"github.com/MKhiriev/go-form-keeper/internal/utils"
	"github.com/MKhiriev/go-form-keeper/models"
)

const formIDParam = "formId"

// createForm handles POST /forms/create.
func (h *Handler) createForm(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	ownerID, ok := utils.GetOwnerIDFromContext(r.Context())
	if !ok {
		utils.WriteError(w, http.StatusUnauthorized, errMissingOwnerID.Error())
		return
	}

	var request models.CreateFormRequest
	if err := decodeJSON(r, &request); err != nil {
		log.Err(err).Msg("malformed create form request")
		utils.WriteError(w, http.StatusBadRequest, errMalformedBody.Error(), models.Violation{Message: err.Error()})
		return
	}

	created, err := h.services.FormService.CreateForm(r.Context(), ownerID, request)
	if err != nil {
		log.Err(err).Str("table_name", request.TableName).Msg("form was not created")
		h.writeServiceError(w, r, err)
		return
	}

	log.Info().Str("form_id", created.Form.ID).Str("table_name", created.Form.TableName).Msg("form created")
	utils.WriteJSON(w, created, http.StatusCreated)
}

// listForms handles GET /forms/list.
func (h *Handler) listForms(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := utils.GetOwnerIDFromContext(r.Context())
	if !ok {
		utils.WriteError(w, http.StatusUnauthorized, errMissingOwnerID.Error())
		return
	}

	forms, err := h.services.FormService.ListForms(r.Context(), ownerID)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	if forms == nil {
		forms = []models.FormSummary{}
	}

	utils.WriteJSON(w, forms, http.StatusOK)
}

// getForm handles GET /forms/{formId}. It is public.
func (h *Handler) getForm(w http.ResponseWriter, r *http.Request) {
	formID := chi.URLParam(r, formIDParam)
	if formID == "" {
		utils.WriteError(w, http.StatusBadRequest, errMissingFormID.Error())
		return
	}

	form, err := h.services.FormService.GetPublicForm(r.Context(), formID)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	utils.WriteJSON(w, form, http.StatusOK)
}

// submitForm handles POST /forms/submit. It is public.
func (h *Handler) submitForm(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	var request models.SubmitRequest
	if err := decodeJSON(r, &request); err != nil {
		log.Err(err).Msg("malformed submission")
		utils.WriteError(w, http.StatusBadRequest, errMalformedBody.Error(), models.Violation{Message: err.Error()})
		return
	}

	receipt, err := h.services.SubmissionService.Submit(r.Context(), request)
	if err != nil {
		log.Err(err).Str("form_id", request.FormID).Msg("submission rejected")
		h.writeServiceError(w, r, err)
		return
	}

	utils.WriteJSON(w, receipt, http.StatusCreated)
}

// getResponses handles GET /forms/responses/{formId}.
func (h *Handler) getResponses(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := utils.GetOwnerIDFromContext(r.Context())
	if !ok {
		utils.WriteError(w, http.StatusUnauthorized, errMissingOwnerID.Error())
		return
	}

	responses, err := h.services.SubmissionService.GetResponses(r.Context(), chi.URLParam(r, formIDParam), ownerID)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	if responses == nil {
		responses = []models.FormResponse{}
	}

	utils.WriteJSON(w, responses, http.StatusOK)
}

// deleteForm handles DELETE /forms/delete/{formId}.
func (h *Handler) deleteForm(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := utils.GetOwnerIDFromContext(r.Context())
	if !ok {
		utils.WriteError(w, http.StatusUnauthorized, errMissingOwnerID.Error())
		return
	}

	formID := chi.URLParam(r, formIDParam)
	if err := h.services.FormService.DeleteForm(r.Context(), formID, ownerID); err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	logger.FromRequest(r).Info().Str("form_id", formID).Msg("form deleted")
	utils.WriteJSON(w, models.MessageResponse{Message: "Form deleted successfully"}, http.StatusOK)
}

// decodeJSON decodes the request body keeping numbers as json.Number so that
// submitted values reach validation without float rounding.
func decodeJSON(r *http.Request, dst any) error {
	decoder := json.NewDecoder(r.Body)
	decoder.UseNumber()
	return decoder.Decode(dst)
}
