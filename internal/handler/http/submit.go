// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"

	"github.com/MKhiriev/pilot-docs-intake/internal/logger"
	"github.com/MKhiriev/pilot-docs-intake/internal/service"
	"github.com/MKhiriev/pilot-docs-intake/internal/utils"
	"github.com/MKhiriev/pilot-docs-intake/models"
)

// multipartFormFields are the part names that may carry the JSON form in a
// multipart submission, checked in order.
var multipartFormFields = []string{"form", "formData"}

// submit accepts either a JSON form or a multipart body whose "form" part
// holds the JSON and whose file parts are named after document types.
func (h *Handler) submit(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	var (
		req models.SubmitRequest
		err error
	)
	if isMultipart(r) {
		req, err = parseMultipartSubmission(r)
		if r.MultipartForm != nil {
			defer r.MultipartForm.RemoveAll()
		}
	} else {
		err = decodeJSON(r, &req.Form)
	}
	if err != nil {
		writeError(w, r, err, submitMessages)
		return
	}

	resp, err := h.services.SubmissionService.Submit(r.Context(), req)
	if err != nil {
		writeError(w, r, err, submitMessages)
		return
	}

	log.Info().
		Str(logger.FieldSubmissionID, resp.SubmissionID).
		Str("email_id", resp.EmailID).
		Msg("form submitted")

	utils.WriteJSON(w, resp, http.StatusOK)
}

func isMultipart(r *http.Request) bool {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return err == nil && mediaType == "multipart/form-data"
}

func parseMultipartSubmission(r *http.Request) (models.SubmitRequest, error) {
	if err := r.ParseMultipartForm(maxRequestBody); err != nil {
		return models.SubmitRequest{}, bodyError(err, ErrInvalidMultipart)
	}

	var raw string
	for _, field := range multipartFormFields {
		if raw = r.FormValue(field); raw != "" {
			break
		}
	}
	if raw == "" {
		return models.SubmitRequest{}, fmt.Errorf("%w: no form part", ErrInvalidMultipart)
	}

	var req models.SubmitRequest
	if err := json.Unmarshal([]byte(raw), &req.Form); err != nil {
		return models.SubmitRequest{}, fmt.Errorf("%w: %w", ErrInvalidJSON, err)
	}

	req.Documents = make(map[models.DocumentType]models.UploadedDocument)
	for _, spec := range models.DocumentCatalog {
		headers := r.MultipartForm.File[string(spec.Type)]
		if len(headers) == 0 {
			continue
		}
		doc, err := readDocumentPart(spec.Type, headers[0])
		if err != nil {
			return models.SubmitRequest{}, err
		}
		req.Documents[spec.Type] = doc
	}

	return req, nil
}

func readDocumentPart(docType models.DocumentType, fh *multipart.FileHeader) (models.UploadedDocument, error) {
	if fh.Size > models.MaxDocumentSize {
		return models.UploadedDocument{}, fmt.Errorf("%w: %s", service.ErrFileTooLarge, docType)
	}

	f, err := fh.Open()
	if err != nil {
		return models.UploadedDocument{}, fmt.Errorf("%w: %s: %w", ErrInvalidMultipart, docType, err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return models.UploadedDocument{}, fmt.Errorf("%w: %s: %w", ErrInvalidMultipart, docType, err)
	}

	return models.UploadedDocument{
		Type:     docType,
		FileName: fh.Filename,
		Size:     int64(len(data)),
		Content:  data,
	}, nil
}
