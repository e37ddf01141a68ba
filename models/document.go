// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"path/filepath"
	"strings"
)

// MaxDocumentSize is the largest decoded document accepted for upload.
const MaxDocumentSize = 10 << 20

// DocumentType is the key naming one of the supporting files a pilot must
// provide. The set of valid keys is fixed by [DocumentCatalog].
type DocumentType string

const (
	DocumentPilotLicense        DocumentType = "pilotLicense"
	DocumentMedicalCertificate  DocumentType = "medicalCertificate"
	DocumentPassport            DocumentType = "passport"
	DocumentVisa                DocumentType = "visa"
	DocumentLogbook             DocumentType = "logbook"
	DocumentTypeRating          DocumentType = "typeRating"
	DocumentRadioLicense        DocumentType = "radioLicense"
	DocumentEnglishProficiency  DocumentType = "englishProficiency"
	DocumentNationalID          DocumentType = "nationalId"
	DocumentCurriculumVitae     DocumentType = "cv"
	DocumentPhoto               DocumentType = "photo"
	DocumentEmploymentReference DocumentType = "employmentReference"
)

// DocumentSpec describes one entry of the document catalog.
type DocumentSpec struct {
	// Type is the key used in upload paths and form payloads.
	Type DocumentType

	// Title is the human-readable name rendered in the notification checklist.
	Title string

	// ArchiveLabel is the file stem used for the entry inside the ZIP bundle.
	ArchiveLabel string
}

// DocumentCatalog is the ordered, fixed set of document types accepted by the
// intake workflow. Checklist rows and archive entries follow this order.
// Adding a document type is a matter of appending a row here.
var DocumentCatalog = []DocumentSpec{
	{Type: DocumentPilotLicense, Title: "Pilot License", ArchiveLabel: "Pilot_License"},
	{Type: DocumentMedicalCertificate, Title: "Medical Certificate", ArchiveLabel: "Medical_Certificate"},
	{Type: DocumentPassport, Title: "Passport", ArchiveLabel: "Passport"},
	{Type: DocumentVisa, Title: "Visa", ArchiveLabel: "Visa"},
	{Type: DocumentLogbook, Title: "Pilot Logbook", ArchiveLabel: "Pilot_Logbook"},
	{Type: DocumentTypeRating, Title: "Type Rating Certificate", ArchiveLabel: "Type_Rating_Certificate"},
	{Type: DocumentRadioLicense, Title: "Radiotelephony License", ArchiveLabel: "Radiotelephony_License"},
	{Type: DocumentEnglishProficiency, Title: "ICAO English Proficiency", ArchiveLabel: "ICAO_English_Proficiency"},
	{Type: DocumentNationalID, Title: "National ID", ArchiveLabel: "National_ID"},
	{Type: DocumentCurriculumVitae, Title: "Curriculum Vitae", ArchiveLabel: "Curriculum_Vitae"},
	{Type: DocumentPhoto, Title: "Passport Photo", ArchiveLabel: "Passport_Photo"},
	{Type: DocumentEmploymentReference, Title: "Employment Reference Letter", ArchiveLabel: "Employment_Reference_Letter"},
}

// LookupDocumentSpec returns the catalog entry for t.
func LookupDocumentSpec(t DocumentType) (DocumentSpec, bool) {
	for _, spec := range DocumentCatalog {
		if spec.Type == t {
			return spec, true
		}
	}
	return DocumentSpec{}, false
}

// IsKnownDocumentType reports whether t is part of [DocumentCatalog].
func IsKnownDocumentType(t DocumentType) bool {
	_, ok := LookupDocumentSpec(t)
	return ok
}

// UploadedDocument is a single supporting file attached to a submission.
//
// The bytes may come from one of three sources, checked in this order:
// Content (inline buffer), Path (file on the local file system) and URL
// (a blob previously stored by the upload endpoint). The first source that
// yields bytes wins.
type UploadedDocument struct {
	Type     DocumentType `json:"documentType"`
	FileName string       `json:"fileName"`
	Size     int64        `json:"size"`

	Content []byte `json:"-"`
	Path    string `json:"-"`
	URL     string `json:"url,omitempty"`
}

// Extension returns the extension of the original file name, as written,
// without the leading dot, or "bin" when the name has none.
func (d UploadedDocument) Extension() string {
	ext := strings.TrimPrefix(filepath.Ext(d.FileName), ".")
	if ext == "" {
		return "bin"
	}
	return ext
}

// HasSource reports whether at least one byte source is set.
func (d UploadedDocument) HasSource() bool {
	return len(d.Content) > 0 || d.Path != "" || d.URL != ""
}
