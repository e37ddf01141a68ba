// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"maps"
	"slices"
	"time"

	"github.com/MKhiriev/pilot-docs-intake/internal/config"
	"github.com/MKhiriev/pilot-docs-intake/internal/logger"
	"github.com/MKhiriev/pilot-docs-intake/internal/store"
	"github.com/MKhiriev/pilot-docs-intake/models"
)

const (
	subjectPrefix      = "Flight Time Experience Form - "
	defaultSubjectName = "Pilot Submission"
	notificationPage   = "notification.html"
)

//go:embed templates/notification.html
var templatesFS embed.FS

var notificationTemplate = template.Must(template.ParseFS(templatesFS, "templates/"+notificationPage))

// personalInfoFields is the fixed order of the personal-info section.
// fullName is rendered from [models.NormalizedSubmission.SubmitterName].
var personalInfoFields = []fieldSpec{
	{Key: "fullName", Label: "Full Name"},
	{Key: "employeeId", Label: "Employee ID"},
	{Key: "designation", Label: "Designation"},
	{Key: "dateOfJoining", Label: "Date of Joining"},
	{Key: "email", Label: "Email"},
	{Key: "phone", Label: "Phone"},
	{Key: "nationality", Label: "Nationality"},
	{Key: "dateOfBirth", Label: "Date of Birth"},
	{Key: "licenseNumber", Label: "License Number"},
}

type fieldSpec struct {
	Key   string
	Label string
}

type fieldRow struct {
	Label string
	Value string
}

type aircraftView struct {
	Index int
	Type  string
	Data  []fieldRow
}

type checklistRow struct {
	Title    string
	Uploaded bool
	Status   string
}

// notificationView is everything the body template and the PDF summary
// render. Every string is already defaulted to "N/A".
type notificationView struct {
	SubmissionID  string
	SubmittedAt   string
	SchemaVersion string
	SubmitterName string

	PersonalInfo  []fieldRow
	FlightHours   []fieldRow
	Aircraft      []aircraftView
	Checklist     []checklistRow
	UploadedCount int
	Declaration   []fieldRow

	ArchiveName string
}

type assembler struct {
	resolver      *documentResolver
	attachSummary bool
	logger        *logger.Logger
}

// NewAssembler constructs an Assembler. Stored documents referenced by URL
// are fetched from blobs.
func NewAssembler(blobs store.BlobStore, cfg config.Mail, logger *logger.Logger) Assembler {
	return &assembler{
		resolver:      &documentResolver{blobs: blobs},
		attachSummary: cfg.AttachSummary,
		logger:        logger,
	}
}

func (a *assembler) Assemble(ctx context.Context, sub models.NormalizedSubmission, docs map[models.DocumentType]models.UploadedDocument) (models.NotificationMessage, error) {
	if sub.PersonalInfo == nil {
		return models.NotificationMessage{}, ErrMissingPersonalInfo
	}
	log := logger.FromContext(ctx).WithSubmission(sub.SubmissionID)

	view := buildNotificationView(sub, docs)
	log.Info().
		Str("phase", "content generation").
		Str("schema", sub.SchemaVersion).
		Int("documents", view.UploadedCount).
		Msg("notification content prepared")

	var summary summaryRenderer
	if a.attachSummary {
		summary = func() ([]byte, error) { return renderSummaryPDF(view, sub.ReceivedAt) }
	}
	archive, err := buildArchive(ctx, a.resolver, sub, docs, summary)
	if err != nil {
		log.Err(err).Str("func", "assembler.Assemble").Msg("error building archive")
		return models.NotificationMessage{}, err
	}
	if archive != nil {
		view.ArchiveName = archive.FileName
		log.Info().
			Str("phase", "archive creation").
			Str("archive", archive.FileName).
			Int("entries", len(archive.Entries)).
			Int("size", len(archive.Data)).
			Msg("document archive created")
	} else {
		log.Info().Str("phase", "archive creation").Msg("no documents resolved, sending without archive")
	}

	var body bytes.Buffer
	if err := notificationTemplate.ExecuteTemplate(&body, notificationPage, view); err != nil {
		return models.NotificationMessage{}, fmt.Errorf("%w: %w", ErrRenderNotification, err)
	}

	return models.NotificationMessage{
		Subject:      notificationSubject(view.SubmitterName),
		HTMLBody:     body.String(),
		Archive:      archive,
		SubmissionID: sub.SubmissionID,
		Priority:     models.PriorityHigh,
	}, nil
}

func notificationSubject(name string) string {
	if name == models.NotAvailable {
		name = defaultSubjectName
	}
	return subjectPrefix + name
}

func buildNotificationView(sub models.NormalizedSubmission, docs map[models.DocumentType]models.UploadedDocument) notificationView {
	view := notificationView{
		SubmissionID:  orNotAvailable(sub.SubmissionID),
		SubmittedAt:   formatTimestamp(sub.ReceivedAt),
		SchemaVersion: orNotAvailable(sub.SchemaVersion),
		SubmitterName: sub.SubmitterName(),
		ArchiveName:   "None",
	}

	for _, f := range personalInfoFields {
		value := sub.PersonalInfo.String(f.Key)
		if f.Key == "fullName" {
			value = view.SubmitterName
		}
		view.PersonalInfo = append(view.PersonalInfo, fieldRow{Label: f.Label, Value: value})
	}

	h := sub.FlightHours
	view.FlightHours = []fieldRow{
		{Label: "Total Flight Time", Value: orNotAvailable(h.Total)},
		{Label: "Pilot in Command (PIC)", Value: orNotAvailable(h.PIC)},
		{Label: "Second in Command (SIC)", Value: orNotAvailable(h.SIC)},
		{Label: "Multi-Engine", Value: orNotAvailable(h.MultiEngine)},
		{Label: "Turbine", Value: orNotAvailable(h.Turbine)},
		{Label: "Instrument", Value: orNotAvailable(h.Instrument)},
		{Label: "Night", Value: orNotAvailable(h.Night)},
		{Label: "Last 12 Months", Value: orNotAvailable(h.Last12Month)},
	}

	for i, section := range sub.Aircraft {
		av := aircraftView{Index: i + 1, Type: section.AircraftType}
		if av.Type == "" {
			av.Type = "Not specified"
		}
		for _, k := range slices.Sorted(maps.Keys(section.FlightData)) {
			av.Data = append(av.Data, fieldRow{Label: k, Value: section.FlightData[k]})
		}
		view.Aircraft = append(view.Aircraft, av)
	}

	for _, spec := range models.DocumentCatalog {
		row := checklistRow{Title: spec.Title, Status: "Missing"}
		if doc, ok := docs[spec.Type]; ok {
			row.Uploaded = true
			row.Status = fmt.Sprintf("Uploaded (%s, %s)", orNotAvailable(doc.FileName), humanSize(documentSize(doc)))
			view.UploadedCount++
		}
		view.Checklist = append(view.Checklist, row)
	}

	d := sub.Declaration
	view.Declaration = []fieldRow{
		{Label: "Declaration Accepted", Value: yesNo(d.Agreed)},
		{Label: "Signature", Value: signatureStatus(d.SignaturePresent)},
		{Label: "Signature Date", Value: orNotAvailable(d.SignatureDate)},
		{Label: "Place", Value: orNotAvailable(d.Place)},
	}

	return view
}

func documentSize(doc models.UploadedDocument) int64 {
	if doc.Size > 0 {
		return doc.Size
	}
	return int64(len(doc.Content))
}

func humanSize(n int64) string {
	switch {
	case n >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(n)/(1<<20))
	case n >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(n)/(1<<10))
	default:
		return fmt.Sprintf("%d B", n)
	}
}

func formatTimestamp(t time.Time) string {
	if t.IsZero() {
		return models.NotAvailable
	}
	return t.UTC().Format("2006-01-02 15:04:05 MST")
}

func orNotAvailable(s string) string {
	if s == "" {
		return models.NotAvailable
	}
	return s
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}

func signatureStatus(present bool) string {
	if present {
		return "Signed"
	}
	return "Not signed"
}
