package models

// Priority values carried in notification headers.
const (
	PriorityNormal = "normal"
	PriorityHigh   = "high"
)

// ArchiveBundle is the in-memory ZIP archive attached to a notification.
// A nil *ArchiveBundle means the submission carried no resolvable documents.
type ArchiveBundle struct {
	// FileName is the attachment name, e.g. "pilot-documents-<id>.zip".
	FileName string

	// Data holds the encoded ZIP bytes.
	Data []byte

	// Entries lists every file name written into the archive, in order.
	Entries []string

	// DocumentCount is the number of document entries, excluding the
	// synthesized summary.
	DocumentCount int
}

// NotificationMessage is the rendered email handed to the dispatcher.
type NotificationMessage struct {
	To       string
	Subject  string
	HTMLBody string

	// Archive is attached when non-nil; there is at most one attachment.
	Archive *ArchiveBundle

	SubmissionID string
	Priority     string
}

// DeliveryReport is the outcome of sending a notification.
type DeliveryReport struct {
	MessageID string   `json:"messageId"`
	Recipient string   `json:"recipient"`
	Accepted  []string `json:"accepted"`
	Rejected  []string `json:"rejected"`
	Pending   []string `json:"pending"`

	// Fallback is set when the primary recipient was not accepted and a backup
	// copy was attempted.
	Fallback *FallbackReport `json:"fallback,omitempty"`
}

// FallbackReport describes the single compensating send.
type FallbackReport struct {
	Recipient string `json:"recipient"`
	MessageID string `json:"messageId,omitempty"`
	Error     string `json:"error,omitempty"`
}

// SendResult is what a mail transport reports for one message.
type SendResult struct {
	MessageID string
	Accepted  []string
	Rejected  []string
	Pending   []string
}

// IsAccepted reports whether addr is in the accepted list (case-insensitive).
func (r SendResult) IsAccepted(addr string) bool {
	return containsAddress(r.Accepted, addr)
}
