package models

// Status is the review state of a contact form submission.
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// Declared submission fields.
const (
	SubmissionFirstName   = "firstName"
	SubmissionLastName    = "lastName"
	SubmissionEmail       = "email"
	SubmissionPhone       = "phone"
	SubmissionMessage     = "message"
	SubmissionStatus      = "status"
	SubmissionSubmittedAt = "submittedAt"
	SubmissionUpdatedAt   = "updatedAt"
	SubmissionApprovedAt  = "approvedAt"
)

// StatusOf reads the status field, treating a missing value as pending.
func StatusOf(r Record) Status {
	if s, ok := r[SubmissionStatus].(string); ok && s != "" {
		return Status(s)
	}
	return StatusPending
}
