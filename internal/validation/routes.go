package validation

import "github.com/maanvikp20/promosite/internal/models"

// The contact form posts an empty string when the phone box is left blank.
const optionalPhone = `^$|` + PhonePattern

func nonBlank() map[string]any {
	return map[string]any{"type": "string", "pattern": `\S`}
}

func identifier() map[string]any {
	return map[string]any{
		"type":      []any{"string", "integer"},
		"minLength": 1,
	}
}

func status() map[string]any {
	return map[string]any{
		"type": "string",
		"enum": []any{
			string(models.StatusPending),
			string(models.StatusApproved),
			string(models.StatusRejected),
		},
	}
}

var (
	StudentCreate = compile("student.create",
		"id (optional), firstName, lastName, year (number)",
		map[string]any{
			"type":     "object",
			"required": []any{models.StudentFirstName, models.StudentLastName, models.StudentYear},
			"properties": map[string]any{
				models.FieldID:          identifier(),
				models.StudentFirstName: nonBlank(),
				models.StudentLastName:  nonBlank(),
				models.StudentYear:      map[string]any{"type": "integer", "minimum": 1},
			},
		})

	StudentUpdate = compile("student.update",
		"any of firstName, lastName, year (number)",
		map[string]any{
			"type": "object",
			"properties": map[string]any{
				models.StudentFirstName: nonBlank(),
				models.StudentLastName:  nonBlank(),
				models.StudentYear:      map[string]any{"type": "integer", "minimum": 1},
			},
		})

	SubmissionCreate = compile("submission.create",
		"firstName, lastName, email, phone (optional), message (optional)",
		map[string]any{
			"type":     "object",
			"required": []any{models.SubmissionFirstName, models.SubmissionLastName, models.SubmissionEmail},
			"properties": map[string]any{
				models.FieldID:             identifier(),
				models.SubmissionFirstName: nonBlank(),
				models.SubmissionLastName:  nonBlank(),
				models.SubmissionEmail:     map[string]any{"type": "string", "pattern": EmailPattern},
				models.SubmissionPhone:     map[string]any{"type": "string", "pattern": optionalPhone},
				models.SubmissionMessage:   map[string]any{"type": "string"},
			},
		})

	SubmissionUpdate = compile("submission.update",
		"any of status (pending|approved|rejected), firstName, lastName, email, phone, message",
		map[string]any{
			"type": "object",
			"properties": map[string]any{
				models.SubmissionStatus:    status(),
				models.SubmissionFirstName: nonBlank(),
				models.SubmissionLastName:  nonBlank(),
				models.SubmissionEmail:     map[string]any{"type": "string", "pattern": EmailPattern},
				models.SubmissionPhone:     map[string]any{"type": "string", "pattern": optionalPhone},
				models.SubmissionMessage:   map[string]any{"type": "string"},
			},
		})

	Login = compile("login", "email, password",
		map[string]any{
			"type":     "object",
			"required": []any{"email", "password"},
			"properties": map[string]any{
				"email":    nonBlank(),
				"password": map[string]any{"type": "string", "minLength": 1},
			},
		})
)
