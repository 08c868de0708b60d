package dto

import "github.com/noah-isme/college-portal-api/internal/models"

// Access policy export formats.
const (
	PolicyFormatJSON = "json"
	PolicyFormatCSV  = "csv"
	PolicyFormatPDF  = "pdf"
)

// AccessPolicyQuery filters the access matrix.
type AccessPolicyQuery struct {
	Role   string `form:"role" validate:"omitempty,oneof=student teacher hod admin non-teaching driver visitor"`
	Format string `form:"format" validate:"omitempty,oneof=json csv pdf"`
}

// AccessPolicyEntry is one row of the access matrix.
type AccessPolicyEntry struct {
	Role      models.Role          `json:"role"`
	SubRole   models.SubRole       `json:"subRole,omitempty"`
	Page      models.PageID        `json:"page"`
	Component models.Component     `json:"component"`
	Outcome   models.RenderOutcome `json:"outcome"`
}

// AccessPolicyFile is a rendered matrix ready for download.
type AccessPolicyFile struct {
	Filename    string
	ContentType string
	Body        []byte
}
