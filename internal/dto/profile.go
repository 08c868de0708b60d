package dto

import "github.com/noah-isme/college-portal-api/internal/models"

// Profile layouts.
const (
	ProfileLayoutAcademic = "academic"
	ProfileLayoutGuest    = "guest"
	ProfileLayoutGeneric  = "generic"
)

// ProfileView is the profile page shaped for the principal's role.
type ProfileView struct {
	Layout     string           `json:"layout"`
	Component  models.Component `json:"component"`
	ID         string           `json:"id"`
	Role       models.Role      `json:"role"`
	SubRole    models.SubRole   `json:"subRole,omitempty"`
	Name       string           `json:"name"`
	Email      string           `json:"email,omitempty"`
	Phone      string           `json:"phone,omitempty"`
	Department string           `json:"department,omitempty"`
	Academic   *AcademicProfile `json:"academic,omitempty"`
	Visit      *VisitProfile    `json:"visit,omitempty"`
}

// AcademicProfile carries the enrolment fields shown to students.
type AcademicProfile struct {
	Year   string `json:"year,omitempty"`
	Div    string `json:"div,omitempty"`
	Sem    string `json:"sem,omitempty"`
	Gender string `json:"gender,omitempty"`
}

// VisitProfile carries the visitor's stated purpose.
type VisitProfile struct {
	Purpose        string `json:"purpose,omitempty"`
	HasContactInfo bool   `json:"hasContactInfo"`
}
