package models

import (
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

// Role is the closed set of mutually exclusive principal roles.
type Role string

const (
	RoleStudent     Role = "student"
	RoleTeacher     Role = "teacher"
	RoleHOD         Role = "hod"
	RoleAdmin       Role = "admin"
	RoleNonTeaching Role = "non-teaching"
	RoleDriver      Role = "driver"
	RoleVisitor     Role = "visitor"
)

// Roles lists every role in declaration order.
var Roles = []Role{RoleStudent, RoleTeacher, RoleHOD, RoleAdmin, RoleNonTeaching, RoleDriver, RoleVisitor}

// Valid reports whether r belongs to the closed role enumeration.
func (r Role) Valid() bool {
	for _, role := range Roles {
		if r == role {
			return true
		}
	}
	return false
}

// SubRole refines non-teaching staff (and the library staff flag on other roles).
type SubRole string

const (
	SubRoleNone            SubRole = ""
	SubRoleCleaner         SubRole = "cleaner"
	SubRolePeon            SubRole = "peon"
	SubRoleLabAssistant    SubRole = "lab-assistant"
	SubRoleSecurity        SubRole = "security"
	SubRoleMaintenance     SubRole = "maintenance"
	SubRoleCanteenStaff    SubRole = "canteen-staff"
	SubRoleLibraryStaff    SubRole = "library-staff"
	SubRoleOfficeAssistant SubRole = "office-assistant"
	SubRoleDriver          SubRole = "driver"
	SubRoleGardener        SubRole = "gardener"
)

// SubRoles lists every sub-role including the empty one.
var SubRoles = []SubRole{
	SubRoleNone,
	SubRoleCleaner,
	SubRolePeon,
	SubRoleLabAssistant,
	SubRoleSecurity,
	SubRoleMaintenance,
	SubRoleCanteenStaff,
	SubRoleLibraryStaff,
	SubRoleOfficeAssistant,
	SubRoleDriver,
	SubRoleGardener,
}

// Principal is the signed-in actor supplied by the session provider.
type Principal struct {
	ID         string  `json:"id"`
	Role       Role    `json:"role"`
	SubRole    SubRole `json:"sub_role,omitempty"`
	Department string  `json:"department,omitempty"`
	Name       string  `json:"name"`
	Email      string  `json:"email,omitempty"`
	Phone      string  `json:"phone,omitempty"`
	Year       string  `json:"year,omitempty"`
	Div        string  `json:"div,omitempty"`
	Sem        string  `json:"sem,omitempty"`
	Gender     string  `json:"gender,omitempty"`
}

// Is reports whether the principal holds one of the given roles.
func (p *Principal) Is(roles ...Role) bool {
	if p == nil {
		return false
	}
	for _, role := range roles {
		if p.Role == role {
			return true
		}
	}
	return false
}

// IsStaff reports whether the principal is non-teaching staff with the given sub-role.
func (p *Principal) IsStaff(sub SubRole) bool {
	return p != nil && p.Role == RoleNonTeaching && p.SubRole == sub
}

// WithShadow overlays locally cached contact details onto a copy of the principal.
func (p Principal) WithShadow(shadow *PrincipalShadow) Principal {
	if shadow == nil {
		return p
	}
	if name := strings.TrimSpace(shadow.Name); name != "" {
		p.Name = name
	}
	if phone := strings.TrimSpace(shadow.Phone); phone != "" {
		p.Phone = phone
	}
	return p
}

// PrincipalShadow holds fields merged locally ahead of the data service round trip.
type PrincipalShadow struct {
	Name  string `json:"name,omitempty"`
	Phone string `json:"phone,omitempty"`
}

// PrincipalClaims is the JWT payload issued by the session provider.
type PrincipalClaims struct {
	UserID     string  `json:"user_id"`
	Role       Role    `json:"role"`
	SubRole    SubRole `json:"sub_role,omitempty"`
	Department string  `json:"department,omitempty"`
	Name       string  `json:"name"`
	Email      string  `json:"email,omitempty"`
	Phone      string  `json:"phone,omitempty"`
	Year       string  `json:"year,omitempty"`
	Div        string  `json:"div,omitempty"`
	Sem        string  `json:"sem,omitempty"`
	Gender     string  `json:"gender,omitempty"`
	jwt.RegisteredClaims
}

// Principal converts claims into the read-only principal consumed by the router.
func (c *PrincipalClaims) Principal() *Principal {
	if c == nil {
		return nil
	}
	return &Principal{
		ID:         c.UserID,
		Role:       c.Role,
		SubRole:    c.SubRole,
		Department: c.Department,
		Name:       c.Name,
		Email:      c.Email,
		Phone:      c.Phone,
		Year:       c.Year,
		Div:        c.Div,
		Sem:        c.Sem,
		Gender:     c.Gender,
	}
}
