package service

import (
	"github.com/noah-isme/college-portal-api/internal/models"
)

// FallbackPolicy decides what renders when a page rule rejects the principal.
type FallbackPolicy string

const (
	// FallbackDashboard renders the generic dashboard in place.
	FallbackDashboard FallbackPolicy = "dashboard"
	// FallbackNonTeachingDashboard renders the non-teaching dashboard in place.
	FallbackNonTeachingDashboard FallbackPolicy = "non-teaching-dashboard"
	// FallbackInlineDenial renders an access denied message in place.
	FallbackInlineDenial FallbackPolicy = "inline-denial"
)

const (
	accessDeniedMessage     = "Access denied. You don't have permission to view this page."
	accessRestrictedMessage = "Access Restricted: this page is not available for visitors."
	visitorHomeActionLabel  = "Go to Visitor Home"
)

// PageRule is the access rule of one catalogue entry.
type PageRule struct {
	Page models.PageID
	// Component renders when Allow admits the principal. ComponentFor overrides it per principal.
	Component    models.Component
	ComponentFor func(p *models.Principal) models.Component
	// Allow is nil for pages open to every role.
	Allow    func(p *models.Principal) bool
	Fallback FallbackPolicy
}

func (r PageRule) admits(p *models.Principal) bool {
	return r.Allow == nil || r.Allow(p)
}

func (r PageRule) component(p *models.Principal) models.Component {
	if r.ComponentFor != nil {
		return r.ComponentFor(p)
	}
	if r.Component != "" {
		return r.Component
	}
	return models.Component(r.Page)
}

// visitorAllowList holds every page a visitor may reach.
var visitorAllowList = map[models.PageID]struct{}{
	models.PageVisitorInfo:    {},
	models.PageVisitorHome:    {},
	models.PageVisitorContact: {},
	models.PageCanteen:        {},
	models.PageStationary:     {},
	models.PageClubs:          {},
	models.PageEvents:         {},
	models.PageComplaints:     {},
	models.PageProfile:        {},
}

// visitorOnlyPages are unreachable for every other role.
var visitorOnlyPages = map[models.PageID]struct{}{
	models.PageVisitorInfo:    {},
	models.PageVisitorHome:    {},
	models.PageVisitorContact: {},
}

// VisitorAllowed reports whether page belongs to the visitor allow-list.
func VisitorAllowed(page models.PageID) bool {
	_, ok := visitorAllowList[page]
	return ok
}

// VisitorOnly reports whether page is reserved for visitors.
func VisitorOnly(page models.PageID) bool {
	_, ok := visitorOnlyPages[page]
	return ok
}

func roles(allowed ...models.Role) func(p *models.Principal) bool {
	return func(p *models.Principal) bool {
		return p.Is(allowed...)
	}
}

func staff(sub models.SubRole) func(p *models.Principal) bool {
	return func(p *models.Principal) bool {
		return p.IsStaff(sub)
	}
}

func dashboardFor(p *models.Principal) models.Component {
	if p.Is(models.RoleNonTeaching) {
		return models.ComponentNonTeachingDashboard
	}
	return models.ComponentDashboard
}

func profileFor(p *models.Principal) models.Component {
	switch {
	case p.Is(models.RoleStudent):
		return models.ComponentStudentProfile
	case p.Is(models.RoleVisitor):
		return models.ComponentVisitorProfile
	default:
		return models.ComponentProfile
	}
}

// PageRegistry is the data-driven table behind page dispatch.
type PageRegistry struct {
	rules map[models.PageID]PageRule
	order []models.PageID
}

// NewPageRegistry builds a registry from rules, keeping their order for listings.
func NewPageRegistry(rules ...PageRule) *PageRegistry {
	reg := &PageRegistry{rules: make(map[models.PageID]PageRule, len(rules))}
	for _, rule := range rules {
		if rule.Fallback == "" {
			rule.Fallback = FallbackDashboard
		}
		if _, exists := reg.rules[rule.Page]; !exists {
			reg.order = append(reg.order, rule.Page)
		}
		reg.rules[rule.Page] = rule
	}
	return reg
}

// DefaultPageRegistry returns the portal's page catalogue and access rules.
func DefaultPageRegistry() *PageRegistry {
	visitorsOnly := roles(models.RoleVisitor)
	return NewPageRegistry(
		PageRule{Page: models.PageDashboard, ComponentFor: dashboardFor},
		PageRule{Page: models.PageApplyLeave, Allow: roles(models.RoleStudent)},
		PageRule{Page: models.PageMyLeaves},
		PageRule{Page: models.PageLeaveApprovals, Allow: roles(models.RoleTeacher, models.RoleHOD, models.RoleAdmin)},
		PageRule{Page: models.PageMyAttendance},
		PageRule{Page: models.PageTakeAttendance, Allow: roles(models.RoleTeacher, models.RoleHOD)},
		PageRule{Page: models.PageAttendanceReports},
		PageRule{Page: models.PageMyResults},
		PageRule{Page: models.PageResultEntry, Allow: roles(models.RoleTeacher, models.RoleHOD)},
		PageRule{Page: models.PageTimetable},
		PageRule{Page: models.PageNotices},
		PageRule{Page: models.PageNotifications},
		PageRule{
			Page:     models.PageCourseManagement,
			Allow:    roles(models.RoleAdmin, models.RoleHOD, models.RoleTeacher),
			Fallback: FallbackInlineDenial,
		},
		PageRule{
			Page:     models.PageDocumentManagement,
			Allow:    roles(models.RoleAdmin, models.RoleHOD, models.RoleTeacher),
			Fallback: FallbackInlineDenial,
		},
		PageRule{
			Page: models.PageVisitorManagement,
			Allow: func(p *models.Principal) bool {
				return p.Is(models.RoleAdmin, models.RoleHOD) || p.IsStaff(models.SubRoleSecurity)
			},
		},
		PageRule{Page: models.PageUserManagement, Allow: roles(models.RoleAdmin)},
		PageRule{Page: models.PageInstitutionSettings, Allow: roles(models.RoleAdmin)},
		PageRule{Page: models.PageDepartmentManagement, Allow: roles(models.RoleAdmin)},
		PageRule{Page: models.PageFinancialAdmin, Allow: roles(models.RoleAdmin)},
		PageRule{Page: models.PageFeeManagement, Allow: roles(models.RoleAdmin)},
		PageRule{Page: models.PageLibrary},
		PageRule{Page: models.PageTransport},
		PageRule{Page: models.PageHostel},
		PageRule{Page: models.PageCanteen},
		PageRule{Page: models.PageStationary},
		PageRule{Page: models.PageClubs},
		PageRule{Page: models.PageEvents},
		PageRule{Page: models.PageComplaints},
		PageRule{Page: models.PageProfile, ComponentFor: profileFor},
		PageRule{Page: models.PageCleanerPanel, Allow: staff(models.SubRoleCleaner), Fallback: FallbackNonTeachingDashboard},
		PageRule{Page: models.PagePeonPanel, Allow: staff(models.SubRolePeon), Fallback: FallbackNonTeachingDashboard},
		PageRule{Page: models.PageLabAssistantPanel, Allow: staff(models.SubRoleLabAssistant), Fallback: FallbackNonTeachingDashboard},
		PageRule{Page: models.PageSecurityPanel, Allow: staff(models.SubRoleSecurity), Fallback: FallbackNonTeachingDashboard},
		PageRule{
			Page: models.PageDriverPanel,
			Allow: func(p *models.Principal) bool {
				return p.Is(models.RoleDriver) || p.IsStaff(models.SubRoleDriver)
			},
		},
		PageRule{Page: models.PageVisitorHome, Allow: visitorsOnly},
		PageRule{Page: models.PageVisitorInfo, Allow: visitorsOnly},
		PageRule{Page: models.PageVisitorContact, Allow: visitorsOnly},
	)
}

// Rule returns the rule registered for page.
func (r *PageRegistry) Rule(page models.PageID) (PageRule, bool) {
	rule, ok := r.rules[page]
	return rule, ok
}

// Pages lists the catalogue in registration order.
func (r *PageRegistry) Pages() []models.PageID {
	pages := make([]models.PageID, len(r.order))
	copy(pages, r.order)
	return pages
}

// Dispatch maps page to a render decision using the registered rule. It never fails:
// unknown pages and rejected principals degrade to a dashboard or an inline denial.
func (r *PageRegistry) Dispatch(p *models.Principal, page models.PageID) models.PageRender {
	rule, ok := r.rules[page]
	if !ok {
		return models.PageRender{Page: page, Component: dashboardFor(p), Outcome: models.OutcomeFallback}
	}
	if rule.admits(p) {
		return models.PageRender{Page: page, Component: rule.component(p), Outcome: models.OutcomeRendered}
	}

	switch rule.Fallback {
	case FallbackInlineDenial:
		return models.PageRender{
			Page:      page,
			Component: models.ComponentAccessDenied,
			Outcome:   models.OutcomeInlineDenial,
			Message:   accessDeniedMessage,
		}
	case FallbackNonTeachingDashboard:
		return models.PageRender{Page: page, Component: models.ComponentNonTeachingDashboard, Outcome: models.OutcomeFallback}
	default:
		return models.PageRender{Page: page, Component: models.ComponentDashboard, Outcome: models.OutcomeFallback}
	}
}

// AllowedPages lists the catalogue pages whose rule admits p.
func (r *PageRegistry) AllowedPages(p *models.Principal) []models.PageID {
	if p == nil {
		return nil
	}
	pages := make([]models.PageID, 0, len(r.order))
	for _, page := range r.order {
		if p.Is(models.RoleVisitor) {
			if VisitorAllowed(page) {
				pages = append(pages, page)
			}
			continue
		}
		if r.rules[page].admits(p) {
			pages = append(pages, page)
		}
	}
	return pages
}
