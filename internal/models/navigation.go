package models

// PageID identifies an entry of the page catalogue.
type PageID string

const (
	PageDashboard            PageID = "dashboard"
	PageApplyLeave           PageID = "apply-leave"
	PageMyLeaves             PageID = "my-leaves"
	PageLeaveApprovals       PageID = "leave-approvals"
	PageMyAttendance         PageID = "my-attendance"
	PageTakeAttendance       PageID = "take-attendance"
	PageAttendanceReports    PageID = "attendance-reports"
	PageMyResults            PageID = "my-results"
	PageResultEntry          PageID = "result-entry"
	PageTimetable            PageID = "timetable"
	PageNotices              PageID = "notices"
	PageNotifications        PageID = "notifications"
	PageCourseManagement     PageID = "course-management"
	PageDocumentManagement   PageID = "document-management"
	PageVisitorManagement    PageID = "visitor-management"
	PageUserManagement       PageID = "user-management"
	PageInstitutionSettings  PageID = "institution-settings"
	PageDepartmentManagement PageID = "department-management"
	PageFinancialAdmin       PageID = "financial-admin"
	PageFeeManagement        PageID = "fee-management"
	PageLibrary              PageID = "library"
	PageTransport            PageID = "transport"
	PageHostel               PageID = "hostel"
	PageCanteen              PageID = "canteen"
	PageStationary           PageID = "stationary"
	PageClubs                PageID = "clubs"
	PageEvents               PageID = "events"
	PageComplaints           PageID = "complaints"
	PageProfile              PageID = "profile"
	PageCleanerPanel         PageID = "cleaner-panel"
	PagePeonPanel            PageID = "peon-panel"
	PageLabAssistantPanel    PageID = "lab-assistant-panel"
	PageSecurityPanel        PageID = "security-panel"
	PageDriverPanel          PageID = "driver-panel"
	PageVisitorHome          PageID = "visitor-home"
	PageVisitorInfo          PageID = "visitor-info"
	PageVisitorContact       PageID = "visitor-contact"
)

// Component names a renderable page body. Most pages render the component of the same name.
type Component string

const (
	ComponentLogin                Component = "login"
	ComponentDashboard            Component = "dashboard"
	ComponentNonTeachingDashboard Component = "non-teaching-dashboard"
	ComponentStudentProfile       Component = "student-profile"
	ComponentVisitorProfile       Component = "visitor-profile"
	ComponentProfile              Component = "profile"
	ComponentAccessRestricted     Component = "access-restricted"
	ComponentAccessDenied         Component = "access-denied"
)

// RenderOutcome classifies how a page request was satisfied.
type RenderOutcome string

const (
	// OutcomeRendered means the requested page body is shown.
	OutcomeRendered RenderOutcome = "rendered"
	// OutcomeFallback renders a dashboard in place without touching persisted navigation.
	OutcomeFallback RenderOutcome = "fallback"
	// OutcomeInlineDenial renders a denial message in place.
	OutcomeInlineDenial RenderOutcome = "inline_denial"
	// OutcomeAccessRestricted is the visitor interstitial offering one corrective action.
	OutcomeAccessRestricted RenderOutcome = "access_restricted"
	// OutcomeLogin is returned when no principal is signed in.
	OutcomeLogin RenderOutcome = "login"
)

// PageAction is a single navigation action offered by an interstitial.
type PageAction struct {
	Label string `json:"label"`
	Page  PageID `json:"page"`
}

// PageRender is the render decision for one (principal, page) pair.
type PageRender struct {
	Page      PageID        `json:"page"`
	Component Component     `json:"component"`
	Outcome   RenderOutcome `json:"outcome"`
	Message   string        `json:"message,omitempty"`
	Action    *PageAction   `json:"action,omitempty"`
}

// TransitionReason explains a forced navigation change.
type TransitionReason string

const (
	ReasonVisitorNeedsInfo  TransitionReason = "visitor_needs_info"
	ReasonVisitorContained  TransitionReason = "visitor_contained"
	ReasonRoleSwitchCleanup TransitionReason = "role_switch_cleanup"
)

// NavigationTransition records a forced redirect persisted by reconciliation.
type NavigationTransition struct {
	From   PageID           `json:"from"`
	To     PageID           `json:"to"`
	Reason TransitionReason `json:"reason"`
}
