package dto

import "github.com/noah-isme/college-portal-api/internal/models"

// NavigateRequest is the payload of an explicit page change.
type NavigateRequest struct {
	Page string `json:"page" validate:"required"`
}

// NavigationState is everything the portal shell needs to render the current screen.
type NavigationState struct {
	DeviceID            string                        `json:"deviceId"`
	CurrentPage         models.PageID                 `json:"currentPage,omitempty"`
	Render              models.PageRender             `json:"render"`
	Transitions         []models.NavigationTransition `json:"transitions,omitempty"`
	AllowedPages        []models.PageID               `json:"allowedPages"`
	NeedsVisitorInfo    bool                          `json:"needsVisitorInfo,omitempty"`
	UnreadNotifications int                           `json:"unreadNotifications"`
}

// AllowedPagesResponse lists the pages reachable by the signed-in principal.
type AllowedPagesResponse struct {
	Role    models.Role     `json:"role"`
	SubRole models.SubRole  `json:"subRole,omitempty"`
	Pages   []models.PageID `json:"pages"`
}
