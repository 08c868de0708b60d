package dto

// VisitorContactRequest is the visitor intake form.
type VisitorContactRequest struct {
	Name    string `json:"name" validate:"required,max=120"`
	Phone   string `json:"phone" validate:"required,max=32"`
	Purpose string `json:"purpose" validate:"max=500"`
}

// VisitorContactResponse reports the stored intake record of the device.
type VisitorContactResponse struct {
	Name           string `json:"name"`
	Phone          string `json:"phone"`
	Purpose        string `json:"purpose"`
	HasContactInfo bool   `json:"hasContactInfo"`
}
