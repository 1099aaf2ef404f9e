package dto

// SendInviteRequest is the payload of POST /send-calendar-invite.
type SendInviteRequest struct {
	UserName         string `json:"userName" validate:"required"`
	UserEmail        string `json:"userEmail" validate:"required,email"`
	UserIndustry     string `json:"userIndustry" validate:"required"`
	EventName        string `json:"eventName" validate:"required"`
	EventDescription string `json:"eventDescription"`
	EventLocation    string `json:"eventLocation" validate:"required"`
	StartDate        string `json:"startDate" validate:"required"`
	EndDate          string `json:"endDate" validate:"required"`
	EventWebsite     string `json:"eventWebsite"`
}

// SendInviteResult reports the invite outcome. RegistrationID is nil when recording failed.
type SendInviteResult struct {
	RegistrationID *string
}

// SendInviteResponse is the body of a successful POST /send-calendar-invite.
type SendInviteResponse struct {
	Success        bool    `json:"success"`
	Message        string  `json:"message"`
	RegistrationID *string `json:"registrationId"`
}
