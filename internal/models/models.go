package models

// Identity is the authenticated user's profile record as returned by
// /accounts/profile/. The API layer normalizes every response shape
// (top-level, "user", "data.user") into this one struct.
type Identity struct {
	ID              int    `json:"id"`
	Email           string `json:"email"`
	Mobile          string `json:"mobile,omitempty"`
	FullName        string `json:"full_name,omitempty"`
	FirstName       string `json:"first_name,omitempty"`
	LastName        string `json:"last_name,omitempty"`
	Role            string `json:"role,omitempty"`
	CurrentPosition string `json:"current_position,omitempty"`
	ProfileImage    string `json:"profile_image,omitempty"`
	LinkedinURL     string `json:"linkedin_url,omitempty"`
	PortfolioURL    string `json:"portfolio_url,omitempty"`
	EmailVerified   bool   `json:"email_verified,omitempty"`
	MobileVerified  bool   `json:"mobile_verified,omitempty"`
	IsDemo          bool   `json:"is_demo,omitempty"`
}

// DisplayName picks the best human-readable name we have.
func (i *Identity) DisplayName() string {
	if i == nil {
		return ""
	}
	if i.FullName != "" {
		return i.FullName
	}
	if i.FirstName != "" {
		if i.LastName != "" {
			return i.FirstName + " " + i.LastName
		}
		return i.FirstName
	}
	return i.Email
}

// Tokens are the opaque bearer credentials minted by the server. The client
// only persists and forwards them; expiry enforcement stays server-side.
type Tokens struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh,omitempty"`
}

type Job struct {
	ID             int    `json:"id"`
	Title          string `json:"title"`
	CompanyName    string `json:"company_name"`
	Location       string `json:"location,omitempty"`
	JobType        string `json:"job_type,omitempty"`
	Category       string `json:"category,omitempty"`
	Description    string `json:"description,omitempty"`
	SkillsRequired string `json:"skills_required,omitempty"`
	SalaryRange    string `json:"salary_range,omitempty"`
	Status         string `json:"status,omitempty"`
	CreatedAt      string `json:"created_at,omitempty"`
}

// JobPage is the DRF-style paginated listing envelope.
type JobPage struct {
	Count    int    `json:"count"`
	Next     string `json:"next,omitempty"`
	Previous string `json:"previous,omitempty"`
	Results  []Job  `json:"results"`
}

type Application struct {
	ID             int    `json:"id"`
	Job            int    `json:"job"`
	JobTitle       string `json:"job_title,omitempty"`
	FullName       string `json:"full_name"`
	Email          string `json:"email"`
	Mobile         string `json:"mobile"`
	LinkedinURL    string `json:"linkedin_url,omitempty"`
	PortfolioURL   string `json:"portfolio_url,omitempty"`
	ExpectedSalary string `json:"expected_salary,omitempty"`
	NoticePeriod   string `json:"notice_period,omitempty"`
	CoverLetter    string `json:"cover_letter,omitempty"`
	Resume         string `json:"resume,omitempty"`
	Status         string `json:"status,omitempty"`
	AppliedAt      string `json:"applied_at,omitempty"`
}

type Notification struct {
	ID               int    `json:"id"`
	Title            string `json:"title"`
	Message          string `json:"message"`
	NotificationType string `json:"notification_type,omitempty"`
	IsRead           bool   `json:"is_read"`
	CreatedAt        string `json:"created_at,omitempty"`
}
