// Package apply implements the job-application submission flow: an
// in-progress draft, client-side validation and the submit state machine.
package apply

import (
	"strings"

	mapset "github.com/deckarep/golang-set/v2"

	"go-recruitart-client/internal/models"
)

// MaxResumeSize is the upload limit for the resume file.
const MaxResumeSize = 5 * 1024 * 1024

// allowedResumeTypes: PDF and the two Word formats, nothing else.
var allowedResumeTypes = mapset.NewSet(
	"application/pdf",
	"application/msword",
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
)

// Resume is the file reference attached to a draft. Content is not held
// here; the submit step streams it from the caller-provided reader.
type Resume struct {
	Filename    string
	ContentType string
	Size        int64
}

// Draft is one in-progress application. It is bound to a single job for its
// whole lifetime and is never persisted: abandoning the flow discards it.
type Draft struct {
	JobID          int
	FullName       string
	Email          string
	Mobile         string
	LinkedinURL    string
	PortfolioURL   string
	ExpectedSalary string
	NoticePeriod   string
	CoverLetter    string
	Resume         *Resume
}

// NewDraft creates a draft for one job, pre-filling contact fields from the
// current identity the way the apply dialog does.
func NewDraft(jobID int, identity *models.Identity) *Draft {
	d := &Draft{JobID: jobID}
	if identity != nil {
		d.FullName = identity.DisplayName()
		d.Email = identity.Email
		d.Mobile = identity.Mobile
	}
	return d
}

// Validate checks the whole draft and returns every violation keyed by
// field name. It never short-circuits: the caller displays all errors at
// once. An empty map means the draft may be submitted.
func Validate(d *Draft) map[string]string {
	errs := make(map[string]string)

	if strings.TrimSpace(d.FullName) == "" {
		errs["full_name"] = "Full name is required"
	}
	if strings.TrimSpace(d.Email) == "" {
		errs["email"] = "Email is required"
	}
	if strings.TrimSpace(d.Mobile) == "" {
		errs["mobile"] = "Mobile number is required"
	}

	switch {
	case d.Resume == nil:
		errs["resume"] = "Resume is required"
	case !allowedResumeTypes.Contains(d.Resume.ContentType):
		errs["resume"] = "Please upload a PDF or Word document"
	case d.Resume.Size > MaxResumeSize:
		errs["resume"] = "File size must be less than 5MB"
	}

	return errs
}
