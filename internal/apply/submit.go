package apply

import (
	"context"
	"fmt"
	"io"

	"go-recruitart-client/internal/api"
	"go-recruitart-client/internal/models"
)

type State int

const (
	Idle State = iota
	Submitting
	Succeeded
	Failed
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Submitting:
		return "submitting"
	case Succeeded:
		return "succeeded"
	case Failed:
		return "failed"
	}
	return "unknown"
}

// Flow drives one submission attempt. No retries and no draft persistence:
// a failed flow stays Failed with its message until the caller decides to
// try again or throw the draft away.
type Flow struct {
	client  *api.Client
	state   State
	message string
}

func NewFlow(client *api.Client) *Flow {
	return &Flow{client: client, state: Idle}
}

func (f *Flow) State() State    { return f.state }
func (f *Flow) Message() string { return f.message }

// Submit validates the draft and sends it as a multipart payload. Callers
// are expected to have run Validate already; a draft that still fails
// validation is rejected here without touching the network.
func (f *Flow) Submit(ctx context.Context, d *Draft, resume io.Reader) (*models.Application, error) {
	if errs := Validate(d); len(errs) > 0 {
		return nil, fmt.Errorf("draft failed validation (%d field errors)", len(errs))
	}

	f.state = Submitting
	f.message = ""

	created, err := f.client.SubmitApplication(ctx, api.ApplicationForm{
		JobID:          d.JobID,
		FullName:       d.FullName,
		Email:          d.Email,
		Mobile:         d.Mobile,
		LinkedinURL:    d.LinkedinURL,
		PortfolioURL:   d.PortfolioURL,
		ExpectedSalary: d.ExpectedSalary,
		NoticePeriod:   d.NoticePeriod,
		CoverLetter:    d.CoverLetter,
		Resume: &api.ResumeUpload{
			Filename:    d.Resume.Filename,
			ContentType: d.Resume.ContentType,
			Content:     resume,
		},
	})
	if err != nil {
		f.state = Failed
		f.message = api.JoinedMessage(err, "Failed to submit application. Please try again.")
		return nil, fmt.Errorf("%s", f.message)
	}

	f.state = Succeeded
	return created, nil
}
