package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/textproto"
	"net/url"
	"strconv"
	"strings"

	"go-recruitart-client/internal/models"
)

// JobFilters are the query parameters the listing endpoint understands.
// Zero values are omitted from the query string.
type JobFilters struct {
	Search   string
	Category string
	JobType  string
	Location string
	Page     int
}

func (f JobFilters) values() url.Values {
	q := url.Values{}
	if f.Search != "" {
		q.Set("search", f.Search)
	}
	if f.Category != "" {
		q.Set("category", f.Category)
	}
	if f.JobType != "" {
		q.Set("job_type", f.JobType)
	}
	if f.Location != "" {
		q.Set("location", f.Location)
	}
	if f.Page > 0 {
		q.Set("page", strconv.Itoa(f.Page))
	}
	return q
}

func (c *Client) ListJobs(ctx context.Context, filters JobFilters) (*models.JobPage, error) {
	var page models.JobPage
	if err := c.get(ctx, "/jobs/jobs/", filters.values(), &page); err != nil {
		return nil, err
	}
	return &page, nil
}

func (c *Client) GetJob(ctx context.Context, id int) (*models.Job, error) {
	var job models.Job
	if err := c.get(ctx, fmt.Sprintf("/jobs/jobs/%d/", id), nil, &job); err != nil {
		return nil, err
	}
	return &job, nil
}

func (c *Client) MyApplications(ctx context.Context) ([]models.Application, error) {
	var apps []models.Application
	if err := c.get(ctx, "/jobs/applications/", nil, &apps); err != nil {
		return nil, err
	}
	return apps, nil
}

// ResumeUpload is the binary resume attached to an application.
type ResumeUpload struct {
	Filename    string
	ContentType string
	Content     io.Reader
}

// ApplicationForm mirrors the apply dialog: scalar fields plus the resume.
// Empty optional fields are omitted from the multipart body so the server
// sees them as absent rather than as empty strings.
type ApplicationForm struct {
	JobID          int
	FullName       string
	Email          string
	Mobile         string
	LinkedinURL    string
	PortfolioURL   string
	ExpectedSalary string
	NoticePeriod   string
	CoverLetter    string
	Resume         *ResumeUpload
}

func (c *Client) SubmitApplication(ctx context.Context, form ApplicationForm) (*models.Application, error) {
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)

	fields := []struct {
		name     string
		value    string
		required bool
	}{
		{"job", strconv.Itoa(form.JobID), true},
		{"full_name", form.FullName, true},
		{"email", form.Email, true},
		{"mobile", form.Mobile, true},
		{"linkedin_url", form.LinkedinURL, false},
		{"portfolio_url", form.PortfolioURL, false},
		{"expected_salary", form.ExpectedSalary, false},
		{"notice_period", form.NoticePeriod, false},
		{"cover_letter", form.CoverLetter, false},
	}
	for _, f := range fields {
		if !f.required && f.value == "" {
			continue
		}
		if err := w.WriteField(f.name, f.value); err != nil {
			return nil, fmt.Errorf("failed to write form field %s: %w", f.name, err)
		}
	}

	if form.Resume == nil {
		return nil, fmt.Errorf("application form has no resume attached")
	}
	part, err := createFilePart(w, "resume", form.Resume.Filename, form.Resume.ContentType)
	if err != nil {
		return nil, fmt.Errorf("failed to create resume part: %w", err)
	}
	if _, err := io.Copy(part, form.Resume.Content); err != nil {
		return nil, fmt.Errorf("failed to copy resume content: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize multipart body: %w", err)
	}

	var created models.Application
	if err := c.do(ctx, "POST", "/jobs/applications/", body, w.FormDataContentType(), &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// createFilePart is CreateFormFile with an honest Content-Type instead of
// the application/octet-stream default.
func createFilePart(w *multipart.Writer, field, filename, contentType string) (io.Writer, error) {
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`,
		escapeQuotes(field), escapeQuotes(filename)))
	h.Set("Content-Type", contentType)
	return w.CreatePart(h)
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func escapeQuotes(s string) string {
	return quoteEscaper.Replace(s)
}
