package main

import (
	"context"
	"flag"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"

	"go-recruitart-client/internal/api"
	"go-recruitart-client/internal/apply"
	"go-recruitart-client/internal/config"
	"go-recruitart-client/internal/guard"
	"go-recruitart-client/internal/history"
	"go-recruitart-client/internal/session"
	pkglog "go-recruitart-client/pkg/log"
)

func main() {
	pkglog.Setup()

	jobID := flag.Int("job", 0, "job id to apply to (required)")
	resumePath := flag.String("resume", "", "path to resume file (required, pdf/doc/docx)")
	fullName := flag.String("name", "", "full name (defaults to profile)")
	email := flag.String("email", "", "email (defaults to profile)")
	mobile := flag.String("mobile", "", "mobile number (defaults to profile)")
	linkedin := flag.String("linkedin", "", "linkedin url")
	portfolio := flag.String("portfolio", "", "portfolio url")
	salary := flag.String("salary", "", "expected salary")
	notice := flag.String("notice", "", "notice period")
	coverLetter := flag.String("cover-letter", "", "cover letter text")
	force := flag.Bool("force", false, "apply even if history already has this job")
	flag.Parse()

	if *jobID == 0 || *resumePath == "" {
		flag.Usage()
		os.Exit(2)
	}

	cfg := config.MustLoad()
	ctx := context.Background()

	client := api.New(cfg.APIBaseURL, nil)
	sess := session.NewManager(client, session.NewStore(cfg.TokenPath))
	sess.Resolve(ctx)
	if guard.ForSession(sess) != guard.RenderView {
		log.Fatal().Msg("❌ Not logged in. Run the auth command first.")
	}

	hist, err := history.Open(cfg.HistoryPath)
	if err != nil {
		log.Fatal().Err(err).Msg("❌ Failed to open history store")
	}
	defer hist.Close()

	if applied, err := hist.Applied(ctx, *jobID); err == nil && applied && !*force {
		log.Fatal().Int("job", *jobID).Msg("⏭️ Already applied to this job (use -force to resend)")
	}

	job, err := client.GetJob(ctx, *jobID)
	if err != nil {
		log.Fatal().Err(err).Int("job", *jobID).Msg("❌ Failed to fetch job")
	}
	log.Info().Str("title", job.Title).Str("company", job.CompanyName).Msg("📋 Applying")

	stat, err := os.Stat(*resumePath)
	if err != nil {
		log.Fatal().Err(err).Msg("❌ Cannot read resume file")
	}

	draft := apply.NewDraft(*jobID, sess.Identity())
	if *fullName != "" {
		draft.FullName = *fullName
	}
	if *email != "" {
		draft.Email = *email
	}
	if *mobile != "" {
		draft.Mobile = *mobile
	}
	draft.LinkedinURL = *linkedin
	draft.PortfolioURL = *portfolio
	draft.ExpectedSalary = *salary
	draft.NoticePeriod = *notice
	draft.CoverLetter = *coverLetter
	draft.Resume = &apply.Resume{
		Filename:    filepath.Base(*resumePath),
		ContentType: resumeContentType(filepath.Ext(*resumePath)),
		Size:        stat.Size(),
	}

	if errs := apply.Validate(draft); len(errs) > 0 {
		for field, msg := range errs {
			log.Error().Str("field", field).Msg("❌ " + msg)
		}
		os.Exit(1)
	}

	file, err := os.Open(*resumePath)
	if err != nil {
		log.Fatal().Err(err).Msg("❌ Cannot open resume file")
	}
	defer file.Close()

	flow := apply.NewFlow(client)
	created, err := flow.Submit(ctx, draft, file)
	if err != nil {
		log.Fatal().Str("state", flow.State().String()).Msg("❌ " + flow.Message())
	}

	if _, err := hist.Record(ctx, *jobID, job.Title, created.ID); err != nil {
		log.Warn().Err(err).Msg("⚠️ Submitted, but failed to record in history")
	}
	log.Info().Int("application", created.ID).Msg("🎉 Application submitted!")
}

// resumeContentType maps resume extensions without relying on the host's
// mime tables (.doc/.docx are often missing from them).
func resumeContentType(ext string) string {
	switch strings.ToLower(ext) {
	case ".pdf":
		return "application/pdf"
	case ".doc":
		return "application/msword"
	case ".docx":
		return "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	default:
		return mime.TypeByExtension(ext)
	}
}
