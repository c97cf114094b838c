package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog/log"

	"go-recruitart-client/internal/api"
	"go-recruitart-client/internal/config"
	"go-recruitart-client/internal/session"
	pkglog "go-recruitart-client/pkg/log"
)

func usage() {
	fmt.Fprintln(os.Stderr, `usage: auth <command> [flags]

commands:
  login        -email -password
  register     -email -mobile -name -password
  otp-send     -mobile [-purpose]
  otp-verify   -mobile -code [-purpose]
  forgot       -account (email or mobile)
  reset        -mobile -code -password
  logout
  status`)
	os.Exit(2)
}

func main() {
	pkglog.Setup()
	if len(os.Args) < 2 {
		usage()
	}

	cfg := config.MustLoad()
	ctx := context.Background()

	client := api.New(cfg.APIBaseURL, nil)
	sess := session.NewManager(client, session.NewStore(cfg.TokenPath))
	sess.Resolve(ctx)

	args := os.Args[2:]
	switch os.Args[1] {
	case "login":
		fs := flag.NewFlagSet("login", flag.ExitOnError)
		email := fs.String("email", "", "account email")
		password := fs.String("password", "", "account password")
		fs.Parse(args)
		if err := sess.Login(ctx, *email, *password); err != nil {
			log.Fatal().Msg("❌ " + err.Error())
		}
		log.Info().Str("user", sess.Identity().DisplayName()).Msg("✅ Logged in")

	case "register":
		fs := flag.NewFlagSet("register", flag.ExitOnError)
		email := fs.String("email", "", "account email")
		mobile := fs.String("mobile", "", "mobile number")
		name := fs.String("name", "", "full name")
		password := fs.String("password", "", "password")
		fs.Parse(args)
		err := sess.Register(ctx, api.RegisterRequest{
			Email:           *email,
			Mobile:          *mobile,
			FullName:        *name,
			Password:        *password,
			PasswordConfirm: *password,
		})
		if err != nil {
			log.Fatal().Msg("❌ " + err.Error())
		}
		if sess.IsAuthenticated() {
			log.Info().Msg("✅ Registered and logged in")
		} else {
			log.Info().Msg("✅ Registered. Log in to continue.")
		}

	case "otp-send":
		fs := flag.NewFlagSet("otp-send", flag.ExitOnError)
		mobile := fs.String("mobile", "", "mobile number")
		purpose := fs.String("purpose", "login", "otp purpose")
		fs.Parse(args)
		if err := sess.SendOTP(ctx, *mobile, *purpose); err != nil {
			log.Fatal().Msg("❌ " + err.Error())
		}
		log.Info().Msg("📨 OTP sent")

	case "otp-verify":
		fs := flag.NewFlagSet("otp-verify", flag.ExitOnError)
		mobile := fs.String("mobile", "", "mobile number")
		code := fs.String("code", "", "received otp code")
		purpose := fs.String("purpose", "login", "otp purpose")
		fs.Parse(args)
		if err := sess.VerifyOTP(ctx, *mobile, *code, *purpose); err != nil {
			log.Fatal().Msg("❌ " + err.Error())
		}
		log.Info().Str("user", sess.Identity().DisplayName()).Msg("✅ Logged in")

	case "forgot":
		fs := flag.NewFlagSet("forgot", flag.ExitOnError)
		account := fs.String("account", "", "email or mobile number")
		fs.Parse(args)
		if err := sess.ForgotPassword(ctx, *account); err != nil {
			log.Fatal().Msg("❌ " + err.Error())
		}
		log.Info().Msg("📨 Recovery code sent. Use the reset command next.")

	case "reset":
		fs := flag.NewFlagSet("reset", flag.ExitOnError)
		mobile := fs.String("mobile", "", "mobile number")
		code := fs.String("code", "", "received otp code")
		password := fs.String("password", "", "new password")
		fs.Parse(args)
		if err := sess.ResetPassword(ctx, *mobile, *code, *password); err != nil {
			log.Fatal().Msg("❌ " + err.Error())
		}
		log.Info().Msg("✅ Password reset. Log in with the new password.")

	case "logout":
		sess.Logout(ctx)

	case "status":
		printStatus(sess)

	default:
		usage()
	}
}

func printStatus(sess *session.Manager) {
	if !sess.IsAuthenticated() {
		fmt.Println("🔒 Not logged in")
		return
	}
	id := sess.Identity()
	fmt.Printf("✅ Logged in as %s (%s)\n", id.DisplayName(), id.Email)
	if id.IsDemo {
		fmt.Println("🧪 Demo session")
		return
	}
	info, err := sess.TokenInfo()
	if err != nil {
		fmt.Printf("   token: opaque (%v)\n", err)
		return
	}
	fmt.Printf("   subject: %s\n", info.Subject)
	if !info.ExpiresAt.IsZero() {
		state := "valid"
		if info.Expired(time.Now()) {
			state = "EXPIRED"
		}
		fmt.Printf("   expires: %s (%s)\n", info.ExpiresAt.Format(time.RFC3339), state)
	}
}
