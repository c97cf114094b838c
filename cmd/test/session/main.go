package main

import (
	"context"
	"fmt"

	"go-recruitart-client/internal/api"
	"go-recruitart-client/internal/config"
	"go-recruitart-client/internal/guard"
	"go-recruitart-client/internal/session"
)

func main() {
	fmt.Println("🔑 Testing session resolution...")

	cfg := config.MustLoad()
	client := api.New(cfg.APIBaseURL, nil)
	sess := session.NewManager(client, session.NewStore(cfg.TokenPath))

	fmt.Printf("   guard before resolve: %s\n", guard.ForSession(sess))
	sess.Resolve(context.Background())
	fmt.Printf("   guard after resolve: %s\n", guard.ForSession(sess))

	if id := sess.Identity(); id != nil {
		fmt.Printf("✅ Resolved as %s (demo=%t)\n", id.DisplayName(), id.IsDemo)
	} else {
		fmt.Println("🔒 Resolved unauthenticated")
	}
}
