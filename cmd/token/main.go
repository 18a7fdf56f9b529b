// Command token mints an access token for a user id, for local development
// and smoke tests against a running server.
//
// Usage:
//
//	token --user=<uuid> [--ttl=1h]
//
// Requires AUTH_JWT_SECRET (and honours AUTH_JWT_ISSUER) like the server.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/filatei/btorestate/internal/auth"
	"github.com/filatei/btorestate/internal/config"
)

func main() {
	user := flag.String("user", "", "user id to issue the token for (random when empty)")
	ttl := flag.Duration("ttl", time.Hour, "token lifetime")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	id := uuid.New()
	if *user != "" {
		if id, err = uuid.Parse(*user); err != nil {
			fmt.Fprintln(os.Stderr, "Usage: token --user=<uuid> [--ttl=1h]")
			os.Exit(1)
		}
	}

	token, err := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, *ttl).GenerateAccessToken(id)
	if err != nil {
		log.Fatalf("sign token: %v", err)
	}

	fmt.Fprintf(os.Stderr, "user %s\n", id)
	fmt.Println(token)
}
