//go:build ignore

// This script issues an operator JWT for the admin transfer API
// Run with: go run scripts/generate-jwt.go -config config.yaml -sub ops@example.com

package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/chainsafe/usdt-payout-verifier/pkg/auth"
	"github.com/chainsafe/usdt-payout-verifier/pkg/config"
)

func main() {
	configPath := flag.String("config", "config.yaml", "Path to configuration file")
	subject := flag.String("sub", "operator", "Operator identity recorded in the token subject")
	ttl := flag.Duration("ttl", 12*time.Hour, "Token lifetime")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	if cfg.Auth.JWTSecret == "" {
		fmt.Fprintln(os.Stderr, "auth.jwt_secret is not configured")
		os.Exit(1)
	}

	token, err := auth.NewJWTValidator(cfg.Auth.JWTSecret, cfg.Auth.Issuer).IssueToken(*subject, *ttl)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error generating token: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("=== Operator API JWT Token ===")
	fmt.Println()
	fmt.Println(token)
	fmt.Println()
	fmt.Printf("Use with: curl -H \"Authorization: Bearer %s\" http://localhost:%d/api/v1/admin/transfers\n",
		token, cfg.Server.Port)
}
