// Command tokengen mints service tokens for callers of the /internal routes.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/spec-kit/users-service/internal/auth"
	"github.com/spec-kit/users-service/internal/config"
	"github.com/spec-kit/users-service/internal/domain"
)

func main() {
	service := flag.String("service", "", "calling service name (required)")
	scopes := flag.String("scopes", string(domain.ScopeAccountsRead), "comma separated scopes: accounts:read,accounts:write")
	ttl := flag.Int("ttl", 0, "token lifetime in minutes; defaults to AUTH_SERVICE_TOKEN_TTL_MINUTES")
	flag.Parse()

	if *service == "" {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	minutes := cfg.Auth.ServiceTokenTTLMinutes
	if *ttl > 0 {
		minutes = *ttl
	}

	parsed, err := parseScopes(*scopes)
	if err != nil {
		log.Fatal(err)
	}

	token, exp, err := auth.NewTokenManager(cfg.Auth.ServiceTokenSecret, minutes).GenerateToken(*service, parsed...)
	if err != nil {
		log.Fatalf("failed to sign token: %v", err)
	}
	fmt.Println(token)
	fmt.Fprintf(os.Stderr, "expires at %s\n", exp.Format(time.RFC3339))
}

func parseScopes(raw string) ([]domain.ServiceScope, error) {
	var out []domain.ServiceScope
	for _, s := range strings.Split(raw, ",") {
		scope := domain.ServiceScope(strings.TrimSpace(s))
		switch scope {
		case domain.ScopeAccountsRead, domain.ScopeAccountsWrite:
			out = append(out, scope)
		case "":
		default:
			return nil, fmt.Errorf("unknown scope %q", scope)
		}
	}
	return out, nil
}
