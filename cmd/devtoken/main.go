// Command devtoken prints an HS256 bearer token accepted by the catalog
// service when it runs with JWT_SECRET instead of Keycloak.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"github.com/vendorhub/vendorhub/backend/go-services/internal/tokens"
)

func main() {
	_ = godotenv.Load(".env")
	v := viper.New()
	v.AutomaticEnv()

	secret := flag.String("secret", v.GetString("JWT_SECRET"), "HMAC secret (defaults to $JWT_SECRET)")
	subject := flag.String("sub", "dev-editor", "subject recorded as lastModifiedBy")
	ttl := flag.Duration("ttl", 24*time.Hour, "token lifetime")
	outputJSON := flag.Bool("json", false, "output as JSON")
	flag.Parse()

	token, err := tokens.Sign(*secret, *subject, *ttl, nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error signing token: %v\n", err)
		os.Exit(1)
	}

	if *outputJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(map[string]interface{}{
			"access_token": token,
			"token_type":   "Bearer",
			"expires_in":   int(ttl.Seconds()),
			"sub":          *subject,
		})
		return
	}
	fmt.Println(token)
	fmt.Fprintf(os.Stderr, "curl -H 'Authorization: Bearer %s' -X POST http://localhost:5020/api/reviews\n", token)
}
