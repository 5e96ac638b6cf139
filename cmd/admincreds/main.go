// Generates the secrets needed to run the portal:
//   - a bcrypt hash of the admin password, for VAAD_ADMIN_PASSWORD_HASH
//   - a random session signing key, for VAAD_SESSION_SIGNING_KEY
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/vaadhorim/portal/pkg"
)

func main() {
	password := flag.String("password", "", "admin password to hash")
	keyLen := flag.Int("key-len", 32, "signing key length in bytes")
	flag.Parse()

	if *password == "" {
		fmt.Println("usage: admincreds -password <admin-password> [-key-len 32]")
		os.Exit(1)
	}

	passwordHash, err := pkg.HashPassword(*password)
	if err != nil {
		fmt.Printf("failed to hash password: %s\n", err)
		os.Exit(1)
	}

	signingKey, err := pkg.GenerateRandomString(*keyLen)
	if err != nil {
		fmt.Printf("failed to generate signing key: %s\n", err)
		os.Exit(1)
	}

	fmt.Printf("VAAD_ADMIN_PASSWORD_HASH=%s\n", passwordHash)
	fmt.Printf("VAAD_SESSION_SIGNING_KEY=%s\n", signingKey)
}
