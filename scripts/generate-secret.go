// Package main is a development utility for generating a JWT signing secret.
// It prints a random 48-byte URL-safe secret together with the export line for
// the environment variable the server reads, so developers can bootstrap a
// local instance without inventing a weak secret by hand. Production secrets
// should come from a secret manager, not from this script's output pasted into
// a shell history.
package main

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"log"
)

func main() {
	randomBytes := make([]byte, 48)
	if _, err := rand.Read(randomBytes); err != nil {
		log.Fatal(err)
	}

	secret := base64.RawURLEncoding.EncodeToString(randomBytes)

	fmt.Println("==========================================================")
	fmt.Println("JWT Secret Generated")
	fmt.Println("==========================================================")
	fmt.Printf("\nSecret: %s\n", secret)
	fmt.Println("\nExport for local development:")
	fmt.Printf("\nexport MR_JWT_SECRET=%s\n", secret)
	fmt.Println("\n==========================================================")
}
