//go:build ignore

// generate_hash.go prints the argon2id hash for ADMIN_PASSWORD_HASH.
// Usage: go run scripts/generate_hash.go <password>
package main

import (
	"fmt"
	"os"

	"busline.mx/erp/internal/features/auth"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: go run scripts/generate_hash.go <password>")
		os.Exit(1)
	}
	if err := auth.CheckNewPassword(os.Args[1], os.Args[1]); err != nil {
		fmt.Println("Refused:", err)
		os.Exit(1)
	}

	hash, err := auth.HashPassword(os.Args[1])
	if err != nil {
		fmt.Printf("Hashing failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Password hash (put it in .env as ADMIN_PASSWORD_HASH):")
	fmt.Println(hash)
}
