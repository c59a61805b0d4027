package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/mandalnilabja/agentgate/internal/storage"
	"github.com/mandalnilabja/agentgate/internal/transport/http/handler/shared"
)

// ensureAdminPassword prompts for an admin password on first run. Leaving the
// prompt empty skips setup; the store then accepts unauthenticated mutations
// (localhost-first design).
func ensureAdminPassword(store storage.Storage) error {
	hasPassword, err := store.HasAdminPassword()
	if err != nil {
		return fmt.Errorf("failed to check admin password: %w", err)
	}

	if hasPassword {
		return nil
	}

	fmt.Println()
	fmt.Println("╔════════════════════════════════════════════════════════════╗")
	fmt.Println("║                   FIRST-TIME SETUP                         ║")
	fmt.Println("╚════════════════════════════════════════════════════════════╝")
	fmt.Println()
	fmt.Println("No admin password configured. The password protects credential")
	fmt.Println("writes over the API. Press Enter to skip (local trusted mode).")
	fmt.Println()

	reader := bufio.NewReader(os.Stdin)

	for {
		fmt.Print("Enter admin password (alphanumeric, min 8 chars, empty to skip): ")
		password, err := reader.ReadString('\n')
		if err != nil {
			return fmt.Errorf("failed to read password: %w", err)
		}
		password = strings.TrimSpace(password)

		if password == "" {
			fmt.Println()
			fmt.Println("Skipping admin password. Credential writes are unauthenticated.")
			fmt.Println()
			return nil
		}

		if !shared.IsValidAdminPassword(password) {
			fmt.Println("Password must be alphanumeric with at least 8 characters.")
			fmt.Println()
			continue
		}

		fmt.Print("Confirm password: ")
		confirm, err := reader.ReadString('\n')
		if err != nil {
			return fmt.Errorf("failed to read confirmation: %w", err)
		}
		confirm = strings.TrimSpace(confirm)

		if password != confirm {
			fmt.Println("Passwords do not match. Please try again.")
			fmt.Println()
			continue
		}

		hash, err := storage.HashPassword(password, storage.DefaultArgon2Params())
		if err != nil {
			return fmt.Errorf("failed to hash password: %w", err)
		}

		if err := store.SetAdminPasswordHash(hash); err != nil {
			return fmt.Errorf("failed to save password: %w", err)
		}

		fmt.Println()
		fmt.Println("Admin password saved.")
		fmt.Println()
		return nil
	}
}
