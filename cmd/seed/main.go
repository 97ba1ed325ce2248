// Package main provides a tool to seed the database with an administrator
// account and, optionally, a small sample catalog.
//
// Open registration never grants admin rights, so the first admin has to be
// created out of band. This is that path.
//
// Usage:
//
//	DATA_PATH=~/inkwell go run ./cmd/seed --admin-email admin@example.com --admin-password changeme
//	DATA_PATH=~/inkwell go run ./cmd/seed --admin-email admin@example.com --admin-password changeme --sample-books
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/inkwellapp/inkwell-server/internal/auth"
	"github.com/inkwellapp/inkwell-server/internal/domain"
	"github.com/inkwellapp/inkwell-server/internal/store"
	"github.com/inkwellapp/inkwell-server/internal/store/sqlite"
)

var (
	adminEmail    = flag.String("admin-email", "", "Email for the admin account (required)")
	adminPassword = flag.String("admin-password", "", "Password for the admin account (required)")
	adminUsername = flag.String("admin-username", "admin", "Username for the admin account")
	sampleBooks   = flag.Bool("sample-books", false, "Also create a small sample catalog")
)

func main() {
	flag.Parse()

	if *adminEmail == "" || *adminPassword == "" {
		fmt.Fprintln(os.Stderr, "Usage: seed --admin-email <email> --admin-password <password> [--admin-username <name>] [--sample-books]")
		os.Exit(1)
	}

	dataPath := os.Getenv("DATA_PATH")
	if dataPath == "" {
		dataPath = os.ExpandEnv("$HOME/inkwell")
	}
	if err := os.MkdirAll(dataPath, 0o755); err != nil {
		log.Fatalf("Failed to create data directory: %v", err)
	}

	dbPath := dataPath + "/inkwell.db"
	fmt.Printf("Opening database at: %s\n", dbPath)

	s, err := sqlite.Open(dbPath, nil)
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}
	defer s.Close()

	ctx := context.Background()

	createAdmin(ctx, s)

	if *sampleBooks {
		createSampleBooks(ctx, s)
	}

	fmt.Println("Seeding complete!")
}

// createAdmin creates the admin account, or promotes nothing if the email is
// already taken.
func createAdmin(ctx context.Context, s *sqlite.Store) {
	if existing, _ := s.GetUserByEmail(ctx, *adminEmail); existing != nil {
		fmt.Printf("User %s already exists (admin=%v), skipping\n", *adminEmail, existing.IsAdmin)
		return
	}

	hash, err := auth.HashPassword(*adminPassword)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	admin := &domain.User{
		Username:     *adminUsername,
		Email:        *adminEmail,
		PasswordHash: hash,
		IsAdmin:      true,
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.CreateUser(ctx, admin); err != nil {
		log.Fatalf("Failed to create admin user: %v", err)
	}

	fmt.Printf("Created admin user: %s (%s)\n", admin.Username, admin.Email)
}

// sampleCatalog is a handful of well-known titles for local development.
var sampleCatalog = []*domain.Book{
	{
		Title:           "Dune",
		Author:          "Frank Herbert",
		Genre:           "Science Fiction",
		Synopsis:        "A noble family takes stewardship of the desert planet Arrakis, sole source of the spice melange.",
		PublicationYear: 1965,
	},
	{
		Title:           "The Left Hand of Darkness",
		Author:          "Ursula K. Le Guin",
		Genre:           "Science Fiction",
		Synopsis:        "An envoy to the planet Gethen navigates a society without fixed gender.",
		PublicationYear: 1969,
	},
	{
		Title:           "Beloved",
		Author:          "Toni Morrison",
		Genre:           "Literary Fiction",
		Synopsis:        "A formerly enslaved woman is haunted by the daughter she lost.",
		PublicationYear: 1987,
	},
	{
		Title:           "The Name of the Rose",
		Author:          "Umberto Eco",
		Genre:           "Mystery",
		Synopsis:        "A Franciscan friar investigates a series of deaths in a fourteenth-century abbey.",
		PublicationYear: 1980,
	},
}

// createSampleBooks inserts the sample catalog, skipping titles that already
// exist.
func createSampleBooks(ctx context.Context, s *sqlite.Store) {
	fmt.Println("\n=== Creating Sample Catalog ===")

	created := 0
	for _, book := range sampleCatalog {
		if err := s.CreateBook(ctx, book); err != nil {
			if errors.Is(err, store.ErrAlreadyExists) {
				fmt.Printf("  Book %q already exists, skipping\n", book.Title)
				continue
			}
			log.Printf("  Failed to create book %q: %v", book.Title, err)
			continue
		}
		fmt.Printf("  Created book: %s (%s, %d)\n", book.Title, book.Author, book.PublicationYear)
		created++
	}

	fmt.Printf("=== Created %d books ===\n", created)
}
