// Command admin provides account maintenance utilities.
package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"peached/internal/bootstrap"
	"peached/internal/config"
	"peached/internal/repository"
	"peached/internal/service"
)

func usage() {
	fmt.Println("Usage:")
	fmt.Println("  go run ./cmd/admin resume-deactivations   - Finish interrupted deactivations")
	fmt.Println("  go run ./cmd/admin deactivate <username>  - Deactivate an account")
	os.Exit(1)
}

func main() {
	if len(os.Args) < 2 {
		usage()
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx := context.Background()
	rt, err := bootstrap.InitRuntime(ctx, cfg, bootstrap.Options{SkipSchema: true})
	if err != nil {
		log.Fatalf("Failed to initialize runtime: %v", err)
	}

	users := repository.NewUserRepository(rt.DB)
	deactivations := service.NewDeactivationService(users, repository.NewFriendRepository(rt.DB))

	switch os.Args[1] {
	case "resume-deactivations":
		n, err := deactivations.ResumePending(ctx)
		if err != nil {
			log.Fatalf("Resumed %d deactivations, then failed: %v", n, err)
		}
		fmt.Printf("Resumed %d deactivations\n", n)

	case "deactivate":
		if len(os.Args) < 3 {
			usage()
		}
		user, err := users.GetByUsername(ctx, os.Args[2])
		if err != nil {
			log.Fatalf("Lookup failed: %v", err)
		}
		if user == nil {
			log.Fatalf("User %q not found", os.Args[2])
		}
		if user.Deactivated {
			fmt.Printf("User %s is already deactivated\n", user.Username)
			return
		}
		result, err := deactivations.Deactivate(ctx, user.ID)
		if err != nil {
			log.Fatalf("Deactivation failed: %v", err)
		}
		fmt.Printf("Deactivated %s: %d posts deleted, %d friend references not pruned\n",
			user.Username, result.PostsDeleted, result.PruneFailures)

	default:
		fmt.Printf("Unknown command: %s\n", os.Args[1])
		usage()
	}
}
