// Command seed fills the database with demo users, friends and posts.
package main

import (
	"context"
	"flag"
	"log"

	"peached/internal/bootstrap"
	"peached/internal/config"
	"peached/internal/seed"
)

func main() {
	numUsers := flag.Int("users", 50, "Number of users to create")
	numPosts := flag.Int("posts", 200, "Number of posts to create")
	friends := flag.Int("friends", 5, "Friend references per user")
	shouldClean := flag.Bool("clean", true, "Clean database before seeding")
	fast := flag.Bool("fast", false, "Hash the shared password at minimum bcrypt cost")
	dryRun := flag.Bool("dry-run", false, "Build data without writing it")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx := context.Background()
	rt, err := bootstrap.InitRuntime(ctx, cfg, bootstrap.Options{SkipRedis: true})
	if err != nil {
		log.Fatalf("Failed to initialize runtime: %v", err)
	}

	summary, err := seed.Seed(ctx, rt.DB, seed.Options{
		NumUsers:       *numUsers,
		NumPosts:       *numPosts,
		FriendsPerUser: *friends,
		ShouldClean:    *shouldClean,
		FastHash:       *fast,
		DryRun:         *dryRun,
	})
	if err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}
	log.Printf("seeded %d users, %d friend references, %d posts (password %q)",
		summary.Users, summary.FriendRefs, summary.Posts, seed.DefaultPassword)
}
