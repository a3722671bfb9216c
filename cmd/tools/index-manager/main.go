// cmd/tools/index-manager/main.go
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"jobboard-api/internal/common/auth"
	"jobboard-api/internal/common/config"
	"jobboard-api/internal/common/database"
	"jobboard-api/internal/common/logger"
	"jobboard-api/internal/models"
	"jobboard-api/internal/store"
	"jobboard-api/pkg/fixtures"
)

func main() {
	createCmd := flag.NewFlagSet("create", flag.ExitOnError)
	dropCmd := flag.NewFlagSet("drop", flag.ExitOnError)
	seedCmd := flag.NewFlagSet("seed", flag.ExitOnError)
	tokenCmd := flag.NewFlagSet("token", flag.ExitOnError)

	// Drop command flags
	force := dropCmd.Bool("force", false, "Required confirmation for dropping indices")

	// Seed command flags
	seedFile := seedCmd.String("file", "configs/seed.yaml", "Path to seed file")
	seedCreate := seedCmd.Bool("create", true, "Create missing indices before seeding")

	// Token command flags
	subject := tokenCmd.String("sub", "", "User ID to put in the token subject")
	email := tokenCmd.String("email", "", "Email claim")
	role := tokenCmd.String("role", "", "Role claim (employer, jobseeker)")

	if len(os.Args) < 2 {
		help()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "create":
		createCmd.Parse(os.Args[2:])
		ctx, docs := connect()
		created, err := docs.EnsureIndices(ctx)
		if err != nil {
			fmt.Printf("Error creating indices: %v\n", err)
			os.Exit(1)
		}
		if len(created) == 0 {
			fmt.Println("Indices already exist.")
			return
		}
		fmt.Printf("Created indices: %v\n", created)

	case "drop":
		dropCmd.Parse(os.Args[2:])
		if !*force {
			fmt.Println("Error: -force is required for drop.")
			dropCmd.Usage()
			os.Exit(1)
		}
		ctx, docs := connect()
		if err := docs.DeleteIndices(ctx); err != nil {
			fmt.Printf("Error dropping indices: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Dropped indices: %s, %s\n", docs.OffersIndex(), docs.UsersIndex())

	case "seed":
		seedCmd.Parse(os.Args[2:])
		seed, err := fixtures.LoadSeed(*seedFile)
		if err != nil {
			fmt.Printf("Error loading seed: %v\n", err)
			os.Exit(1)
		}
		ctx, docs := connect()
		if *seedCreate {
			if _, err := docs.EnsureIndices(ctx); err != nil {
				fmt.Printf("Error creating indices: %v\n", err)
				os.Exit(1)
			}
		}
		stats, err := docs.BulkLoad(ctx, seed.Offers, seed.Users)
		if err != nil {
			fmt.Printf("Error seeding: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Seeded %d documents (%d failed) from %s\n", stats.Indexed, stats.Failed, *seedFile)
		if stats.Failed > 0 {
			os.Exit(1)
		}

	case "token":
		tokenCmd.Parse(os.Args[2:])
		if *subject == "" || !models.Role(*role).Valid() {
			fmt.Println("Error: sub and a valid role are required for token.")
			tokenCmd.Usage()
			os.Exit(1)
		}
		cfg := loadConfig()
		tokens := auth.NewTokens(cfg.Auth.JWTSecret, cfg.Auth.Issuer, time.Duration(cfg.Auth.TokenTTL)*time.Minute)
		token, err := tokens.Sign(*subject, *email, models.Role(*role))
		if err != nil {
			fmt.Printf("Error signing token: %v\n", err)
			os.Exit(1)
		}
		fmt.Println(token)

	case "help":
		fallthrough
	default:
		help()
	}
}

func loadConfig() *config.Config {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		os.Exit(1)
	}
	return cfg
}

func connect() (context.Context, *store.Store) {
	cfg := loadConfig()
	log := logger.NewZapAdapter(logger.New("warn", "console", "stderr"))

	es, err := database.NewElasticsearch(cfg.Database.Elasticsearch)
	if err != nil {
		fmt.Printf("Error creating elasticsearch client: %v\n", err)
		os.Exit(1)
	}
	ctx := context.Background()
	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := es.Ping(pingCtx); err != nil {
		fmt.Printf("Error connecting to elasticsearch: %v\n", err)
		os.Exit(1)
	}
	return ctx, store.New(es.Client, cfg.Indices, nil, log)
}

func help() {
	fmt.Println(`Index Manager Tool

Usage:
  index-manager create
  index-manager drop -force
  index-manager seed [-file configs/seed.yaml] [-create=true]
  index-manager token -sub <userId> -role <employer|jobseeker> [-email <email>]
  index-manager help

Commands:
  create    Create the offers and users indices with their mappings if missing
  drop      Delete both indices
  seed      Bulk load offers and users from a YAML seed file
  token     Print a signed access token for local testing
  help      Show this help message

Configuration is read the same way as the API server (configs/config.yaml,
.env and environment variables).`)
}
