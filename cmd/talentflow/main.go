package main

import (
	"context"
	"database/sql"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/spf13/cobra"

	"talentflow/internal/config"
	"talentflow/internal/db"
	"talentflow/internal/id"
	"talentflow/internal/seed"
	"talentflow/internal/store"
	"talentflow/internal/transport"
	"talentflow/internal/tui"
)

var rootCmd = &cobra.Command{
	Use:   "talentflow",
	Short: "Applicant tracking for jobs, candidates and assessments",
	Long:  `TalentFlow manages job postings, a candidate pipeline and per-job assessments from the terminal.`,
	Run: func(cmd *cobra.Command, args []string) {
		// Load config
		cfg, err := config.Load()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}

		ephemeral, _ := cmd.Flags().GetBool("ephemeral")

		var database *sql.DB
		if ephemeral {
			// In-memory instance: fresh data every launch, disk untouched.
			database, err = db.OpenMemory()
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error opening database: %v\n", err)
				os.Exit(1)
			}
			defer database.Close()
		} else {
			database, err = db.Open()
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error opening database: %v\n", err)
				os.Exit(1)
			}
			defer db.Close()

			// Run initial migration if this is a fresh database
			// This handles first-time setup without user interaction
			status, _ := db.GetMigrationStatus()
			if status != nil && status.CurrentVersion == 0 {
				if err := db.RunMigrations(); err != nil {
					fmt.Fprintf(os.Stderr, "Error running initial migrations: %v\n", err)
					os.Exit(1)
				}
			}
		}

		st := store.New(database, id.NewGenerator())

		// First run: populate demo data so the board is not empty.
		rng := rand.New(rand.NewSource(time.Now().UnixNano()))
		if err := seed.Run(context.Background(), st, rng, seed.Options{
			Jobs:       cfg.SeedJobs,
			Candidates: cfg.SeedCandidates,
		}); err != nil {
			fmt.Fprintf(os.Stderr, "Error seeding database: %v\n", err)
			os.Exit(1)
		}

		client := transport.NewClient(st, transport.NewSampler(cfg))

		if err := tui.Run(client, cfg); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	},
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Populate the database with demo jobs, candidates and assessments",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.Load()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}

		reset, _ := cmd.Flags().GetBool("reset")
		if reset {
			path, err := config.DatabasePath()
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
			if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
				fmt.Fprintf(os.Stderr, "Error removing database: %v\n", err)
				os.Exit(1)
			}
		}

		database, err := db.OpenAndMigrate()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening database: %v\n", err)
			os.Exit(1)
		}
		defer db.Close()

		jobs, _ := cmd.Flags().GetInt("jobs")
		candidates, _ := cmd.Flags().GetInt("candidates")
		if jobs <= 0 {
			jobs = cfg.SeedJobs
		}
		if candidates <= 0 {
			candidates = cfg.SeedCandidates
		}

		st := store.New(database, id.NewGenerator())
		rng := rand.New(rand.NewSource(time.Now().UnixNano()))
		if err := seed.Run(context.Background(), st, rng, seed.Options{Jobs: jobs, Candidates: candidates}); err != nil {
			fmt.Fprintf(os.Stderr, "Error seeding database: %v\n", err)
			os.Exit(1)
		}

		total, err := st.Jobs().Count(context.Background())
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Database ready: %d jobs\n", total)
	},
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Show migration status and apply pending migrations",
	Run: func(cmd *cobra.Command, args []string) {
		if _, err := db.Open(); err != nil {
			fmt.Fprintf(os.Stderr, "Error opening database: %v\n", err)
			os.Exit(1)
		}
		defer db.Close()

		status, err := db.GetMigrationStatus()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Current version: %d\n", status.CurrentVersion)
		fmt.Printf("Latest version:  %d\n", status.LatestVersion)

		if status.CurrentVersion >= status.LatestVersion {
			fmt.Println("Database is up to date.")
			return
		}

		if err := db.RunMigrations(); err != nil {
			fmt.Fprintf(os.Stderr, "Error running migrations: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Migrations applied.")
	},
}

func init() {
	rootCmd.Flags().Bool("ephemeral", false, "Run against a throwaway in-memory database")

	seedCmd.Flags().Int("jobs", 0, "Number of jobs to create (default from config)")
	seedCmd.Flags().Int("candidates", 0, "Number of candidates to create (default from config)")
	seedCmd.Flags().Bool("reset", false, "Delete the database file before seeding")

	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(migrateCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
