package main

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"gatehouse/pkg/config"
	"gatehouse/pkg/db"
	"gatehouse/pkg/server"
	"gatehouse/pkg/server/endpoints"
	"gatehouse/pkg/server/middleware"
	gormstore "gatehouse/pkg/server/store/gorm"
	"gatehouse/pkg/session"
)

func defaultBindAddress() string {
	return config.Get().BindAddress
}

func defaultPort() string {
	return strconv.Itoa(config.Get().Port)
}

// serverCmd represents the server command
var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Run the Gatehouse application server",
	Long: `Run the Gatehouse application server.

To run the server requires the environment variables GATEHOUSE_SESSION_KEY,
GATEHOUSE_TOKEN_KEY and DATABASE_URL.

By default, database migrations are run on startup. Use --no-migrate to skip.`,
	Run: func(cmd *cobra.Command, args []string) {
		// Validate required environment variables first (fail fast)
		sessionKey, err := config.SessionKey()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		tokenKey, err := config.TokenKey()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		if os.Getenv("DATABASE_URL") == "" {
			fmt.Fprintln(os.Stderr, "DATABASE_URL environment variable is required")
			os.Exit(1)
		}

		cfg := config.Get()
		if err := cfg.Validate(); err != nil {
			fmt.Fprintln(os.Stderr, "Bad configuration:", err)
			os.Exit(1)
		}

		// Run migrations unless --no-migrate is set
		noMigrate, _ := cmd.Flags().GetBool("no-migrate")
		if !noMigrate {
			log.Println("Running database migrations...")
			if err := runMigrations(); err != nil {
				fmt.Fprintf(os.Stderr, "Migration failed: %v\n", err)
				os.Exit(1)
			}
		}

		database, err := db.Connect(db.Config{})
		if err != nil {
			fmt.Println("Unable to connect to DB:", err)
			os.Exit(1)
		}

		if err := gormstore.Seed(database); err != nil {
			fmt.Println("Unable to seed database:", err)
			os.Exit(1)
		}

		sessions := session.NewManager(sessionKey, cfg.SessionCookieName, session.LockoutPolicy{
			AttemptLimit: cfg.LockoutAttemptLimit,
			Duration:     cfg.LockoutDuration(),
		})
		tokens := middleware.NewTokenAuthenticator(tokenKey, cfg.TokenTTL())

		host, _ := cmd.Flags().GetString("bind-address")
		port, _ := cmd.Flags().GetString("port")
		s := server.NewServer(sessions, database, host, port)

		if err := endpoints.RegisterAll(s, tokens); err != nil {
			fmt.Println("Unable to register endpoints:", err)
			os.Exit(1)
		}

		log.Printf("Running server at http://%s:%s...\n", host, port)
		log.Fatal(s.Start())
	},
}

func init() {
	rootCmd.AddCommand(serverCmd)

	serverCmd.Flags().StringP("port", "p", defaultPort(), "server listen port")
	serverCmd.Flags().StringP("bind-address", "b", defaultBindAddress(), "server bind address")
	serverCmd.Flags().Bool("no-migrate", false, "skip running database migrations on start")
}
