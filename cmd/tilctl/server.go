package main

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/tilhq/til-in-go/pkg/config"
	"github.com/tilhq/til-in-go/pkg/db"
	"github.com/tilhq/til-in-go/pkg/render"
	"github.com/tilhq/til-in-go/pkg/server"
	"github.com/tilhq/til-in-go/pkg/server/endpoints"
	gormstore "github.com/tilhq/til-in-go/pkg/server/store/gorm"
	"github.com/tilhq/til-in-go/pkg/session"
)

// serverCmd represents the server command
var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Run the TIL application server",
	Long: `Run the TIL application server.

Database connection settings come from DATABASE_URL or the individual
DATABASE_* environment variables (see tilctl help).

By default, database migrations are run on startup. Use --no-migrate to skip.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.Load()
		if err != nil {
			fmt.Fprintln(os.Stderr, "Bad configuration:", err)
			os.Exit(1)
		}

		noMigrate, _ := cmd.Flags().GetBool("no-migrate")
		if !noMigrate {
			log.Println("Running database migrations...")
			if err := runMigrations(cfg.DatabaseURL()); err != nil {
				fmt.Fprintf(os.Stderr, "Migration failed: %v\n", err)
				os.Exit(1)
			}
		}

		database, err := db.Connect(db.Config{URL: cfg.DatabaseURL()})
		if err != nil {
			fmt.Fprintln(os.Stderr, "Unable to connect to DB:", err)
			os.Exit(1)
		}

		var renderer render.Renderer
		if cfg.TemplateDir != "" {
			renderer, err = render.NewHTMLFromDir(cfg.TemplateDir)
		} else {
			renderer, err = render.NewHTML()
		}
		if err != nil {
			fmt.Fprintln(os.Stderr, "Unable to load templates:", err)
			os.Exit(1)
		}

		host, _ := cmd.Flags().GetString("bind-address")
		port, _ := cmd.Flags().GetString("port")
		if host == "" {
			host = cfg.BindAddress
		}
		if port == "" {
			port = cfg.Port
		}

		s := server.NewServer(
			gormstore.NewUsersStore(database),
			gormstore.NewAcronymsStore(database),
			gormstore.NewCategoriesStore(database),
			gormstore.NewTokensStore(database),
			session.NewStore(),
			renderer,
			host,
			port,
		)
		endpoints.RegisterAll(s)

		log.Printf("Running server at http://%s:%s...\n", host, port)
		log.Fatal(s.Start())
	},
}

func init() {
	rootCmd.AddCommand(serverCmd)

	serverCmd.Flags().StringP("port", "p", "", "server listen port")
	serverCmd.Flags().StringP("bind-address", "b", "", "server bind address")
	serverCmd.Flags().Bool("no-migrate", false, "skip running database migrations on start")
}
