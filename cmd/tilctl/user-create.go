package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tilhq/til-in-go/pkg/auth"
	"github.com/tilhq/til-in-go/pkg/config"
	"github.com/tilhq/til-in-go/pkg/db"
	"github.com/tilhq/til-in-go/pkg/server/store"
	gormstore "github.com/tilhq/til-in-go/pkg/server/store/gorm"
)

// userCreateCmd represents the user-create command
var userCreateCmd = &cobra.Command{
	Use:   "user-create <name> <username>",
	Short: "Create a user account",
	Long: `Create a user account.

The password is taken from the TIL_USER_PASSWORD environment variable and
must be at least 8 characters.

Example:
  TIL_USER_PASSWORD=changeme12 tilctl user-create "Tim C" tim`,
	Args: cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		password := os.Getenv("TIL_USER_PASSWORD")
		if len(password) < 8 {
			fmt.Fprintln(os.Stderr, "TIL_USER_PASSWORD must be set and at least 8 characters")
			os.Exit(1)
		}

		cfg, err := config.Load()
		if err != nil {
			fmt.Fprintln(os.Stderr, "Bad configuration:", err)
			os.Exit(1)
		}

		database, err := db.Connect(db.Config{URL: cfg.DatabaseURL()})
		if err != nil {
			fmt.Fprintln(os.Stderr, "Unable to connect to DB:", err)
			os.Exit(1)
		}

		hash, err := auth.Hash(password)
		if err != nil {
			fmt.Fprintln(os.Stderr, "Unable to hash password:", err)
			os.Exit(1)
		}

		user := &store.User{
			Name:         args[0],
			Username:     args[1],
			PasswordHash: hash,
		}
		if err := gormstore.NewUsersStore(database).CreateUser(user); err != nil {
			fmt.Fprintln(os.Stderr, "Unable to create user:", err)
			os.Exit(1)
		}

		fmt.Printf("Created user %s with id %d\n", user.Username, user.ID)
	},
}

func init() {
	rootCmd.AddCommand(userCreateCmd)
}
