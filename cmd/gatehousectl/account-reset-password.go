package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"gatehouse/pkg/db"
	"gatehouse/pkg/server/store"
	gormstore "gatehouse/pkg/server/store/gorm"
)

// accountResetPasswordCmd represents the account reset-password command
var accountResetPasswordCmd = &cobra.Command{
	Use:   "reset-password <name>",
	Short: "Reset an account's password",
	Long: `Reset an account's password.

A new random password is generated and printed to STDOUT unless
--password is given.

Example:
  gatehousectl account reset-password admin`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		name := args[0]
		password, _ := cmd.Flags().GetString("password")

		if err := resetPassword(name, password); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to reset password: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	accountCmd.AddCommand(accountResetPasswordCmd)
	accountResetPasswordCmd.Flags().String("password", "", "new password (generated when omitted)")
}

func resetPassword(name, password string) error {
	database, err := db.Connect(db.Config{})
	if err != nil {
		return err
	}

	accounts := gormstore.NewAccountsStore(database)
	account, err := accounts.FetchAccountByName(name)
	if errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("account %q does not exist", name)
	}
	if err != nil {
		return err
	}

	generated := false
	if password == "" {
		password, err = generatePassword()
		if err != nil {
			return err
		}
		generated = true
	}

	if err := accounts.UpdatePassword(account.ID, password); err != nil {
		return err
	}

	fmt.Printf("Password reset for account %q\n", name)
	if generated {
		fmt.Println("Password:", password)
	}
	return nil
}
