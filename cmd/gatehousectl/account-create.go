package main

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"gatehouse/pkg/db"
	gormstore "gatehouse/pkg/server/store/gorm"
)

// accountCreateCmd represents the account create command
var accountCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create an account",
	Long: `Create an account.

A random password is generated and printed to STDOUT unless --password
is given. The account can be assigned roles with --role (repeatable).

Example:
  gatehousectl account create alice
  gatehousectl account create alice --role editor --role reader`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		name := args[0]
		password, _ := cmd.Flags().GetString("password")
		roleNames, _ := cmd.Flags().GetStringArray("role")

		if err := createAccount(name, password, roleNames); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to create account: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	accountCmd.AddCommand(accountCreateCmd)
	accountCreateCmd.Flags().String("password", "", "account password (generated when omitted)")
	accountCreateCmd.Flags().StringArray("role", nil, "role to assign (repeatable)")
}

func generatePassword() (string, error) {
	raw := make([]byte, 18)
	if _, err := rand.Read(raw); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(raw), nil
}

func createAccount(name, password string, roleNames []string) error {
	database, err := db.Connect(db.Config{})
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

	roles := gormstore.NewRolesStore(database)
	var roleIDs []uint
	if len(roleNames) > 0 {
		all, err := roles.ListRoles()
		if err != nil {
			return err
		}
		byName := make(map[string]uint, len(all))
		for _, role := range all {
			byName[role.Name] = role.ID
		}
		for _, roleName := range roleNames {
			id, ok := byName[roleName]
			if !ok {
				return fmt.Errorf("unknown role %q", roleName)
			}
			roleIDs = append(roleIDs, id)
		}
	}

	accounts := gormstore.NewAccountsStore(database)
	account, err := accounts.CreateAccount(name, password, roleIDs)
	if err != nil {
		return err
	}

	fmt.Printf("Created account %q", account.Name)
	if len(roleNames) > 0 {
		fmt.Printf(" with roles %s", strings.Join(roleNames, ", "))
	}
	fmt.Println()
	if generated {
		fmt.Println("Password:", password)
	}
	return nil
}
