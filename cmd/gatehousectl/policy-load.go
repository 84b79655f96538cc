package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"gatehouse/pkg/db"
	"gatehouse/pkg/policy"
	gormstore "gatehouse/pkg/server/store/gorm"
)

// policyLoadCmd represents the policy load command
var policyLoadCmd = &cobra.Command{
	Use:   "load <file>",
	Short: "Load an access policy document",
	Long: `Load an access policy document.

The document declares permissions, roles and accounts in YAML. Applying
it makes the database match the document: declared records are created
if missing and role/account assignments are replaced with exactly what
the document declares. Records the document doesn't mention are left
alone.

Example:
  gatehousectl policy load policy.yml`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := loadPolicy(args[0]); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to load policy: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Policy loaded successfully")
	},
}

func init() {
	policyCmd.AddCommand(policyLoadCmd)
}

func loadPolicy(filename string) error {
	doc, err := policy.ParseFile(filename)
	if err != nil {
		return err
	}

	database, err := db.Connect(db.Config{})
	if err != nil {
		return err
	}

	if err := gormstore.EnsureReservedPermissions(database); err != nil {
		return err
	}
	return policy.Apply(database, doc)
}
