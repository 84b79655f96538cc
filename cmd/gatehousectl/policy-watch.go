package main

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"gatehouse/pkg/db"
	"gatehouse/pkg/policy"
	gormstore "gatehouse/pkg/server/store/gorm"
)

// policyWatchCmd represents the policy watch command
var policyWatchCmd = &cobra.Command{
	Use:   "watch <file>",
	Short: "Watch a policy file and reapply it on change",
	Long: `Watch a policy file and reapply it when it changes.

The file's directory is watched, so the common editor pattern of
writing a temp file and renaming it over the original still triggers
a reload.

Example:
  gatehousectl policy watch /etc/gatehouse/policy.yml`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := watchPolicy(args[0]); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to watch policy: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	policyCmd.AddCommand(policyWatchCmd)
}

func watchPolicy(filename string) error {
	database, err := db.Connect(db.Config{})
	if err != nil {
		return err
	}
	if err := gormstore.EnsureReservedPermissions(database); err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	absPath, err := filepath.Abs(filename)
	if err != nil {
		return err
	}
	if err := watcher.Add(filepath.Dir(absPath)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", filepath.Dir(absPath), err)
	}

	// Apply once on startup
	applyPolicyFile(database, absPath)
	fmt.Printf("Watching %s for changes...\n", absPath)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Name != absPath {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			fmt.Printf("[%s] Policy file modified, reapplying...\n", time.Now().Format(time.RFC3339))
			applyPolicyFile(database, absPath)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintf(os.Stderr, "Watcher error: %v\n", err)
		case <-sigChan:
			fmt.Println("\nShutting down...")
			return nil
		}
	}
}

func applyPolicyFile(database *gorm.DB, path string) {
	doc, err := policy.ParseFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing policy: %v\n", err)
		return
	}
	if err := policy.Apply(database, doc); err != nil {
		fmt.Fprintf(os.Stderr, "Error applying policy: %v\n", err)
		return
	}
	fmt.Println("Policy applied successfully")
}
