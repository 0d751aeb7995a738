package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"scrivo/internal/ports"
)

var draftsCmd = &cobra.Command{
	Use:   "drafts",
	Short: "Inspect locally stored drafts",
}

var draftsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List drafts stored for the signed-in repository",
	RunE: func(cmd *cobra.Command, args []string) error {
		keys, err := store.List(sessionRec.Account, sessionRec.Repository)
		if err != nil {
			return err
		}
		if len(keys) == 0 {
			fmt.Println("No drafts.")
			return nil
		}
		for _, key := range keys {
			draft, ok, err := store.Load(key)
			if err != nil || !ok {
				fmt.Printf("%s (unreadable)\n", key.Path)
				continue
			}
			fmt.Printf("%-50s saved %s\n", key.Path, draft.SavedAt.Format("2006-01-02 15:04:05"))
		}
		return nil
	},
}

var draftsClearCmd = &cobra.Command{
	Use:   "clear <path>",
	Short: "Discard the draft stored for a path",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		key := ports.DraftKey{
			Account:    sessionRec.Account,
			Repository: sessionRec.Repository,
			Path:       args[0],
		}
		if err := store.Clear(key); err != nil {
			return err
		}
		fmt.Printf("Cleared draft for %s\n", args[0])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(draftsCmd)
	draftsCmd.AddCommand(draftsListCmd)
	draftsCmd.AddCommand(draftsClearCmd)
}
