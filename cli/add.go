package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mugit-vcs/mugit/internal/project"
	"github.com/mugit-vcs/mugit/internal/workspace"
)

var addCmd = &cobra.Command{
	Use:   "add <path>",
	Short: "Stage working-tree changes",
	Long:  "Scans the given path for new, modified, and deleted files relative to the staging index, writes blobs for the changed contents, and rewrites the index.",
	Args:  cobra.ExactArgs(1),
	RunE:  runAdd,
}

func runAdd(cmd *cobra.Command, args []string) error {
	projRoot, err := project.FindRoot()
	if err != nil {
		return err
	}
	if _, err := os.Stat(args[0]); err != nil {
		return fmt.Errorf("could not fetch file %s: %w", args[0], err)
	}
	searchRoot, err := project.Rel(args[0], projRoot)
	if err != nil {
		return err
	}

	_, err = workspace.Stage(projRoot, searchRoot)
	return err
}
