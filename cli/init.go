package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/mugit-vcs/mugit/internal/project"
	"github.com/mugit-vcs/mugit/internal/refs"
)

var initCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Initialize a new repository",
	Long:  "Creates the .git skeleton (HEAD, objects/, refs/) under the given path, defaulting to the current directory. Re-running on an existing repository leaves existing files untouched and creates only what is missing.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runInit,
}

func runInit(cmd *cobra.Command, args []string) error {
	path := "."
	if len(args) == 1 {
		path = args[0]
	}

	reinit, err := project.Init(path, refs.DefaultBranch)
	if err != nil {
		return err
	}

	gitDir := filepath.Join(path, ".git")
	if reinit {
		fmt.Printf("reinitialize git to %s\n", gitDir)
	} else {
		fmt.Printf("initialize git to %s\n", gitDir)
	}
	return nil
}
