package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/mugit-vcs/mugit/internal/commit"
	"github.com/mugit-vcs/mugit/internal/config"
	"github.com/mugit-vcs/mugit/internal/index"
	"github.com/mugit-vcs/mugit/internal/project"
	"github.com/mugit-vcs/mugit/internal/refs"
)

var commitCmd = &cobra.Command{
	Use:   "commit -m <message>",
	Short: "Record the staged snapshot as a commit",
	Long:  "Builds tree objects from the staging index, writes a commit pointing at them, and advances the current branch tip.",
	RunE:  runCommit,
}

var commitMessage string

func init() {
	commitCmd.Flags().StringVarP(&commitMessage, "message", "m", "", "commit message")
	commitCmd.MarkFlagRequired("message")
}

func runCommit(cmd *cobra.Command, args []string) error {
	projRoot, err := project.FindRoot()
	if err != nil {
		return err
	}
	cfg, err := config.Load(projRoot)
	if err != nil {
		return err
	}
	head, err := refs.Resolve(projRoot)
	if err != nil {
		return err
	}
	idx, err := index.FromFile(projRoot)
	if err != nil {
		return err
	}

	_, err = commit.Create(projRoot, idx, head, cfg.User, commitMessage, time.Now())
	return err
}
