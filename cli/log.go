package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mugit-vcs/mugit/internal/colors"
	"github.com/mugit-vcs/mugit/internal/history"
	"github.com/mugit-vcs/mugit/internal/project"
	"github.com/mugit-vcs/mugit/internal/refs"
)

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "Show commit history",
	Long:  "Walks the commit graph from HEAD and prints every reachable commit, newest first.",
	RunE:  runLog,
}

func runLog(cmd *cobra.Command, args []string) error {
	projRoot, err := project.FindRoot()
	if err != nil {
		return err
	}
	head, err := refs.Resolve(projRoot)
	if err != nil {
		return err
	}
	if !head.HasTip {
		return history.ErrNoCommits
	}

	walker := history.NewWalker(projRoot)
	defer walker.Close()

	entries, err := walker.Log(head.Tip)
	if err != nil {
		return err
	}

	var highlight func(string) string
	if colors.IsColorEnabled() {
		highlight = colors.Yellow
	}
	out := history.Render(entries, head.Tip, nil, highlight)
	_, err = os.Stdout.WriteString(out)
	if err != nil {
		return fmt.Errorf("write log: %w", err)
	}
	return nil
}
