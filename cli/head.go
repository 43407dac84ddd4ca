package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mugit-vcs/mugit/internal/project"
	"github.com/mugit-vcs/mugit/internal/refs"
)

var headCmd = &cobra.Command{
	Use:   "head",
	Short: "Show the resolved HEAD reference",
	RunE:  runHead,
}

func runHead(cmd *cobra.Command, args []string) error {
	projRoot, err := project.FindRoot()
	if err != nil {
		return err
	}
	head, err := refs.Resolve(projRoot)
	if err != nil {
		return err
	}

	branch := head.Branch
	if branch == "" {
		branch = "(none)"
	}
	tip := "(none)"
	if head.HasTip {
		tip = head.Tip.Hex()
	}
	fmt.Printf("branch:   %s\ntip:      %s\ndetached: %v\n", branch, tip, head.Detached)
	return nil
}
