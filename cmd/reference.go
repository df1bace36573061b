/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package cmd

import (
	"fmt"

	"github.com/josephgoksu/TaskBoard/internal/ui"
	"github.com/spf13/cobra"
)

var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "List the users tasks can be assigned to",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		if err := s.load(cmd.Context()); err != nil {
			return fmt.Errorf("load users: %w", err)
		}
		users := s.ctrl.Users()
		if isJSON() {
			return printJSON(cmd.OutOrStdout(), users)
		}
		ui.RenderUsers(cmd.OutOrStdout(), users)
		return nil
	},
}

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List task categories",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		if err := s.load(cmd.Context()); err != nil {
			return fmt.Errorf("load categories: %w", err)
		}
		categories := s.ctrl.Categories()
		if isJSON() {
			return printJSON(cmd.OutOrStdout(), categories)
		}
		ui.RenderCategories(cmd.OutOrStdout(), categories)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(usersCmd)
	rootCmd.AddCommand(categoriesCmd)
}
