package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"skillhive-agent/internal/core/domain"
)

var plansCmd = &cobra.Command{
	Use:   "plans",
	Short: "Browse and manage learning plans",
}

var plansListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all learning plans",
	RunE: func(cmd *cobra.Command, args []string) error {
		plans, err := backend.ListLearningPlans(cmd.Context())
		if err != nil {
			return err
		}
		printPlans(plans)
		return nil
	},
}

var plansMineCmd = &cobra.Command{
	Use:   "mine",
	Short: "List your own learning plans",
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := requireUser(); err != nil {
			return err
		}
		plans, err := backend.MyLearningPlans(cmd.Context())
		if err != nil {
			return err
		}
		printPlans(plans)
		return nil
	},
}

var (
	planTitle       string
	planDescription string
	planGoals       []string
	planTimeline    string
	planStatus      string
)

var plansCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a learning plan",
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := requireUser(); err != nil {
			return err
		}
		if planTitle == "" {
			return fmt.Errorf("--title is required")
		}
		created, err := backend.CreateLearningPlan(cmd.Context(), domain.LearningPlan{
			Title:       planTitle,
			Description: planDescription,
			Goals:       planGoals,
			Timeline:    planTimeline,
			Status:      planStatus,
		})
		if err != nil {
			return err
		}
		fmt.Printf("✅ Plan created: %s\n", created.ID)
		return nil
	},
}

var plansUpdateCmd = &cobra.Command{
	Use:   "update <plan-id>",
	Short: "Update a learning plan",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := requireUser(); err != nil {
			return err
		}
		existing, err := backend.GetLearningPlan(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if planTitle != "" {
			existing.Title = planTitle
		}
		if planDescription != "" {
			existing.Description = planDescription
		}
		if len(planGoals) > 0 {
			existing.Goals = planGoals
		}
		if planTimeline != "" {
			existing.Timeline = planTimeline
		}
		if planStatus != "" {
			existing.Status = planStatus
		}
		if _, err := backend.UpdateLearningPlan(cmd.Context(), *existing); err != nil {
			return err
		}
		fmt.Println("✅ Plan updated.")
		return nil
	},
}

var plansDeleteCmd = &cobra.Command{
	Use:   "delete <plan-id>",
	Short: "Delete a learning plan",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := requireUser(); err != nil {
			return err
		}
		if err := backend.DeleteLearningPlan(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Println("🗑  Plan deleted.")
		return nil
	},
}

func printPlans(plans []domain.LearningPlan) {
	if len(plans) == 0 {
		fmt.Println("(no plans)")
		return
	}
	for _, p := range plans {
		fmt.Printf("─── %s ───\n", p.Title)
		fmt.Printf("    id=%s  by=%s  status=%s  timeline=%s\n", p.ID, p.UserID, p.Status, p.Timeline)
		if p.Description != "" {
			fmt.Printf("    %s\n", p.Description)
		}
		for _, g := range p.Goals {
			fmt.Printf("    • %s\n", g)
		}
	}
}

func init() {
	for _, c := range []*cobra.Command{plansCreateCmd, plansUpdateCmd} {
		c.Flags().StringVar(&planTitle, "title", "", "plan title")
		c.Flags().StringVar(&planDescription, "description", "", "plan description")
		c.Flags().StringArrayVar(&planGoals, "goal", nil, "goal (repeatable)")
		c.Flags().StringVar(&planTimeline, "timeline", "", "timeline, e.g. '3 months'")
		c.Flags().StringVar(&planStatus, "status", "not_started", "status (not_started, in_progress, completed)")
	}

	plansCmd.AddCommand(plansListCmd, plansMineCmd, plansCreateCmd, plansUpdateCmd, plansDeleteCmd)
	rootCmd.AddCommand(plansCmd)
}
