package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/akif5298/flowstate/app"
	"github.com/akif5298/flowstate/config"
	"github.com/akif5298/flowstate/core/model"
)

var (
	scheduleUser  string
	scheduleTasks []string
)

var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Generate a one-shot schedule for a user",
	RunE:  generateSchedule,
}

func init() {
	scheduleCmd.Flags().StringVarP(&scheduleUser, "user", "u", "", "user id (required)")
	scheduleCmd.Flags().StringArrayVarP(&scheduleTasks, "task", "t", nil,
		`task to place, as "name" or "name:LEVEL" (LEVEL is HIGH, MEDIUM or LOW)`)
	_ = scheduleCmd.MarkFlagRequired("user")
	rootCmd.AddCommand(scheduleCmd)
}

func generateSchedule(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	svc, err := app.New(ctx, cfg)
	if err != nil {
		return err
	}
	defer svc.Close()

	schedule, err := svc.GenerateSchedule(ctx, scheduleUser, parseTasks(scheduleTasks))
	if err != nil {
		return err
	}
	for _, item := range schedule.Items {
		fmt.Printf("%s - %s  %-30s %s\n",
			item.StartTime.Format("15:04"), item.EndTime.Format("15:04"),
			item.Title, item.Reasoning)
	}
	fmt.Println()
	fmt.Println(schedule.Summary)
	return nil
}

// parseTasks splits each "name:LEVEL" flag; a missing or unknown level leaves
// the requirement unset.
func parseTasks(specs []string) []model.Task {
	tasks := make([]model.Task, 0, len(specs))
	for _, s := range specs {
		name, level := s, ""
		if i := strings.LastIndex(s, ":"); i >= 0 {
			name, level = s[:i], s[i+1:]
		}
		tasks = append(tasks, model.Task{
			Name:        strings.TrimSpace(name),
			Requirement: model.ParseEnergyLevel(level),
		})
	}
	return tasks
}
