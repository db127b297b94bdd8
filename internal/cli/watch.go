package cli

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"planly/internal/service"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Keep printing the dashboard until interrupted",
	Long: `Reloads the saved state and prints the dashboard every watch_interval, and
once more at rollover_at each day so overdue tasks move to the new day.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		out := cmd.OutOrStdout()

		var mu sync.Mutex
		refresh := func(reason string) {
			mu.Lock()
			defer mu.Unlock()
			now := nowFunc()
			app.load(ctx, now)
			log.Printf("watch: %s", reason)
			fmt.Fprintln(out, app.reports.Build(now).String())
		}

		scheduler := service.NewScheduler(time.Local)
		if _, err := scheduler.Every(app.cfg.WatchInterval, func() { refresh("refresh") }); err != nil {
			return fmt.Errorf("schedule refresh: %w", err)
		}
		rollover, err := scheduler.Daily(app.cfg.RolloverAt, func() { refresh("daily rollover") })
		if err != nil {
			return fmt.Errorf("schedule rollover: %w", err)
		}

		fmt.Fprintln(out, app.reports.Build(nowFunc()).String())
		scheduler.Start()
		defer scheduler.Stop()
		log.Printf("watching every %s, next rollover %s", app.cfg.WatchInterval, scheduler.Next(rollover).Format(time.RFC822))

		<-ctx.Done()
		log.Println("watch stopped")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
}
