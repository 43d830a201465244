// Command deadline-reminders sends batched reminder emails for approaching
// semester deadlines. Run it once a day from cron.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"ims-api/config"
	"ims-api/services"

	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	config.InitDB()

	var (
		dateRaw string
		dryRun  bool
	)
	flag.StringVar(&dateRaw, "date", "", "run as if today were this date, YYYY-MM-DD (optional)")
	flag.BoolVar(&dryRun, "dry-run", false, "compute reminders without sending emails")
	flag.Parse()

	now := time.Now()
	if dateRaw != "" {
		parsed, err := time.ParseInLocation("2006-01-02", dateRaw, time.Local)
		if err != nil {
			log.Fatalf("invalid date '%s': %v", dateRaw, err)
		}
		now = parsed
	}

	service := services.NewReminderService(nil)
	if dryRun {
		service.SetSender(func(messages []config.BulkMessage) error {
			for _, msg := range messages {
				log.Printf("dry-run: would send '%s' to %s", msg.Subject, msg.To)
			}
			return nil
		})
	}

	summary, err := service.RunForDate(context.Background(), now)
	if err != nil {
		log.Fatalf("reminder run failed: %v", err)
	}

	fmt.Printf("Semesters checked: %d (errors: %d)\n", summary.SemestersChecked, summary.SemestersWithError)
	fmt.Printf("Categories matched: %d, emails sent: %d\n", summary.CategoriesMatched, summary.EmailsSent)

	if dryRun {
		fmt.Println("Dry run complete. No emails were sent.")
	}

	if summary.SemestersWithError > 0 {
		os.Exit(2)
	}
}
