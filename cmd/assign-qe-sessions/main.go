// Command assign-qe-sessions distributes a semester's qualifying exams over
// timetable sessions, minimizing student and examiner clashes.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"

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
		semesterID int
		sessions   int
	)
	flag.IntVar(&semesterID, "semester-id", 0, "semester to assign")
	flag.IntVar(&sessions, "sessions", 4, "number of timetable sessions")
	flag.Parse()

	if semesterID <= 0 {
		log.Fatal("semester-id is required")
	}

	summary, err := services.NewTimetableService(nil).AssignForSemester(context.Background(), semesterID, sessions)
	if err != nil {
		log.Fatalf("session assignment failed: %v", err)
	}

	fmt.Printf("Exams assigned: %d over %d sessions (clashes: %d)\n",
		summary.ExamsAssigned, summary.Sessions, summary.Clashes)
}
