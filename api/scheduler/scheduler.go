package scheduler

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/Ashik756/eclass-hub/databases"
	"github.com/Ashik756/eclass-hub/models"
)

// Scheduler handles periodic background jobs for upcoming live classes
type Scheduler struct {
	cron       *cron.Cron
	ClassDB    databases.ClassDatabase
	BatchDB    databases.BatchDatabase
	EnrollDB   databases.EnrollmentDatabase
	UDB        databases.UserDatabase
	LockDB     databases.SchedulerLockDatabase
	instanceID string
}

// NewScheduler creates a new scheduler instance
func NewScheduler(
	classDB databases.ClassDatabase,
	batchDB databases.BatchDatabase,
	enrollDB databases.EnrollmentDatabase,
	uDB databases.UserDatabase,
	lockDB databases.SchedulerLockDatabase,
) *Scheduler {
	// Generate a unique instance ID for this pod
	instanceID := os.Getenv("DYNO") // Heroku sets this to "web.1", "web.2", etc.
	if instanceID == "" {
		instanceID = fmt.Sprintf("instance-%d", time.Now().UnixNano())
	}

	return &Scheduler{
		cron:       cron.New(cron.WithLocation(time.UTC)),
		ClassDB:    classDB,
		BatchDB:    batchDB,
		EnrollDB:   enrollDB,
		UDB:        uDB,
		LockDB:     lockDB,
		instanceID: instanceID,
	}
}

// Start begins the scheduler with all registered jobs
func (s *Scheduler) Start() {
	// Remind enrolled students about live classes starting within the hour
	_, err := s.cron.AddFunc("*/15 * * * *", s.processClassReminders)
	if err != nil {
		zap.S().Errorw("failed to register class reminder job", "error", err)
	}

	s.cron.Start()
	zap.S().Info("Class reminder scheduler started")
}

// Stop gracefully stops the scheduler
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	zap.S().Info("Class reminder scheduler stopped")
}

// processClassReminders emails every enrolled student once per upcoming live class
func (s *Scheduler) processClassReminders() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	// Try to acquire distributed lock (10 minute TTL)
	acquired, err := s.LockDB.TryAcquireLock(ctx, "class_reminder_job", s.instanceID, 10*time.Minute)
	if err != nil {
		zap.S().Errorw("failed to acquire lock for class reminder job", "error", err)
		return
	}
	if !acquired {
		zap.S().Debug("Class reminder job already running on another instance, skipping")
		return
	}
	defer s.LockDB.ReleaseLock(ctx, "class_reminder_job", s.instanceID)

	now := time.Now()
	oneHourFromNow := now.Add(time.Hour)

	zap.S().Infow("Running class reminder job", "instance", s.instanceID)

	filter := bson.M{
		"class.classType":    models.ClassTypeLive,
		"class.reminderSent": false,
		"class.scheduledAt": bson.M{
			"$gt": primitive.NewDateTimeFromTime(now),
			"$lt": primitive.NewDateTimeFromTime(oneHourFromNow),
		},
	}

	upcoming, err := s.ClassDB.Find(ctx, filter)
	if err != nil {
		zap.S().Errorw("failed to find upcoming classes", "error", err)
		return
	}

	for _, class := range upcoming {
		s.remindClass(ctx, class)
	}
}

func (s *Scheduler) remindClass(ctx context.Context, class models.Class) {
	enrollments, err := s.EnrollDB.Find(ctx, bson.M{"batchID": class.Details.BatchID})
	if err != nil {
		zap.S().Errorw("failed to find enrollments for class reminder", "classId", class.ID.Hex(), "error", err)
		return
	}

	batchName := ""
	if batchID, idErr := primitive.ObjectIDFromHex(class.Details.BatchID); idErr == nil {
		if batch, batchErr := s.BatchDB.FindOne(ctx, bson.M{"_id": batchID}); batchErr == nil {
			batchName = batch.Details.Name
		}
	}

	startsAt := class.Details.ScheduledAt.Time().UTC().Format("15:04 MST")
	subject := fmt.Sprintf("Starting soon: %s", class.Details.Title)
	if batchName != "" {
		subject = fmt.Sprintf("Starting soon in %s: %s", batchName, class.Details.Title)
	}

	for _, enrollment := range enrollments {
		email, name := s.getUserEmail(ctx, enrollment.StudentID)
		if email == "" {
			continue
		}
		htmlContent := fmt.Sprintf(
			"<p>Hi %s,</p><p>Your live class <strong>%s</strong> starts at %s. See you there!</p>",
			name, class.Details.Title, startsAt)
		plainText := fmt.Sprintf("Your live class %q starts at %s.", class.Details.Title, startsAt)

		if err := s.sendEmail(email, name, subject, htmlContent, plainText); err != nil {
			zap.S().Errorw("failed to send class reminder email", "error", err, "studentId", enrollment.StudentID)
		}
	}

	// mark sent so a later run doesn't remind twice
	err = s.ClassDB.UpdateOne(ctx,
		bson.M{"_id": class.ID},
		bson.M{"$set": bson.M{"class.reminderSent": true}},
	)
	if err != nil {
		zap.S().Errorw("failed to mark class reminder as sent", "classId", class.ID.Hex(), "error", err)
	}
}

func (s *Scheduler) sendEmail(toEmail, toName, subject, htmlContent, plainText string) error {
	from := mail.NewEmail("eClass Hub", "no-reply@eclass-hub.com")
	to := mail.NewEmail(toName, toEmail)
	message := mail.NewSingleEmail(from, subject, to, plainText, htmlContent)
	client := sendgrid.NewSendClient(os.Getenv("SENDGRID_API_KEY"))
	response, err := client.Send(message)
	if err != nil {
		return err
	}
	if response.StatusCode >= 400 {
		zap.S().Errorw("sendgrid returned error status", "status", response.StatusCode, "body", response.Body)
	}
	return nil
}

func (s *Scheduler) getUserEmail(ctx context.Context, userID string) (email, name string) {
	user, err := s.UDB.FindOne(ctx, bson.M{"_id": userID})
	if err != nil || user.Details.Email == "" {
		return "", ""
	}
	return user.Details.Email, user.Details.Name
}
