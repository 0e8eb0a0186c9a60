// Package usecase manages reminders: user-created followups plus the
// DEADLINE and INTERVIEW reminders derived automatically from application
// fields. It is also the notification sink for the email scanner.
package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	appdomain "jobtrack-backend/internal/application/domain"
	authdomain "jobtrack-backend/internal/auth/domain"
	reminderdomain "jobtrack-backend/internal/reminder/domain"
	"jobtrack-backend/internal/reminder/repository"
)

// CalendarClient mirrors reminders to Google Calendar. Nil-able; calendar
// sync is always best-effort.
type CalendarClient interface {
	CreateEvent(ctx context.Context, accessToken, refreshToken, timezone string, reminder *reminderdomain.Reminder) (string, error)
	DeleteEvent(ctx context.Context, accessToken, refreshToken, eventID string) error
}

// ReminderUsecase defines reminder operations.
type ReminderUsecase interface {
	Create(ctx context.Context, user *authdomain.User, reminder *reminderdomain.Reminder) error
	List(userID string) ([]reminderdomain.Reminder, error)
	Update(ctx context.Context, user *authdomain.User, reminder *reminderdomain.Reminder) error
	Delete(ctx context.Context, user *authdomain.User, id string) error

	// ApplicationChanged regenerates the DEADLINE and INTERVIEW reminders
	// for an application. Called by the scanner and by application CRUD.
	ApplicationChanged(ctx context.Context, user *authdomain.User, app *appdomain.Application) error
}

type reminderUsecase struct {
	reminders repository.ReminderRepository
	calendar  CalendarClient
}

func NewReminderUsecase(reminders repository.ReminderRepository, calendar CalendarClient) ReminderUsecase {
	return &reminderUsecase{
		reminders: reminders,
		calendar:  calendar,
	}
}

func (u *reminderUsecase) Create(ctx context.Context, user *authdomain.User, reminder *reminderdomain.Reminder) error {
	if reminder.Title == "" {
		return errors.New("reminder title is required")
	}
	if reminder.Kind == "" {
		reminder.Kind = reminderdomain.KindFollowup
	}
	reminder.UserID = user.ID
	if err := u.reminders.Create(reminder); err != nil {
		return err
	}
	u.syncToCalendar(ctx, user, reminder)
	return nil
}

func (u *reminderUsecase) List(userID string) ([]reminderdomain.Reminder, error) {
	return u.reminders.FindByUser(userID)
}

func (u *reminderUsecase) Update(ctx context.Context, user *authdomain.User, reminder *reminderdomain.Reminder) error {
	existing, err := u.reminders.FindByID(reminder.ID)
	if err != nil {
		return err
	}
	if existing == nil || existing.UserID != user.ID {
		return errors.New("reminder not found")
	}

	existing.Title = reminder.Title
	existing.Notes = reminder.Notes
	existing.Color = reminder.Color
	existing.TriggerAt = reminder.TriggerAt
	existing.EndAt = reminder.EndAt
	if err := u.reminders.Save(existing); err != nil {
		return err
	}

	// Recreate the calendar event rather than patching it in place.
	if u.calendar != nil && user.GoogleCalendarEnabled && existing.GoogleCalendarEventID != "" {
		if err := u.calendar.DeleteEvent(ctx, user.GoogleAccessToken, user.GoogleRefreshToken, existing.GoogleCalendarEventID); err != nil {
			log.Printf("[Reminder] Failed to remove stale calendar event %s: %v", existing.GoogleCalendarEventID, err)
		}
		existing.GoogleCalendarEventID = ""
		u.syncToCalendar(ctx, user, existing)
	}
	return nil
}

func (u *reminderUsecase) Delete(ctx context.Context, user *authdomain.User, id string) error {
	existing, err := u.reminders.FindByID(id)
	if err != nil {
		return err
	}
	if existing == nil || existing.UserID != user.ID {
		return errors.New("reminder not found")
	}

	if u.calendar != nil && user.GoogleCalendarEnabled && existing.GoogleCalendarEventID != "" {
		if err := u.calendar.DeleteEvent(ctx, user.GoogleAccessToken, user.GoogleRefreshToken, existing.GoogleCalendarEventID); err != nil {
			log.Printf("[Reminder] Failed to delete calendar event %s: %v", existing.GoogleCalendarEventID, err)
		}
	}
	return u.reminders.Delete(id)
}

func (u *reminderUsecase) ApplicationChanged(ctx context.Context, user *authdomain.User, app *appdomain.Application) error {
	if app.DeadlineAt != nil {
		if err := u.upsertDeadlineReminder(ctx, user, app); err != nil {
			return err
		}
	}
	if app.InterviewAt != nil {
		if err := u.upsertInterviewReminder(ctx, user, app); err != nil {
			return err
		}
	}
	return nil
}

func (u *reminderUsecase) upsertDeadlineReminder(ctx context.Context, user *authdomain.User, app *appdomain.Application) error {
	reminder, err := u.reminders.FindByApplicationAndKind(app.ID, reminderdomain.KindDeadline)
	if err != nil {
		return err
	}

	isNew := reminder == nil
	if isNew {
		reminder = &reminderdomain.Reminder{
			UserID:        user.ID,
			ApplicationID: app.ID,
			Kind:          reminderdomain.KindDeadline,
		}
	}
	reminder.Title = fmt.Sprintf("%s - %s", app.Company, app.Title)
	reminder.Notes = fmt.Sprintf("Application deadline for %s position at %s", app.Title, app.Company)
	reminder.Color = "blue"
	reminder.TriggerAt = *app.DeadlineAt
	reminder.EndAt = nil

	if isNew {
		if err := u.reminders.Create(reminder); err != nil {
			return err
		}
		u.syncToCalendar(ctx, user, reminder)
		return nil
	}
	return u.reminders.Save(reminder)
}

func (u *reminderUsecase) upsertInterviewReminder(ctx context.Context, user *authdomain.User, app *appdomain.Application) error {
	reminder, err := u.reminders.FindByApplicationAndKind(app.ID, reminderdomain.KindInterview)
	if err != nil {
		return err
	}

	isNew := reminder == nil
	if isNew {
		reminder = &reminderdomain.Reminder{
			UserID:        user.ID,
			ApplicationID: app.ID,
			Kind:          reminderdomain.KindInterview,
		}
	}
	end := app.InterviewAt.Add(time.Hour)
	reminder.Title = fmt.Sprintf("Interview - %s at %s", app.Title, app.Company)
	reminder.Notes = fmt.Sprintf("Interview for %s position at %s", app.Title, app.Company)
	reminder.Color = "orange"
	reminder.TriggerAt = *app.InterviewAt
	reminder.EndAt = &end

	if isNew {
		if err := u.reminders.Create(reminder); err != nil {
			return err
		}
		u.syncToCalendar(ctx, user, reminder)
		return nil
	}
	return u.reminders.Save(reminder)
}

// syncToCalendar mirrors a reminder to Google Calendar when the integration
// is on. Failures only log; the reminder itself is already persisted.
func (u *reminderUsecase) syncToCalendar(ctx context.Context, user *authdomain.User, reminder *reminderdomain.Reminder) {
	if u.calendar == nil || !user.GoogleCalendarEnabled || user.GoogleAccessToken == "" {
		return
	}

	eventID, err := u.calendar.CreateEvent(ctx, user.GoogleAccessToken, user.GoogleRefreshToken, user.Timezone, reminder)
	if err != nil {
		log.Printf("[Reminder] Calendar sync failed for reminder %s: %v", reminder.ID, err)
		return
	}
	reminder.GoogleCalendarEventID = eventID
	if err := u.reminders.Save(reminder); err != nil {
		log.Printf("[Reminder] Failed to store calendar event ID for reminder %s: %v", reminder.ID, err)
	}
	log.Printf("[Reminder] Synced reminder %s to Google Calendar (event %s)", reminder.ID, eventID)
}
