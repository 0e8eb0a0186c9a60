package usecase

import (
	"context"
	"errors"
	"log"
	"strings"

	appdomain "jobtrack-backend/internal/application/domain"
	"jobtrack-backend/internal/application/repository"
	authdomain "jobtrack-backend/internal/auth/domain"
)

// ReminderHook regenerates auto reminders after an application changes.
type ReminderHook interface {
	ApplicationChanged(ctx context.Context, user *authdomain.User, app *appdomain.Application) error
}

// ApplicationUsecase defines application record operations.
type ApplicationUsecase interface {
	Create(ctx context.Context, user *authdomain.User, app *appdomain.Application) error
	List(userID string) ([]appdomain.Application, error)
	Get(userID, id string) (*appdomain.Application, error)
	Update(ctx context.Context, user *authdomain.User, app *appdomain.Application) (*appdomain.Application, error)
	Delete(userID, id string) error
}

type applicationUsecase struct {
	apps     repository.ApplicationRepository
	reminder ReminderHook
}

func NewApplicationUsecase(apps repository.ApplicationRepository, reminder ReminderHook) ApplicationUsecase {
	return &applicationUsecase{
		apps:     apps,
		reminder: reminder,
	}
}

func (u *applicationUsecase) Create(ctx context.Context, user *authdomain.User, app *appdomain.Application) error {
	if strings.TrimSpace(app.Company) == "" {
		return errors.New("company is required")
	}
	if app.Status == "" {
		app.Status = appdomain.StatusDraft
	}
	if !app.Status.Valid() {
		return errors.New("invalid status: " + string(app.Status))
	}

	app.UserID = user.ID
	if err := u.apps.Create(app); err != nil {
		return err
	}
	u.regenerateReminders(ctx, user, app)
	return nil
}

func (u *applicationUsecase) List(userID string) ([]appdomain.Application, error) {
	return u.apps.FindByUser(userID)
}

func (u *applicationUsecase) Get(userID, id string) (*appdomain.Application, error) {
	app, err := u.apps.FindByID(id)
	if err != nil {
		return nil, err
	}
	if app == nil || app.UserID != userID {
		return nil, nil
	}
	return app, nil
}

func (u *applicationUsecase) Update(ctx context.Context, user *authdomain.User, app *appdomain.Application) (*appdomain.Application, error) {
	existing, err := u.apps.FindByID(app.ID)
	if err != nil {
		return nil, err
	}
	if existing == nil || existing.UserID != user.ID {
		return nil, errors.New("application not found")
	}
	if app.Status != "" && !app.Status.Valid() {
		return nil, errors.New("invalid status: " + string(app.Status))
	}

	existing.Company = app.Company
	existing.Title = app.Title
	if app.Status != "" {
		existing.Status = app.Status
	}
	existing.Location = app.Location
	existing.JobType = app.JobType
	existing.Salary = app.Salary
	existing.JobLink = app.JobLink
	existing.Notes = app.Notes
	existing.DeadlineAt = app.DeadlineAt
	existing.InterviewAt = app.InterviewAt
	existing.AppliedAt = app.AppliedAt

	if err := u.apps.Save(existing); err != nil {
		return nil, err
	}
	u.regenerateReminders(ctx, user, existing)
	return existing, nil
}

func (u *applicationUsecase) Delete(userID, id string) error {
	existing, err := u.apps.FindByID(id)
	if err != nil {
		return err
	}
	if existing == nil || existing.UserID != userID {
		return errors.New("application not found")
	}
	return u.apps.Delete(id)
}

func (u *applicationUsecase) regenerateReminders(ctx context.Context, user *authdomain.User, app *appdomain.Application) {
	if u.reminder == nil {
		return
	}
	if err := u.reminder.ApplicationChanged(ctx, user, app); err != nil {
		log.Printf("[Application] Reminder regeneration failed for %s: %v", app.ID, err)
	}
}
