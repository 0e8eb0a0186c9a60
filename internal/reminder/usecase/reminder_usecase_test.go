package usecase

import (
	"context"
	"strconv"
	"testing"
	"time"

	appdomain "jobtrack-backend/internal/application/domain"
	authdomain "jobtrack-backend/internal/auth/domain"
	reminderdomain "jobtrack-backend/internal/reminder/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeReminderRepo struct {
	reminders map[string]*reminderdomain.Reminder
	nextID    int
}

func newFakeReminderRepo() *fakeReminderRepo {
	return &fakeReminderRepo{reminders: make(map[string]*reminderdomain.Reminder)}
}

func (r *fakeReminderRepo) Create(reminder *reminderdomain.Reminder) error {
	r.nextID++
	if reminder.ID == "" {
		reminder.ID = "rem-" + strconv.Itoa(r.nextID)
	}
	copied := *reminder
	r.reminders[reminder.ID] = &copied
	return nil
}

func (r *fakeReminderRepo) Save(reminder *reminderdomain.Reminder) error {
	copied := *reminder
	r.reminders[reminder.ID] = &copied
	return nil
}

func (r *fakeReminderRepo) FindByID(id string) (*reminderdomain.Reminder, error) {
	return r.reminders[id], nil
}

func (r *fakeReminderRepo) FindByUser(userID string) ([]reminderdomain.Reminder, error) {
	var out []reminderdomain.Reminder
	for _, rem := range r.reminders {
		if rem.UserID == userID {
			out = append(out, *rem)
		}
	}
	return out, nil
}

func (r *fakeReminderRepo) FindByApplicationAndKind(applicationID, kind string) (*reminderdomain.Reminder, error) {
	for _, rem := range r.reminders {
		if rem.ApplicationID == applicationID && rem.Kind == kind {
			return rem, nil
		}
	}
	return nil, nil
}

func (r *fakeReminderRepo) Delete(id string) error {
	delete(r.reminders, id)
	return nil
}

func (r *fakeReminderRepo) DeleteByApplication(applicationID string) error {
	for id, rem := range r.reminders {
		if rem.ApplicationID == applicationID {
			delete(r.reminders, id)
		}
	}
	return nil
}

type fakeCalendar struct {
	created []string
	deleted []string
	nextID  int
}

func (c *fakeCalendar) CreateEvent(_ context.Context, _, _, _ string, reminder *reminderdomain.Reminder) (string, error) {
	c.nextID++
	id := "event-" + strconv.Itoa(c.nextID)
	c.created = append(c.created, reminder.Title)
	return id, nil
}

func (c *fakeCalendar) DeleteEvent(_ context.Context, _, _, eventID string) error {
	c.deleted = append(c.deleted, eventID)
	return nil
}

func calendarUser() *authdomain.User {
	return &authdomain.User{
		ID:                    "user-1",
		Username:              "alice",
		GoogleAccessToken:     "access",
		GoogleRefreshToken:    "refresh",
		GoogleCalendarEnabled: true,
	}
}

func TestApplicationChanged_CreatesDeadlineReminder(t *testing.T) {
	repo := newFakeReminderRepo()
	calendar := &fakeCalendar{}
	uc := NewReminderUsecase(repo, calendar)

	deadline := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)
	app := &appdomain.Application{ID: "app-1", Company: "Google", Title: "Software Engineer", DeadlineAt: &deadline}

	require.NoError(t, uc.ApplicationChanged(context.Background(), calendarUser(), app))

	reminder, err := repo.FindByApplicationAndKind("app-1", reminderdomain.KindDeadline)
	require.NoError(t, err)
	require.NotNil(t, reminder)
	assert.Equal(t, "Google - Software Engineer", reminder.Title)
	assert.Equal(t, deadline, reminder.TriggerAt)
	assert.Equal(t, "blue", reminder.Color)
	assert.NotEmpty(t, reminder.GoogleCalendarEventID)
	assert.Len(t, calendar.created, 1)
}

func TestApplicationChanged_CreatesInterviewReminderWithEnd(t *testing.T) {
	repo := newFakeReminderRepo()
	uc := NewReminderUsecase(repo, nil)

	interview := time.Date(2026, 9, 20, 14, 0, 0, 0, time.UTC)
	app := &appdomain.Application{ID: "app-1", Company: "Stripe", Title: "Backend Developer", InterviewAt: &interview}

	require.NoError(t, uc.ApplicationChanged(context.Background(), calendarUser(), app))

	reminder, _ := repo.FindByApplicationAndKind("app-1", reminderdomain.KindInterview)
	require.NotNil(t, reminder)
	assert.Equal(t, "Interview - Backend Developer at Stripe", reminder.Title)
	require.NotNil(t, reminder.EndAt)
	assert.Equal(t, interview.Add(time.Hour), *reminder.EndAt)
	assert.Equal(t, "orange", reminder.Color)
}

func TestApplicationChanged_UpsertDoesNotDuplicate(t *testing.T) {
	repo := newFakeReminderRepo()
	uc := NewReminderUsecase(repo, nil)

	deadline := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)
	app := &appdomain.Application{ID: "app-1", Company: "Google", Title: "Software Engineer", DeadlineAt: &deadline}
	user := calendarUser()

	require.NoError(t, uc.ApplicationChanged(context.Background(), user, app))

	later := deadline.AddDate(0, 0, 7)
	app.DeadlineAt = &later
	require.NoError(t, uc.ApplicationChanged(context.Background(), user, app))

	assert.Len(t, repo.reminders, 1)
	reminder, _ := repo.FindByApplicationAndKind("app-1", reminderdomain.KindDeadline)
	assert.Equal(t, later, reminder.TriggerAt)
}

func TestApplicationChanged_NoDatesNoReminders(t *testing.T) {
	repo := newFakeReminderRepo()
	uc := NewReminderUsecase(repo, nil)

	app := &appdomain.Application{ID: "app-1", Company: "Google", Title: "Software Engineer"}
	require.NoError(t, uc.ApplicationChanged(context.Background(), calendarUser(), app))
	assert.Empty(t, repo.reminders)
}

func TestCreate_DefaultsToFollowupKind(t *testing.T) {
	repo := newFakeReminderRepo()
	uc := NewReminderUsecase(repo, nil)

	reminder := &reminderdomain.Reminder{Title: "Send thank-you note", TriggerAt: time.Now()}
	require.NoError(t, uc.Create(context.Background(), calendarUser(), reminder))
	assert.Equal(t, reminderdomain.KindFollowup, reminder.Kind)
	assert.Equal(t, "user-1", reminder.UserID)
}

func TestCreate_RequiresTitle(t *testing.T) {
	uc := NewReminderUsecase(newFakeReminderRepo(), nil)
	err := uc.Create(context.Background(), calendarUser(), &reminderdomain.Reminder{})
	assert.Error(t, err)
}

func TestCreate_SkipsCalendarWhenIntegrationOff(t *testing.T) {
	repo := newFakeReminderRepo()
	calendar := &fakeCalendar{}
	uc := NewReminderUsecase(repo, calendar)

	user := calendarUser()
	user.GoogleCalendarEnabled = false

	reminder := &reminderdomain.Reminder{Title: "Follow up", TriggerAt: time.Now()}
	require.NoError(t, uc.Create(context.Background(), user, reminder))
	assert.Empty(t, calendar.created)
	assert.Empty(t, reminder.GoogleCalendarEventID)
}

func TestDelete_RemovesCalendarEvent(t *testing.T) {
	repo := newFakeReminderRepo()
	calendar := &fakeCalendar{}
	uc := NewReminderUsecase(repo, calendar)

	user := calendarUser()
	reminder := &reminderdomain.Reminder{Title: "Follow up", TriggerAt: time.Now()}
	require.NoError(t, uc.Create(context.Background(), user, reminder))
	require.NotEmpty(t, reminder.GoogleCalendarEventID)

	require.NoError(t, uc.Delete(context.Background(), user, reminder.ID))
	assert.Empty(t, repo.reminders)
	assert.Equal(t, []string{reminder.GoogleCalendarEventID}, calendar.deleted)
}

func TestDelete_RejectsForeignReminder(t *testing.T) {
	repo := newFakeReminderRepo()
	uc := NewReminderUsecase(repo, nil)

	owner := calendarUser()
	reminder := &reminderdomain.Reminder{Title: "Mine", TriggerAt: time.Now()}
	require.NoError(t, uc.Create(context.Background(), owner, reminder))

	intruder := calendarUser()
	intruder.ID = "user-2"
	err := uc.Delete(context.Background(), intruder, reminder.ID)
	assert.Error(t, err)
	assert.Len(t, repo.reminders, 1)
}
