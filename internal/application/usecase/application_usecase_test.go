package usecase

import (
	"context"
	"strconv"
	"testing"
	"time"

	appdomain "jobtrack-backend/internal/application/domain"
	authdomain "jobtrack-backend/internal/auth/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAppRepo struct {
	apps   map[string]*appdomain.Application
	nextID int
}

func newFakeAppRepo() *fakeAppRepo {
	return &fakeAppRepo{apps: make(map[string]*appdomain.Application)}
}

func (r *fakeAppRepo) Create(app *appdomain.Application) error {
	r.nextID++
	if app.ID == "" {
		app.ID = "app-" + strconv.Itoa(r.nextID)
	}
	copied := *app
	r.apps[app.ID] = &copied
	return nil
}

func (r *fakeAppRepo) Save(app *appdomain.Application) error {
	copied := *app
	r.apps[app.ID] = &copied
	return nil
}

func (r *fakeAppRepo) FindByID(id string) (*appdomain.Application, error) {
	return r.apps[id], nil
}

func (r *fakeAppRepo) FindByUser(userID string) ([]appdomain.Application, error) {
	var out []appdomain.Application
	for _, a := range r.apps {
		if a.UserID == userID {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (r *fakeAppRepo) FindByUserCompanyTitle(string, string, string) (*appdomain.Application, error) {
	return nil, nil
}

func (r *fakeAppRepo) FindFirstByUserCompany(string, string) (*appdomain.Application, error) {
	return nil, nil
}

func (r *fakeAppRepo) Delete(id string) error {
	delete(r.apps, id)
	return nil
}

type fakeReminderHook struct {
	calls int
}

func (h *fakeReminderHook) ApplicationChanged(context.Context, *authdomain.User, *appdomain.Application) error {
	h.calls++
	return nil
}

func owner() *authdomain.User {
	return &authdomain.User{ID: "user-1", Username: "alice"}
}

func TestCreate_DefaultsToDraftAndFiresReminderHook(t *testing.T) {
	repo := newFakeAppRepo()
	hook := &fakeReminderHook{}
	uc := NewApplicationUsecase(repo, hook)

	app := &appdomain.Application{Company: "Google", Title: "Software Engineer"}
	require.NoError(t, uc.Create(context.Background(), owner(), app))

	assert.Equal(t, appdomain.StatusDraft, app.Status)
	assert.Equal(t, "user-1", app.UserID)
	assert.Equal(t, 1, hook.calls)
}

func TestCreate_RejectsEmptyCompanyAndBadStatus(t *testing.T) {
	uc := NewApplicationUsecase(newFakeAppRepo(), nil)

	err := uc.Create(context.Background(), owner(), &appdomain.Application{})
	assert.Error(t, err)

	err = uc.Create(context.Background(), owner(), &appdomain.Application{Company: "Google", Status: "GHOSTED"})
	assert.Error(t, err)
}

func TestUpdate_PreservesOwnershipAndRegeneratesReminders(t *testing.T) {
	repo := newFakeAppRepo()
	hook := &fakeReminderHook{}
	uc := NewApplicationUsecase(repo, hook)

	app := &appdomain.Application{Company: "Google", Title: "Software Engineer", Status: appdomain.StatusApplied}
	require.NoError(t, uc.Create(context.Background(), owner(), app))

	deadline := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)
	updated, err := uc.Update(context.Background(), owner(), &appdomain.Application{
		ID:         app.ID,
		Company:    "Google",
		Title:      "Staff Engineer",
		Status:     appdomain.StatusInterview,
		DeadlineAt: &deadline,
	})
	require.NoError(t, err)
	assert.Equal(t, "Staff Engineer", updated.Title)
	assert.Equal(t, appdomain.StatusInterview, updated.Status)
	assert.Equal(t, 2, hook.calls)
}

func TestUpdate_RejectsForeignRecord(t *testing.T) {
	repo := newFakeAppRepo()
	uc := NewApplicationUsecase(repo, nil)

	app := &appdomain.Application{Company: "Google"}
	require.NoError(t, uc.Create(context.Background(), owner(), app))

	intruder := owner()
	intruder.ID = "user-2"
	_, err := uc.Update(context.Background(), intruder, &appdomain.Application{ID: app.ID, Company: "Evil"})
	assert.Error(t, err)
}

func TestGet_ReturnsNilForForeignRecord(t *testing.T) {
	repo := newFakeAppRepo()
	uc := NewApplicationUsecase(repo, nil)

	app := &appdomain.Application{Company: "Google"}
	require.NoError(t, uc.Create(context.Background(), owner(), app))

	got, err := uc.Get("user-2", app.ID)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestDelete_RemovesOwnedRecordOnly(t *testing.T) {
	repo := newFakeAppRepo()
	uc := NewApplicationUsecase(repo, nil)

	app := &appdomain.Application{Company: "Google"}
	require.NoError(t, uc.Create(context.Background(), owner(), app))

	assert.Error(t, uc.Delete("user-2", app.ID))
	require.NoError(t, uc.Delete("user-1", app.ID))
	assert.Empty(t, repo.apps)
}
