// Package calendar mirrors reminders to Google Calendar. Sync is a side
// effect: callers log failures and move on, a reminder is never lost because
// the calendar call failed.
package calendar

import (
	"context"
	"errors"
	"fmt"
	"time"

	reminderdomain "jobtrack-backend/internal/reminder/domain"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	calendarapi "google.golang.org/api/calendar/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

type Service struct {
	clientID     string
	clientSecret string
}

func NewService(clientID, clientSecret string) *Service {
	return &Service{
		clientID:     clientID,
		clientSecret: clientSecret,
	}
}

func (s *Service) calendarService(ctx context.Context, accessToken, refreshToken string) (*calendarapi.Service, error) {
	token := &oauth2.Token{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "Bearer",
	}

	config := &oauth2.Config{
		ClientID:     s.clientID,
		ClientSecret: s.clientSecret,
		Endpoint:     google.Endpoint,
	}

	client := oauth2.NewClient(ctx, config.TokenSource(ctx, token))

	srv, err := calendarapi.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, fmt.Errorf("unable to create Calendar service: %v", err)
	}
	return srv, nil
}

// CreateEvent inserts a calendar event for the reminder on the user's primary
// calendar and returns the created event ID. All-day events are used unless
// the reminder carries an end time.
func (s *Service) CreateEvent(ctx context.Context, accessToken, refreshToken, timezone string, reminder *reminderdomain.Reminder) (string, error) {
	srv, err := s.calendarService(ctx, accessToken, refreshToken)
	if err != nil {
		return "", err
	}

	if timezone == "" {
		timezone = "UTC"
	}

	event := &calendarapi.Event{
		Summary:     reminder.Title,
		Description: reminder.Notes,
	}

	if reminder.EndAt != nil {
		event.Start = &calendarapi.EventDateTime{
			DateTime: reminder.TriggerAt.Format(time.RFC3339),
			TimeZone: timezone,
		}
		event.End = &calendarapi.EventDateTime{
			DateTime: reminder.EndAt.Format(time.RFC3339),
			TimeZone: timezone,
		}
	} else {
		day := reminder.TriggerAt.Format("2006-01-02")
		next := reminder.TriggerAt.AddDate(0, 0, 1).Format("2006-01-02")
		event.Start = &calendarapi.EventDateTime{Date: day, TimeZone: timezone}
		event.End = &calendarapi.EventDateTime{Date: next, TimeZone: timezone}
	}

	created, err := srv.Events.Insert("primary", event).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("unable to insert calendar event: %w", err)
	}
	return created.Id, nil
}

// DeleteEvent removes a previously synced event. Missing events are not an
// error; the user may have deleted them from Calendar directly.
func (s *Service) DeleteEvent(ctx context.Context, accessToken, refreshToken, eventID string) error {
	srv, err := s.calendarService(ctx, accessToken, refreshToken)
	if err != nil {
		return err
	}
	if err := srv.Events.Delete("primary", eventID).Context(ctx).Do(); err != nil {
		var apiErr *googleapi.Error
		if errors.As(err, &apiErr) && (apiErr.Code == 404 || apiErr.Code == 410) {
			return nil
		}
		return fmt.Errorf("unable to delete calendar event %s: %w", eventID, err)
	}
	return nil
}
