// Package usecase holds the reconciliation engine: it turns unread job-related
// emails into application record creations and status transitions, tracking
// per-user watermarks so each scan tick stays cheap and replay-safe.
package usecase

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	appdomain "jobtrack-backend/internal/application/domain"
	apprepo "jobtrack-backend/internal/application/repository"
	authdomain "jobtrack-backend/internal/auth/domain"
	authrepo "jobtrack-backend/internal/auth/repository"
	scandomain "jobtrack-backend/internal/scanner/domain"
	"jobtrack-backend/internal/scanner/parser"
	scanrepo "jobtrack-backend/internal/scanner/repository"

	"golang.org/x/oauth2"
)

// searchQuery matches unread emails with job-related keywords in subject or
// body. Gmail searches both when no field prefix is given.
const searchQuery = "is:unread (application OR job OR interview OR offer OR rejected OR position OR role OR hiring)"

// MailboxClient is the mailbox surface the engine needs: bounded search,
// fetch, and credential-failure detection.
type MailboxClient interface {
	SearchMessages(ctx context.Context, accessToken, refreshToken, query string, maxResults int64, onTokenRefresh scandomain.TokenUpdateFunc) ([]scandomain.MessageRef, error)
	FetchMessage(ctx context.Context, accessToken, refreshToken, messageID string, onTokenRefresh scandomain.TokenUpdateFunc) (*scandomain.MessageEnvelope, error)
	IsAuthError(err error) bool
}

// FallbackExtractor is consulted when the regex cascade leaves a sentinel.
type FallbackExtractor interface {
	Available() bool
	Extract(ctx context.Context, sender, subject, body string) (company, title string)
}

// NotificationSink is told about every record the engine creates or updates,
// so downstream concerns (auto reminders, calendar sync) can react. Sink
// failures are logged and never fail the pass.
type NotificationSink interface {
	ApplicationChanged(ctx context.Context, user *authdomain.User, app *appdomain.Application) error
}

// Outcome classifies what the engine did with one message.
type Outcome string

const (
	OutcomeCreated   Outcome = "created"
	OutcomeUpdated   Outcome = "updated"
	OutcomeUnchanged Outcome = "unchanged"
	OutcomeDuplicate Outcome = "duplicate"
	OutcomeIgnored   Outcome = "ignored"
	OutcomeSkipped   Outcome = "skipped"
	OutcomeError     Outcome = "error"
)

// ItemResult records the outcome for one fetched message.
type ItemResult struct {
	MessageID string
	Outcome   Outcome
	Company   string
	Title     string
	Status    appdomain.Status
	Err       error
}

// Report summarizes one scan pass for one user.
type Report struct {
	UserID   string
	Items    []ItemResult
	MaxSeen  int64
	Advanced bool
}

// Scanner drives scan passes across all eligible users.
type Scanner struct {
	users      authrepo.UserRepository
	apps       apprepo.ApplicationRepository
	syncStates scanrepo.SyncStateRepository
	mailbox    MailboxClient
	fallback   FallbackExtractor
	sink       NotificationSink

	activeUserWindow time.Duration
	batchSize        int64

	mu       sync.Mutex
	inFlight map[string]bool
}

func NewScanner(
	users authrepo.UserRepository,
	apps apprepo.ApplicationRepository,
	syncStates scanrepo.SyncStateRepository,
	mailbox MailboxClient,
	fallback FallbackExtractor,
	sink NotificationSink,
	activeUserWindow time.Duration,
	batchSize int64,
) *Scanner {
	return &Scanner{
		users:            users,
		apps:             apps,
		syncStates:       syncStates,
		mailbox:          mailbox,
		fallback:         fallback,
		sink:             sink,
		activeUserWindow: activeUserWindow,
		batchSize:        batchSize,
		inFlight:         make(map[string]bool),
	}
}

// ScanAll runs one scan pass for every eligible user. Passes run concurrently
// and independently; one user's failure never affects another's.
func (s *Scanner) ScanAll(ctx context.Context) []Report {
	users, err := s.users.FindGmailEnabled(time.Now().Add(-s.activeUserWindow))
	if err != nil {
		log.Printf("[Scanner] Failed to list eligible users: %v", err)
		return nil
	}
	if len(users) == 0 {
		return nil
	}

	var (
		wg       sync.WaitGroup
		reportMu sync.Mutex
		reports  []Report
	)
	for i := range users {
		user := users[i]
		wg.Add(1)
		go func() {
			defer wg.Done()
			report, err := s.ScanUser(ctx, &user)
			if err != nil {
				log.Printf("[Scanner] Pass failed for user %s: %v", user.Username, err)
			}
			if report != nil {
				reportMu.Lock()
				reports = append(reports, *report)
				reportMu.Unlock()
			}
		}()
	}
	wg.Wait()
	return reports
}

// ScanUser executes one scan pass for a single user. At most one pass per
// user runs at a time; overlapping calls return immediately.
func (s *Scanner) ScanUser(ctx context.Context, user *authdomain.User) (*Report, error) {
	if !s.begin(user.ID) {
		return nil, nil
	}
	defer s.end(user.ID)

	if user.GoogleAccessToken == "" || user.GoogleRefreshToken == "" {
		return nil, s.disableIntegration(user, "missing stored tokens")
	}

	watermark, err := s.syncStates.Load(user.ID)
	if err != nil {
		return nil, fmt.Errorf("load sync state: %w", err)
	}

	onTokenRefresh := s.tokenPersister(user)

	refs, err := s.mailbox.SearchMessages(ctx, user.GoogleAccessToken, user.GoogleRefreshToken, searchQuery, s.batchSize, onTokenRefresh)
	if err != nil {
		if s.mailbox.IsAuthError(err) {
			return nil, s.disableIntegration(user, err.Error())
		}
		return nil, fmt.Errorf("search messages: %w", err)
	}
	if len(refs) == 0 {
		return &Report{UserID: user.ID, MaxSeen: watermark}, nil
	}

	report := &Report{UserID: user.ID, MaxSeen: watermark}
	for _, ref := range refs {
		item := s.processMessage(ctx, user, ref.ID, onTokenRefresh, report)
		report.Items = append(report.Items, item)
		if item.Outcome == OutcomeError && item.Err != nil && s.mailbox.IsAuthError(item.Err) {
			return report, s.disableIntegration(user, item.Err.Error())
		}
	}

	if report.MaxSeen > watermark {
		if err := s.syncStates.Advance(user.ID, report.MaxSeen); err != nil {
			return report, fmt.Errorf("advance watermark: %w", err)
		}
		report.Advanced = true
	}
	return report, nil
}

// processMessage handles one message end to end. Faults are contained here so
// a bad message never aborts the rest of the pass.
func (s *Scanner) processMessage(ctx context.Context, user *authdomain.User, messageID string, onTokenRefresh scandomain.TokenUpdateFunc, report *Report) ItemResult {
	envelope, err := s.mailbox.FetchMessage(ctx, user.GoogleAccessToken, user.GoogleRefreshToken, messageID, onTokenRefresh)
	if err != nil {
		log.Printf("[Scanner] Failed to fetch message %s for %s: %v", messageID, user.Username, err)
		return ItemResult{MessageID: messageID, Outcome: OutcomeError, Err: err}
	}

	if envelope.InternalDate > report.MaxSeen {
		report.MaxSeen = envelope.InternalDate
	}

	processed, err := s.alreadyProcessed(user.ID, envelope.ID)
	if err != nil {
		return ItemResult{MessageID: envelope.ID, Outcome: OutcomeError, Err: err}
	}
	if processed {
		return ItemResult{MessageID: envelope.ID, Outcome: OutcomeDuplicate}
	}

	status, ok := parser.Classify(envelope.Subject, envelope.Body)
	if !ok {
		// Leave unread, touch nothing; the internalDate still counts
		// toward the watermark so the message is not re-fetched forever.
		return ItemResult{MessageID: envelope.ID, Outcome: OutcomeIgnored}
	}

	company, title := s.extractFields(ctx, envelope)

	app, err := s.lookupRecord(user.ID, company, title)
	if err != nil {
		return ItemResult{MessageID: envelope.ID, Outcome: OutcomeError, Err: err}
	}

	if app != nil {
		return s.reconcileExisting(ctx, user, app, status, envelope)
	}
	return s.createRecord(ctx, user, company, title, status, envelope)
}

// extractFields runs the regex cascade and escalates to the fallback
// extractor when a sentinel survives. A fallback value only fills in the
// field that was unknown.
func (s *Scanner) extractFields(ctx context.Context, envelope *scandomain.MessageEnvelope) (string, string) {
	company := parser.ExtractCompany(envelope.From, envelope.Subject, envelope.Body)
	title := parser.ExtractTitle(envelope.Subject, envelope.Body)

	if (company == parser.UnknownCompany || title == parser.UnknownTitle) && s.fallback != nil && s.fallback.Available() {
		llmCompany, llmTitle := s.fallback.Extract(ctx, envelope.From, envelope.Subject, envelope.Body)
		if company == parser.UnknownCompany && llmCompany != "" {
			company = llmCompany
		}
		if title == parser.UnknownTitle && llmTitle != "" {
			title = llmTitle
		}
	}
	return company, title
}

// lookupRecord finds the record a message should reconcile against: exact
// company+title match first, then any record for the company. Titles drift
// across an email thread; the company is the stable key.
func (s *Scanner) lookupRecord(userID, company, title string) (*appdomain.Application, error) {
	if title != parser.UnknownTitle {
		app, err := s.apps.FindByUserCompanyTitle(userID, company, title)
		if err != nil {
			return nil, err
		}
		if app != nil {
			return app, nil
		}
	}
	return s.apps.FindFirstByUserCompany(userID, company)
}

func (s *Scanner) reconcileExisting(ctx context.Context, user *authdomain.User, app *appdomain.Application, status appdomain.Status, envelope *scandomain.MessageEnvelope) ItemResult {
	if app.Status == status {
		return ItemResult{MessageID: envelope.ID, Outcome: OutcomeUnchanged, Company: app.Company, Title: app.Title, Status: status}
	}

	fingerprint := Fingerprint(envelope.ID)
	if strings.Contains(app.Notes, fingerprint) {
		return ItemResult{MessageID: envelope.ID, Outcome: OutcomeDuplicate, Company: app.Company, Title: app.Title, Status: app.Status}
	}

	app.Status = status
	app.Notes += fmt.Sprintf("\n[Auto-Update %s] Status: %s\n%s", time.Now().Format("2006-01-02"), status, fingerprint)
	if err := s.apps.Save(app); err != nil {
		return ItemResult{MessageID: envelope.ID, Outcome: OutcomeError, Err: err}
	}
	log.Printf("[Scanner] Updated %s - %s to %s (user: %s)", app.Company, app.Title, status, user.Username)

	s.notify(ctx, user, app)
	return ItemResult{MessageID: envelope.ID, Outcome: OutcomeUpdated, Company: app.Company, Title: app.Title, Status: status}
}

func (s *Scanner) createRecord(ctx context.Context, user *authdomain.User, company, title string, status appdomain.Status, envelope *scandomain.MessageEnvelope) ItemResult {
	// Junk guard: never create a record without a real company name.
	if company == parser.UnknownCompany || strings.TrimSpace(company) == "" {
		log.Printf("[Scanner] Cannot create record, no company extracted (sender: %s, subject: %s)", envelope.From, envelope.Subject)
		return ItemResult{MessageID: envelope.ID, Outcome: OutcomeSkipped, Status: status}
	}
	if title == parser.UnknownTitle || strings.TrimSpace(title) == "" {
		title = "Position Not Specified"
	}

	now := time.Now()
	app := &appdomain.Application{
		UserID:  user.ID,
		Company: company,
		Title:   title,
		Status:  status,
		Notes: fmt.Sprintf("[Auto-created from email on %s] Status: %s\nSender: %s\nSubject: %s\n%s",
			now.Format("2006-01-02"), status, envelope.From, envelope.Subject, Fingerprint(envelope.ID)),
	}
	if status == appdomain.StatusApplied {
		app.AppliedAt = &now
	}

	if err := s.apps.Create(app); err != nil {
		return ItemResult{MessageID: envelope.ID, Outcome: OutcomeError, Err: err}
	}
	log.Printf("[Scanner] Created application %s - %s with status %s (user: %s)", company, title, status, user.Username)

	s.notify(ctx, user, app)
	return ItemResult{MessageID: envelope.ID, Outcome: OutcomeCreated, Company: company, Title: title, Status: status}
}

// alreadyProcessed scans the user's application notes for the message
// fingerprint. The durable record, not the watermark, is the idempotency
// source of truth; the watermark can race with partially applied passes.
func (s *Scanner) alreadyProcessed(userID, messageID string) (bool, error) {
	apps, err := s.apps.FindByUser(userID)
	if err != nil {
		return false, err
	}
	fingerprint := Fingerprint(messageID)
	for i := range apps {
		if strings.Contains(apps[i].Notes, fingerprint) {
			return true, nil
		}
	}
	return false, nil
}

func (s *Scanner) notify(ctx context.Context, user *authdomain.User, app *appdomain.Application) {
	if s.sink == nil {
		return
	}
	if err := s.sink.ApplicationChanged(ctx, user, app); err != nil {
		log.Printf("[Scanner] Notification sink failed for %s: %v", app.ID, err)
	}
}

// tokenPersister returns the callback that stores refreshed access tokens.
func (s *Scanner) tokenPersister(user *authdomain.User) scandomain.TokenUpdateFunc {
	return func(token *oauth2.Token) error {
		user.GoogleAccessToken = token.AccessToken
		if token.RefreshToken != "" {
			user.GoogleRefreshToken = token.RefreshToken
		}
		return s.users.Update(user)
	}
}

// disableIntegration clears stored tokens and turns the integration off. The
// user must re-authorize; retrying with a dead refresh token is pointless.
func (s *Scanner) disableIntegration(user *authdomain.User, reason string) error {
	log.Printf("[Scanner] Disabling Gmail integration for %s: %s", user.Username, reason)
	user.GoogleAccessToken = ""
	user.GoogleRefreshToken = ""
	user.GoogleGmailEnabled = false
	if err := s.users.Update(user); err != nil {
		return fmt.Errorf("disable integration: %w", err)
	}
	return nil
}

func (s *Scanner) begin(userID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.inFlight[userID] {
		return false
	}
	s.inFlight[userID] = true
	return true
}

func (s *Scanner) end(userID string) {
	s.mu.Lock()
	delete(s.inFlight, userID)
	s.mu.Unlock()
}

// Fingerprint is the idempotency marker embedded in application notes.
func Fingerprint(messageID string) string {
	return "[GmailMessageId:" + messageID + "]"
}
