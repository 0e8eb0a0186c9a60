// Package gmail wraps the Gmail API behind the small mailbox-client surface
// the scanner needs: bounded search plus fetch-to-envelope.
package gmail

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"log"
	"regexp"
	"strings"

	scandomain "jobtrack-backend/internal/scanner/domain"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	gmailapi "google.golang.org/api/gmail/v1"
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

// notifyTokenSource wraps an oauth2.TokenSource and invokes a callback when
// the access token changes, so refreshed tokens get persisted for the user.
type notifyTokenSource struct {
	src      oauth2.TokenSource
	current  *oauth2.Token
	callback scandomain.TokenUpdateFunc
}

func (s *notifyTokenSource) Token() (*oauth2.Token, error) {
	t, err := s.src.Token()
	if err != nil {
		return nil, err
	}
	if s.callback != nil && s.current.AccessToken != t.AccessToken {
		s.current = t
		if err := s.callback(t); err != nil {
			log.Printf("[Gmail] Failed to persist refreshed token: %v", err)
		}
	}
	return t, nil
}

func (s *Service) gmailService(ctx context.Context, accessToken, refreshToken string, onTokenRefresh scandomain.TokenUpdateFunc) (*gmailapi.Service, error) {
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

	wrappedSource := &notifyTokenSource{
		src:      config.TokenSource(ctx, token),
		current:  token,
		callback: onTokenRefresh,
	}

	client := oauth2.NewClient(ctx, wrappedSource)

	srv, err := gmailapi.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, fmt.Errorf("unable to create Gmail service: %v", err)
	}

	return srv, nil
}

// SearchMessages lists message refs matching query, newest first, bounded to
// maxResults. The refs carry IDs only; content comes from FetchMessage.
func (s *Service) SearchMessages(ctx context.Context, accessToken, refreshToken, query string, maxResults int64, onTokenRefresh scandomain.TokenUpdateFunc) ([]scandomain.MessageRef, error) {
	srv, err := s.gmailService(ctx, accessToken, refreshToken, onTokenRefresh)
	if err != nil {
		return nil, err
	}

	resp, err := srv.Users.Messages.List("me").Q(query).MaxResults(maxResults).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("unable to list messages: %w", err)
	}

	refs := make([]scandomain.MessageRef, 0, len(resp.Messages))
	for _, msg := range resp.Messages {
		refs = append(refs, scandomain.MessageRef{ID: msg.Id})
	}
	return refs, nil
}

// FetchMessage retrieves one message in full and flattens it to an envelope.
func (s *Service) FetchMessage(ctx context.Context, accessToken, refreshToken, messageID string, onTokenRefresh scandomain.TokenUpdateFunc) (*scandomain.MessageEnvelope, error) {
	srv, err := s.gmailService(ctx, accessToken, refreshToken, onTokenRefresh)
	if err != nil {
		return nil, err
	}

	msg, err := srv.Users.Messages.Get("me", messageID).Format("full").Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("unable to retrieve message %s: %w", messageID, err)
	}

	envelope := &scandomain.MessageEnvelope{
		ID:           msg.Id,
		InternalDate: msg.InternalDate,
	}
	if msg.Payload != nil {
		envelope.Subject = headerValue(msg.Payload.Headers, "Subject")
		envelope.From = headerValue(msg.Payload.Headers, "From")
		envelope.Body = bodyText(msg.Payload)
	}
	if envelope.Body == "" {
		envelope.Body = msg.Snippet
	}
	return envelope, nil
}

// IsAuthError implements the scanner's mailbox-client surface.
func (s *Service) IsAuthError(err error) bool {
	return IsAuthError(err)
}

// IsAuthError reports whether err means the stored credential is no longer
// usable and the user must re-authorize. Transient transport faults return
// false so the pass is simply retried on the next tick.
func IsAuthError(err error) bool {
	if err == nil {
		return false
	}

	var retrieveErr *oauth2.RetrieveError
	if errors.As(err, &retrieveErr) {
		// invalid_grant means the refresh token was revoked or expired
		if retrieveErr.ErrorCode == "invalid_grant" {
			return true
		}
		if retrieveErr.Response != nil {
			code := retrieveErr.Response.StatusCode
			return code == 400 || code == 401
		}
		return false
	}

	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		return apiErr.Code == 401
	}

	msg := err.Error()
	return strings.Contains(msg, "invalid_grant") || strings.Contains(msg, "401")
}

func headerValue(headers []*gmailapi.MessagePartHeader, name string) string {
	for _, header := range headers {
		if strings.EqualFold(header.Name, name) {
			return header.Value
		}
	}
	return ""
}

// decodeBody accepts both unpadded base64url, which is what the Gmail API
// sends, and the padded form.
func decodeBody(data string) ([]byte, bool) {
	if b, err := base64.RawURLEncoding.DecodeString(data); err == nil {
		return b, true
	}
	b, err := base64.URLEncoding.DecodeString(data)
	return b, err == nil
}

var htmlTagRe = regexp.MustCompile(`<[^>]+>`)

// bodyText recursively extracts readable text from a message payload.
// text/plain parts are preferred; text/html parts are tag-stripped so the
// regex cascade sees prose, not markup.
func bodyText(payload *gmailapi.MessagePart) string {
	var plain, html strings.Builder

	var walk func(part *gmailapi.MessagePart)
	walk = func(part *gmailapi.MessagePart) {
		if part == nil {
			return
		}
		if part.Body != nil && part.Body.Data != "" {
			if data, ok := decodeBody(part.Body.Data); ok {
				switch part.MimeType {
				case "text/plain":
					plain.Write(data)
					plain.WriteString(" ")
				case "text/html":
					html.Write(data)
					html.WriteString(" ")
				}
			}
		}
		for _, child := range part.Parts {
			walk(child)
		}
	}
	walk(payload)

	if plain.Len() > 0 {
		return strings.Join(strings.Fields(plain.String()), " ")
	}
	stripped := htmlTagRe.ReplaceAllString(html.String(), " ")
	stripped = strings.ReplaceAll(stripped, "&nbsp;", " ")
	stripped = strings.ReplaceAll(stripped, "&amp;", "&")
	return strings.Join(strings.Fields(stripped), " ")
}
