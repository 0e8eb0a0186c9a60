package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"

	appdomain "jobtrack-backend/internal/application/domain"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name    string
		subject string
		body    string
		want    appdomain.Status
		matched bool
	}{
		{
			name:    "applied confirmation",
			subject: "Google Software Engineer - Application Received",
			want:    appdomain.StatusApplied,
			matched: true,
		},
		{
			name:    "interview invitation",
			subject: "Google Software Engineer - Interview Invitation",
			want:    appdomain.StatusInterview,
			matched: true,
		},
		{
			name:    "offer",
			subject: "Congratulations!",
			body:    "We are pleased to offer you the position.",
			want:    appdomain.StatusOffer,
			matched: true,
		},
		{
			name:    "rejection",
			subject: "Your application",
			body:    "Unfortunately we have decided to pursue other candidates.",
			want:    appdomain.StatusRejected,
			matched: true,
		},
		{
			name:    "newsletter noise",
			subject: "Weekly digest",
			body:    "Here is what happened this week.",
			matched: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Classify(tt.subject, tt.body)
			assert.Equal(t, tt.matched, ok)
			if tt.matched {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

// The rule order is a deliberate tie-break: terminal statuses must not be
// masked by weaker signals that co-occur in the same message.
func TestClassify_Priority(t *testing.T) {
	status, ok := Classify("Interview update", "We enjoyed the interview. We are pleased to offer you the role.")
	assert.True(t, ok)
	assert.Equal(t, appdomain.StatusOffer, status)

	status, ok = Classify("Interview follow-up", "Thank you for the interview. Unfortunately we will not be moving forward.")
	assert.True(t, ok)
	assert.Equal(t, appdomain.StatusRejected, status)

	status, ok = Classify("Next steps", "Congratulations! Unfortunately the start date has moved. Welcome to the team.")
	assert.True(t, ok)
	assert.Equal(t, appdomain.StatusOffer, status)
}

func TestExtractCompany(t *testing.T) {
	tests := []struct {
		name    string
		sender  string
		subject string
		body    string
		want    string
	}{
		{
			name:    "known company in subject",
			sender:  "careers@google.com",
			subject: "Google Software Engineer - Application Received",
			want:    "Google",
		},
		{
			name:    "preposition pattern in subject",
			sender:  "jobs-noreply@somemailer.net",
			subject: "Your interview with Datadog Recruiting",
			want:    "Datadog",
		},
		{
			name:    "leading phrase before job keyword",
			sender:  "no-reply@ashbyhq.com",
			subject: "Jane Street Software Engineer Application",
			want:    "Jane Street",
		},
		{
			name:    "sender domain fallback",
			sender:  "recruiting@palantir.com",
			subject: "re: next steps",
			want:    "Palantir",
		},
		{
			name:    "free mail provider is not a company",
			sender:  "recruiter@gmail.com",
			subject: "hello about an opening",
			want:    UnknownCompany,
		},
		{
			name:   "preposition pattern in body",
			sender: "hiring-team@gmail.com",
			body:   "thank you for applying to Figma. we will be in touch.",
			want:   "Figma",
		},
		{
			name: "garbage yields sentinel",
			want: UnknownCompany,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractCompany(tt.sender, tt.subject, tt.body))
		})
	}
}

func TestExtractTitle(t *testing.T) {
	tests := []struct {
		name    string
		subject string
		body    string
		want    string
	}{
		{
			name:    "company title subject",
			subject: "Google Software Engineer - Application Received",
			want:    "Software Engineer",
		},
		{
			name:    "lifecycle tail trimmed",
			subject: "Google Software Engineer Interview Invitation",
			want:    "Software Engineer",
		},
		{
			name:    "title at company",
			subject: "Your application for Senior Data Scientist at Stripe",
			want:    "Senior Data Scientist",
		},
		{
			name:    "keyword expanded with modifiers",
			subject: "Re: next steps",
			body:    "We reviewed your profile for the senior machine learning engineer opening.",
			want:    "Senior Machine Learning Engineer",
		},
		{
			name: "labeled title in body",
			body: "Position: Backend Developer. Location: remote.",
			want: "Backend Developer",
		},
		{
			name: "garbage yields sentinel",
			want: UnknownTitle,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractTitle(tt.subject, tt.body))
		})
	}
}

func TestExtract_EmptyInputsReturnBothSentinels(t *testing.T) {
	assert.Equal(t, UnknownCompany, ExtractCompany("", "", ""))
	assert.Equal(t, UnknownTitle, ExtractTitle("", ""))

	assert.Equal(t, UnknownCompany, ExtractCompany("x", "%%% ???", "12345"))
	assert.Equal(t, UnknownTitle, ExtractTitle("%%% ???", "12345"))
}

func TestTitleCase(t *testing.T) {
	assert.Equal(t, "Software Engineer", TitleCase("SOFTWARE ENGINEER"))
	assert.Equal(t, "Jane Street", TitleCase("jane street"))
	assert.Equal(t, "Google", TitleCase("gOOgle"))
	assert.Equal(t, "Électricité De France", TitleCase("ÉLECTRICITÉ DE FRANCE"))
	assert.Equal(t, "", TitleCase("   "))
}
