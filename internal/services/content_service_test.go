package services

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dealership/internal/domain"
	"dealership/pkg/logger"
)

type fakeContentRepo struct {
	mu          sync.Mutex
	home        []*domain.HomeSection
	about       []*domain.AboutSection
	submissions []*domain.ContactSubmission
	contactInfo *domain.ContactInfo
	settings    *domain.SiteSettings
}

func (r *fakeContentRepo) ListHomeSections(ctx context.Context, onlyActive bool) ([]*domain.HomeSection, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.HomeSection
	for _, s := range r.home {
		if !onlyActive || s.Status == domain.ContentActive {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *fakeContentRepo) UpsertHomeSection(ctx context.Context, section *domain.HomeSection) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, s := range r.home {
		if s.ID == section.ID {
			r.home[i] = section
			return nil
		}
	}
	r.home = append(r.home, section)
	return nil
}

func (r *fakeContentRepo) DeleteHomeSection(ctx context.Context, sectionID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, s := range r.home {
		if s.ID == sectionID {
			r.home = append(r.home[:i], r.home[i+1:]...)
			return nil
		}
	}
	return nil
}

func (r *fakeContentRepo) ListAboutSections(ctx context.Context, onlyActive bool) ([]*domain.AboutSection, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.AboutSection
	for _, s := range r.about {
		if !onlyActive || s.Status == domain.ContentActive {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *fakeContentRepo) UpsertAboutSection(ctx context.Context, section *domain.AboutSection) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.about = append(r.about, section)
	return nil
}

func (r *fakeContentRepo) GetContactInfo(ctx context.Context) (*domain.ContactInfo, error) {
	return r.contactInfo, nil
}

func (r *fakeContentRepo) UpdateContactInfo(ctx context.Context, info *domain.ContactInfo) error {
	r.contactInfo = info
	return nil
}

func (r *fakeContentRepo) InsertContactSubmission(ctx context.Context, sub *domain.ContactSubmission) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.submissions = append(r.submissions, sub)
	return nil
}

func (r *fakeContentRepo) ListContactSubmissions(ctx context.Context, limit int) ([]*domain.ContactSubmission, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := r.submissions
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakeContentRepo) MarkSubmissionRead(ctx context.Context, submissionID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.submissions {
		if s.ID == submissionID {
			s.Read = true
		}
	}
	return nil
}

func (r *fakeContentRepo) GetSiteSettings(ctx context.Context) (*domain.SiteSettings, error) {
	return r.settings, nil
}

func (r *fakeContentRepo) UpdateSiteSettings(ctx context.Context, settings *domain.SiteSettings) error {
	r.settings = settings
	return nil
}

func TestSubmitContactForm(t *testing.T) {
	repo := &fakeContentRepo{}
	svc := NewContentService(repo, logger.NewNop())

	sub, err := svc.SubmitContactForm(context.Background(),
		"  John Doe  ", "john@example.com", "555-0100", "Test drive", "Is the GT500 available Saturday?")
	require.NoError(t, err)
	assert.NotEmpty(t, sub.ID)
	assert.Equal(t, "John Doe", sub.Name)
	assert.False(t, sub.Read)
	require.Len(t, repo.submissions, 1)
}

func TestSubmitContactForm_Validation(t *testing.T) {
	svc := NewContentService(&fakeContentRepo{}, logger.NewNop())

	cases := []struct {
		name  string
		in    [5]string // name, email, phone, subject, message
		field string
	}{
		{"missing name", [5]string{"", "john@example.com", "", "Hi", "Hello"}, "name"},
		{"bad email", [5]string{"John Doe", "nope", "", "Hi", "Hello"}, "email"},
		{"missing subject", [5]string{"John Doe", "john@example.com", "", "", "Hello"}, "subject"},
		{"missing message", [5]string{"John Doe", "john@example.com", "", "Hi", "  "}, "message"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.SubmitContactForm(context.Background(),
				tc.in[0], tc.in[1], tc.in[2], tc.in[3], tc.in[4])
			var verr *domain.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tc.field, verr.Field)
		})
	}
}

func TestSaveHomeSection_DefaultsApplied(t *testing.T) {
	repo := &fakeContentRepo{}
	svc := NewContentService(repo, logger.NewNop())

	section := &domain.HomeSection{SectionType: "hero", Title: "Summer sale"}
	require.NoError(t, svc.SaveHomeSection(context.Background(), section))
	assert.NotEmpty(t, section.ID)
	assert.Equal(t, domain.ContentActive, section.Status)
}

func TestPublicHomeSections_FiltersInactive(t *testing.T) {
	repo := &fakeContentRepo{home: []*domain.HomeSection{
		{ID: "h1", SectionType: "hero", Status: domain.ContentActive},
		{ID: "h2", SectionType: "banner", Status: domain.ContentInactive},
	}}
	svc := NewContentService(repo, logger.NewNop())

	public, err := svc.PublicHomeSections(context.Background())
	require.NoError(t, err)
	require.Len(t, public, 1)
	assert.Equal(t, "h1", public[0].ID)

	all, err := svc.AllHomeSections(context.Background())
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestMarkSubmissionRead(t *testing.T) {
	repo := &fakeContentRepo{submissions: []*domain.ContactSubmission{{ID: "enq-1"}}}
	svc := NewContentService(repo, logger.NewNop())

	require.NoError(t, svc.MarkSubmissionRead(context.Background(), "enq-1"))
	assert.True(t, repo.submissions[0].Read)
}
