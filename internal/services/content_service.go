package services

import (
	"context"
	"net/mail"
	"strings"
	"time"

	"dealership/internal/domain"
	"dealership/pkg/logger"
	"dealership/pkg/utils"
)

// ContentService backs the CMS pages and the public contact form.
type ContentService struct {
	contentRepo domain.ContentRepository
	now         func() time.Time
	log         logger.Logger
}

func NewContentService(contentRepo domain.ContentRepository, log logger.Logger) *ContentService {
	return &ContentService{
		contentRepo: contentRepo,
		now:         time.Now,
		log:         log,
	}
}

func (s *ContentService) PublicHomeSections(ctx context.Context) ([]*domain.HomeSection, error) {
	return s.contentRepo.ListHomeSections(ctx, true)
}

func (s *ContentService) AllHomeSections(ctx context.Context) ([]*domain.HomeSection, error) {
	return s.contentRepo.ListHomeSections(ctx, false)
}

func (s *ContentService) SaveHomeSection(ctx context.Context, section *domain.HomeSection) error {
	if section.ID == "" {
		section.ID = utils.GenerateID("home")
		section.CreatedAt = s.now()
	}
	if section.SectionType == "" {
		return &domain.ValidationError{Field: "section_type", Reason: "is required"}
	}
	if section.Status == "" {
		section.Status = domain.ContentActive
	}
	return s.contentRepo.UpsertHomeSection(ctx, section)
}

func (s *ContentService) DeleteHomeSection(ctx context.Context, sectionID string) error {
	return s.contentRepo.DeleteHomeSection(ctx, sectionID)
}

func (s *ContentService) PublicAboutSections(ctx context.Context) ([]*domain.AboutSection, error) {
	return s.contentRepo.ListAboutSections(ctx, true)
}

func (s *ContentService) AllAboutSections(ctx context.Context) ([]*domain.AboutSection, error) {
	return s.contentRepo.ListAboutSections(ctx, false)
}

func (s *ContentService) SaveAboutSection(ctx context.Context, section *domain.AboutSection) error {
	if section.ID == "" {
		section.ID = utils.GenerateID("about")
		section.CreatedAt = s.now()
	}
	if section.SectionType == "" {
		return &domain.ValidationError{Field: "section_type", Reason: "is required"}
	}
	if section.Status == "" {
		section.Status = domain.ContentActive
	}
	return s.contentRepo.UpsertAboutSection(ctx, section)
}

func (s *ContentService) ContactInfo(ctx context.Context) (*domain.ContactInfo, error) {
	return s.contentRepo.GetContactInfo(ctx)
}

func (s *ContentService) SaveContactInfo(ctx context.Context, info *domain.ContactInfo) error {
	if info.ID == "" {
		info.ID = utils.GenerateID("contact")
	}
	if info.Status == "" {
		info.Status = domain.ContentActive
	}
	return s.contentRepo.UpdateContactInfo(ctx, info)
}

// SubmitContactForm validates and stores a public enquiry.
func (s *ContentService) SubmitContactForm(ctx context.Context, name, email, phone, subject, message string) (*domain.ContactSubmission, error) {
	name = strings.TrimSpace(name)
	subject = strings.TrimSpace(subject)
	message = strings.TrimSpace(message)

	if name == "" {
		return nil, &domain.ValidationError{Field: "name", Reason: "is required"}
	}
	if _, err := mail.ParseAddress(strings.TrimSpace(email)); err != nil {
		return nil, &domain.ValidationError{Field: "email", Reason: "is not a valid email address"}
	}
	if subject == "" {
		return nil, &domain.ValidationError{Field: "subject", Reason: "is required"}
	}
	if message == "" {
		return nil, &domain.ValidationError{Field: "message", Reason: "is required"}
	}

	sub := &domain.ContactSubmission{
		ID:        utils.GenerateID("enquiry"),
		Name:      name,
		Email:     strings.TrimSpace(email),
		Phone:     strings.TrimSpace(phone),
		Subject:   subject,
		Message:   message,
		CreatedAt: s.now(),
	}
	if err := s.contentRepo.InsertContactSubmission(ctx, sub); err != nil {
		return nil, &domain.StorageUnavailableError{Op: "insert contact submission", Err: err}
	}

	s.log.Info("Contact submission received", "id", sub.ID, "subject", subject)
	return sub, nil
}

func (s *ContentService) ListContactSubmissions(ctx context.Context, limit int) ([]*domain.ContactSubmission, error) {
	return s.contentRepo.ListContactSubmissions(ctx, limit)
}

func (s *ContentService) MarkSubmissionRead(ctx context.Context, submissionID string) error {
	return s.contentRepo.MarkSubmissionRead(ctx, submissionID)
}

func (s *ContentService) SiteSettings(ctx context.Context) (*domain.SiteSettings, error) {
	return s.contentRepo.GetSiteSettings(ctx)
}

func (s *ContentService) SaveSiteSettings(ctx context.Context, settings *domain.SiteSettings) error {
	if settings.ID == "" {
		settings.ID = utils.GenerateID("settings")
	}
	return s.contentRepo.UpdateSiteSettings(ctx, settings)
}
