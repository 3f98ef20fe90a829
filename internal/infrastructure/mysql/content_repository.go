package mysql

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"dealership/internal/domain"
)

type MySQLContentRepository struct {
	db *sql.DB
}

func NewMySQLContentRepository(db *sql.DB) *MySQLContentRepository {
	return &MySQLContentRepository{db: db}
}

func (r *MySQLContentRepository) ListHomeSections(ctx context.Context, onlyActive bool) ([]*domain.HomeSection, error) {
	query := `
        SELECT id, section_type, title, description, image_url, button_text, button_link, order_index, status, created_at, updated_at
        FROM home_content
        WHERE (? = FALSE OR status = 'active')
        ORDER BY order_index ASC
    `
	rows, err := r.db.QueryContext(ctx, query, onlyActive)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sections []*domain.HomeSection
	for rows.Next() {
		var s domain.HomeSection
		var title, description, imageURL, buttonText, buttonLink sql.NullString
		var status string

		err := rows.Scan(&s.ID, &s.SectionType, &title, &description, &imageURL,
			&buttonText, &buttonLink, &s.OrderIndex, &status, &s.CreatedAt, &s.UpdatedAt)
		if err != nil {
			return nil, err
		}

		s.Title = title.String
		s.Description = description.String
		s.ImageURL = imageURL.String
		s.ButtonText = buttonText.String
		s.ButtonLink = buttonLink.String
		s.Status = domain.ContentStatus(status)
		sections = append(sections, &s)
	}
	return sections, rows.Err()
}

func (r *MySQLContentRepository) UpsertHomeSection(ctx context.Context, s *domain.HomeSection) error {
	query := `
        INSERT INTO home_content (id, section_type, title, description, image_url, button_text, button_link, order_index, status, created_at, updated_at)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
        ON DUPLICATE KEY UPDATE
            section_type = VALUES(section_type), title = VALUES(title), description = VALUES(description),
            image_url = VALUES(image_url), button_text = VALUES(button_text), button_link = VALUES(button_link),
            order_index = VALUES(order_index), status = VALUES(status), updated_at = VALUES(updated_at)
    `
	_, err := r.db.ExecContext(ctx, query,
		s.ID, s.SectionType, s.Title, s.Description, s.ImageURL,
		s.ButtonText, s.ButtonLink, s.OrderIndex, string(s.Status),
		s.CreatedAt, time.Now())
	return err
}

func (r *MySQLContentRepository) DeleteHomeSection(ctx context.Context, sectionID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM home_content WHERE id = ?`, sectionID)
	return err
}

func (r *MySQLContentRepository) ListAboutSections(ctx context.Context, onlyActive bool) ([]*domain.AboutSection, error) {
	query := `
        SELECT id, section_type, content, status, created_at, updated_at
        FROM about_content
        WHERE (? = FALSE OR status = 'active')
        ORDER BY section_type ASC
    `
	rows, err := r.db.QueryContext(ctx, query, onlyActive)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sections []*domain.AboutSection
	for rows.Next() {
		var s domain.AboutSection
		var content sql.NullString
		var status string

		if err := rows.Scan(&s.ID, &s.SectionType, &content, &status, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, err
		}
		s.Content = content.String
		s.Status = domain.ContentStatus(status)
		sections = append(sections, &s)
	}
	return sections, rows.Err()
}

func (r *MySQLContentRepository) UpsertAboutSection(ctx context.Context, s *domain.AboutSection) error {
	query := `
        INSERT INTO about_content (id, section_type, content, status, created_at, updated_at)
        VALUES (?, ?, ?, ?, ?, ?)
        ON DUPLICATE KEY UPDATE
            section_type = VALUES(section_type), content = VALUES(content),
            status = VALUES(status), updated_at = VALUES(updated_at)
    `
	_, err := r.db.ExecContext(ctx, query,
		s.ID, s.SectionType, s.Content, string(s.Status), s.CreatedAt, time.Now())
	return err
}

func (r *MySQLContentRepository) GetContactInfo(ctx context.Context) (*domain.ContactInfo, error) {
	query := `
        SELECT id, address, phone_numbers, email_addresses, working_hours, map_embed_url, status, updated_at
        FROM contact_info
        ORDER BY updated_at DESC
        LIMIT 1
    `
	var info domain.ContactInfo
	var address, phones, emails, hours, mapURL sql.NullString
	var status string

	err := r.db.QueryRowContext(ctx, query).Scan(&info.ID, &address, &phones, &emails,
		&hours, &mapURL, &status, &info.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	info.Address = address.String
	info.WorkingHours = hours.String
	info.MapEmbedURL = mapURL.String
	info.Status = domain.ContentStatus(status)

	// phone_numbers and email_addresses are stored as JSON arrays.
	if phones.Valid {
		if err := json.Unmarshal([]byte(phones.String), &info.PhoneNumbers); err != nil {
			return nil, err
		}
	}
	if emails.Valid {
		if err := json.Unmarshal([]byte(emails.String), &info.EmailAddresses); err != nil {
			return nil, err
		}
	}
	return &info, nil
}

func (r *MySQLContentRepository) UpdateContactInfo(ctx context.Context, info *domain.ContactInfo) error {
	phones, err := json.Marshal(info.PhoneNumbers)
	if err != nil {
		return err
	}
	emails, err := json.Marshal(info.EmailAddresses)
	if err != nil {
		return err
	}

	query := `
        INSERT INTO contact_info (id, address, phone_numbers, email_addresses, working_hours, map_embed_url, status, updated_at)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?)
        ON DUPLICATE KEY UPDATE
            address = VALUES(address), phone_numbers = VALUES(phone_numbers),
            email_addresses = VALUES(email_addresses), working_hours = VALUES(working_hours),
            map_embed_url = VALUES(map_embed_url), status = VALUES(status), updated_at = VALUES(updated_at)
    `
	_, err = r.db.ExecContext(ctx, query,
		info.ID, info.Address, string(phones), string(emails),
		info.WorkingHours, info.MapEmbedURL, string(info.Status), time.Now())
	return err
}

func (r *MySQLContentRepository) InsertContactSubmission(ctx context.Context, sub *domain.ContactSubmission) error {
	query := `
        INSERT INTO contact_submissions (id, name, email, phone, subject, message, read_status, created_at)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?)
    `
	_, err := r.db.ExecContext(ctx, query,
		sub.ID, sub.Name, sub.Email, nullable(sub.Phone),
		sub.Subject, sub.Message, sub.Read, sub.CreatedAt)
	return err
}

func (r *MySQLContentRepository) ListContactSubmissions(ctx context.Context, limit int) ([]*domain.ContactSubmission, error) {
	query := `
        SELECT id, name, email, phone, subject, message, read_status, created_at
        FROM contact_submissions
        ORDER BY created_at DESC
        LIMIT ?
    `
	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var subs []*domain.ContactSubmission
	for rows.Next() {
		var s domain.ContactSubmission
		var phone sql.NullString

		if err := rows.Scan(&s.ID, &s.Name, &s.Email, &phone, &s.Subject, &s.Message, &s.Read, &s.CreatedAt); err != nil {
			return nil, err
		}
		s.Phone = phone.String
		subs = append(subs, &s)
	}
	return subs, rows.Err()
}

func (r *MySQLContentRepository) MarkSubmissionRead(ctx context.Context, submissionID string) error {
	_, err := r.db.ExecContext(ctx, `UPDATE contact_submissions SET read_status = TRUE WHERE id = ?`, submissionID)
	return err
}

func (r *MySQLContentRepository) GetSiteSettings(ctx context.Context) (*domain.SiteSettings, error) {
	query := `
        SELECT id, site_title, logo_url, favicon_url, maintenance_mode, updated_at
        FROM site_settings
        ORDER BY updated_at DESC
        LIMIT 1
    `
	var settings domain.SiteSettings
	var title, logo, favicon sql.NullString

	err := r.db.QueryRowContext(ctx, query).Scan(&settings.ID, &title, &logo, &favicon,
		&settings.MaintenanceMode, &settings.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	settings.SiteTitle = title.String
	settings.LogoURL = logo.String
	settings.FaviconURL = favicon.String
	return &settings, nil
}

func (r *MySQLContentRepository) UpdateSiteSettings(ctx context.Context, settings *domain.SiteSettings) error {
	query := `
        INSERT INTO site_settings (id, site_title, logo_url, favicon_url, maintenance_mode, updated_at)
        VALUES (?, ?, ?, ?, ?, ?)
        ON DUPLICATE KEY UPDATE
            site_title = VALUES(site_title), logo_url = VALUES(logo_url),
            favicon_url = VALUES(favicon_url), maintenance_mode = VALUES(maintenance_mode),
            updated_at = VALUES(updated_at)
    `
	_, err := r.db.ExecContext(ctx, query,
		settings.ID, settings.SiteTitle, settings.LogoURL, settings.FaviconURL,
		settings.MaintenanceMode, time.Now())
	return err
}
