package domain

import (
	"time"
)

type ContentStatus string

const (
	ContentActive   ContentStatus = "active"
	ContentInactive ContentStatus = "inactive"
)

// HomeSection is one ordered block of the public home page (hero, featured,
// banner, ...), editable from the admin panel.
type HomeSection struct {
	ID          string        `json:"id"`
	SectionType string        `json:"section_type"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	ImageURL    string        `json:"image_url"`
	ButtonText  string        `json:"button_text"`
	ButtonLink  string        `json:"button_link"`
	OrderIndex  int           `json:"order_index"`
	Status      ContentStatus `json:"status"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

type AboutSection struct {
	ID          string        `json:"id"`
	SectionType string        `json:"section_type"`
	Content     string        `json:"content"`
	Status      ContentStatus `json:"status"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

type ContactInfo struct {
	ID             string        `json:"id"`
	Address        string        `json:"address"`
	PhoneNumbers   []string      `json:"phone_numbers"`
	EmailAddresses []string      `json:"email_addresses"`
	WorkingHours   string        `json:"working_hours"`
	MapEmbedURL    string        `json:"map_embed_url"`
	Status         ContentStatus `json:"status"`
	UpdatedAt      time.Time     `json:"updated_at"`
}

type ContactSubmission struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	Subject   string    `json:"subject"`
	Message   string    `json:"message"`
	Read      bool      `json:"read_status"`
	CreatedAt time.Time `json:"created_at"`
}

type SiteSettings struct {
	ID              string    `json:"id"`
	SiteTitle       string    `json:"site_title"`
	LogoURL         string    `json:"logo_url"`
	FaviconURL      string    `json:"favicon_url"`
	MaintenanceMode bool      `json:"maintenance_mode"`
	UpdatedAt       time.Time `json:"updated_at"`
}
