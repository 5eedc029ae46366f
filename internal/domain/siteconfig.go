package domain

import "time"

// SiteSetting is one field of the singleton site configuration document,
// stored as a name/value row.
type SiteSetting struct {
	Name      string    `gorm:"primaryKey;size:64" json:"name"`
	Value     string    `json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (SiteSetting) TableName() string {
	return "site_settings"
}

// SiteConfig is the singleton site configuration document. The mapstructure
// tags bind the stored name/value rows to the struct fields.
type SiteConfig struct {
	HeroTitle       string `json:"heroTitle" mapstructure:"heroTitle"`
	HeroSubtitle    string `json:"heroSubtitle" mapstructure:"heroSubtitle"`
	HeroButtonText  string `json:"heroButtonText" mapstructure:"heroButtonText"`
	HeroMediaURL    string `json:"heroMediaUrl,omitempty" mapstructure:"heroMediaUrl"`
	AboutTitle      string `json:"aboutTitle" mapstructure:"aboutTitle"`
	AboutText       string `json:"aboutText" mapstructure:"aboutText"`
	ContactEmail    string `json:"contactEmail" mapstructure:"contactEmail"`
	ContactPhone    string `json:"contactPhone" mapstructure:"contactPhone"`
	AnnouncementBar string `json:"announcementBar" mapstructure:"announcementBar"`
}

// Values flattens the document into name/value pairs for storage.
func (c SiteConfig) Values() map[string]string {
	return map[string]string{
		"heroTitle":       c.HeroTitle,
		"heroSubtitle":    c.HeroSubtitle,
		"heroButtonText":  c.HeroButtonText,
		"heroMediaUrl":    c.HeroMediaURL,
		"aboutTitle":      c.AboutTitle,
		"aboutText":       c.AboutText,
		"contactEmail":    c.ContactEmail,
		"contactPhone":    c.ContactPhone,
		"announcementBar": c.AnnouncementBar,
	}
}

// SiteConfigPatch is an explicit field mask for partial updates against the
// singleton document.
type SiteConfigPatch struct {
	HeroTitle       *string `json:"heroTitle"`
	HeroSubtitle    *string `json:"heroSubtitle"`
	HeroButtonText  *string `json:"heroButtonText"`
	HeroMediaURL    *string `json:"heroMediaUrl"`
	AboutTitle      *string `json:"aboutTitle"`
	AboutText       *string `json:"aboutText"`
	ContactEmail    *string `json:"contactEmail"`
	ContactPhone    *string `json:"contactPhone"`
	AnnouncementBar *string `json:"announcementBar"`
}

// Empty reports whether the patch touches no fields.
func (p SiteConfigPatch) Empty() bool {
	return len(p.Values()) == 0
}

// Values returns the touched fields as name/value pairs.
func (p SiteConfigPatch) Values() map[string]string {
	values := map[string]string{}
	set := func(name string, v *string) {
		if v != nil {
			values[name] = *v
		}
	}
	set("heroTitle", p.HeroTitle)
	set("heroSubtitle", p.HeroSubtitle)
	set("heroButtonText", p.HeroButtonText)
	set("heroMediaUrl", p.HeroMediaURL)
	set("aboutTitle", p.AboutTitle)
	set("aboutText", p.AboutText)
	set("contactEmail", p.ContactEmail)
	set("contactPhone", p.ContactPhone)
	set("announcementBar", p.AnnouncementBar)
	return values
}

// Apply writes the touched fields onto a config value.
func (p SiteConfigPatch) Apply(target *SiteConfig) {
	for name, value := range p.Values() {
		switch name {
		case "heroTitle":
			target.HeroTitle = value
		case "heroSubtitle":
			target.HeroSubtitle = value
		case "heroButtonText":
			target.HeroButtonText = value
		case "heroMediaUrl":
			target.HeroMediaURL = value
		case "aboutTitle":
			target.AboutTitle = value
		case "aboutText":
			target.AboutText = value
		case "contactEmail":
			target.ContactEmail = value
		case "contactPhone":
			target.ContactPhone = value
		case "announcementBar":
			target.AnnouncementBar = value
		}
	}
}
