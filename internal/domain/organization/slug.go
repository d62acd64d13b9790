package organization

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
)

const (
	fallbackSlug    = "organization"
	maxSlugAttempts = 1000
)

var (
	slugInvalidChars = regexp.MustCompile(`[^a-z0-9\s-]`)
	slugWhitespace   = regexp.MustCompile(`\s+`)
	slugDashes       = regexp.MustCompile(`-+`)
)

// Slugify derives a URL-safe slug from an organization name.
// Names without any ASCII letters or digits are transliterated.
func Slugify(name string) string {
	s := strings.ToLower(name)
	s = slugInvalidChars.ReplaceAllString(s, "")
	s = slugWhitespace.ReplaceAllString(s, "-")
	s = slugDashes.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")
	if s != "" {
		return s
	}
	if s = slug.Make(name); s != "" {
		return s
	}
	return fallbackSlug
}

// uniqueSlug appends -1, -2, ... to the derived slug until no other organization uses it.
func (d *Domain) uniqueSlug(ctx context.Context, name string, excludeID uuid.UUID) (string, error) {
	base := Slugify(name)
	candidate := base
	for i := 1; i <= maxSlugAttempts; i++ {
		taken, err := d.orgDB.ExistsBySlug(ctx, candidate, excludeID)
		if err != nil {
			return "", fmt.Errorf("check slug: %w", err)
		}
		if !taken {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, i)
	}
	return "", ErrSlugExhausted
}
