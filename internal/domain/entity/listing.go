package entity

import (
	"fmt"
	"strings"
	"time"
)

type Seller struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	AvatarURL string `json:"avatar_url,omitempty"`
}

// LocalSeller is the synthesized identity attached to listings published
// from this device.
var LocalSeller = Seller{ID: "101", Name: "You"}

type ListingImage struct {
	URL       string `json:"url"`
	SortIndex int    `json:"sort_index"`
}

// Listing is the canonical shape both sources normalize into. Price is
// held in minor currency units regardless of origin; the formatted string
// the publish form submits is parsed at ingestion.
type Listing struct {
	ID          string         `json:"id"`
	Title       string         `json:"title"`
	PriceCents  int64          `json:"price_cents"`
	Category    string         `json:"category"`
	Condition   string         `json:"condition"`
	Description string         `json:"description"`
	Location    string         `json:"location"`
	Images      []ListingImage `json:"images"`
	Seller      Seller         `json:"seller"`
	CreatedAt   time.Time      `json:"created_at"`
}

// FormattedPrice renders the price the way the listing form displays it:
// whole dollars without decimals, otherwise two decimal places.
func (l *Listing) FormattedPrice() string {
	if l.PriceCents%100 == 0 {
		return fmt.Sprintf("$%d", l.PriceCents/100)
	}
	return fmt.Sprintf("$%.2f", float64(l.PriceCents)/100)
}

// ParsePriceCents normalizes a user-entered price string ("$380", "12.50",
// "USD 9") into minor units. Anything unparseable or non-positive maps to
// zero, matching the publish flow's "$0.00" fallback.
func ParsePriceCents(s string) int64 {
	var b strings.Builder
	for _, r := range s {
		if (r >= '0' && r <= '9') || r == '.' {
			b.WriteRune(r)
		}
	}
	cleaned := b.String()
	if cleaned == "" {
		return 0
	}

	parts := strings.SplitN(cleaned, ".", 2)
	var whole int64
	for _, r := range parts[0] {
		whole = whole*10 + int64(r-'0')
	}

	var frac int64
	if len(parts) > 1 {
		digits := 0
		for _, r := range parts[1] {
			if r < '0' || r > '9' || digits == 2 {
				break
			}
			frac = frac*10 + int64(r-'0')
			digits++
		}
		if digits == 1 {
			frac *= 10
		}
	}

	cents := whole*100 + frac
	if cents <= 0 {
		return 0
	}
	return cents
}
