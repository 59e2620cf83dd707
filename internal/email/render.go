package email

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"

	"github.com/simphiwe/guesthouse/internal/form"
)

//go:embed templates/*.html
var templateFS embed.FS

// =============================================================================
// Renderer
// =============================================================================

// Renderer maps a form record to the subject line and HTML body of the
// notification email sent to the guesthouse.
//
// Free-text guest input is stripped of any markup with bluemonday's
// strict policy before it reaches a template; everything else goes
// through html/template's contextual escaping. Guests write prose, not
// HTML, so nothing legitimate is lost.
type Renderer struct {
	templates *template.Template
	policy    *bluemonday.Policy
}

// NewRenderer parses the embedded email templates.
func NewRenderer() (*Renderer, error) {
	templates, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse email templates: %w", err)
	}
	return &Renderer{
		templates: templates,
		policy:    bluemonday.StrictPolicy(),
	}, nil
}

// Render produces the subject and HTML body for a record. The record's
// type picks the template; an unknown type is the caller's bug.
func (r *Renderer) Render(rec form.Record) (subject, html string, err error) {
	switch rec.Type {
	case form.TypeBooking:
		return r.renderBooking(rec)
	case form.TypeReview:
		return r.renderReview(rec)
	default:
		return "", "", fmt.Errorf("no email template for form type %q", rec.Type)
	}
}

// =============================================================================
// Booking
// =============================================================================

type bookingData struct {
	Name     string
	Email    string
	Phone    string
	Guests   string
	Checkin  string
	Checkout string
	Nights   int
	Room     string
	Message  template.HTML
}

func (r *Renderer) renderBooking(rec form.Record) (string, string, error) {
	subject := fmt.Sprintf("NEW BOOKING REQUEST: %s (%s - %s)",
		headerSafe(rec.Get("name")), headerSafe(rec.Get("checkin")), headerSafe(rec.Get("checkout")))

	room := rec.Get("room")
	if strings.TrimSpace(room) == "" {
		room = "No Preference"
	}

	data := bookingData{
		Name:     rec.Get("name"),
		Email:    rec.Get("email"),
		Phone:    rec.Get("phone"),
		Guests:   rec.Get("guests"),
		Checkin:  rec.Get("checkin"),
		Checkout: rec.Get("checkout"),
		Nights:   nights(rec.Get("checkin"), rec.Get("checkout")),
		Room:     room,
		Message:  r.freeText(rec.Get("message")),
	}

	html, err := r.execute("booking.html", data)
	return subject, html, err
}

// =============================================================================
// Review
// =============================================================================

type reviewData struct {
	Name         string
	Email        string
	Stars        string
	Recommend    string
	Cleanliness  string
	Service      string
	Comments     template.HTML
	Problems     template.HTML
	Improvements template.HTML
}

func (r *Renderer) renderReview(rec form.Record) (string, string, error) {
	subject := fmt.Sprintf("NEW GUEST REVIEW: %s Stars by %s",
		headerSafe(rec.Get("satisfaction")), headerSafe(rec.Get("name")))

	data := reviewData{
		Name:         rec.Get("name"),
		Email:        rec.Get("email"),
		Stars:        starRating(rec.Get("satisfaction")),
		Recommend:    strings.ToUpper(rec.Get("recommend")),
		Cleanliness:  rec.Get("cleanliness"),
		Service:      rec.Get("service"),
		Comments:     r.freeText(rec.Get("comments")),
		Problems:     r.freeText(rec.Get("problems")),
		Improvements: r.freeText(rec.Get("improvements")),
	}

	html, err := r.execute("review.html", data)
	return subject, html, err
}

// =============================================================================
// Helpers
// =============================================================================

func (r *Renderer) execute(name string, data interface{}) (string, error) {
	var buf bytes.Buffer
	if err := r.templates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("failed to render %s: %w", name, err)
	}
	return buf.String(), nil
}

// freeText strips all markup from guest-written text. The result is
// safe to place in element content as-is.
func (r *Renderer) freeText(value string) template.HTML {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return ""
	}
	return template.HTML(r.policy.Sanitize(trimmed))
}

// headerSafe removes line breaks so a field value can never smuggle
// extra headers into the subject line.
func headerSafe(value string) string {
	value = strings.ReplaceAll(value, "\r", " ")
	value = strings.ReplaceAll(value, "\n", " ")
	return strings.TrimSpace(value)
}

const dateLayout = "2006-01-02"

// nights computes the whole-day stay length. Both dates are treated as
// UTC midnights; unparseable input yields zero. Ordering is validated
// upstream, so a negative result here is formatted as-is.
func nights(checkin, checkout string) int {
	in, errIn := time.Parse(dateLayout, checkin)
	out, errOut := time.Parse(dateLayout, checkout)
	if errIn != nil || errOut != nil {
		return 0
	}
	return int(math.Round(out.Sub(in).Hours() / 24))
}

// starRating renders satisfaction as five fixed-width glyphs: filled
// stars up to the score, empty stars for the rest. Out-of-range scores
// clamp to the 0..5 band.
func starRating(satisfaction string) string {
	s, err := strconv.Atoi(strings.TrimSpace(satisfaction))
	if err != nil || s < 0 {
		s = 0
	}
	if s > 5 {
		s = 5
	}
	return strings.Repeat("⭐", s) + strings.Repeat("☆", 5-s)
}
