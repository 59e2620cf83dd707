package email

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simphiwe/guesthouse/internal/form"
)

func testRenderer(t *testing.T) *Renderer {
	t.Helper()
	r, err := NewRenderer()
	require.NoError(t, err)
	return r
}

func bookingRecord() form.Record {
	rec := form.NewRecord(form.TypeBooking)
	rec.Set("name", "Thandi Dlamini")
	rec.Set("email", "thandi@example.com")
	rec.Set("guests", "2")
	rec.Set("checkin", "2024-05-01")
	rec.Set("checkout", "2024-05-04")
	return rec
}

func reviewRecord(satisfaction string) form.Record {
	rec := form.NewRecord(form.TypeReview)
	rec.Set("name", "Sipho Nkambule")
	rec.Set("email", "sipho@example.com")
	rec.Set("satisfaction", satisfaction)
	rec.Set("recommend", "yes")
	rec.Set("cleanliness", "Excellent")
	rec.Set("service", "Good")
	return rec
}

func TestRender_BookingSubjectAndNights(t *testing.T) {
	r := testRenderer(t)

	subject, html, err := r.Render(bookingRecord())
	require.NoError(t, err)

	assert.Equal(t, "NEW BOOKING REQUEST: Thandi Dlamini (2024-05-01 - 2024-05-04)", subject)
	assert.Contains(t, html, "Nights Requested")
	assert.Contains(t, html, ">3<", "three nights between May 1 and May 4")
}

func TestNights(t *testing.T) {
	tests := []struct {
		checkin  string
		checkout string
		want     int
	}{
		{"2024-05-01", "2024-05-04", 3},
		{"2024-05-01", "2024-05-02", 1},
		{"2024-05-01", "2024-05-01", 0},
		{"2024-05-04", "2024-05-01", -3},
		{"2024-12-31", "2025-01-02", 2},
		{"garbage", "2024-05-01", 0},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%s_%s", tt.checkin, tt.checkout), func(t *testing.T) {
			assert.Equal(t, tt.want, nights(tt.checkin, tt.checkout))
		})
	}
}

func TestRender_BookingOptionalBlocks(t *testing.T) {
	r := testRenderer(t)

	t.Run("defaults without optional fields", func(t *testing.T) {
		_, html, err := r.Render(bookingRecord())
		require.NoError(t, err)
		assert.Contains(t, html, "No Preference")
		assert.NotContains(t, html, "Phone Number")
		assert.NotContains(t, html, "Special Requests")
	})

	t.Run("optional fields rendered when present", func(t *testing.T) {
		rec := bookingRecord()
		rec.Set("phone", "+26876655974")
		rec.Set("room", "Garden Suite")
		rec.Set("message", "We arrive late, around 22:00.")

		_, html, err := r.Render(rec)
		require.NoError(t, err)
		assert.Contains(t, html, "Phone Number")
		assert.Contains(t, html, "+26876655974")
		assert.Contains(t, html, "Garden Suite")
		assert.Contains(t, html, "Special Requests")
		assert.Contains(t, html, "We arrive late, around 22:00.")
	})
}

func TestRender_ReviewSubjectAndStars(t *testing.T) {
	r := testRenderer(t)

	for s := 1; s <= 5; s++ {
		t.Run(fmt.Sprintf("satisfaction_%d", s), func(t *testing.T) {
			subject, html, err := r.Render(reviewRecord(fmt.Sprintf("%d", s)))
			require.NoError(t, err)

			assert.Equal(t, fmt.Sprintf("NEW GUEST REVIEW: %d Stars by Sipho Nkambule", s), subject)
			assert.Equal(t, s, strings.Count(html, "⭐"))
			assert.Equal(t, 5-s, strings.Count(html, "☆"))
		})
	}
}

func TestStarRating_Clamping(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"0", "☆☆☆☆☆"},
		{"5", "⭐⭐⭐⭐⭐"},
		{"9", "⭐⭐⭐⭐⭐"},
		{"-2", "☆☆☆☆☆"},
		{"not-a-number", "☆☆☆☆☆"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, starRating(tt.input))
		})
	}
}

func TestRender_ReviewRecommendAndAttention(t *testing.T) {
	r := testRenderer(t)

	rec := reviewRecord("4")
	rec.Set("recommend", "maybe")
	rec.Set("problems", "The shower ran cold on the second morning.")

	_, html, err := r.Render(rec)
	require.NoError(t, err)
	assert.Contains(t, html, "<strong>MAYBE</strong>")
	assert.Contains(t, html, "Areas for Attention")
	assert.Contains(t, html, "shower ran cold")
	assert.NotContains(t, html, "Guest Comments", "comments block omitted when empty")
}

func TestRender_StripsMarkupFromGuestText(t *testing.T) {
	r := testRenderer(t)

	rec := bookingRecord()
	rec.Set("message", `<script>alert("x")</script><b>Nice</b> place`)
	rec.Set("name", `<img src=x onerror=alert(1)>Eve`)

	_, html, err := r.Render(rec)
	require.NoError(t, err)

	assert.NotContains(t, html, "<script>")
	assert.NotContains(t, html, "<img")
	assert.NotContains(t, html, "<b>")
	assert.Contains(t, html, "Nice")
	assert.Contains(t, html, "Eve")
}

func TestRender_UnknownType(t *testing.T) {
	r := testRenderer(t)

	_, _, err := r.Render(form.Record{Type: form.Type("complaint")})
	assert.Error(t, err)
}
