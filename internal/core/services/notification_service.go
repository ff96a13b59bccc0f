package services

import (
	"fmt"
	"log"
	"math"
	"net/url"
	"strings"

	"github.com/mame12b/lyan-restaurant-sub000/internal/adapters/persistence/models"
	"github.com/mame12b/lyan-restaurant-sub000/internal/config"
	"github.com/mame12b/lyan-restaurant-sub000/internal/core/domain"

	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// NotificationService builds WhatsApp handoff links for new bookings and,
// when Twilio is configured, pushes the summary to the business number.
// Delivery is advisory only: it is never retried and never fails a booking.
type NotificationService struct {
	contactNumber string
	currency      string
	printer       *message.Printer
	client        *twilio.RestClient
	from          string
}

// NewNotificationService creates a new notification service
func NewNotificationService(cfg *config.Config) *NotificationService {
	s := &NotificationService{
		contactNumber: cfg.WhatsApp.ContactNumber,
		currency:      cfg.WhatsApp.Currency,
		printer:       message.NewPrinter(language.English),
	}

	if cfg.Twilio.Enabled() {
		s.client = twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: cfg.Twilio.AccountSID,
			Password: cfg.Twilio.AuthToken,
		})
		s.from = cfg.Twilio.FromNumber
	}

	return s
}

// BuildBookingLink renders the booking summary and URL-encodes it as the text
// of a wa.me deep link addressed to the configured contact number. Pure: no
// network call is made here.
func (s *NotificationService) BuildBookingLink(booking *models.Booking, pkg *models.Package) string {
	text := s.BuildBookingMessage(booking, pkg)
	return fmt.Sprintf("https://wa.me/%s?text=%s", s.contactNumber, encodeURIComponent(text))
}

// BuildBookingMessage renders the human-readable multi-line booking summary
func (s *NotificationService) BuildBookingMessage(booking *models.Booking, pkg *models.Package) string {
	var b strings.Builder

	b.WriteString("🎉 New Booking Request\n\n")
	b.WriteString(fmt.Sprintf("👤 Customer: %s\n", booking.CustomerName))
	b.WriteString(fmt.Sprintf("📧 Email: %s\n", booking.CustomerEmail))
	if booking.CustomerPhone != "" {
		b.WriteString(fmt.Sprintf("📞 Phone: %s\n", booking.CustomerPhone))
	}
	b.WriteString(fmt.Sprintf("\n🎪 Event: %s on %s", booking.EventType, booking.EventDate.Format("Jan 2, 2006")))
	if booking.EventTime != "" {
		b.WriteString(" at " + booking.EventTime)
	}
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("📍 Location: %s", booking.LocationType))
	if booking.Address != "" {
		b.WriteString(" — " + booking.Address)
	}
	b.WriteString("\n")
	if booking.GuestCount > 0 {
		b.WriteString(fmt.Sprintf("👥 Guests: %d\n", booking.GuestCount))
	}

	b.WriteString(fmt.Sprintf("\n📦 Package: %s (%s)\n", pkg.Name, s.FormatAmount(pkg.DiscountedPrice())))
	b.WriteString(fmt.Sprintf("💰 Total: %s\n", s.FormatAmount(booking.TotalAmount)))
	b.WriteString(fmt.Sprintf("💳 Payment: %s", domain.PaymentMethodLabel(domain.PaymentMethod(booking.PaymentMethod))))
	if booking.AdvancePayment > 0 {
		b.WriteString(fmt.Sprintf(" (advance %s)", s.FormatAmount(booking.AdvancePayment)))
	}
	b.WriteString("\n")

	if booking.SpecialRequests != "" {
		b.WriteString(fmt.Sprintf("\n📝 Special requests: %s\n", booking.SpecialRequests))
	}

	b.WriteString(fmt.Sprintf("\n🆔 Booking #%d\n", booking.ID))
	b.WriteString(fmt.Sprintf("📊 Status: %s", booking.Status))

	return b.String()
}

// FormatAmount formats a currency amount with locale-aware thousands
// separators. Non-numeric or negative amounts fall back to "0".
func (s *NotificationService) FormatAmount(amount float64) string {
	if math.IsNaN(amount) || math.IsInf(amount, 0) || amount < 0 {
		amount = 0
	}
	if amount == math.Trunc(amount) {
		return s.printer.Sprintf("%d %s", int64(amount), s.currency)
	}
	return s.printer.Sprintf("%.2f %s", amount, s.currency)
}

// PushBookingSummary sends the booking summary to the business WhatsApp via
// Twilio. Fire-and-forget: errors are logged and swallowed.
func (s *NotificationService) PushBookingSummary(booking *models.Booking, pkg *models.Package) {
	if s.client == nil || s.from == "" || s.contactNumber == "" {
		return
	}

	params := &twilioApi.CreateMessageParams{}
	params.SetTo("whatsapp:+" + s.contactNumber)
	params.SetFrom("whatsapp:" + s.from)
	params.SetBody(s.BuildBookingMessage(booking, pkg))

	if _, err := s.client.Api.CreateMessage(params); err != nil {
		log.Printf("⚠️ WhatsApp push for booking #%d failed: %v", booking.ID, err)
	}
}

// encodeURIComponent escapes text the way browsers do for URI components,
// using %20 for spaces so chat apps render the message correctly
func encodeURIComponent(text string) string {
	return strings.ReplaceAll(url.QueryEscape(text), "+", "%20")
}
