package services

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"

	"railbook/internal/domain"
	"railbook/internal/utils"

	"github.com/phpdave11/gofpdf"
)

// DocsService renders e-ticket PDFs for issued tickets.
type DocsService struct {
	RequestID string
	Loader    func(ticketID int64) (TicketDocData, error)
}

// TicketDocData is everything the e-ticket layout needs, denormalized.
type TicketDocData struct {
	TicketID         int64
	BookingID        int64
	BookingReference string
	PassengerName    string
	PassengerType    string
	TrainNumber      string
	WagonNumber      int
	WagonType        string
	SeatNumber       int
	OriginStation    string
	DestStation      string
	DepartureAt      string
	ArrivalAt        string
	Price            int64
}

func (s DocsService) GenerateETicket(ticketID int64) ([]byte, string, error) {
	if s.Loader == nil {
		return nil, "", domain.InternalError{Msg: "docs loader not configured"}
	}
	data, err := s.Loader(ticketID)
	if err != nil {
		return nil, "", err
	}
	utils.LogEvent(s.RequestID, "docs", "generate_eticket", fmt.Sprintf("ticket_id=%d", ticketID))
	return buildETicketPDF(data)
}

func buildETicketPDF(d TicketDocData) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("E-Ticket", false)
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "E-TICKET")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	lines := []string{
		fmt.Sprintf("Passenger      : %s", safe(d.PassengerName, "-")),
		fmt.Sprintf("Category       : %s", safe(d.PassengerType, "-")),
		fmt.Sprintf("Train          : %s", safe(d.TrainNumber, "-")),
		fmt.Sprintf("Wagon          : %d (%s)", d.WagonNumber, safe(d.WagonType, "-")),
		fmt.Sprintf("Seat           : %d", d.SeatNumber),
		fmt.Sprintf("Route          : %s -> %s", safe(d.OriginStation, "-"), safe(d.DestStation, "-")),
		fmt.Sprintf("Departure      : %s", safe(d.DepartureAt, "-")),
		fmt.Sprintf("Arrival        : %s", safe(d.ArrivalAt, "-")),
		fmt.Sprintf("Price          : %s", utils.FormatMoney(d.Price)),
		fmt.Sprintf("Booking        : %s", safe(d.BookingReference, "-")),
		fmt.Sprintf("Ticket No      : TCK-%d-%d", d.BookingID, d.TicketID),
	}
	for _, s := range lines {
		pdf.Cell(0, 7, s)
		pdf.Ln(7)
	}

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "I", 10)
	pdf.MultiCell(0, 6, "Note: this e-ticket is valid for one passenger (one seat). Please present it at boarding.", "", "", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("ETICKET_%d_%s.pdf", d.TicketID, safeFilenamePart(d.PassengerName))
	return buf.Bytes(), filename, nil
}

func safe(s, fallback string) string {
	if strings.TrimSpace(s) == "" {
		return fallback
	}
	return s
}

var filenameSanitizer = regexp.MustCompile(`[^A-Za-z0-9_-]+`)

func safeFilenamePart(s string) string {
	s = filenameSanitizer.ReplaceAllString(strings.TrimSpace(s), "_")
	if s == "" {
		return "ticket"
	}
	return s
}
