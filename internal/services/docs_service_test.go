package services

import (
	"strings"
	"testing"
)

func TestDocsServiceGenerateETicket(t *testing.T) {
	loader := func(id int64) (TicketDocData, error) {
		return TicketDocData{
			TicketID:         id,
			BookingID:        10,
			BookingReference: "ref-123",
			PassengerName:    "Test Passenger",
			PassengerType:    "Adult",
			TrainNumber:      "IC-204",
			WagonNumber:      3,
			WagonType:        "Economy",
			SeatNumber:       7,
			OriginStation:    "Central",
			DestStation:      "Harbor",
			DepartureAt:      "2026-09-01 08:00:00",
			ArrivalAt:        "2026-09-01 11:30:00",
			Price:            10000,
		}, nil
	}

	svc := DocsService{Loader: loader}

	pdf, filename, err := svc.GenerateETicket(1)
	if err != nil {
		t.Fatalf("GenerateETicket returned error: %v", err)
	}
	if len(pdf) == 0 {
		t.Fatalf("GenerateETicket returned empty data")
	}
	if !strings.HasPrefix(filename, "ETICKET_1_") || !strings.HasSuffix(filename, ".pdf") {
		t.Fatalf("unexpected filename %q", filename)
	}
}

func TestDocsServiceWithoutLoader(t *testing.T) {
	svc := DocsService{}
	if _, _, err := svc.GenerateETicket(1); err == nil {
		t.Fatalf("expected error when loader is missing")
	}
}
