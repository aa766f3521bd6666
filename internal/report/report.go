// Package report aggregates raw operational and financial numbers from the
// repositories.  It only supplies data; formatting and statistics belong to
// whatever front end consumes it.
package report

import (
	"github.com/dfquintero/eventia/internal/model"
	"github.com/dfquintero/eventia/internal/repository"
)

// Reporter reads across repositories to build reports.
type Reporter struct {
	events   *repository.EventRepo
	tickets  *repository.TicketRepo
	payments *repository.PaymentRepo
}

// NewReporter wires the reporter.
func NewReporter(events *repository.EventRepo, tickets *repository.TicketRepo, payments *repository.PaymentRepo) *Reporter {
	return &Reporter{events: events, tickets: tickets, payments: payments}
}

// EventReport is the operational view of a single event.
type EventReport struct {
	EventID        string            `json:"event_id"`
	Name           string            `json:"name"`
	Status         model.EventStatus `json:"status"`
	Capacity       int               `json:"capacity"`
	Registered     int               `json:"registered"`
	Attended       int               `json:"attended"`
	AvailableSlots int               `json:"available_slots"`
	AttendanceRate float64           `json:"attendance_rate"`
	TicketsSold    int               `json:"tickets_sold"`
	TicketsUsed    int               `json:"tickets_used"`
}

// EventReport builds the operational report for one event.
func (r *Reporter) EventReport(eventID string) (EventReport, error) {
	event, err := r.events.FindByID(eventID)
	if err != nil {
		return EventReport{}, err
	}
	tickets := r.tickets.ListByEvent(eventID)
	used := 0
	for _, t := range tickets {
		if t.Used {
			used++
		}
	}
	return EventReport{
		EventID:        event.ID,
		Name:           event.Name,
		Status:         event.Status,
		Capacity:       event.Capacity,
		Registered:     len(event.Registered),
		Attended:       len(event.Attended),
		AvailableSlots: event.AvailableSlots(),
		AttendanceRate: event.AttendanceRate(),
		TicketsSold:    len(tickets),
		TicketsUsed:    used,
	}, nil
}

// PaymentLine is one payment's financial breakdown.
type PaymentLine struct {
	PaymentID          string              `json:"payment_id"`
	TicketID           string              `json:"ticket_id"`
	Status             model.PaymentStatus `json:"status"`
	Method             model.PaymentMethod `json:"method"`
	BaseAmount         int64               `json:"base_amount"`
	MethodCommission   int64               `json:"method_commission"`
	PlatformCommission int64               `json:"platform_commission"`
	TotalCharged       int64               `json:"total_charged"`
	OrganizerNet       int64               `json:"organizer_net"`
	PlatformNet        int64               `json:"platform_net"`
}

// FinancialReport is the money view of a single event.  Totals only count
// approved payments.
type FinancialReport struct {
	EventID           string        `json:"event_id"`
	Lines             []PaymentLine `json:"lines"`
	ApprovedCount     int           `json:"approved_count"`
	TotalCharged      int64         `json:"total_charged"`
	TotalOrganizerNet int64         `json:"total_organizer_net"`
	TotalPlatformNet  int64         `json:"total_platform_net"`
}

// FinancialReport builds the financial report for one event.
func (r *Reporter) FinancialReport(eventID string) (FinancialReport, error) {
	if _, err := r.events.FindByID(eventID); err != nil {
		return FinancialReport{}, err
	}
	rep := FinancialReport{EventID: eventID, Lines: []PaymentLine{}}
	for _, p := range r.payments.ListByEvent(eventID) {
		line := PaymentLine{
			PaymentID:          p.ID,
			TicketID:           p.TicketID,
			Status:             p.Status,
			Method:             p.Method,
			BaseAmount:         p.BaseAmount,
			MethodCommission:   p.MethodCommission,
			PlatformCommission: p.PlatformCommission,
			TotalCharged:       p.TotalAmount,
			OrganizerNet:       p.OrganizerNet(),
			PlatformNet:        p.PlatformNet(),
		}
		rep.Lines = append(rep.Lines, line)
		if p.Status == model.PaymentStatusApproved {
			rep.ApprovedCount++
			rep.TotalCharged += p.TotalAmount
			rep.TotalOrganizerNet += line.OrganizerNet
			rep.TotalPlatformNet += line.PlatformNet
		}
	}
	return rep, nil
}

// Dashboard is the cross-event totals view.
type Dashboard struct {
	Events           int     `json:"events"`
	PublishedEvents  int     `json:"published_events"`
	Registrations    int     `json:"registrations"`
	CheckIns         int     `json:"check_ins"`
	TicketsSold      int     `json:"tickets_sold"`
	ApprovedPayments int     `json:"approved_payments"`
	TotalCharged     int64   `json:"total_charged"`
	OrganizerNet     int64   `json:"organizer_net"`
	PlatformNet      int64   `json:"platform_net"`
	AvgAttendance    float64 `json:"avg_attendance"`
}

// Dashboard builds the platform-wide totals.
func (r *Reporter) Dashboard() Dashboard {
	var d Dashboard
	var rateSum float64
	for _, e := range r.events.ListAll() {
		d.Events++
		if e.Status == model.EventStatusPublished || e.Status == model.EventStatusInProgress {
			d.PublishedEvents++
		}
		d.Registrations += len(e.Registered)
		d.CheckIns += len(e.Attended)
		rateSum += e.AttendanceRate()
	}
	if d.Events > 0 {
		d.AvgAttendance = rateSum / float64(d.Events)
	}
	d.TicketsSold = len(r.tickets.ListAll())
	for _, p := range r.payments.ListAll() {
		if p.Status == model.PaymentStatusApproved {
			d.ApprovedPayments++
			d.TotalCharged += p.TotalAmount
			d.OrganizerNet += p.OrganizerNet()
			d.PlatformNet += p.PlatformNet()
		}
	}
	return d
}
