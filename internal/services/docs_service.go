package services

import (
	"bytes"
	"fmt"
	"strings"

	"tripbudget/internal/domain"
	"tripbudget/internal/repositories"
	"tripbudget/internal/utils"

	"github.com/phpdave11/gofpdf"
)

// DocsService renders printable PDFs: the trip budget summary and the
// per-passenger payment statement.
type DocsService struct {
	TripRepo      repositories.TripRepository
	PassengerRepo repositories.PassengerRepository
	RequestID     string

	// Test hooks; nil defaults to the repositories.
	FetchTrip      func(int64) (repositories.TripRecord, error)
	FetchPassenger func(int64) (repositories.PassengerRecord, error)
}

func (s DocsService) fetchTrip(id int64) (repositories.TripRecord, error) {
	if s.FetchTrip != nil {
		return s.FetchTrip(id)
	}
	return s.TripRepo.GetByID(id)
}

func (s DocsService) fetchPassenger(id int64) (repositories.PassengerRecord, error) {
	if s.FetchPassenger != nil {
		return s.FetchPassenger(id)
	}
	return s.PassengerRepo.GetByID(id)
}

func (s DocsService) GenerateTripSummary(tripID int64) ([]byte, string, error) {
	trip, err := s.fetchTrip(tripID)
	if err != nil {
		return nil, "", err
	}
	utils.LogEvent(s.RequestID, "docs", "generate_trip_summary", fmt.Sprintf("trip_id=%d", tripID))
	return buildTripSummaryPDF(trip)
}

func (s DocsService) GeneratePaymentStatement(passengerID int64) ([]byte, string, error) {
	p, err := s.fetchPassenger(passengerID)
	if err != nil {
		return nil, "", err
	}
	var destination string
	if p.TripID > 0 {
		if trip, err := s.fetchTrip(p.TripID); err == nil {
			destination = trip.Budget.Destination
		}
	}
	utils.LogEvent(s.RequestID, "docs", "generate_statement", fmt.Sprintf("passenger_id=%d", passengerID))
	return buildPaymentStatementPDF(p, destination)
}

func buildTripSummaryPDF(t repositories.TripRecord) ([]byte, string, error) {
	b := t.Budget
	f := t.Financials

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Resumo da Excursao", false)
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "RESUMO DA EXCURSAO")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	head := []string{
		fmt.Sprintf("Destino   : %s", safe(b.Destination, "-")),
		fmt.Sprintf("Periodo   : %s a %s (%d noites)", safeDateBR(b.DepartureDate), safeDateBR(b.ReturnDate), f.NightsCount),
		fmt.Sprintf("Veiculo   : %s (%d lugares, %d guias, %d promocionais)",
			safe(string(b.VehicleType), "-"), f.SeatCount, f.GuideReservedSeats, f.PromotionalSeats),
		fmt.Sprintf("Pagantes  : %d", f.PayingCount),
	}
	for _, line := range head {
		pdf.Cell(0, 7, line)
		pdf.Ln(7)
	}
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 7, "Despesas por categoria:")
	pdf.Ln(8)

	pdf.SetFont("Helvetica", "", 11)
	categories := []struct {
		label string
		key   domain.Category
	}{
		{"Taxas", domain.CategoryFees},
		{"Transporte", domain.CategoryTransport},
		{"Hospedagem", domain.CategoryLodging},
		{"Passeios", domain.CategoryTours},
		{"Brindes e extras", domain.CategoryGiftsExtras},
		{"Sorteios", domain.CategoryRaffles},
		{"Despesas diversas", domain.CategoryMisc},
	}
	for _, c := range categories {
		pdf.Cell(0, 6, fmt.Sprintf("%-18s %s", c.label, utils.FormatBRL(f.Categories[c.key])))
		pdf.Ln(6)
	}
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 12)
	totals := []string{
		fmt.Sprintf("Despesa total      : %s", utils.FormatBRL(f.TotalExpense)),
		fmt.Sprintf("Preco de equilibrio: %s", utils.FormatBRL(f.BreakEvenPrice)),
		fmt.Sprintf("Preco sugerido     : %s", utils.FormatBRL(f.SuggestedPrice)),
		fmt.Sprintf("Receita prevista   : %s", utils.FormatBRL(f.TotalRevenue)),
		fmt.Sprintf("Lucro previsto     : %s", utils.FormatBRL(f.GrossProfit)),
	}
	for _, line := range totals {
		pdf.Cell(0, 7, line)
		pdf.Ln(7)
	}

	if t.PriceOverridden {
		pdf.Ln(4)
		pdf.SetFont("Helvetica", "I", 10)
		pdf.MultiCell(0, 6, "Preco sugerido definido manualmente.", "", "", false)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}
	filename := fmt.Sprintf("RESUMO_%d_%s.pdf", t.ID, safeFilenamePart(b.Destination))
	return buf.Bytes(), filename, nil
}

func buildPaymentStatementPDF(p repositories.PassengerRecord, destination string) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Extrato de Pagamentos", false)
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "EXTRATO DE PAGAMENTOS")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	head := []string{
		fmt.Sprintf("Passageiro : %s", safe(p.Name, "-")),
		fmt.Sprintf("CPF        : %s", safe(p.CPF, "-")),
		fmt.Sprintf("Excursao   : %s", safe(destination, "-")),
		fmt.Sprintf("Data       : %s", safeDateBR(p.TripDate)),
		fmt.Sprintf("Valor      : %s", utils.FormatBRL(p.Plan.TripPrice)),
		fmt.Sprintf("Emitido em : %s", utils.FormatDateBR(utils.TodayISO())),
	}
	for _, line := range head {
		pdf.Cell(0, 7, line)
		pdf.Ln(7)
	}
	pdf.Ln(4)

	if p.Plan.LumpSum {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.Cell(0, 7, fmt.Sprintf("Pagamento a vista em %s (%s)",
			safeDateBR(p.Plan.LumpSumDate), safe(p.Plan.LumpSumMethod, "-")))
		pdf.Ln(10)
	} else {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.Cell(0, 7, "Parcelas:")
		pdf.Ln(8)

		pdf.SetFont("Helvetica", "", 11)
		for i, in := range p.Plan.Installments {
			if in.Amount == 0 && in.Date == "" {
				continue
			}
			pdf.Cell(0, 6, fmt.Sprintf("%-12s %-12s %s",
				domain.InstallmentLabel(i), safeDateBR(in.Date), utils.FormatBRL(in.Amount)))
			pdf.Ln(6)
		}
		pdf.Ln(4)
	}

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, "Saldo devedor: "+utils.FormatBRL(p.Plan.OutstandingBalance))

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}
	filename := fmt.Sprintf("EXTRATO_%d_%s.pdf", p.ID, safeFilenamePart(p.Name))
	return buf.Bytes(), filename, nil
}

func safe(v, fallback string) string {
	if strings.TrimSpace(v) == "" {
		return fallback
	}
	return v
}

func safeDateBR(v string) string {
	if strings.TrimSpace(v) == "" {
		return "-"
	}
	return utils.FormatDateBR(v)
}

func safeFilenamePart(v string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return "doc"
	}
	var sb strings.Builder
	for _, r := range v {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			sb.WriteRune(r)
		case r == ' ', r == '-', r == '_':
			sb.WriteRune('_')
		}
	}
	if sb.Len() == 0 {
		return "doc"
	}
	return sb.String()
}
