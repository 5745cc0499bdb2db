package production

import (
	"context"

	"pilana/internal/entity"
	"pilana/internal/models"
)

var cashSpec = &entity.Spec[models.CashEntry]{
	Table:       "blagajna",
	SaveError:   "Greška pri spremanju stavke blagajne",
	DeleteError: "Greška pri brisanju stavke blagajne",
	ID:          func(c *models.CashEntry) string { return c.ID },
	Validate: func(c *models.CashEntry) error {
		if c.Date.IsZero() || c.Amount <= 0 || (c.Kind != models.CashIn && c.Kind != models.CashOut) {
			return entity.Invalid(requiredFields)
		}
		return nil
	},
	Derive: func(c *models.CashEntry) { c.Amount = round2(c.Amount) },
	Search: func(c models.CashEntry) []string { return []string{c.Description, c.ShippingNote} },
	Columns: []entity.Column[models.CashEntry]{
		{Key: "datum", Label: "Datum", Value: func(c models.CashEntry) string { return c.Date.String() }},
		{Key: "tip", Label: "Tip", Value: func(c models.CashEntry) string { return c.Kind }},
		{Key: "iznos", Label: "Iznos", Value: func(c models.CashEntry) string { return money(c.Amount) }},
		{Key: "opis", Label: "Opis", Value: func(c models.CashEntry) string { return c.Description }},
		{Key: "otpremnica", Label: "Otpremnica", Value: func(c models.CashEntry) string { return c.ShippingNote }},
		{Key: "kome", Label: "Kome", Value: func(c models.CashEntry) string { return c.PaidTo }},
		{Key: "svrha", Label: "Svrha", Value: func(c models.CashEntry) string { return c.Purpose }},
	},
}

type CashSummary struct {
	UnpaidNotes int     `json:"nenaplacene_otpremnice"`
	TotalIn     float64 `json:"ukupan_ulaz"`
	TotalOut    float64 `json:"ukupan_izlaz"`
	Balance     float64 `json:"stanje"`
}

func SummarizeCash(notes []models.ShippingNote, entries []models.CashEntry) CashSummary {
	var sum CashSummary
	for _, n := range notes {
		if n.CollectionStatus == models.DeliveredUnpaid {
			sum.UnpaidNotes++
		}
	}
	for _, e := range entries {
		switch e.Kind {
		case models.CashIn:
			sum.TotalIn += e.Amount
		case models.CashOut:
			sum.TotalOut += e.Amount
		}
	}
	sum.TotalIn = round2(sum.TotalIn)
	sum.TotalOut = round2(sum.TotalOut)
	sum.Balance = round2(sum.TotalIn - sum.TotalOut)
	return sum
}

func (s *Service) CashSummary(ctx context.Context) (CashSummary, error) {
	notes, err := s.ShippingNotes.Fetch(ctx)
	if err != nil {
		return CashSummary{}, err
	}
	entries, err := s.Cash.Fetch(ctx)
	if err != nil {
		return CashSummary{}, err
	}
	return SummarizeCash(notes, entries), nil
}
