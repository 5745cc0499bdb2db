package production

import (
	"context"
	"fmt"
	"time"

	"pilana/internal/audit"
	"pilana/internal/entity"
	"pilana/internal/models"
)

const shippingRequired = "Molimo odaberite kupca i dodajte stavke"

var shippingSpec = &entity.Spec[models.ShippingNote]{
	Table:       "otpremnice",
	SaveError:   "Greška pri spremanju otpremnice",
	DeleteError: "Greška pri brisanju otpremnice",
	ID:          func(n *models.ShippingNote) string { return n.ID },
	Validate: func(n *models.ShippingNote) error {
		if n.Customer == "" || len(n.Items) == 0 {
			return entity.Invalid(shippingRequired)
		}
		return nil
	},
	Derive: deriveShippingNote,
	Search: func(n models.ShippingNote) []string { return []string{n.Number, n.Customer} },
	Columns: []entity.Column[models.ShippingNote]{
		{Key: "broj_otpremnice", Label: "Broj otpremnice", Value: func(n models.ShippingNote) string { return n.Number }},
		{Key: "kupac", Label: "Kupac", Value: func(n models.ShippingNote) string { return n.Customer }},
		{Key: "datum", Label: "Datum", Value: func(n models.ShippingNote) string { return n.Date.String() }},
		{Key: "ukupan_iznos", Label: "Ukupan iznos", Value: func(n models.ShippingNote) string { return money(n.Total) }},
		{Key: "depozit", Label: "Depozit", Value: func(n models.ShippingNote) string { return money(n.Deposit) }},
		{Key: "za_uplatu", Label: "Za uplatu", Value: func(n models.ShippingNote) string { return money(n.AmountDue) }},
		{Key: "status_naplate", Label: "Status naplate", Value: func(n models.ShippingNote) string { return n.CollectionStatus }},
	},
}

// deriveShippingNote recomputes line totals, the note total and the amount
// due. A deposit larger than the total leaves a negative amount due.
func deriveShippingNote(n *models.ShippingNote) {
	var sum float64
	for i := range n.Items {
		n.Items[i].Total = round2(n.Items[i].Quantity * n.Items[i].Price)
		sum += n.Items[i].Total
	}
	n.Total = round2(sum)
	n.AmountDue = round2(n.Total - n.Deposit)
	if n.CollectionStatus == "" {
		n.CollectionStatus = models.DeliveredUnpaid
	}
}

// ShippingNoteNumber builds the default note number OTP-<year>-<last three
// digits of the unix millisecond clock>.
func ShippingNoteNumber(now time.Time) string {
	return fmt.Sprintf("OTP-%d-%03d", now.Year(), now.UnixMilli()%1000)
}

func (s *Service) SaveShippingNote(ctx context.Context, id string, rec *models.ShippingNote) (models.ShippingNote, error) {
	if id == "" && rec.Number == "" {
		rec.Number = ShippingNoteNumber(s.now())
	}
	if rec.Date.IsZero() {
		rec.Date = models.NewDate(s.now())
	}
	action := "otpremnica:kreiranje"
	if id != "" {
		action = "otpremnica:izmjena"
	}
	return s.ShippingForm.Submit(ctx, id, rec, func(saved models.ShippingNote) {
		user := saved.Customer
		if user == "" {
			user = "n/a"
		}
		s.record(ctx, audit.Entry{
			Username: user,
			Action:   action,
			Details: map[string]any{
				"datum":           saved.Date,
				"broj_otpremnice": saved.Number,
				"stavke":          saved.Items,
				"ukupan_iznos":    saved.Total,
				"za_uplatu":       saved.AmountDue,
			},
		})
	})
}
