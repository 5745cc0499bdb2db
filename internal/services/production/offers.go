package production

import (
	"context"
	"fmt"

	"pilana/internal/entity"
	"pilana/internal/models"
)

var offerSpec = &entity.Spec[models.Offer]{
	Table:       "ponude",
	SaveError:   "Greška pri spremanju ponude",
	DeleteError: "Greška pri brisanju ponude",
	ID:          func(o *models.Offer) string { return o.ID },
	Validate: func(o *models.Offer) error {
		if o.Number == "" || o.Customer == "" {
			return entity.Invalid(requiredFields)
		}
		return nil
	},
	Derive: deriveOffer,
	Search: func(o models.Offer) []string { return []string{o.Number, o.Customer} },
	Columns: []entity.Column[models.Offer]{
		{Key: "broj_ponude", Label: "Broj ponude", Value: func(o models.Offer) string { return o.Number }},
		{Key: "kupac", Label: "Kupac", Value: func(o models.Offer) string { return o.Customer }},
		{Key: "datum", Label: "Datum", Value: func(o models.Offer) string { return o.Date.String() }},
		{Key: "rok_isporuke", Label: "Rok isporuke", Value: func(o models.Offer) string { return o.DeliveryDue.String() }},
		{Key: "status", Label: "Status", Value: func(o models.Offer) string { return o.Status }},
		{Key: "ukupna_cijena", Label: "Ukupna cijena", Value: func(o models.Offer) string { return optMoney(o.TotalPrice) }},
	},
}

// deriveOffer fills line totals. With line items present the offer total is
// their sum; without them the entered total is kept.
func deriveOffer(o *models.Offer) {
	if o.Status == "" {
		o.Status = models.OfferPending
	}
	if len(o.Items) == 0 {
		return
	}
	var sum float64
	for i := range o.Items {
		o.Items[i].Total = round2(o.Items[i].Quantity * o.Items[i].Price)
		sum += o.Items[i].Total
	}
	sum = round2(sum)
	o.TotalPrice = &sum
}

// WorkOrderFromOffer creates a work order for the offer and then marks the
// offer confirmed. The two writes are separate: if the second one fails the
// work order stays and the error is returned.
func (s *Service) WorkOrderFromOffer(ctx context.Context, offerID string) (models.WorkOrder, error) {
	offer, err := s.Offers.Get(ctx, offerID)
	if err != nil {
		return models.WorkOrder{}, err
	}
	wo := models.WorkOrder{
		Number:      fmt.Sprintf("RN-%s", offer.Number),
		Status:      models.WorkOrderPending,
		Priority:    models.PriorityMedium,
		Description: fmt.Sprintf("Nalog za ponudu %s (%s)", offer.Number, offer.Customer),
		OfferID:     offer.ID,
	}
	created, err := s.WorkOrderForm.Submit(ctx, "", &wo, nil)
	if err != nil {
		return models.WorkOrder{}, err
	}
	offer.Status = models.OfferConfirmed
	if _, err := s.OfferForm.Submit(ctx, offer.ID, &offer, nil); err != nil {
		s.lg.Warnw("work order created but offer not confirmed", "offer_id", offer.ID, "work_order_id", created.ID, "error", err)
		return created, fmt.Errorf("confirm offer %s: %w", offer.ID, err)
	}
	return created, nil
}
