package production

import (
	"context"

	"pilana/internal/models"
)

type DashboardStats struct {
	Offers           int         `json:"ponude"`
	ConfirmedOffers  int         `json:"potvrdjene_ponude"`
	ConfirmedRatio   float64     `json:"procenat_potvrdjenih"`
	WorkOrders       int         `json:"radni_nalozi"`
	Packages         int         `json:"pilana"`
	RefinishActive   int         `json:"dorada_aktivni"`
	RefinishFinished int         `json:"dorada_zavrseni"`
	Logs             int         `json:"trupci"`
	LogsRefinishing  int         `json:"trupci_u_doradi"`
	ShippingNotes    int         `json:"otpremnice"`
	Cash             CashSummary `json:"blagajna"`
}

func (s *Service) Dashboard(ctx context.Context) (DashboardStats, error) {
	var st DashboardStats

	offers, err := s.Offers.Fetch(ctx)
	if err != nil {
		return st, err
	}
	st.Offers = len(offers)
	for _, o := range offers {
		if o.Status == models.OfferConfirmed {
			st.ConfirmedOffers++
		}
	}
	if st.Offers > 0 {
		st.ConfirmedRatio = round2(float64(st.ConfirmedOffers) * 100 / float64(st.Offers))
	}

	orders, err := s.WorkOrders.Fetch(ctx)
	if err != nil {
		return st, err
	}
	st.WorkOrders = len(orders)

	packages, err := s.Sawmill.Fetch(ctx)
	if err != nil {
		return st, err
	}
	st.Packages = len(packages)

	runs, err := s.Refinish.Fetch(ctx)
	if err != nil {
		return st, err
	}
	for _, r := range runs {
		switch r.Status {
		case models.RefinishRunning:
			st.RefinishActive++
		case models.RefinishFinished:
			st.RefinishFinished++
		}
	}

	logs, err := s.Logs.Fetch(ctx)
	if err != nil {
		return st, err
	}
	st.Logs = len(logs)
	for _, l := range logs {
		if l.Status == models.LogRefinishing {
			st.LogsRefinishing++
		}
	}

	notes, err := s.ShippingNotes.Fetch(ctx)
	if err != nil {
		return st, err
	}
	st.ShippingNotes = len(notes)
	entries, err := s.Cash.Fetch(ctx)
	if err != nil {
		return st, err
	}
	st.Cash = SummarizeCash(notes, entries)
	return st, nil
}
