package production

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"pilana/internal/entity"
	"pilana/internal/models"
)

const cutRequired = "Molimo unesite QR kod paketa i dodajte najmanje jednu stavku"

var sawmillSpec = &entity.Spec[models.SawmillPackage]{
	Table:       "pilana",
	SaveError:   "Greška pri spremanju paketa",
	DeleteError: "Greška pri brisanju paketa",
	ID:          func(p *models.SawmillPackage) string { return p.ID },
	Validate: func(p *models.SawmillPackage) error {
		if p.Code == "" || p.Date.IsZero() || p.Status == "" {
			return entity.Invalid(requiredFields)
		}
		return nil
	},
	Search: func(p models.SawmillPackage) []string { return []string{p.Code, p.Operator, p.Status} },
	Columns: []entity.Column[models.SawmillPackage]{
		{Key: "paket_kod", Label: "Paket", Value: func(p models.SawmillPackage) string { return p.Code }},
		{Key: "datum", Label: "Datum", Value: func(p models.SawmillPackage) string { return p.Date.String() }},
		{Key: "status", Label: "Status", Value: func(p models.SawmillPackage) string { return p.Status }},
		{Key: "korisnik", Label: "Korisnik", Value: func(p models.SawmillPackage) string { return p.Operator }},
		{Key: "stavke", Label: "Stavke", Value: func(p models.SawmillPackage) string { return strconv.Itoa(len(p.Items)) }},
		{Key: "napomena", Label: "Napomena", Value: func(p models.SawmillPackage) string { return p.Note }},
	},
}

// Cut is one cutting entry (prorez) for a package identified by its code.
type Cut struct {
	Code     string               `json:"paket_kod"`
	Date     models.Date          `json:"datum"`
	Items    []models.PackageItem `json:"stavke"`
	Note     string               `json:"napomena"`
	Operator string               `json:"korisnik"`
}

// SuggestWorkOrder returns the number of the first work order whose
// description mentions product, or "".
func SuggestWorkOrder(orders []models.WorkOrder, product string) string {
	p := strings.ToLower(strings.TrimSpace(product))
	if p == "" {
		return ""
	}
	for _, wo := range orders {
		if strings.Contains(strings.ToLower(wo.Description), p) {
			return wo.Number
		}
	}
	return ""
}

// RecordCut stores a cutting entry. An existing package with the same code
// gets its items replaced; otherwise a new package is created in status
// "u-obradi". Items without a work order get the suggested one.
func (s *Service) RecordCut(ctx context.Context, c Cut) (models.SawmillPackage, error) {
	c.Code = strings.TrimSpace(c.Code)
	if c.Code == "" || len(c.Items) == 0 {
		return models.SawmillPackage{}, entity.Invalid(cutRequired)
	}

	orders, err := s.WorkOrders.Fetch(ctx)
	if err != nil {
		return models.SawmillPackage{}, err
	}
	for i := range c.Items {
		if c.Items[i].WorkOrder == "" {
			c.Items[i].WorkOrder = SuggestWorkOrder(orders, c.Items[i].Product)
		}
	}

	pkg, found, err := s.packageByCode(ctx, c.Code)
	if err != nil {
		return models.SawmillPackage{}, err
	}
	id := ""
	if found {
		id = pkg.ID
	} else {
		pkg = models.SawmillPackage{Code: c.Code, Status: models.PackageInProcess}
	}
	pkg.Items = c.Items
	if c.Note != "" {
		pkg.Note = c.Note
	}
	if c.Operator != "" {
		pkg.Operator = c.Operator
	}
	if !c.Date.IsZero() {
		pkg.Date = c.Date
	}
	if pkg.Date.IsZero() {
		pkg.Date = models.NewDate(s.now())
	}
	return s.SawmillForm.Submit(ctx, id, &pkg, nil)
}

// FinishPackage marks the package finished and moved to the warehouse.
func (s *Service) FinishPackage(ctx context.Context, id string) (models.SawmillPackage, error) {
	pkg, err := s.Sawmill.Get(ctx, id)
	if err != nil {
		return models.SawmillPackage{}, err
	}
	pkg.Status = models.PackageFinished
	return s.SawmillForm.Submit(ctx, id, &pkg, nil)
}

func (s *Service) packageByCode(ctx context.Context, code string) (models.SawmillPackage, bool, error) {
	rows, err := s.Sawmill.Fetch(ctx)
	if err != nil {
		return models.SawmillPackage{}, false, fmt.Errorf("find package %s: %w", code, err)
	}
	for _, p := range rows {
		if strings.EqualFold(p.Code, code) {
			return p, true, nil
		}
	}
	return models.SawmillPackage{}, false, nil
}
