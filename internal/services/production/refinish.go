package production

import (
	"context"

	"pilana/internal/audit"
	"pilana/internal/entity"
	"pilana/internal/models"
)

var refinishSpec = &entity.Spec[models.RefinishProcess]{
	Table:       "dorada",
	SaveError:   "Greška pri spremanju procesa",
	DeleteError: "Greška pri brisanju procesa",
	ID:          func(r *models.RefinishProcess) string { return r.ID },
	Validate: func(r *models.RefinishProcess) error {
		if r.Date.IsZero() || r.Machine == "" {
			return entity.Invalid(requiredFields)
		}
		return nil
	},
	Derive: func(r *models.RefinishProcess) {
		if r.Status == "" {
			r.Status = models.RefinishRunning
		}
	},
	Search: func(r models.RefinishProcess) []string { return []string{r.Machine, r.Worker, r.NewPackage} },
	Columns: []entity.Column[models.RefinishProcess]{
		{Key: "datum", Label: "Datum", Value: func(r models.RefinishProcess) string { return r.Date.String() }},
		{Key: "masina", Label: "Mašina", Value: func(r models.RefinishProcess) string { return r.Machine }},
		{Key: "radnik", Label: "Radnik", Value: func(r models.RefinishProcess) string { return r.Worker }},
		{Key: "novi_paket", Label: "Novi paket", Value: func(r models.RefinishProcess) string { return r.NewPackage }},
		{Key: "status", Label: "Status", Value: func(r models.RefinishProcess) string { return r.Status }},
	},
}

// SaveRefinish creates or updates a refinishing run and records it in the
// audit log under the worker's name.
func (s *Service) SaveRefinish(ctx context.Context, id string, rec *models.RefinishProcess) (models.RefinishProcess, error) {
	action := "dorada:kreiranje"
	if id != "" {
		action = "dorada:izmjena"
	}
	return s.RefinishForm.Submit(ctx, id, rec, func(saved models.RefinishProcess) {
		user := saved.Worker
		if user == "" {
			user = "n/a"
		}
		s.record(ctx, audit.Entry{
			Username: user,
			Action:   action,
			Details: map[string]any{
				"datum":      saved.Date,
				"masina":     saved.Machine,
				"radnik":     saved.Worker,
				"novi_paket": saved.NewPackage,
				"status":     saved.Status,
			},
		})
	})
}
