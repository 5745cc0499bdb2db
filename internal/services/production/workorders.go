package production

import (
	"pilana/internal/entity"
	"pilana/internal/models"
)

var workOrderSpec = &entity.Spec[models.WorkOrder]{
	Table:       "radni_nalozi",
	SaveError:   "Greška pri spremanju naloga",
	DeleteError: "Greška pri brisanju naloga",
	ID:          func(w *models.WorkOrder) string { return w.ID },
	Validate: func(w *models.WorkOrder) error {
		if w.Number == "" {
			return entity.Invalid(requiredFields)
		}
		return nil
	},
	Derive: func(w *models.WorkOrder) {
		if w.Status == "" {
			w.Status = models.WorkOrderPending
		}
		if w.Priority == "" {
			w.Priority = models.PriorityMedium
		}
	},
	Search: func(w models.WorkOrder) []string { return []string{w.Number, w.Description, w.Status} },
	Columns: []entity.Column[models.WorkOrder]{
		{Key: "broj_naloga", Label: "Broj naloga", Value: func(w models.WorkOrder) string { return w.Number }},
		{Key: "status", Label: "Status", Value: func(w models.WorkOrder) string { return w.Status }},
		{Key: "prioritet", Label: "Prioritet", Value: func(w models.WorkOrder) string { return w.Priority }},
		{Key: "opis", Label: "Opis", Value: func(w models.WorkOrder) string { return w.Description }},
		{Key: "created_at", Label: "Kreiran", Value: func(w models.WorkOrder) string { return stamp(w.CreatedAt) }},
	},
}
