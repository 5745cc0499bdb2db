package mockstore

import (
	"time"

	"pilana/internal/models"
)

var userAcc = accessors[models.User]{
	id:      func(r *models.User) *string { return &r.ID },
	orderBy: func(r *models.User) time.Time { return r.CreatedAt },
	stamp:   func(r *models.User, c, u time.Time) { r.CreatedAt, r.UpdatedAt = c, u },
	created: func(r *models.User) time.Time { return r.CreatedAt },
}

var offerAcc = accessors[models.Offer]{
	id:      func(r *models.Offer) *string { return &r.ID },
	orderBy: func(r *models.Offer) time.Time { return r.Date.Time },
	stamp:   func(r *models.Offer, c, u time.Time) { r.CreatedAt, r.UpdatedAt = c, u },
	created: func(r *models.Offer) time.Time { return r.CreatedAt },
}

var workOrderAcc = accessors[models.WorkOrder]{
	id:      func(r *models.WorkOrder) *string { return &r.ID },
	orderBy: func(r *models.WorkOrder) time.Time { return r.CreatedAt },
	stamp:   func(r *models.WorkOrder, c, u time.Time) { r.CreatedAt, r.UpdatedAt = c, u },
	created: func(r *models.WorkOrder) time.Time { return r.CreatedAt },
}

var packageAcc = accessors[models.SawmillPackage]{
	id:      func(r *models.SawmillPackage) *string { return &r.ID },
	orderBy: func(r *models.SawmillPackage) time.Time { return r.Date.Time },
	stamp:   func(r *models.SawmillPackage, c, u time.Time) { r.CreatedAt, r.UpdatedAt = c, u },
	created: func(r *models.SawmillPackage) time.Time { return r.CreatedAt },
}

var refinishAcc = accessors[models.RefinishProcess]{
	id:      func(r *models.RefinishProcess) *string { return &r.ID },
	orderBy: func(r *models.RefinishProcess) time.Time { return r.Date.Time },
	stamp:   func(r *models.RefinishProcess, c, u time.Time) { r.CreatedAt, r.UpdatedAt = c, u },
	created: func(r *models.RefinishProcess) time.Time { return r.CreatedAt },
}

var logAcc = accessors[models.Log]{
	id:      func(r *models.Log) *string { return &r.ID },
	orderBy: func(r *models.Log) time.Time { return r.ReceivedAt },
	stamp:   func(r *models.Log, c, u time.Time) { r.CreatedAt, r.UpdatedAt = c, u },
	created: func(r *models.Log) time.Time { return r.CreatedAt },
}

var shippingAcc = accessors[models.ShippingNote]{
	id:      func(r *models.ShippingNote) *string { return &r.ID },
	orderBy: func(r *models.ShippingNote) time.Time { return r.Date.Time },
	stamp:   func(r *models.ShippingNote, c, u time.Time) { r.CreatedAt, r.UpdatedAt = c, u },
	created: func(r *models.ShippingNote) time.Time { return r.CreatedAt },
}

var cashAcc = accessors[models.CashEntry]{
	id:      func(r *models.CashEntry) *string { return &r.ID },
	orderBy: func(r *models.CashEntry) time.Time { return r.Date.Time },
	stamp:   func(r *models.CashEntry, c, u time.Time) { r.CreatedAt, r.UpdatedAt = c, u },
	created: func(r *models.CashEntry) time.Time { return r.CreatedAt },
}
