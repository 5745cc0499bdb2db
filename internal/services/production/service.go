// Package production implements the business rules of the sawmill modules
// on top of the generic entity forms and lists.
package production

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"pilana/internal/audit"
	"pilana/internal/auth"
	"pilana/internal/backend"
	"pilana/internal/entity"
	"pilana/internal/models"
)

const requiredFields = "Molimo popunite sva obavezna polja"

type Service struct {
	Offers        *entity.List[models.Offer]
	WorkOrders    *entity.List[models.WorkOrder]
	Sawmill       *entity.List[models.SawmillPackage]
	Refinish      *entity.List[models.RefinishProcess]
	Logs          *entity.List[models.Log]
	ShippingNotes *entity.List[models.ShippingNote]
	Cash          *entity.List[models.CashEntry]

	OfferForm     *entity.Form[models.Offer]
	WorkOrderForm *entity.Form[models.WorkOrder]
	SawmillForm   *entity.Form[models.SawmillPackage]
	RefinishForm  *entity.Form[models.RefinishProcess]
	LogForm       *entity.Form[models.Log]
	ShippingForm  *entity.Form[models.ShippingNote]
	CashForm      *entity.Form[models.CashEntry]

	Intake *Intake

	audit *audit.Logger
	lg    *zap.SugaredLogger
	now   func() time.Time
}

// New wires forms and lists for every table of b. notify may be nil.
func New(b backend.Backend, al *audit.Logger, notify entity.Notifier, lg *zap.SugaredLogger) *Service {
	s := &Service{
		Offers:        entity.NewList(b.Offers(), offerSpec, notify, lg),
		WorkOrders:    entity.NewList(b.WorkOrders(), workOrderSpec, notify, lg),
		Sawmill:       entity.NewList(b.Sawmill(), sawmillSpec, notify, lg),
		Refinish:      entity.NewList(b.Refinish(), refinishSpec, notify, lg),
		Logs:          entity.NewList(b.Logs(), logSpec, notify, lg),
		ShippingNotes: entity.NewList(b.ShippingNotes(), shippingSpec, notify, lg),
		Cash:          entity.NewList(b.Cash(), cashSpec, notify, lg),

		OfferForm:     entity.NewForm(b.Offers(), offerSpec, notify, lg),
		WorkOrderForm: entity.NewForm(b.WorkOrders(), workOrderSpec, notify, lg),
		SawmillForm:   entity.NewForm(b.Sawmill(), sawmillSpec, notify, lg),
		RefinishForm:  entity.NewForm(b.Refinish(), refinishSpec, notify, lg),
		LogForm:       entity.NewForm(b.Logs(), logSpec, notify, lg),
		ShippingForm:  entity.NewForm(b.ShippingNotes(), shippingSpec, notify, lg),
		CashForm:      entity.NewForm(b.Cash(), cashSpec, notify, lg),

		audit: al,
		lg:    lg,
		now:   time.Now,
	}
	s.Intake = newIntake(s.LogForm, func() time.Time { return s.now() })
	return s
}

// record writes an audit entry on behalf of the signed-in user, if any.
func (s *Service) record(ctx context.Context, e audit.Entry) {
	if s.audit == nil {
		return
	}
	if p := auth.FromContext(ctx); p.Authenticated() {
		e.UserID = p.UserID
		if e.Username == "" {
			e.Username = p.Username
		}
	}
	s.audit.Record(ctx, e)
}

// QRCode builds a code of the form QR-<data>-<unix ms>.
func (s *Service) QRCode(data string) string {
	return fmt.Sprintf("QR-%s-%d", data, s.now().UnixMilli())
}
