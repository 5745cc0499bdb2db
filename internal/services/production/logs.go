package production

import (
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"pilana/internal/entity"
	"pilana/internal/models"
)

var (
	PlateColors = []string{"plava", "crvena", "zelena", "žuta", "bijela", "crna"}
	LogClasses  = []string{"I", "II", "III", "IV"}
)

var logSpec = &entity.Spec[models.Log]{
	Table:       "trupci",
	SaveError:   "Greška pri spremanju trupca",
	DeleteError: "Greška pri brisanju trupca",
	ID:          func(l *models.Log) string { return l.ID },
	Validate:    validateLog,
	Derive:      deriveLog,
	Search:      func(l models.Log) []string { return []string{l.QRCode, l.PlateNumber, l.Forestry} },
	Columns: []entity.Column[models.Log]{
		{Key: "qr_kod", Label: "QR kod", Value: func(l models.Log) string { return l.QRCode }},
		{Key: "broj_plocice", Label: "Broj pločice", Value: func(l models.Log) string { return l.PlateNumber }},
		{Key: "boja_plocice", Label: "Boja pločice", Value: func(l models.Log) string { return l.PlateColor }},
		{Key: "klasa_trupca", Label: "Klasa", Value: func(l models.Log) string { return l.Class }},
		{Key: "duzina_trupca", Label: "Dužina (cm)", Value: func(l models.Log) string { return num(l.Length) }},
		{Key: "precnik_trupca", Label: "Prečnik (cm)", Value: func(l models.Log) string { return num(l.Diameter) }},
		{Key: "m3", Label: "m³", Value: func(l models.Log) string { return num(l.Volume) }},
		{Key: "datum_prijema", Label: "Datum prijema", Value: func(l models.Log) string { return stamp(l.ReceivedAt) }},
		{Key: "sumarija", Label: "Šumarija", Value: func(l models.Log) string { return l.Forestry }},
		{Key: "status", Label: "Status", Value: func(l models.Log) string { return l.Status }},
	},
}

func validateLog(l *models.Log) error {
	if l.QRCode == "" || l.PlateNumber == "" ||
		!slices.Contains(PlateColors, l.PlateColor) || !slices.Contains(LogClasses, l.Class) ||
		l.Length <= 0 || l.Diameter <= 0 {
		return entity.Invalid(requiredFields)
	}
	return nil
}

// deriveLog computes the declared volume and, when measurements are present,
// the measured volume and its difference to the declared one.
func deriveLog(l *models.Log) {
	l.Volume = Volume(l.Length, l.Diameter)
	if l.MeasuredLength > 0 && l.MeasuredDiameter > 0 {
		l.MeasuredVolume = Volume(l.MeasuredLength, l.MeasuredDiameter)
		l.VolumeDiff = VolumeDiff(l.MeasuredVolume, l.Volume)
	} else {
		l.MeasuredVolume, l.VolumeDiff = 0, 0
	}
	if l.Status == "" {
		l.Status = models.LogInStock
	}
}

// IntakeHeader holds the delivery fields that stay filled between log
// entries of one delivery.
type IntakeHeader struct {
	ReceivedAt   time.Time `json:"datum_prijema"`
	Forestry     string    `json:"sumarija"`
	Branch       string    `json:"podruznica"`
	Department   string    `json:"odjel_broj"`
	Carrier      string    `json:"prevoznik"`
	DeliveryNote string    `json:"broj_otpremnice"`
	NextItem     int       `json:"broj_stavke_otpremnice"`
}

// LogEntry is one received log. When Header is set it replaces the stored
// header before the log is saved.
type LogEntry struct {
	Header           *IntakeHeader `json:"zaglavlje,omitempty"`
	QRCode           string        `json:"qr_kod"`
	PlateNumber      string        `json:"broj_plocice"`
	PlateColor       string        `json:"boja_plocice"`
	Class            string        `json:"klasa_trupca"`
	Length           float64       `json:"duzina_trupca"`
	Diameter         float64       `json:"precnik_trupca"`
	CheckAccuracy    bool          `json:"provjera_tacnosti"`
	MeasuredLength   float64       `json:"izmjerena_duzina"`
	MeasuredDiameter float64       `json:"izmjereni_precnik"`
}

// Intake keeps one sticky header per user.
type Intake struct {
	mu      sync.Mutex
	headers map[string]IntakeHeader
	form    *entity.Form[models.Log]
	now     func() time.Time
}

func newIntake(form *entity.Form[models.Log], now func() time.Time) *Intake {
	return &Intake{headers: map[string]IntakeHeader{}, form: form, now: now}
}

func (in *Intake) Header(user string) IntakeHeader {
	in.mu.Lock()
	defer in.mu.Unlock()
	return in.headerLocked(user)
}

func (in *Intake) headerLocked(user string) IntakeHeader {
	h, ok := in.headers[user]
	if !ok {
		h = IntakeHeader{ReceivedAt: in.now(), NextItem: 1}
		in.headers[user] = h
	}
	return h
}

// ResetHeader clears the delivery fields and restarts item numbering at 1.
func (in *Intake) ResetHeader(user string) IntakeHeader {
	in.mu.Lock()
	defer in.mu.Unlock()
	h := IntakeHeader{ReceivedAt: in.now(), NextItem: 1}
	in.headers[user] = h
	return h
}

// Receive saves one log under the user's current header. After a successful
// save only the item number moves on; the header stays.
func (in *Intake) Receive(ctx context.Context, user string, e LogEntry) (models.Log, error) {
	in.mu.Lock()
	defer in.mu.Unlock()

	h := in.headerLocked(user)
	if e.Header != nil {
		next := h.NextItem
		h = *e.Header
		if h.NextItem <= 0 {
			h.NextItem = next
		}
		if h.ReceivedAt.IsZero() {
			h.ReceivedAt = in.now()
		}
		in.headers[user] = h
	}

	rec := models.Log{
		QRCode:           strings.TrimSpace(e.QRCode),
		PlateNumber:      strings.TrimSpace(e.PlateNumber),
		PlateColor:       e.PlateColor,
		Class:            e.Class,
		Length:           e.Length,
		Diameter:         e.Diameter,
		ReceivedAt:       h.ReceivedAt,
		Forestry:         h.Forestry,
		Branch:           h.Branch,
		Department:       h.Department,
		Carrier:          h.Carrier,
		DeliveryNote:     h.DeliveryNote,
		DeliveryNoteItem: h.NextItem,
	}
	if e.CheckAccuracy {
		rec.MeasuredLength = e.MeasuredLength
		rec.MeasuredDiameter = e.MeasuredDiameter
	}

	saved, err := in.form.Submit(ctx, "", &rec, nil)
	if err != nil {
		return models.Log{}, err
	}
	h.NextItem++
	in.headers[user] = h
	return saved, nil
}
