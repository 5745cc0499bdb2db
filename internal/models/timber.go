package models

import (
	"time"

	"gorm.io/gorm"
)

// Log statuses.
const (
	LogInStock     = "na-stanju"
	LogRefinishing = "u-doradi"
	LogIssued      = "izdat"
)

// Log is a single received log (trupac).
type Log struct {
	ID               string    `gorm:"primaryKey;size:36" json:"id"`
	QRCode           string    `gorm:"column:qr_kod;not null" json:"qr_kod"`
	PlateNumber      string    `gorm:"column:broj_plocice;not null" json:"broj_plocice"`
	PlateColor       string    `gorm:"column:boja_plocice" json:"boja_plocice"`
	Class            string    `gorm:"column:klasa_trupca" json:"klasa_trupca"`
	Length           float64   `gorm:"column:duzina_trupca" json:"duzina_trupca"`
	Diameter         float64   `gorm:"column:precnik_trupca" json:"precnik_trupca"`
	Volume           float64   `gorm:"column:m3" json:"m3"`
	ReceivedAt       time.Time `gorm:"column:datum_prijema;index" json:"datum_prijema"`
	Forestry         string    `gorm:"column:sumarija" json:"sumarija"`
	Branch           string    `gorm:"column:podruznica" json:"podruznica"`
	Department       string    `gorm:"column:odjel_broj" json:"odjel_broj"`
	Carrier          string    `gorm:"column:prevoznik" json:"prevoznik"`
	DeliveryNote     string    `gorm:"column:broj_otpremnice" json:"broj_otpremnice"`
	DeliveryNoteItem int       `gorm:"column:broj_stavke_otpremnice" json:"broj_stavke_otpremnice"`
	MeasuredLength   float64   `gorm:"column:izmjerena_duzina" json:"izmjerena_duzina,omitempty"`
	MeasuredDiameter float64   `gorm:"column:izmjereni_precnik" json:"izmjereni_precnik,omitempty"`
	MeasuredVolume   float64   `gorm:"column:izmjereni_m3" json:"izmjereni_m3,omitempty"`
	VolumeDiff       float64   `gorm:"column:razlika_m3" json:"razlika_m3,omitempty"`
	Status           string    `gorm:"column:status" json:"status"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

func (Log) TableName() string { return "trupci" }

func (l *Log) BeforeCreate(*gorm.DB) error {
	assignID(&l.ID)
	return nil
}
