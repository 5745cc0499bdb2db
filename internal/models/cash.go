package models

import (
	"time"

	"gorm.io/gorm"
)

// Collection statuses of a shipping note.
const (
	DeliveredUnpaid = "isporučeno-nenaplaćeno"
	Paid            = "naplaćeno"
)

type ShippingItem struct {
	Product  string  `json:"proizvod"`
	Quantity float64 `json:"kolicina"`
	Unit     string  `json:"jedinica_mjere"`
	Price    float64 `json:"cijena"`
	Total    float64 `json:"ukupno"`
}

// ShippingNote is an outgoing delivery note (otpremnica) handled by the cash register.
type ShippingNote struct {
	ID               string         `gorm:"primaryKey;size:36" json:"id"`
	Number           string         `gorm:"column:broj_otpremnice;not null" json:"broj_otpremnice"`
	Customer         string         `gorm:"column:kupac;not null" json:"kupac"`
	Date             Date           `gorm:"column:datum;index" json:"datum"`
	Items            []ShippingItem `gorm:"column:stavke;serializer:json;type:text" json:"stavke"`
	WithFinancials   bool           `gorm:"column:sa_finansijskim_podacima" json:"sa_finansijskim_podacima"`
	Deposit          float64        `gorm:"column:depozit" json:"depozit"`
	Total            float64        `gorm:"column:ukupan_iznos" json:"ukupan_iznos"`
	AmountDue        float64        `gorm:"column:za_uplatu" json:"za_uplatu"`
	CollectionStatus string         `gorm:"column:status_naplate" json:"status_naplate"`
	ReceivedBy       string         `gorm:"column:preuzeo" json:"preuzeo"`
	Carrier          string         `gorm:"column:prevoznik" json:"prevoznik"`
	Note             string         `gorm:"column:napomena" json:"napomena"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
}

func (ShippingNote) TableName() string { return "otpremnice" }

func (s *ShippingNote) BeforeCreate(*gorm.DB) error {
	assignID(&s.ID)
	return nil
}

// Cash entry directions.
const (
	CashIn  = "ulaz"
	CashOut = "izlaz"
)

// CashEntry is a single cash register movement.
type CashEntry struct {
	ID           string    `gorm:"primaryKey;size:36" json:"id"`
	Date         Date      `gorm:"column:datum;index" json:"datum"`
	Kind         string    `gorm:"column:tip;not null" json:"tip"`
	Amount       float64   `gorm:"column:iznos" json:"iznos"`
	Description  string    `gorm:"column:opis" json:"opis"`
	ShippingNote string    `gorm:"column:otpremnica" json:"otpremnica,omitempty"`
	PaidTo       string    `gorm:"column:kome" json:"kome,omitempty"`
	OrderedBy    string    `gorm:"column:po_nalogu" json:"po_nalogu,omitempty"`
	Purpose      string    `gorm:"column:svrha" json:"svrha,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (CashEntry) TableName() string { return "blagajna" }

func (c *CashEntry) BeforeCreate(*gorm.DB) error {
	assignID(&c.ID)
	return nil
}

// All lists every model the relational backend migrates.
func All() []any {
	return []any{
		&User{}, &Session{}, &AuditLog{}, &Setting{},
		&Offer{}, &WorkOrder{}, &SawmillPackage{}, &RefinishProcess{},
		&Log{}, &ShippingNote{}, &CashEntry{},
	}
}
