package models

import (
	"time"

	"gorm.io/gorm"
)

// Offer statuses.
const (
	OfferPending   = "na-čekanju"
	OfferConfirmed = "potvrđena"
	OfferRejected  = "odbijena"
)

type OfferItem struct {
	Product  string  `json:"proizvod"`
	Quantity float64 `json:"kolicina"`
	Price    float64 `json:"cijena"`
	Total    float64 `json:"ukupno"`
}

// Offer is a customer quote (ponuda).
type Offer struct {
	ID          string      `gorm:"primaryKey;size:36" json:"id"`
	Number      string      `gorm:"column:broj_ponude;not null" json:"broj_ponude"`
	Customer    string      `gorm:"column:kupac;not null" json:"kupac"`
	Status      string      `gorm:"column:status;not null" json:"status"`
	TotalPrice  *float64    `gorm:"column:ukupna_cijena" json:"ukupna_cijena"`
	Items       []OfferItem `gorm:"column:stavke;serializer:json;type:text" json:"stavke"`
	DeliveryDue Date        `gorm:"column:rok_isporuke" json:"rok_isporuke"`
	Date        Date        `gorm:"column:datum;index" json:"datum"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

func (Offer) TableName() string { return "ponude" }

func (o *Offer) BeforeCreate(*gorm.DB) error {
	assignID(&o.ID)
	return nil
}

// Work order statuses and priorities.
const (
	WorkOrderPriority  = "prioritet"
	WorkOrderInProcess = "u-obradi"
	WorkOrderPending   = "na-čekanju"
	WorkOrderPaused    = "pauzirano"
	WorkOrderCancelled = "otkazano"

	PriorityHigh   = "visok"
	PriorityMedium = "srednji"
	PriorityLow    = "nizak"
)

// WorkOrder is a production order (radni nalog).
type WorkOrder struct {
	ID          string    `gorm:"primaryKey;size:36" json:"id"`
	Number      string    `gorm:"column:broj_naloga;not null" json:"broj_naloga"`
	Status      string    `gorm:"column:status;not null" json:"status"`
	Priority    string    `gorm:"column:prioritet;not null" json:"prioritet"`
	Description string    `gorm:"column:opis" json:"opis"`
	OfferID     string    `gorm:"column:ponuda_id;size:36" json:"ponuda_id,omitempty"`
	CreatedAt   time.Time `gorm:"index" json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (WorkOrder) TableName() string { return "radni_nalozi" }

func (w *WorkOrder) BeforeCreate(*gorm.DB) error {
	assignID(&w.ID)
	return nil
}

// Sawmill package statuses.
const (
	PackageInProcess = "u-obradi"
	PackageFinished  = "završen"
)

type PackageItem struct {
	Product   string  `json:"proizvod"`
	Quantity  float64 `json:"kolicina"`
	WorkOrder string  `json:"radni_nalog,omitempty"`
	Note      string  `json:"napomena,omitempty"`
}

// SawmillPackage is a package of sawn timber produced at the sawmill (pilana).
type SawmillPackage struct {
	ID        string        `gorm:"primaryKey;size:36" json:"id"`
	Code      string        `gorm:"column:paket_kod;not null" json:"paket_kod"`
	Date      Date          `gorm:"column:datum;index" json:"datum"`
	Status    string        `gorm:"column:status" json:"status"`
	Operator  string        `gorm:"column:korisnik" json:"korisnik"`
	Items     []PackageItem `gorm:"column:stavke;serializer:json;type:text" json:"stavke"`
	Note      string        `gorm:"column:napomena" json:"napomena"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

func (SawmillPackage) TableName() string { return "pilana" }

func (p *SawmillPackage) BeforeCreate(*gorm.DB) error {
	assignID(&p.ID)
	return nil
}

// Refinish statuses.
const (
	RefinishRunning  = "u-toku"
	RefinishFinished = "završen"
)

// RefinishProcess is a refinishing run (dorada) on one machine.
type RefinishProcess struct {
	ID         string    `gorm:"primaryKey;size:36" json:"id"`
	Date       Date      `gorm:"column:datum;index" json:"datum"`
	Machine    string    `gorm:"column:masina;not null" json:"masina"`
	Worker     string    `gorm:"column:radnik" json:"radnik"`
	NewPackage string    `gorm:"column:novi_paket" json:"novi_paket"`
	Status     string    `gorm:"column:status" json:"status"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (RefinishProcess) TableName() string { return "dorada" }

func (r *RefinishProcess) BeforeCreate(*gorm.DB) error {
	assignID(&r.ID)
	return nil
}
