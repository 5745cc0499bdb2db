package export

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"
)

const (
	MethodNetwork = "network"
	MethodBrowser = "browser"
)

const printerNotConfigured = "Mrežni printer nije konfigurisan"

var ErrPrinterNotConfigured = errors.New("network printer not configured")

type NetworkPrinter struct {
	Enabled  bool   `json:"enabled"`
	IP       string `json:"ip"`
	Port     string `json:"port"`
	Protocol string `json:"protocol"`
	Name     string `json:"name"`
}

func (p NetworkPrinter) configured() bool { return p.Enabled && p.IP != "" }

func (p NetworkPrinter) Validate() error {
	switch p.Protocol {
	case "", "http", "https", "ipp":
	default:
		return fmt.Errorf("unsupported printer protocol %q", p.Protocol)
	}
	return nil
}

type PrintOptions struct {
	Orientation  string `json:"orientation"`
	PaperSize    string `json:"paperSize"`
	Margins      int    `json:"margins"`
	HeaderFooter bool   `json:"headerFooter"`
	PageNumbers  bool   `json:"pageNumbers"`
	DateTime     bool   `json:"dateTime"`
	Copies       int    `json:"copies"`
	Duplex       bool   `json:"duplex"`
}

type CustomCommands struct {
	PrePrint  string `json:"prePrint"`
	PostPrint string `json:"postPrint"`
}

type PrintSettings struct {
	NetworkPrinter NetworkPrinter `json:"networkPrinter"`
	PrintOptions   PrintOptions   `json:"printOptions"`
	CustomCommands CustomCommands `json:"customCommands"`
}

func DefaultPrintSettings() PrintSettings {
	return PrintSettings{
		NetworkPrinter: NetworkPrinter{Protocol: "http"},
		PrintOptions: PrintOptions{
			Orientation:  "portrait",
			PaperSize:    "A4",
			Margins:      10,
			HeaderFooter: true,
			PageNumbers:  true,
			DateTime:     true,
			Copies:       1,
		},
	}
}

// Job is one document handed to a network printer.
type Job struct {
	ID        string       `json:"job_id"`
	Module    string       `json:"module"`
	Printer   string       `json:"printer"`
	Content   string       `json:"-"`
	Options   PrintOptions `json:"options"`
	CreatedAt time.Time    `json:"created_at"`
}

type Sender interface {
	Send(ctx context.Context, printer NetworkPrinter, job Job) error
}

// SimulatedSender accepts every job and keeps it in memory. Nothing is sent
// over the network.
type SimulatedSender struct {
	mu   sync.Mutex
	jobs []Job
}

func (s *SimulatedSender) Send(ctx context.Context, printer NetworkPrinter, job Job) error {
	if !printer.configured() {
		return ErrPrinterNotConfigured
	}
	s.mu.Lock()
	s.jobs = append(s.jobs, job)
	s.mu.Unlock()
	return nil
}

func (s *SimulatedSender) Jobs() []Job {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Job(nil), s.jobs...)
}

type Result struct {
	Success bool   `json:"success"`
	Method  string `json:"method"`
	Message string `json:"message"`
	JobID   string `json:"job_id,omitempty"`
}

type Dispatcher struct {
	sender Sender
	now    func() time.Time
}

func NewDispatcher(sender Sender) *Dispatcher {
	return &Dispatcher{sender: sender, now: time.Now}
}

// Dispatch sends content to the network printer when one is enabled and
// configured; otherwise the caller prints through the browser.
func (d *Dispatcher) Dispatch(ctx context.Context, settings PrintSettings, module, content string) (Result, error) {
	now := d.now()
	np := settings.NetworkPrinter
	if !np.configured() {
		return Result{
			Success: true,
			Method:  MethodBrowser,
			Message: "Otvaranje browser print dijaloga",
			JobID:   fmt.Sprintf("browser_%d", now.UnixMilli()),
		}, nil
	}
	name := np.Name
	if name == "" {
		name = "Printer " + np.IP
	}
	job := Job{
		ID:        fmt.Sprintf("network_%d", now.UnixMilli()),
		Module:    module,
		Printer:   name,
		Content:   content,
		Options:   settings.PrintOptions,
		CreatedAt: now,
	}
	if err := d.sender.Send(ctx, np, job); err != nil {
		return Result{Success: false, Method: MethodNetwork, Message: "Greška pri slanju na mrežni printer"}, err
	}
	return Result{
		Success: true,
		Method:  MethodNetwork,
		Message: "Dokument je uspješno poslan na mrežni printer",
		JobID:   job.ID,
	}, nil
}

// TestPrinter reports whether the network printer settings are usable.
func (d *Dispatcher) TestPrinter(np NetworkPrinter) Result {
	if !np.configured() {
		return Result{Success: false, Method: MethodNetwork, Message: printerNotConfigured}
	}
	if err := np.Validate(); err != nil {
		return Result{Success: false, Method: MethodNetwork, Message: err.Error()}
	}
	return Result{Success: true, Method: MethodNetwork, Message: "Mrežni printer je dostupan i spreman za korištenje"}
}
