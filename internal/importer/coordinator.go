package importer

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Patrykz94/OrderReader-sub000/internal/decoder"
	"github.com/Patrykz94/OrderReader-sub000/internal/model"
	"github.com/Patrykz94/OrderReader-sub000/internal/parser"
)

// Coordinator drives an import: decode each file, find the parser that
// recognizes the document, dispatch, and collect a report. Parsers are tried in
// registration order; the first Identify hit wins.
type Coordinator struct {
	parsers []parser.OrderParser
	library *model.OrdersLibrary
	notify  parser.Notifier
}

// NewCoordinator registers every customer-format parser against the shared
// catalog and notifier. leadDays is how many days ahead a normal delivery date
// sits; non-positive values keep the next-day default.
func NewCoordinator(catalog parser.Catalog, library *model.OrdersLibrary, notify parser.Notifier, leadDays int) *Coordinator {
	parsers := []parser.OrderParser{
		parser.NewFreshwaysParser(catalog, notify),
		parser.NewBrackensParser(catalog, notify),
		parser.NewMillbrookParser(catalog, notify),
		parser.NewDeliMondoParser(catalog, notify),
		parser.NewSunriseParser(catalog, notify),
	}
	for _, p := range parsers {
		if configurable, ok := p.(interface{ SetDeliveryLeadDays(int) }); ok {
			configurable.SetDeliveryLeadDays(leadDays)
		}
	}
	return &Coordinator{
		parsers: parsers,
		library: library,
		notify:  notify,
	}
}

// ImportOptions configures one import run.
type ImportOptions struct {
	FilePaths []string
}

// ProgressEvent reports import progress to the front end.
type ProgressEvent struct {
	Type      string    `json:"type"`    // start/file_start/file_done/error/done
	Message   string    `json:"message"`
	Data      any       `json:"data,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// Import runs asynchronously and streams progress events; the channel closes
// when the run is finished. Parsing itself stays sequential: one file, one
// table at a time, in source order.
func (c *Coordinator) Import(opts ImportOptions) <-chan ProgressEvent {
	progress := make(chan ProgressEvent, 100)
	go func() {
		defer close(progress)
		c.doImport(opts, progress)
	}()
	return progress
}

func (c *Coordinator) doImport(opts ImportOptions, progress chan ProgressEvent) {
	startTime := time.Now()
	report := &parser.ImportReport{
		ImportID:   uuid.New().String(),
		TotalFiles: len(opts.FilePaths),
	}

	c.sendProgress(progress, ProgressEvent{
		Type:      "start",
		Message:   fmt.Sprintf("Importing %d file(s)", len(opts.FilePaths)),
		Timestamp: time.Now(),
	})

	for _, path := range opts.FilePaths {
		c.sendProgress(progress, ProgressEvent{
			Type:      "file_start",
			Message:   "Processing " + path,
			Timestamp: time.Now(),
		})

		result := c.ImportFile(path)
		report.Files = append(report.Files, result)
		switch result.Status {
		case "imported":
			report.Imported++
			report.TotalOrders += result.OrdersAdded
		default:
			report.Skipped++
		}

		c.sendProgress(progress, ProgressEvent{
			Type:      "file_done",
			Message:   fmt.Sprintf("%s: %s (%d orders)", result.FileName, result.Status, result.OrdersAdded),
			Data:      result,
			Timestamp: time.Now(),
		})
	}

	report.Duration = time.Since(startTime)
	c.sendProgress(progress, ProgressEvent{
		Type:      "done",
		Message:   "Import finished",
		Data:      report,
		Timestamp: time.Now(),
	})
}

// ImportFile decodes one file and parses it.
func (c *Coordinator) ImportFile(path string) parser.ParseResult {
	doc, err := decoder.DecodeFile(path)
	if err != nil {
		return parser.ParseResult{
			FileName: path,
			Status:   "error",
			Errors:   []string{err.Error()},
		}
	}
	return c.ImportDocument(doc)
}

// ImportDocument finds the parser that recognizes the document and runs it.
// An unrecognized document is reported to the user and skipped, never an error
// return: unknown formats are expected input, not faults.
func (c *Coordinator) ImportDocument(doc *decoder.Document) parser.ParseResult {
	startTime := time.Now()
	result := parser.ParseResult{FileName: doc.FileName, Status: "skipped"}
	ordersBefore := c.library.Count()

	for _, p := range c.parsers {
		if p.SupportedExtension() != normalizeExtension(doc.Extension) {
			continue
		}
		match := p.Identify(doc)
		if match == nil {
			continue
		}

		result.Parser = p.Name()
		result.Recognized = match.Recognized()
		if err := p.Parse(doc, match, c.library); err != nil {
			result.Status = "error"
			result.Errors = append(result.Errors, err.Error())
		} else {
			result.Status = "imported"
			result.OrdersAdded = c.library.Count() - ordersBefore
		}
		result.Duration = time.Since(startTime)
		return result
	}

	c.notify.ShowMessage("Import",
		doc.FileName+" was not recognized as an order from any known customer.", "OK")
	result.Errors = append(result.Errors, "document not recognized by any parser")
	result.Duration = time.Since(startTime)
	return result
}

func (c *Coordinator) sendProgress(ch chan ProgressEvent, event ProgressEvent) {
	select {
	case ch <- event:
	default:
		// Channel full; drop the event rather than stall the import.
	}
}

// normalizeExtension folds the Excel extension family onto ".xlsx".
func normalizeExtension(ext string) string {
	switch strings.ToLower(ext) {
	case ".xlsx", ".xlsm", ".xls":
		return ".xlsx"
	default:
		return strings.ToLower(ext)
	}
}
