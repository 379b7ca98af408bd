package parser

import (
	"strings"
	"testing"

	"github.com/Patrykz94/OrderReader-sub000/internal/model"
)

func sunrisePage(po, depot, dateText, stated string, items ...string) []string {
	page := []string{
		"Sunrise Wholesale Ltd",
		"Purchase Order",
		"PO: " + po,
		"Depot: " + depot,
		"Delivery date: " + dateText,
		"Code Description Qty",
	}
	page = append(page, items...)
	return append(page, "Total units: "+stated)
}

func newSunriseForTest(notify *fakeNotifier) *SunriseParser {
	p := NewSunriseParser(testCatalog(), notify)
	p.now = atFixedNow
	return p
}

func TestSunriseParser_Identify(t *testing.T) {
	t.Parallel()

	p := newSunriseForTest(&fakeNotifier{})
	doc := pdfDoc("sw.pdf", sunrisePage("SW-1", "Wakefield", tomorrowText(), "5", "SW-OJ-1000 Orange Juice 1L 5"))
	match := p.Identify(doc)
	if match == nil || match.Customer == nil || match.Customer.Name != "Sunrise" {
		t.Fatalf("Identify = %+v, want the Sunrise customer", match)
	}

	if p.Identify(pdfDoc("other.pdf", []string{"Someone Else", "PO: X"})) != nil {
		t.Error("unknown letterhead must not identify")
	}
	if p.Identify(pdfDoc("empty.pdf")) != nil {
		t.Error("document without pages must not identify")
	}
}

func TestSunriseParser_PageParsing(t *testing.T) {
	t.Parallel()

	notify := &fakeNotifier{}
	p := newSunriseForTest(notify)
	lib := model.NewOrdersLibrary()
	doc := pdfDoc("sw.pdf",
		sunrisePage("SW-1", "Wakefield", tomorrowText(), "17",
			"SW-OJ-1000 Orange Juice 1L 12",
			"SW-AJ-1000 Apple Juice 1L 5"))

	if err := p.Parse(doc, p.Identify(doc), lib); err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if lib.Count() != 1 {
		t.Fatalf("library has %d orders, want 1", lib.Count())
	}
	order := lib.Orders()[0]
	if order.Reference != "SW-1" || order.DepotID != 41 {
		t.Errorf("order = ref %q depot %d, want SW-1/Wakefield", order.Reference, order.DepotID)
	}
	if len(order.Lines) != 2 || order.TotalQuantity() != 17 {
		t.Errorf("lines = %+v, want 2 lines totalling 17", order.Lines)
	}
	if len(notify.messages) != 0 {
		t.Errorf("clean page produced notifications: %q", notify.allMessages())
	}
}

func TestSunriseParser_TotalMismatchOffersContinue(t *testing.T) {
	t.Parallel()

	pageOne := sunrisePage("SW-1", "Wakefield", tomorrowText(), "20", "SW-OJ-1000 Orange Juice 1L 12")
	pageTwo := sunrisePage("SW-2", "Wakefield", fixedNow.AddDate(0, 0, 2).Format("02/01/2006"), "5",
		"SW-AJ-1000 Apple Juice 1L 5")

	// Declining stops after the failed page.
	notify := &fakeNotifier{answerYes: false}
	p := newSunriseForTest(notify)
	lib := model.NewOrdersLibrary()
	if err := p.Parse(pdfDoc("sw.pdf", pageOne, pageTwo), p.Identify(pdfDoc("sw.pdf", pageOne, pageTwo)), lib); err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if lib.Count() != 0 {
		t.Fatalf("declined: library has %d orders, want 0", lib.Count())
	}
	if len(notify.questions) != 1 {
		t.Fatalf("expected one continue question, got %d", len(notify.questions))
	}

	// Accepting processes the second page.
	notify = &fakeNotifier{answerYes: true}
	p = newSunriseForTest(notify)
	lib = model.NewOrdersLibrary()
	doc := pdfDoc("sw.pdf", pageOne, pageTwo)
	if err := p.Parse(doc, p.Identify(doc), lib); err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if lib.Count() != 1 {
		t.Fatalf("accepted: library has %d orders, want 1", lib.Count())
	}
	if lib.Orders()[0].Reference != "SW-2" {
		t.Errorf("surviving order = %q, want SW-2", lib.Orders()[0].Reference)
	}
	if !lib.Orders()[0].HasWarning(model.WarningUnusualDate) {
		t.Error("page-two date is two days out and must be flagged")
	}
}

func TestSunriseParser_UnknownDepotVoidsPage(t *testing.T) {
	t.Parallel()

	notify := &fakeNotifier{}
	p := newSunriseForTest(notify)
	lib := model.NewOrdersLibrary()
	doc := pdfDoc("sw.pdf",
		sunrisePage("SW-1", "Bradford", tomorrowText(), "12", "SW-OJ-1000 Orange Juice 1L 12"))

	if err := p.Parse(doc, p.Identify(doc), lib); err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if lib.Count() != 0 {
		t.Fatalf("library has %d orders, want 0", lib.Count())
	}
	if !strings.Contains(notify.allMessages(), "Bradford") {
		t.Errorf("notification %q does not name the unknown depot", notify.allMessages())
	}
}
