package model

import (
	"testing"
	"time"
)

func TestOrder_AddProductMerges(t *testing.T) {
	t.Parallel()

	o := NewOrder("PO-1", time.Date(2026, 9, 2, 0, 0, 0, 0, time.Local), 1, 2)
	o.AddProduct(10, 5)
	o.AddProduct(10, 5)

	if len(o.Lines) != 1 {
		t.Fatalf("expected 1 merged line, got %d", len(o.Lines))
	}
	if o.Lines[0].Quantity != 10 {
		t.Errorf("merged quantity = %v, want 10", o.Lines[0].Quantity)
	}

	o.AddProduct(11, 3)
	if len(o.Lines) != 2 {
		t.Fatalf("expected 2 lines after distinct product, got %d", len(o.Lines))
	}
	if o.TotalQuantity() != 13 {
		t.Errorf("TotalQuantity = %v, want 13", o.TotalQuantity())
	}
}

func TestOrder_SameOrder(t *testing.T) {
	t.Parallel()

	date := time.Date(2026, 9, 2, 0, 0, 0, 0, time.Local)
	a := NewOrder("PO-1", date, 1, 2)
	b := NewOrder("PO-other", date.Add(5*time.Hour), 1, 2) // same day, different reference
	c := NewOrder("PO-1", date, 1, 3)
	d := NewOrder("PO-1", date.AddDate(0, 0, 1), 1, 2)

	if !a.SameOrder(b) {
		t.Error("orders with same customer/depot/day should match regardless of reference")
	}
	if a.SameOrder(c) {
		t.Error("different depot must not match")
	}
	if a.SameOrder(d) {
		t.Error("different day must not match")
	}
}

func TestOrder_Warnings(t *testing.T) {
	t.Parallel()

	o := NewOrder("PO-1", time.Now(), 1, 2)
	if o.HasWarning(WarningUnusualDate) {
		t.Error("new order should have no warnings")
	}
	o.AddWarning(WarningUnusualDate, "delivery date is 5 days out")
	if !o.HasWarning(WarningUnusualDate) {
		t.Error("warning not recorded")
	}
	if o.HasWarning(WarningUnknownProduct) {
		t.Error("wrong warning type reported")
	}
}

func TestOrder_GroupID(t *testing.T) {
	t.Parallel()

	o := NewOrder("PO-1", time.Date(2026, 9, 2, 10, 30, 0, 0, time.Local), 7, 2)
	if got := o.GroupID(); got != "7-2026-9-2" {
		t.Errorf("GroupID = %q, want 7-2026-9-2", got)
	}
}
