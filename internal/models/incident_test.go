package models

import "testing"

func TestValidIncidentPriority(t *testing.T) {
	for _, p := range []string{PriorityLow, PriorityMedium, PriorityHigh} {
		if !ValidIncidentPriority(p) {
			t.Errorf("ValidIncidentPriority(%q) = false, want true", p)
		}
	}
	for _, p := range []string{"", "urgent", "HIGH"} {
		if ValidIncidentPriority(p) {
			t.Errorf("ValidIncidentPriority(%q) = true, want false", p)
		}
	}
}

func TestValidIncidentStatus(t *testing.T) {
	for _, s := range []string{IncidentOpen, IncidentInProgress, IncidentResolved} {
		if !ValidIncidentStatus(s) {
			t.Errorf("ValidIncidentStatus(%q) = false, want true", s)
		}
	}
	if ValidIncidentStatus("closed") {
		t.Error(`ValidIncidentStatus("closed") = true, want false`)
	}
}

func TestValidDocumentCategory(t *testing.T) {
	for _, c := range []string{DocumentLease, DocumentInvoice, DocumentOther} {
		if !ValidDocumentCategory(c) {
			t.Errorf("ValidDocumentCategory(%q) = false, want true", c)
		}
	}
	if ValidDocumentCategory("contract") {
		t.Error(`ValidDocumentCategory("contract") = true, want false`)
	}
}
