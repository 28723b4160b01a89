package extract

import (
	"strings"
	"testing"
)

const pageFixture = `<html><body>
<table>
<tbody id="wait_list" class="sortable">
<tr><td>1</td><td>Thu, 23 Jun 2022, 14:17:46 EDT</td><td>/24</td><td>/22</td></tr>
<tr><td>2</td><td>Wed, 7 Sept 2022, 09:00:00 EDT</td><td>/24</td><td>/24</td></tr>
<tr><td>3</td><td>Mon, 16 Jan 2023, 08:30:00 EST</td><td>/23</td><td>/23</td></tr>
<tr><td>4</td><td>not a date</td><td>/24</td><td>/24</td></tr>
<tr><td>5</td><td>Thu, 2 Feb 2023, 10:00:00 EST</td><td>bogus</td><td>/24</td></tr>
</tbody>
</table>
</body></html>`

func TestExtractTable(t *testing.T) {
	records, err := ExtractTable([]byte(pageFixture))
	if err != nil {
		t.Fatalf("ExtractTable failed: %v", err)
	}

	// Rows 4 and 5 are malformed and skipped.
	if len(records) != 3 {
		t.Fatalf("expected 3 records, got %d", len(records))
	}

	first := records[0]
	if first.MaximumCidr != "24" || first.MinimumCidr != "22" {
		t.Errorf("expected max 24 / min 22, got %s / %s", first.MaximumCidr, first.MinimumCidr)
	}
	// EDT is UTC-4.
	if first.WaitlistActionDate != "2022-06-23T14:17:46-04:00" {
		t.Errorf("unexpected action date: %s", first.WaitlistActionDate)
	}
}

func TestExtractTable_SeptQuirk(t *testing.T) {
	records, err := ExtractTable([]byte(pageFixture))
	if err != nil {
		t.Fatalf("ExtractTable failed: %v", err)
	}
	if !strings.HasPrefix(records[1].WaitlistActionDate, "2022-09-07T09:00:00") {
		t.Errorf("expected Sept row parsed as September, got %s", records[1].WaitlistActionDate)
	}
}

func TestExtractTable_WinterIsEST(t *testing.T) {
	records, err := ExtractTable([]byte(pageFixture))
	if err != nil {
		t.Fatalf("ExtractTable failed: %v", err)
	}
	if records[2].WaitlistActionDate != "2023-01-16T08:30:00-05:00" {
		t.Errorf("expected EST offset -05:00, got %s", records[2].WaitlistActionDate)
	}
}

func TestExtractTable_NoTable(t *testing.T) {
	if _, err := ExtractTable([]byte("<html><body>nothing here</body></html>")); err == nil {
		t.Fatal("expected error when wait_list table is missing")
	}
}

func TestMarshalRecords_RoundTripsThroughNormalizer(t *testing.T) {
	records, err := ExtractTable([]byte(pageFixture))
	if err != nil {
		t.Fatalf("ExtractTable failed: %v", err)
	}
	out, err := MarshalRecords(records)
	if err != nil {
		t.Fatalf("MarshalRecords failed: %v", err)
	}
	if !strings.Contains(string(out), `"waitlistactiondate"`) {
		t.Errorf("expected lowercase export keys, got %s", out)
	}
}
