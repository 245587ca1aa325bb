package display

import (
	"bytes"
	"strings"
	"testing"
)

func TestTable_EmptyHeaders(t *testing.T) {
	tbl := NewTable()
	if got := tbl.Render(); got != "" {
		t.Errorf("Render() with empty headers = %q, want empty", got)
	}
}

func TestTable_BasicRender(t *testing.T) {
	SetEnabled(false) // disable colors for predictable output

	tbl := NewTable("Date", "Fajr", "Isha")
	tbl.AddRow("Mon 01 Mar", "05:06", "19:28")
	tbl.AddRow("Tue 02 Mar", "05:05", "19:29")

	got := tbl.Render()
	want := "" +
		"  Date        Fajr   Isha \n" +
		"  ──────────  ─────  ─────\n" +
		"  Mon 01 Mar  05:06  19:28\n" +
		"  Tue 02 Mar  05:05  19:29\n"
	if got != want {
		t.Errorf("Render() =\n%s\nwant\n%s", got, want)
	}
	if tbl.Len() != 2 {
		t.Errorf("Len() = %d, want 2", tbl.Len())
	}
}

func TestTable_RuneWidths(t *testing.T) {
	SetEnabled(false)

	tbl := NewTable("Name", "Isha")
	tbl.AddRow("Egypt", "17.5°")
	tbl.AddRow("Makkah", "90 min")

	lines := strings.Split(strings.TrimRight(tbl.Render(), "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected 4 lines, got %d", len(lines))
	}
	if got := []rune(lines[2]); len(got) != len([]rune(lines[3])) {
		t.Errorf("rows differ in width:\n%s\n%s", lines[2], lines[3])
	}
	if lines[2] != "  Egypt   17.5° " {
		t.Errorf("row = %q", lines[2])
	}
}

func TestTable_AlignRight(t *testing.T) {
	SetEnabled(false)

	tbl := NewTable("Event", "Δ min").SetAlign(1, AlignRight).SetAlign(9, AlignRight)
	tbl.AddRow("Fajr", "1")
	tbl.AddRow("Isha", "-12")

	lines := strings.Split(tbl.Render(), "\n")
	if lines[2] != "  Fajr       1" {
		t.Errorf("right aligned row = %q", lines[2])
	}
	if lines[3] != "  Isha     -12" {
		t.Errorf("right aligned row = %q", lines[3])
	}
}

func TestTable_MissingAndExtraCells(t *testing.T) {
	SetEnabled(false)

	tbl := NewTable("A", "B")
	tbl.AddRow("a")
	tbl.AddRow("x", "y", "dropped")

	got := tbl.Render()
	if strings.Contains(got, "dropped") {
		t.Errorf("extra cell rendered:\n%s", got)
	}
	lines := strings.Split(got, "\n")
	if lines[2] != "  a   " {
		t.Errorf("short row = %q", lines[2])
	}
}

func TestTable_RowStyles(t *testing.T) {
	SetEnabled(true)
	defer SetEnabled(false)

	tbl := NewTable("Date", "Time")
	tbl.AddRow("Mon", "05:00")
	tbl.AddRow("Tue", "--:--")
	tbl.AddRow("Wed", "05:01")
	tbl.Highlight(0)
	tbl.StyleRow(1, StyleRed)

	lines := strings.Split(tbl.Render(), "\n")
	// Line 0 is header, line 1 is separator.
	if !strings.HasPrefix(lines[2], "  \033[1m\033[36m") {
		t.Errorf("highlighted row = %q", lines[2])
	}
	if !strings.HasPrefix(lines[3], "  \033[31m") {
		t.Errorf("red row = %q", lines[3])
	}
	if strings.Contains(lines[4], "\033[") {
		t.Errorf("plain row should not be styled: %q", lines[4])
	}
}

func TestTable_WriteTo(t *testing.T) {
	SetEnabled(false)

	tbl := NewTable("K")
	tbl.AddRow("v")
	var buf bytes.Buffer
	n, err := tbl.WriteTo(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if int(n) != buf.Len() || buf.String() != tbl.Render() {
		t.Errorf("WriteTo wrote %d bytes: %q", n, buf.String())
	}
}
