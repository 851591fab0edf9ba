package semantic

import (
	"strings"
	"testing"

	"ariaAgent/internal/aria"
	"ariaAgent/internal/htmlparse"
)

func TestCreateChunks_SeatContext(t *testing.T) {
	nodes := aria.ParseSnapshot(`- button "10A"
- button "10B" [disabled]
`)
	chunks, flat := NewChunker(StrategyIndividualNodes).CreateChunks(nodes)
	if len(chunks) != 2 || len(flat) != 2 {
		t.Fatalf("expected 2 chunks and 2 flat nodes, got %d and %d", len(chunks), len(flat))
	}

	available := chunks[0].Text
	for _, want := range []string{"seat row 10", "seat 10A", "available free selectable", "Role: button", "Name: 10A"} {
		if !strings.Contains(available, want) {
			t.Errorf("chunk for 10A missing %q: %s", want, available)
		}
	}

	occupied := chunks[1].Text
	if !strings.Contains(occupied, "unavailable occupied taken") {
		t.Errorf("disabled seat should read as occupied: %s", occupied)
	}
	if strings.Contains(occupied, "available free selectable") {
		t.Errorf("disabled seat should not read as available: %s", occupied)
	}
}

func TestCreateChunks_RoleContext(t *testing.T) {
	tests := []struct {
		line string
		want string
	}{
		{`- textbox "Email"`, "input field form"},
		{`- combobox "Страна"`, "input field form"},
		{`- link "Home"`, "navigation link clickable"},
		{`- button "Continue to payment"`, "submit action confirm"},
		{`- button "Go back"`, "cancel navigation back"},
	}

	for _, tt := range tests {
		nodes := aria.ParseSnapshot(tt.line)
		chunks, _ := NewChunker(StrategyIndividualNodes).CreateChunks(nodes)
		if len(chunks) != 1 {
			t.Fatalf("%s: expected 1 chunk, got %d", tt.line, len(chunks))
		}
		if !strings.Contains(chunks[0].Text, tt.want) {
			t.Errorf("%s: missing context %q in %s", tt.line, tt.want, chunks[0].Text)
		}
	}
}

func TestCreateChunks_SeatPatternBounds(t *testing.T) {
	// Трёхзначный ряд и буква за пределами A-K местом не считаются
	for _, line := range []string{`- button "100A"`, `- button "10Z"`, `- button "A10"`} {
		nodes := aria.ParseSnapshot(line)
		chunks, _ := NewChunker(StrategyIndividualNodes).CreateChunks(nodes)
		if len(chunks) != 1 {
			t.Fatalf("%s: expected 1 chunk, got %d", line, len(chunks))
		}
		if strings.Contains(chunks[0].Text, "seat row") {
			t.Errorf("%s: should not look like a seat: %s", line, chunks[0].Text)
		}
	}
}

func TestCreateChunks_Subtrees(t *testing.T) {
	nodes := aria.ParseSnapshot(`- group "Row 10":
  - button "10A"
  - button "10B"
`)
	chunks, flat := NewChunker(StrategySubtrees).CreateChunks(nodes)
	if len(flat) != 3 {
		t.Fatalf("expected 3 flat nodes, got %d", len(flat))
	}
	if len(chunks) != 3 {
		t.Fatalf("expected 3 overlapping chunks, got %d", len(chunks))
	}

	// Чанк родителя содержит текст обоих детей
	root := chunks[0].Text
	if !strings.Contains(root, "Name: 10A") || !strings.Contains(root, "Name: 10B") {
		t.Errorf("subtree chunk should include descendants: %s", root)
	}
	// Чанк ребёнка остаётся отдельным
	if chunks[1].Source != 1 || !strings.Contains(chunks[1].Text, "Name: 10A") {
		t.Errorf("unexpected child chunk: %+v", chunks[1])
	}
}

func TestCreateChunks_SkipsEmptyText(t *testing.T) {
	nodes := []*aria.Node{{}, {Role: "button", Name: "OK"}}
	chunks, flat := NewChunker(StrategyIndividualNodes).CreateChunks(nodes)
	if len(flat) != 2 {
		t.Fatalf("expected 2 flat nodes, got %d", len(flat))
	}
	if len(chunks) != 1 {
		t.Fatalf("expected empty node to be skipped, got %d chunks", len(chunks))
	}
	if chunks[0].Source != 1 {
		t.Errorf("expected Source to point at the flat index, got %d", chunks[0].Source)
	}
}

func TestNewChunker_DefaultsToSubtrees(t *testing.T) {
	c := NewChunker("nonsense")
	if c.strategy != StrategySubtrees {
		t.Errorf("expected subtrees default, got %q", c.strategy)
	}
}

func TestCreateHTMLChunks(t *testing.T) {
	elements := []htmlparse.Element{
		{Tag: "button", Text: "Оплатить", Attributes: map[string]string{"type": "submit", "id": "pay"}},
		{Tag: "input", Attributes: map[string]string{"placeholder": "Email"}},
	}

	chunks := CreateHTMLChunks(elements)
	if len(chunks) != 2 {
		t.Fatalf("expected 2 chunks, got %d", len(chunks))
	}

	first := chunks[0].Text
	for _, want := range []string{"Tag: button", "Text: Оплатить", "id: pay", "type: submit"} {
		if !strings.Contains(first, want) {
			t.Errorf("chunk missing %q: %s", want, first)
		}
	}
	// id идёт раньше type независимо от порядка в map
	if strings.Index(first, "id: pay") > strings.Index(first, "type: submit") {
		t.Errorf("attributes should follow fixed order: %s", first)
	}
	if chunks[1].Source != 1 {
		t.Errorf("expected Source 1, got %d", chunks[1].Source)
	}
}
