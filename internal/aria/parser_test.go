package aria

import "testing"

const sampleSnapshot = `- banner:
  - heading "Выбор мест" [level=1]
- list "Navigation":
  - listitem:
    - link "Home"
  - listitem:
    - link "Seats"
- button "10A"
- button "10B" [disabled]
- textbox "Email" [required]
`

func TestParseSnapshot_Tree(t *testing.T) {
	nodes := ParseSnapshot(sampleSnapshot)
	if len(nodes) != 5 {
		t.Fatalf("expected 5 root nodes, got %d", len(nodes))
	}

	if nodes[0].Role != "banner" || len(nodes[0].Children) != 1 {
		t.Fatalf("unexpected banner node: %+v", nodes[0])
	}

	heading := nodes[0].Children[0]
	if heading.Role != "heading" || heading.Name != "Выбор мест" {
		t.Fatalf("unexpected heading: %+v", heading)
	}
	if v, ok := heading.Attr("level"); !ok || v != "1" {
		t.Fatalf("expected level=1, got %q (ok=%v)", v, ok)
	}
	if heading.Depth != 1 {
		t.Errorf("expected heading depth 1, got %d", heading.Depth)
	}

	list := nodes[1]
	if list.Role != "list" || list.Name != "Navigation" || len(list.Children) != 2 {
		t.Fatalf("unexpected list node: %+v", list)
	}
	link := list.Children[0].Children[0]
	if link.Role != "link" || link.Name != "Home" || link.Depth != 2 {
		t.Fatalf("unexpected link node: %+v", link)
	}

	if CountNodes(nodes) != 10 {
		t.Errorf("expected 10 nodes total, got %d", CountNodes(nodes))
	}
}

func TestParseSnapshot_BooleanAttribute(t *testing.T) {
	nodes := ParseSnapshot(`- button "10B" [disabled]`)
	if len(nodes) != 1 {
		t.Fatalf("expected 1 node, got %d", len(nodes))
	}
	if v, ok := nodes[0].Attr("disabled"); !ok || v != "true" {
		t.Fatalf("expected disabled=true, got %q (ok=%v)", v, ok)
	}
}

func TestParseSnapshot_MalformedYAML(t *testing.T) {
	nodes := ParseSnapshot("%%% not valid %%%")
	if len(nodes) != 0 {
		t.Fatalf("expected empty result for malformed input, got %d nodes", len(nodes))
	}
}

func TestParseSnapshot_EmptyInput(t *testing.T) {
	if nodes := ParseSnapshot(""); len(nodes) != 0 {
		t.Fatalf("expected empty result, got %d nodes", len(nodes))
	}
}

func TestParseSnapshot_UnrecognizedLineBecomesText(t *testing.T) {
	nodes := ParseSnapshot(`- "какой-то свободный текст: 42%"`)
	if len(nodes) != 1 {
		t.Fatalf("expected 1 node, got %d", len(nodes))
	}
	if nodes[0].Role != "text" {
		t.Errorf("expected role text, got %q", nodes[0].Role)
	}
	if nodes[0].Name == "" {
		t.Errorf("expected raw line preserved in name")
	}
}

func TestNodeLine_RoundTrip(t *testing.T) {
	lines := []string{
		`button "Submit" [focused]`,
		`checkbox "Remember me" [checked=mixed]`,
		`link "Home"`,
		`separator`,
	}

	for _, line := range lines {
		node := parseNodeLine(line, 0)
		if node == nil {
			t.Fatalf("failed to parse %q", line)
		}
		reparsed := parseNodeLine(node.Line(), 0)
		if reparsed == nil {
			t.Fatalf("failed to reparse %q", node.Line())
		}
		if reparsed.Role != node.Role || reparsed.Name != node.Name {
			t.Errorf("round trip mismatch for %q: %+v vs %+v", line, node, reparsed)
		}
		if len(reparsed.Attrs) != len(node.Attrs) {
			t.Fatalf("attribute count mismatch for %q", line)
		}
		for i := range node.Attrs {
			if reparsed.Attrs[i] != node.Attrs[i] {
				t.Errorf("attribute mismatch for %q: %+v vs %+v", line, node.Attrs[i], reparsed.Attrs[i])
			}
		}
	}
}

func TestLimitDepth(t *testing.T) {
	nodes := ParseSnapshot(sampleSnapshot)

	limited := LimitDepth(nodes, 1)
	if len(limited) != 5 {
		t.Fatalf("expected 5 root nodes, got %d", len(limited))
	}
	if CountNodes(limited) != 5 {
		t.Errorf("expected children pruned at depth 1, got %d nodes", CountNodes(limited))
	}

	// Исходное дерево не должно измениться
	if CountNodes(nodes) != 10 {
		t.Errorf("source tree mutated: %d nodes", CountNodes(nodes))
	}

	if got := LimitDepth(nodes, 0); CountNodes(got) != 10 {
		t.Errorf("maxDepth=0 must be unlimited, got %d nodes", CountNodes(got))
	}
}
