package giant

import (
	"strings"
	"testing"
)

// --- helpers ---------------------------------------------------------------

func parseOne(t *testing.T, src string) Stmt {
	t.Helper()
	stmts, errs := ParseSource(src)
	if len(errs) > 0 {
		t.Fatalf("parse errors for %q: %v", src, errs)
	}
	if len(stmts) != 1 {
		t.Fatalf("want 1 statement for %q, got %d", src, len(stmts))
	}
	return stmts[0]
}

func wantStmtString(t *testing.T, src, want string) {
	t.Helper()
	if got := parseOne(t, src).String(); got != want {
		t.Fatalf("parse %q:\nwant %q\ngot  %q", src, want, got)
	}
}

// --- tests -----------------------------------------------------------------

func Test_Parser_AssignPhrasings_LowerToOneNode(t *testing.T) {
	for _, src := range []string{
		"make x be 5",
		"set x to 5",
		"let x be 5",
		"let x be equal to 5",
	} {
		wantStmtString(t, src, "set x to 5")
	}
}

func Test_Parser_PrintPhrasings(t *testing.T) {
	for _, src := range []string{"talk y", "show y", "wetin be y"} {
		wantStmtString(t, src, "talk y")
	}
}

func Test_Parser_Precedence(t *testing.T) {
	wantStmtString(t, "talk 1 plus 2 times 3", "talk (1 plus (2 times 3))")
	wantStmtString(t, "talk (1 plus 2) times 3", "talk ((1 plus 2) times 3)")
	wantStmtString(t, "talk 8 over 2 plus 1", "talk ((8 divided by 2) plus 1)")
}

func Test_Parser_LeftAssociativity(t *testing.T) {
	wantStmtString(t, "talk 10 minus 3 minus 2", "talk ((10 minus 3) minus 2)")
}

func Test_Parser_SwappedOperands(t *testing.T) {
	wantStmtString(t, "talk 20 subtracted from 30", "talk (30 minus 20)")
	wantStmtString(t, "talk 5 added to 10", "talk (10 plus 5)")
	wantStmtString(t, "talk 7 subtract 2", "talk (7 minus 2)")
}

func Test_Parser_AnchorDecl_InlineMeta(t *testing.T) {
	st := parseOne(t, `@anchor opt = 75 tolerance = 5 unit = "celsius"`)
	decl, ok := st.(*AnchorDeclStmt)
	if !ok {
		t.Fatalf("want AnchorDeclStmt, got %T", st)
	}
	if decl.Name != "opt" || len(decl.Meta) != 2 {
		t.Fatalf("want opt with 2 meta entries, got %#v", decl)
	}
	if decl.Meta[0].Key != "tolerance" || decl.Meta[1].Key != "unit" {
		t.Fatalf("meta keys out of order: %#v", decl.Meta)
	}
}

func Test_Parser_AnchorDecl_IndentedMeta(t *testing.T) {
	src := "@anchor opt = 75\n    tolerance = 5\n    unit = \"celsius\""
	st := parseOne(t, src)
	decl := st.(*AnchorDeclStmt)
	if len(decl.Meta) != 2 {
		t.Fatalf("want 2 accumulated meta entries, got %#v", decl.Meta)
	}
}

func Test_Parser_RelationalDecl(t *testing.T) {
	st := parseOne(t, `relational v = 15 relative to [a, b] sensor_id = "s1"`)
	decl, ok := st.(*RelationalDeclStmt)
	if !ok {
		t.Fatalf("want RelationalDeclStmt, got %T", st)
	}
	if decl.Name != "v" || len(decl.Anchors) != 2 || decl.Anchors[0] != "a" || decl.Anchors[1] != "b" {
		t.Fatalf("bad anchor list: %#v", decl)
	}
	if len(decl.Meta) != 1 || decl.Meta[0].Key != "sensor_id" {
		t.Fatalf("bad meta: %#v", decl.Meta)
	}
}

func Test_Parser_RelationalDecl_EmptyAnchorList(t *testing.T) {
	_, errs := ParseSource("relational v = 15 relative to []")
	if len(errs) == 0 {
		t.Fatalf("want error for empty anchor list")
	}
}

func Test_Parser_When_IndentedBody(t *testing.T) {
	src := "when s is \"over\" lim:\n    @action talk \"fast\"\n    @action set x to 1"
	st := parseOne(t, src)
	w, ok := st.(*WhenStmt)
	if !ok {
		t.Fatalf("want WhenStmt, got %T", st)
	}
	if w.Qualifier != "over" || w.Reference != "lim" || len(w.Body) != 2 {
		t.Fatalf("bad when: %#v", w)
	}
	if _, ok := w.Body[1].(*AssignStmt); !ok {
		t.Fatalf("want assign in body, got %T", w.Body[1])
	}
}

func Test_Parser_When_InlineBody(t *testing.T) {
	st := parseOne(t, `when s is "over" lim: @action talk "fast"`)
	w := st.(*WhenStmt)
	if len(w.Body) != 1 {
		t.Fatalf("want 1 inline action, got %#v", w.Body)
	}
}

func Test_Parser_When_UnterminatedAtEOF(t *testing.T) {
	// an unterminated body at EOF is valid; the body is what parsed
	st := parseOne(t, `when s is "over" lim:`)
	w := st.(*WhenStmt)
	if len(w.Body) != 0 {
		t.Fatalf("want empty body, got %#v", w.Body)
	}
}

func Test_Parser_When_MissingBodyBeforeNextStatement(t *testing.T) {
	stmts, errs := ParseSource("when s is \"over\" lim:\ntalk 1")
	if len(errs) != 1 {
		t.Fatalf("want 1 error, got %v", errs)
	}
	if len(stmts) != 1 {
		t.Fatalf("want the following statement to survive, got %d", len(stmts))
	}
	if _, ok := stmts[0].(*PrintStmt); !ok {
		t.Fatalf("want PrintStmt, got %T", stmts[0])
	}
}

func Test_Parser_OneErrorPerStatement(t *testing.T) {
	src := "make be 5\ntalk 7\nrelational v = 1 relative to\ntalk 8"
	stmts, errs := ParseSource(src)
	if len(errs) != 2 {
		t.Fatalf("want 2 errors, got %v", errs)
	}
	if len(stmts) != 2 {
		t.Fatalf("want 2 surviving statements, got %d", len(stmts))
	}
	for _, err := range errs {
		if !strings.Contains(err.Error(), "SyntaxError") {
			t.Fatalf("want SyntaxError, got %v", err)
		}
	}
}

func Test_Parser_ErrorCarriesLine(t *testing.T) {
	_, errs := ParseSource("talk 1\nmake be 5")
	if len(errs) != 1 {
		t.Fatalf("want 1 error, got %v", errs)
	}
	if !strings.Contains(errs[0].Error(), "Error on line 2:") {
		t.Fatalf("want line 2 in %v", errs[0])
	}
}

func Test_Parser_RoundTrip(t *testing.T) {
	for _, src := range []string{
		"set x to 5",
		"talk (1 plus (2 times 3))",
		"talk (30 minus 20)",
		`@anchor opt = 75 tolerance = 5 unit = "celsius"`,
		"list anchors",
		"describe anchor opt",
		`relational v = 15 relative to [a, b] sensor_id = "s1"`,
		"when s is \"over\" lim:\n    @action talk \"fast\"",
	} {
		first := parseOne(t, src).String()
		second := parseOne(t, first).String()
		if first != second {
			t.Fatalf("round trip diverged:\nfirst  %q\nsecond %q", first, second)
		}
	}
}
