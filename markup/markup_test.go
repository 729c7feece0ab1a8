package markup

import (
	"bytes"
	"strings"
	"testing"

	"golang.org/x/text/encoding/charmap"
)

func TestParseFragment(t *testing.T) {
	src := `<div id="a" fxFlex="50"><span id="b">text</span></div><p id="c"></p>`
	doc, err := Parse([]byte(src))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if !doc.fragment {
		t.Error("Expected fragment")
	}

	els := doc.Elements()
	var ids []string
	for _, n := range els {
		id, _ := Attr(n, "id")
		ids = append(ids, id)
	}
	if strings.Join(ids, ",") != "a,b,c" {
		t.Errorf("Elements() order = %v, want a,b,c", ids)
	}

	out, err := doc.Render()
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	want := `<div id="a" fxflex="50"><span id="b">text</span></div><p id="c"></p>`
	if string(out) != want {
		t.Errorf("Render() = %q, want %q", out, want)
	}
}

func TestParseDocument(t *testing.T) {
	tests := []struct {
		name     string
		src      string
		fragment bool
	}{
		{"doctype", "<!DOCTYPE html><html><body><div></div></body></html>", false},
		{"html", "\n  <html lang=\"en\"><body></body></html>", false},
		{"comment before", "<!-- header --><!doctype html><html></html>", false},
		{"template", "<div><html-viewer></html-viewer></div>", true},
		{"custom element", "<html-viewer></html-viewer>", true},
	}
	for _, tt := range tests {
		doc, err := Parse([]byte(tt.src))
		if err != nil {
			t.Fatalf("%s: Parse() error = %v", tt.name, err)
		}
		if doc.fragment != tt.fragment {
			t.Errorf("%s: fragment = %v, want %v", tt.name, doc.fragment, tt.fragment)
		}
	}

	doc, err := Parse([]byte(`<!DOCTYPE html><html><head></head><body><div fxLayout="row"></div></body></html>`))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(doc.Elements()) != 4 {
		t.Errorf("Elements() = %d, want 4 (html, head, body, div)", len(doc.Elements()))
	}
	out, err := doc.Render()
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if !bytes.HasPrefix(out, []byte("<!DOCTYPE html>")) {
		t.Errorf("Render() lost doctype: %q", out)
	}
}

func TestMutations(t *testing.T) {
	doc, err := Parse([]byte(`<div class="a" fxflex="50" fxhide></div>`))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	n := doc.Elements()[0]

	AddClass(n, "b", "a", "c")
	AddClass(n)
	RemoveAttr(n, "fxflex")
	SetAttr(n, "hidden", "")
	SetAttr(n, "fxhide", "gone")
	RemoveAttr(n, "fxhide")
	RemoveAttr(n, "missing")

	if v, _ := Attr(n, "class"); v != "a b c" {
		t.Errorf("class = %q, want %q", v, "a b c")
	}
	if _, ok := Attr(n, "fxflex"); ok {
		t.Error("fxflex must be removed")
	}

	out, err := doc.Render()
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if want := `<div class="a b c" hidden=""></div>`; string(out) != want {
		t.Errorf("Render() = %q, want %q", out, want)
	}
}

func TestParseTableFragment(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"cells", `<td id="a">a</td><td><div id="b">b</div></td>`},
		{"cells after comment", "<!-- row -->\n  <th id=\"a\">a</th><td id=\"b\"></td>"},
		{"rows", `<tr id="a"><td id="b">x</td></tr>`},
		{"sections", `<thead id="a"><tr><th>h</th></tr></thead><tbody id="b"></tbody>`},
		{"columns", `<col id="a"/><col id="b"/>`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := Parse([]byte(tt.src))
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}
			var ids []string
			for _, n := range doc.Elements() {
				if id, ok := Attr(n, "id"); ok {
					ids = append(ids, id)
				}
			}
			if strings.Join(ids, ",") != "a,b" {
				t.Errorf("Elements() ids = %v, want a,b", ids)
			}
			out, err := doc.Render()
			if err != nil {
				t.Fatalf("Render() error = %v", err)
			}
			if string(out) != tt.src {
				t.Errorf("Render() = %q, want %q", out, tt.src)
			}
		})
	}
}

func TestRemoveAttrKeepsOrder(t *testing.T) {
	doc, err := Parse([]byte(`<div fxlayout="row" id="x" title="t" fxflex lang="en"></div>`))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	n := doc.Elements()[0]
	RemoveAttr(n, "fxlayout")
	RemoveAttr(n, "fxflex")
	AddClass(n, "flex")
	AddClass(n, "flex", "flex-row")

	out, err := doc.Render()
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if want := `<div id="x" title="t" lang="en" class="flex flex-row"></div>`; string(out) != want {
		t.Errorf("Render() = %q, want %q", out, want)
	}
}

func TestAddClassNormalizesSpaces(t *testing.T) {
	doc, err := Parse([]byte("<p class=\"  a\tb  \"></p>"))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	n := doc.Elements()[0]
	AddClass(n, "c")
	AddClass(n, "d", "", "e")
	if v, _ := Attr(n, "class"); v != "a b c d e" {
		t.Errorf("class = %q, want %q", v, "a b c d e")
	}
}

func TestRenderLiteral(t *testing.T) {
	tests := []struct {
		name, src, want string
	}{
		{
			name: "angular expressions",
			src:  `<div [ngclass]="{'on': x > 1}" title='say "hi"'>{{ a && b }} > 0</div>`,
			want: `<div [ngclass]="{'on': x > 1}" title="say &#34;hi&#34;">{{ a && b }} > 0</div>`,
		},
		{
			name: "character references kept escaped",
			src:  `<p title="a &amp; b">x > y &lt; z</p>`,
			want: `<p title="a &amp; b">x &gt; y &lt; z</p>`,
		},
		{
			name: "less than stays escaped",
			src:  `<p>a < b</p>`,
			want: `<p>a &lt; b</p>`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := Parse([]byte(tt.src))
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}
			out, err := doc.Render()
			if err != nil {
				t.Fatalf("Render() error = %v", err)
			}
			if string(out) != tt.want {
				t.Errorf("Render() = %q, want %q", out, tt.want)
			}
		})
	}
}

func TestAddClassWithoutClassAttribute(t *testing.T) {
	doc, err := Parse([]byte(`<span id="x"></span>`))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	n := doc.Elements()[0]
	AddClass(n, "grow", "shrink")
	if v, _ := Attr(n, "class"); v != "grow shrink" {
		t.Errorf("class = %q", v)
	}
}

func TestRestoreAttrCase(t *testing.T) {
	src := `<div *ngIf="show" [ngClass]="{'x': on}" (click)="go()" fxFlex="50"><app-item [itemId]='id' Title="ngclass fxflex"></app-item></div>`
	doc, err := Parse([]byte(src))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	doc.RestoreAttrCase([]byte(src))

	out, err := doc.Render()
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	for _, want := range []string{`*ngIf="show"`, `[ngClass]=`, `(click)="go()"`, `fxFlex="50"`, `[itemId]="id"`, `Title="ngclass fxflex"`} {
		if !strings.Contains(string(out), want) {
			t.Errorf("Render() = %q, missing %q", out, want)
		}
	}
}

func TestCaseIndex(t *testing.T) {
	ci := newCaseIndex([]byte(`<p>fxFlexOrder is great</p><div FXFLEXORDER="1" fxFlexOrder="2" data-Id=1 mixed/>`))
	tests := []struct {
		key, want string
	}{
		// text occurrence is skipped, first attribute usage wins
		{"fxflexorder", "FXFLEXORDER"},
		{"data-id", "data-Id"},
		{"mixed", "mixed"},
		{"absent", "absent"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := ci.restore(tt.key); got != tt.want {
			t.Errorf("restore(%q) = %q, want %q", tt.key, got, tt.want)
		}
	}
}

func TestDecode(t *testing.T) {
	text := "<p>Привет</p>"
	cp1251, err := charmap.Windows1251.NewEncoder().String(text)
	if err != nil {
		t.Fatalf("Failed to encode test data: %v", err)
	}

	got, err := Decode(strings.NewReader(cp1251), charmap.Windows1251)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if string(got) != text {
		t.Errorf("Decode() forced = %q, want %q", got, text)
	}

	meta := `<meta charset="windows-1251">`
	got, err = Decode(strings.NewReader(meta+cp1251), nil)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if string(got) != meta+text {
		t.Errorf("Decode() detected = %q, want %q", got, meta+text)
	}

	got, err = Decode(strings.NewReader(text), nil)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if string(got) != text {
		t.Errorf("Decode() utf-8 = %q, want %q", got, text)
	}
}
