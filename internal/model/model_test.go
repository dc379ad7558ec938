package model

import (
	"strings"
	"testing"
)

func TestSanitizeFileName(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"normal-file.jpg", "normal-file.jpg"},
		{"file:with:colons", "file_with_colons"},
		{"file<with>brackets", "file_with_brackets"},
		{"file/with\\slashes", "file_with_slashes"},
		{"file|with|pipes", "file_with_pipes"},
		{"file?with*wildcards", "file_with_wildcards"},
		{"file\"with\"quotes", "file_with_quotes"},
		{"inner spaces here", "inner_spaces_here"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := sanitizeFileName(tt.input)
			if got != tt.want {
				t.Errorf("sanitizeFileName(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestResolveFileName(t *testing.T) {
	header := []string{"produkt_ean", "zdjecie", "nazwa", "kolor"}
	row := NewRow(1, header, []string{"5901234123457", "http://x/img.png", "Kubek 300 ml"})

	tests := []struct {
		name     string
		template string
		want     string
	}{
		{"identifier with suffix", "{produkt_ean}-1", "5901234123457-1.jpg"},
		{"non selected column", "{nazwa}", "Kubek_300_ml.jpg"},
		{"unknown placeholder kept", "{EAN}-2", "{EAN}-2.jpg"},
		{"existing extension", "{produkt_ean}.jpg", "5901234123457.jpg"},
		{"existing extension upper case", "{produkt_ean}.JPG", "5901234123457.JPG"},
		{"other extension gets jpg", "{produkt_ean}.png", "5901234123457.png.jpg"},
		{"surrounding whitespace trimmed", "  {produkt_ean}  ", "5901234123457.jpg"},
		{"repeated placeholder", "{produkt_ean}_{produkt_ean}", "5901234123457_5901234123457.jpg"},
		{"url value sanitized", "{zdjecie}", "http___x_img.png.jpg"},
		{"empty template", "", ".jpg"},
		{"column missing from short record", "{produkt_ean}-{kolor}", "5901234123457-{kolor}.jpg"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResolveFileName(tt.template, row)
			if got != tt.want {
				t.Errorf("ResolveFileName(%q) = %q, want %q", tt.template, got, tt.want)
			}
		})
	}
}

func TestResolveFileName_Idempotent(t *testing.T) {
	row := NewRow(3, []string{"EAN", "foto"}, []string{"12 34", "a:b"})
	first := ResolveFileName("{EAN}/{foto}", row)
	second := ResolveFileName("{EAN}/{foto}", row)
	if first != second {
		t.Errorf("resolution not idempotent: %q vs %q", first, second)
	}
}

func TestResolveFileName_NoInvalidCharacters(t *testing.T) {
	row := NewRow(1, []string{"a"}, []string{`x\y/z:w*v?u"t<s>r|q p`})
	got := ResolveFileName(`{a} <{a}>`, row)
	if strings.ContainsAny(got, "\\/:*?\"<>| ") {
		t.Errorf("ResolveFileName left invalid characters: %q", got)
	}
}

func TestRow_GetAndKeys(t *testing.T) {
	row := NewRow(2, []string{"a", "b", "c"}, []string{"1", ""})

	if v, ok := row.Get("a"); !ok || v != "1" {
		t.Errorf("Get(a) = %q, %v", v, ok)
	}
	if v, ok := row.Get("b"); !ok || v != "" {
		t.Errorf("Get(b) = %q, %v; want empty but present", v, ok)
	}
	if _, ok := row.Get("c"); ok {
		t.Error("Get(c) should report an absent column for a short record")
	}

	keys := row.Keys()
	if len(keys) != 2 || keys[0] != "a" || keys[1] != "b" {
		t.Errorf("Keys() = %v, want [a b]", keys)
	}
}

func TestFailureKind_RowLevel(t *testing.T) {
	tests := []struct {
		kind FailureKind
		want bool
	}{
		{FailureMissingIdentifier, true},
		{FailureAllUnavailable, true},
		{FailureMissingValue, false},
		{FailureTransfer, false},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			if got := tt.kind.RowLevel(); got != tt.want {
				t.Errorf("RowLevel() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRunResult_Add(t *testing.T) {
	total := RunResult{RunID: "batch"}
	total.Add(RunResult{RunID: "a", Rows: 3, Downloaded: 3, Failed: 2, Bytes: 10})
	total.Add(RunResult{RunID: "b", Rows: 1, Downloaded: 0, Failed: 1})

	if total.RunID != "batch" || total.Rows != 4 || total.Downloaded != 3 || total.Failed != 3 || total.Bytes != 10 {
		t.Errorf("unexpected sum: %+v", total)
	}
}
