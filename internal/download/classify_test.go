package download

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/handiism/csv-image-downloader/internal/config"
	"github.com/handiism/csv-image-downloader/internal/model"
)

func TestIdentifier(t *testing.T) {
	settings := config.DefaultSettings()

	tests := []struct {
		name   string
		header []string
		record []string
		want   string
	}{
		{"produkt_ean first", []string{"produkt_ean", "EAN"}, []string{"1", "2"}, "1"},
		{"empty falls through", []string{"produkt_ean", "EAN"}, []string{"", "2"}, "2"},
		{"lowercase last", []string{"ean"}, []string{"3"}, "3"},
		{"none", []string{"name"}, []string{"x"}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			row := model.NewRow(1, tt.header, tt.record)
			assert.Equal(t, tt.want, Identifier(row, settings))
		})
	}
}

func TestClassify(t *testing.T) {
	settings := config.DefaultSettings()
	columns := []string{"zdjecie", "zdjecie_2"}
	header := []string{"produkt_ean", "Indeks_handlowy", "zdjecie", "zdjecie_2"}

	t.Run("missing identifier wins", func(t *testing.T) {
		row := model.NewRow(4, header, []string{"#N/A", "ABC-1", "#N/A", "#N/A"})
		out := Classify(row, columns, settings)

		assert.True(t, out.Skip)
		assert.Equal(t, model.FailureMissingIdentifier, out.Failure.Kind)
		assert.Equal(t, 4, out.Failure.Row)
		assert.Equal(t, "ABC-1 not in database", out.Failure.Message)
	})

	t.Run("missing identifier without label", func(t *testing.T) {
		row := model.NewRow(1, []string{"EAN", "zdjecie"}, []string{"#N/A", "http://x"})
		out := Classify(row, columns, settings)

		assert.True(t, out.Skip)
		assert.Equal(t, "N/A not in database", out.Failure.Message)
	})

	t.Run("all unavailable", func(t *testing.T) {
		row := model.NewRow(2, header, []string{"590", "ABC-2", "#N/A", "#N/A"})
		out := Classify(row, columns, settings)

		assert.True(t, out.Skip)
		assert.Equal(t, model.FailureAllUnavailable, out.Failure.Kind)
		assert.Equal(t, `590, all images marked as "#N/A"`, out.Failure.Message)
	})

	t.Run("absent column is not the sentinel", func(t *testing.T) {
		row := model.NewRow(3, header[:3], []string{"590", "ABC-3", "#N/A"})
		out := Classify(row, columns, settings)

		assert.False(t, out.Skip)
		assert.Equal(t, "590", out.Identifier)
	})

	t.Run("one sentinel column is processed", func(t *testing.T) {
		row := model.NewRow(5, header, []string{"590", "ABC-5", "#N/A", "http://x/a.png"})
		assert.False(t, Classify(row, columns, settings).Skip)
	})

	t.Run("custom sentinel", func(t *testing.T) {
		custom := config.DefaultSettings()
		custom.Sentinel = "-"
		row := model.NewRow(1, header, []string{"590", "ABC", "-", "-"})
		assert.Equal(t, model.FailureAllUnavailable, Classify(row, columns, custom).Failure.Kind)
	})
}
