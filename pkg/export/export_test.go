package export

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sample() Dataset {
	return Dataset{
		Headers: []string{"Event", "Dates", "Location"},
		Rows: [][]string{
			{"ICE London", "Feb 4 - Feb 6, 2025", "ExCeL, London"},
			{"SiGMA \"Europe\"", "Nov 3 - Nov 6, 2025", "Malta"},
		},
		Widths: []float64{3, 2, 2},
	}
}

func TestCSVExporterRender(t *testing.T) {
	out, err := NewCSVExporter().Render(sample())
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Event,Dates,Location", lines[0])
	assert.Equal(t, `"SiGMA ""Europe""","Nov 3 - Nov 6, 2025",Malta`, lines[2])
}

func TestPDFExporterRender(t *testing.T) {
	data := sample()
	data.Rows = append(data.Rows, []string{strings.Repeat("Very long event name ", 20), "-", "-"})

	out, err := NewPDFExporter().Render(data, "Reviewed events")
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))
}

func TestDatasetValidate(t *testing.T) {
	assert.Error(t, Dataset{}.Validate())
	assert.Error(t, Dataset{Headers: []string{"a"}, Rows: [][]string{{"1", "2"}}}.Validate())
	assert.Error(t, Dataset{Headers: []string{"a"}, Widths: []float64{1, 2}}.Validate())

	_, err := NewCSVExporter().Render(Dataset{})
	assert.Error(t, err)
}
