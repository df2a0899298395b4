package codes

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTogglePermission(t *testing.T) {
	tests := []struct {
		existing string
		want     string
	}{
		{existing: "", want: "D/P"},
		{existing: "D", want: "D/P"},
		{existing: "D/P", want: "D"},
		{existing: "M", want: "M/P"},
		{existing: "M/P", want: "M"},
		{existing: "P", want: "D"},
		{existing: "P/D", want: "D"},
		{existing: "FN", want: "FN/P"},
		{existing: "MS/TD", want: "MS/P"},
	}

	for _, tt := range tests {
		t.Run(tt.existing, func(t *testing.T) {
			got := TogglePermission(MustParse(tt.existing))
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestTogglePermission_IsItsOwnInverse(t *testing.T) {
	for _, text := range []string{"D", "M", "T", "JF", "B", "FN", "FL", "MS", "V"} {
		t.Run(text, func(t *testing.T) {
			original := MustParse(text)
			once := TogglePermission(original)
			assert.True(t, once.Has("P"))
			assert.Equal(t, original, TogglePermission(once))
		})
	}
}

func TestTogglePermission_RestScenario(t *testing.T) {
	cell := Rest

	cell = TogglePermission(cell)
	assert.Equal(t, "D/P", cell.String())

	cell = TogglePermission(cell)
	assert.Equal(t, "D", cell.String())
}
