package expr

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantDeps []string
		wantCode string
		wantErr  bool
	}{
		{
			name:     "identifier",
			input:    "fold",
			wantDeps: []string{"fold"},
			wantCode: "fold",
		},
		{
			name:     "formula with trig",
			input:    "distance * cos(angle)",
			wantDeps: []string{"angle", "distance"},
			wantCode: "(distance * math.cos(angle))",
		},
		{
			name:     "literal arithmetic",
			input:    "1 + 2 * 3",
			wantDeps: []string{},
			wantCode: "(1 + (2 * 3))",
		},
		{
			name:     "negation",
			input:    "-fold",
			wantDeps: []string{"fold"},
		},
		{
			name:     "pow function",
			input:    "pow(radius, 2)",
			wantDeps: []string{"radius"},
			wantCode: "(radius ** 2)",
		},
		{
			name:     "division",
			input:    "width / 2.0",
			wantDeps: []string{"width"},
			wantCode: "(width / 2)",
		},
		{
			name:    "syntax error",
			input:   "1 +",
			wantErr: true,
		},
		{
			name:    "unsupported construct",
			input:   `size == 1 ? 2 : 3`,
			wantErr: true,
		},
		{
			name:    "unsupported function",
			input:   "atan2(y, x)",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tt.wantDeps, got.Dependencies())

			if tt.wantCode != "" {
				assert.Equal(t, tt.wantCode, got.Python(nil))
			}
		})
	}
}
