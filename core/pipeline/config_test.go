package pipeline_test

import (
	"testing"

	"aadhaar-records/core/pipeline"

	"github.com/stretchr/testify/assert"
)

func TestConfig_IsValidSource(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   bool
	}{
		{"File", pipeline.SourceFile, true},
		{"Storage", pipeline.SourceStorage, true},
		{"Invalid", "ftp", false},
		{"Empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := pipeline.Config{Source: tt.source}
			assert.Equal(t, tt.want, c.IsValidSource())
		})
	}
}
