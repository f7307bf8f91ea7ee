package apperrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{"store", fmt.Errorf("list plants: %w", ErrStore), KindStore},
		{"not found", fmt.Errorf("plant 7: %w", ErrNotFound), KindNotFound},
		{"missing id", ErrMissingID, KindMissingID},
		{"other", errors.New("boom"), KindUnexpected},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.err))
		})
	}
}
