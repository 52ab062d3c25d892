package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codeatlas/codeatlas/internal/langreg"
)

func TestForReturnsEveryRegisteredLanguage(t *testing.T) {
	for _, info := range langreg.Languages() {
		ex, err := For(info.ID)
		require.NoError(t, err, "language %q", info.ID)
		assert.NotNil(t, ex)
	}
}

func TestForUnknownLanguage(t *testing.T) {
	_, err := For("cobol")
	assert.Error(t, err)
}
