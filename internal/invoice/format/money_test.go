package format

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRupiah(t *testing.T) {
	assert.Equal(t, "Rp 10.000.000", Rupiah(10_000_000))
	assert.Equal(t, "Rp 800.000", Rupiah(800_000))
	assert.Equal(t, "Rp 0", Rupiah(0))
	assert.Equal(t, "Rp 999", Rupiah(999))
}

func TestDate(t *testing.T) {
	assert.Equal(t, "7/8/2025", Date(time.Date(2025, 8, 7, 15, 4, 5, 0, time.UTC)))
	assert.Equal(t, "31/12/2024", Date(time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC)))
}
