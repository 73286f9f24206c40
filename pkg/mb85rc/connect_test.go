package mb85rc_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fram-devices/mb85rc-go/internal/harness/mock"
	"github.com/fram-devices/mb85rc-go/pkg/devid"
	"github.com/fram-devices/mb85rc-go/pkg/mb85rc"
)

func TestConnectAutoDetect(t *testing.T) {
	chip := mock.NewChip(32768)

	dev, err := mb85rc.Connect(chip, mb85rc.Config{})
	require.NoError(t, err)

	assert.Equal(t, int64(32768), dev.Size())
	assert.Equal(t, uint16(0x50), dev.Addr())
	assert.NotEmpty(t, dev.SessionID())

	// exactly one transaction, and it went to the reserved ID address
	txs := chip.Transactions()
	require.Len(t, txs, 1)
	assert.Equal(t, uint16(devid.IDAddr), txs[0].Addr)
}

func TestConnectExplicitSizeSkipsIdentification(t *testing.T) {
	chip := mock.NewChip(512) // too small to answer the ID query

	dev, err := mb85rc.Connect(chip, mb85rc.Config{Size: 512})
	require.NoError(t, err)
	assert.Equal(t, int64(512), dev.Size())

	// identification must have been skipped entirely
	assert.Empty(t, chip.Transactions())
}

func TestConnectAutoDetectFailure(t *testing.T) {
	chip := mock.NewChip(512) // NACKs the ID query

	_, err := mb85rc.Connect(chip, mb85rc.Config{})
	require.ErrorIs(t, err, devid.ErrIdentify)
}

func TestConnectNonDefaultAddress(t *testing.T) {
	chip := mock.NewChip(8192)
	chip.Addr = 0x57

	dev, err := mb85rc.Connect(chip, mb85rc.Config{Address: 0x57})
	require.NoError(t, err)
	assert.Equal(t, uint16(0x57), dev.Addr())
	assert.Equal(t, int64(8192), dev.Size())

	// the default address must NACK when the chip is strapped to 0x57
	_, err = mb85rc.Connect(chip, mb85rc.Config{})
	require.Error(t, err)
}

func TestConnectInvalidConfig(t *testing.T) {
	chip := mock.NewChip(1024)

	tests := []struct {
		name string
		cfg  mb85rc.Config
	}{
		{"address beyond 7 bits", mb85rc.Config{Address: 0x80}},
		{"negative size", mb85rc.Config{Size: -1}},
		{"size beyond address space", mb85rc.Config{Size: 1 << 17}},
		{"size not a power of two", mb85rc.Config{Size: 1000}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := mb85rc.Connect(chip, tt.cfg)
			require.ErrorIs(t, err, mb85rc.ErrInvalidConfig)
		})
	}

	_, err := mb85rc.Connect(nil, mb85rc.Config{Size: 1024})
	require.ErrorIs(t, err, mb85rc.ErrInvalidConfig)
}

func TestIdentifyAfterConnect(t *testing.T) {
	chip := mock.NewChip(32768)
	chip.Revision = 0x27

	dev, err := mb85rc.Connect(chip, mb85rc.Config{})
	require.NoError(t, err)

	id, err := dev.Identify()
	require.NoError(t, err)
	assert.Equal(t, devid.ManufacturerFujitsu, id.Manufacturer)
	assert.Equal(t, uint8(5), id.Density)
	assert.Equal(t, uint8(0x27), id.Revision)
	assert.Equal(t, int64(32768), id.Capacity())
}
