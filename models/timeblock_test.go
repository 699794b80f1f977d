package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validTimeBlock() TimeBlock {
	return TimeBlock{
		Title:         "Contrato ABC",
		ScheduledDate: "2026-09-15",
		StartTime:     "08:00",
		EndTime:       "12:00",
		BlockType:     BlockCorporateContract,
	}
}

func TestTimeBlockValidate(t *testing.T) {
	block := validTimeBlock()
	require.NoError(t, block.Validate())

	endBeforeStart := validTimeBlock()
	endBeforeStart.StartTime = "14:00"
	endBeforeStart.EndTime = "13:00"
	assert.Error(t, endBeforeStart.Validate())

	noTitle := validTimeBlock()
	noTitle.Title = ""
	assert.Error(t, noTitle.Validate())

	badType := validTimeBlock()
	badType.BlockType = "vacation"
	assert.Error(t, badType.Validate())
}

func TestTimeBlockColorDerivation(t *testing.T) {
	block := validTimeBlock()
	require.NoError(t, block.BeforeCreate(nil))
	assert.Equal(t, BlockCorporateContract.Color(), block.Color)

	overridden := validTimeBlock()
	overridden.Color = "#000000"
	require.NoError(t, overridden.BeforeCreate(nil))
	assert.Equal(t, "#000000", overridden.Color)
}

func TestBlockTypeColors(t *testing.T) {
	for _, blockType := range []BlockType{
		BlockCorporateContract, BlockPersonalDeal, BlockInternal,
		BlockMaintenance, BlockOther,
	} {
		assert.True(t, blockType.IsValid())
		assert.NotEmpty(t, blockType.Color())
	}
}
