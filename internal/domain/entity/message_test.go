package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyFile(t *testing.T) {
	assert.Equal(t, FileKindImage, ClassifyFile("image/png"))
	assert.Equal(t, FileKindImage, ClassifyFile("image/jpeg"))
	assert.Equal(t, FileKindDocument, ClassifyFile("application/pdf"))
	assert.Equal(t, FileKindDocument, ClassifyFile("text/plain"))
	assert.Equal(t, FileKindDocument, ClassifyFile(""))
}

func TestValidOrderStatus(t *testing.T) {
	assert.True(t, ValidOrderStatus(OrderStatusPending))
	assert.True(t, ValidOrderStatus(OrderStatusDelivered))
	assert.False(t, ValidOrderStatus("cancelled"))
	assert.False(t, ValidOrderStatus(""))
}
