package catalog_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/pos-api/internal/domain/catalog"
)

func TestValidateProductName(t *testing.T) {
	assert.NoError(t, catalog.ValidateProductName("Tea"))
	assert.NoError(t, catalog.ValidateProductName("Teh Manis Dingin"))
	assert.NoError(t, catalog.ValidateProductName("Café con leche"))
	assert.Error(t, catalog.ValidateProductName("Te"))
	assert.Error(t, catalog.ValidateProductName("Tea 2"))
	assert.Error(t, catalog.ValidateProductName("Tea-Green"))
	assert.Error(t, catalog.ValidateProductName(strings.Repeat("a", 101)))
}

func TestValidateCategoryName(t *testing.T) {
	assert.NoError(t, catalog.ValidateCategoryName("Beverages"))
	assert.Error(t, catalog.ValidateCategoryName("Be"))
	assert.Error(t, catalog.ValidateCategoryName(strings.Repeat("x", 51)))
}
