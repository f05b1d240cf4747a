package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMissingAddressFields(t *testing.T) {
	full := Contact{Type: ContactTypeAddress, City: "Moscow", Street: "Tverskaya", House: "1"}
	assert.Empty(t, full.MissingAddressFields())

	partial := Contact{Type: ContactTypeAddress, Street: "Tverskaya"}
	assert.Equal(t, []string{"city", "house"}, partial.MissingAddressFields())

	empty := Contact{Type: ContactTypeAddress}
	assert.Equal(t, []string{"city", "street", "house"}, empty.MissingAddressFields())

	// Phone contacts have no address requirement at all.
	phone := Contact{Type: ContactTypePhone}
	assert.Nil(t, phone.MissingAddressFields())
}
