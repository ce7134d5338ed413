package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusTransitions(t *testing.T) {
	cases := []struct {
		from    PropertyStatus
		to      PropertyStatus
		allowed bool
	}{
		{StatusPending, StatusUnderReview, true},
		{StatusPending, StatusApproved, true},
		{StatusPending, StatusRejected, true},
		{StatusUnderReview, StatusApproved, true},
		{StatusUnderReview, StatusRejected, true},
		{StatusUnderReview, StatusPending, false},
		{StatusApproved, StatusRejected, false},
		{StatusApproved, StatusUnderReview, false},
		{StatusRejected, StatusPending, false},
		{StatusRejected, StatusApproved, false},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.allowed, tc.from.CanTransitionTo(tc.to), "%s -> %s", tc.from, tc.to)
	}
}

func TestStatusTerminal(t *testing.T) {
	assert.False(t, StatusPending.IsTerminal())
	assert.False(t, StatusUnderReview.IsTerminal())
	assert.True(t, StatusApproved.IsTerminal())
	assert.True(t, StatusRejected.IsTerminal())
}

func TestPropertyIsListed(t *testing.T) {
	assert.False(t, (&Property{}).IsListed())
	assert.True(t, (&Property{IsForSale: true}).IsListed())
	assert.True(t, (&Property{IsForLease: true}).IsListed())
}

func TestRoleCapabilities(t *testing.T) {
	assert.True(t, RoleGovernmentOfficial.CanVerifyProperties())
	assert.True(t, RoleAdmin.CanVerifyProperties())
	assert.False(t, RolePropertyOwner.CanVerifyProperties())

	assert.True(t, RolePropertyOwner.Valid())
	assert.False(t, Role("landlord").Valid())
}

func TestUpdateRequestPending(t *testing.T) {
	approved := true
	assert.True(t, (&UpdateRequest{}).Pending())
	assert.False(t, (&UpdateRequest{AdminApproved: &approved}).Pending())
}
