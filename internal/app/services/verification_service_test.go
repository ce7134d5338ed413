package services

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akwareg/akwareg-backend/internal/app/models"
	"github.com/akwareg/akwareg-backend/internal/app/models/dto"
	"github.com/akwareg/akwareg-backend/internal/pkg/apperrors"
)

const (
	testOwnerID    = int64(10)
	testOfficialID = int64(20)
)

func newTestVerificationService() (*VerificationService, *fakePropertyStore, *fakeUpdateRequestStore) {
	properties := newFakePropertyStore()
	requests := newFakeUpdateRequestStore(properties)
	svc := NewVerificationService(properties, requests, zerolog.Nop())
	return svc, properties, requests
}

func addProperty(properties *fakePropertyStore, status models.PropertyStatus) *models.Property {
	price := int64(25_000_000)
	return properties.add(models.Property{
		Title:        "Bungalow in Uyo",
		PropertyType: models.PropertyTypeResidential,
		Address:      "14 Oron Road, Uyo",
		LGA:          "Uyo",
		State:        "Akwa Ibom",
		SizeSqm:      450,
		OwnerID:      testOwnerID,
		Status:       status,
		IsForSale:    true,
		Price:        &price,
	})
}

func TestVerificationLifecycle(t *testing.T) {
	svc, properties, _ := newTestVerificationService()
	ctx := context.Background()
	property := addProperty(properties, models.StatusPending)

	reviewed, err := svc.StartReview(ctx, testOfficialID, property.ID)
	require.NoError(t, err)
	assert.Equal(t, string(models.StatusUnderReview), reviewed.Status)

	approved, err := svc.Verify(ctx, testOfficialID, property.ID, &dto.VerifyPropertyRequest{
		Action: "approve",
		Notes:  "Checked against cadastral records",
	})
	require.NoError(t, err)
	assert.Equal(t, string(models.StatusApproved), approved.Status)
	require.NotNil(t, approved.VerificationNotes)
	assert.Equal(t, "Checked against cadastral records", *approved.VerificationNotes)
	assert.NotNil(t, approved.VerifiedAt)

	stored := properties.properties[property.ID]
	require.NotNil(t, stored.VerifiedBy)
	assert.Equal(t, testOfficialID, *stored.VerifiedBy)
}

func TestVerifyDirectlyFromPending(t *testing.T) {
	svc, properties, _ := newTestVerificationService()
	property := addProperty(properties, models.StatusPending)

	rejected, err := svc.Verify(context.Background(), testOfficialID, property.ID, &dto.VerifyPropertyRequest{
		Action: "reject",
		Notes:  "Survey plan does not match the parcel",
	})
	require.NoError(t, err)
	assert.Equal(t, string(models.StatusRejected), rejected.Status)
}

func TestVerifyTerminalStatusConflicts(t *testing.T) {
	svc, properties, _ := newTestVerificationService()
	ctx := context.Background()

	for _, status := range []models.PropertyStatus{models.StatusApproved, models.StatusRejected} {
		property := addProperty(properties, status)

		_, err := svc.Verify(ctx, testOfficialID, property.ID, &dto.VerifyPropertyRequest{Action: "approve"})
		assert.ErrorIs(t, err, apperrors.ErrInvalidTransition, "status %s must be terminal", status)

		_, err = svc.StartReview(ctx, testOfficialID, property.ID)
		assert.ErrorIs(t, err, apperrors.ErrInvalidTransition)
	}
}

func TestVerifyMissingProperty(t *testing.T) {
	svc, _, _ := newTestVerificationService()

	_, err := svc.Verify(context.Background(), testOfficialID, 404, &dto.VerifyPropertyRequest{Action: "approve"})
	assert.ErrorIs(t, err, apperrors.ErrPropertyNotFound)
}

func TestSubmitUpdateRequest(t *testing.T) {
	svc, properties, _ := newTestVerificationService()
	ctx := context.Background()
	property := addProperty(properties, models.StatusApproved)

	resp, err := svc.SubmitUpdateRequest(ctx, testOwnerID, property.ID, &dto.CreateUpdateRequestRequest{
		NewStatus: "unavailable",
		Reason:    "Family dispute over the parcel",
	})
	require.NoError(t, err)
	assert.Equal(t, "unavailable", resp.NewStatus)
	assert.Nil(t, resp.AdminApproved)
}

func TestSubmitUpdateRequestReplacesPending(t *testing.T) {
	svc, properties, requests := newTestVerificationService()
	ctx := context.Background()
	property := addProperty(properties, models.StatusApproved)

	first, err := svc.SubmitUpdateRequest(ctx, testOwnerID, property.ID, &dto.CreateUpdateRequestRequest{
		NewStatus: "unavailable",
		Reason:    "Taking it off the market",
	})
	require.NoError(t, err)

	soldPrice := int64(30_000_000)
	second, err := svc.SubmitUpdateRequest(ctx, testOwnerID, property.ID, &dto.CreateUpdateRequestRequest{
		NewStatus: "sold",
		Reason:    "Buyer completed payment",
		SoldPrice: &soldPrice,
	})
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)

	// Only the replacement remains pending
	pending, total, err := requests.ListPending(ctx, 0, 20)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	assert.Equal(t, second.ID, pending[0].Request.ID)
	assert.Equal(t, models.AvailabilitySold, pending[0].Request.NewStatus)
}

func TestSubmitUpdateRequestGuards(t *testing.T) {
	svc, properties, _ := newTestVerificationService()
	ctx := context.Background()

	pending := addProperty(properties, models.StatusPending)
	_, err := svc.SubmitUpdateRequest(ctx, testOwnerID, pending.ID, &dto.CreateUpdateRequestRequest{
		NewStatus: "sold",
		Reason:    "Sold it",
	})
	assert.ErrorIs(t, err, apperrors.ErrPropertyNotApproved)

	approved := addProperty(properties, models.StatusApproved)
	_, err = svc.SubmitUpdateRequest(ctx, 999, approved.ID, &dto.CreateUpdateRequestRequest{
		NewStatus: "sold",
		Reason:    "Sold it",
	})
	assert.ErrorIs(t, err, apperrors.ErrNotPropertyOwner)

	// A sold request needs a price from somewhere
	unpriced := properties.add(models.Property{
		Title:   "Unpriced plot",
		OwnerID: testOwnerID,
		Status:  models.StatusApproved,
	})
	_, err = svc.SubmitUpdateRequest(ctx, testOwnerID, unpriced.ID, &dto.CreateUpdateRequestRequest{
		NewStatus: "sold",
		Reason:    "Sold it",
	})
	assert.ErrorIs(t, err, apperrors.ErrBadRequest)
}

func TestResolveUpdateRequestApproveSold(t *testing.T) {
	svc, properties, _ := newTestVerificationService()
	ctx := context.Background()
	property := addProperty(properties, models.StatusApproved)

	soldPrice := int64(32_000_000)
	submitted, err := svc.SubmitUpdateRequest(ctx, testOwnerID, property.ID, &dto.CreateUpdateRequestRequest{
		NewStatus: "sold",
		Reason:    "Buyer completed payment",
		SoldPrice: &soldPrice,
	})
	require.NoError(t, err)

	resolved, err := svc.ResolveUpdateRequest(ctx, testOfficialID, submitted.ID, &dto.ResolveUpdateRequestRequest{
		Action:     "approve",
		AdminNotes: "Deed transfer sighted",
	})
	require.NoError(t, err)
	require.NotNil(t, resolved.AdminApproved)
	assert.True(t, *resolved.AdminApproved)

	stored := properties.properties[property.ID]
	require.NotNil(t, stored.AvailabilityStatus)
	assert.Equal(t, models.AvailabilitySold, *stored.AvailabilityStatus)
	require.NotNil(t, stored.SoldPrice)
	assert.Equal(t, soldPrice, *stored.SoldPrice)
	assert.NotNil(t, stored.SoldAt)
}

func TestResolveUpdateRequestReject(t *testing.T) {
	svc, properties, _ := newTestVerificationService()
	ctx := context.Background()
	property := addProperty(properties, models.StatusApproved)

	submitted, err := svc.SubmitUpdateRequest(ctx, testOwnerID, property.ID, &dto.CreateUpdateRequestRequest{
		NewStatus: "unavailable",
		Reason:    "Off the market",
	})
	require.NoError(t, err)

	resolved, err := svc.ResolveUpdateRequest(ctx, testOfficialID, submitted.ID, &dto.ResolveUpdateRequestRequest{
		Action:     "reject",
		AdminNotes: "No supporting evidence",
	})
	require.NoError(t, err)
	require.NotNil(t, resolved.AdminApproved)
	assert.False(t, *resolved.AdminApproved)

	// Rejection records the decision without touching the property
	stored := properties.properties[property.ID]
	assert.Nil(t, stored.AvailabilityStatus)

	// A resolved request cannot be decided twice
	_, err = svc.ResolveUpdateRequest(ctx, testOfficialID, submitted.ID, &dto.ResolveUpdateRequestRequest{Action: "approve"})
	assert.ErrorIs(t, err, apperrors.ErrUpdateRequestResolved)
}
