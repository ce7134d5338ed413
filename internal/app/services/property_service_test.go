package services

import (
	"context"
	"mime/multipart"
	"net/textproto"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akwareg/akwareg-backend/internal/app/models"
	"github.com/akwareg/akwareg-backend/internal/app/models/dto"
	"github.com/akwareg/akwareg-backend/internal/pkg/apperrors"
)

func newTestPropertyService() (*PropertyService, *fakePropertyStore, *fakeDocumentStore, *fakeStorage) {
	properties := newFakePropertyStore()
	documents := newFakeDocumentStore()
	storage := &fakeStorage{}
	svc := NewPropertyService(properties, documents, storage, zerolog.Nop())
	return svc, properties, documents, storage
}

func int64Ptr(v int64) *int64 { return &v }
func boolPtr(v bool) *bool    { return &v }
func strPtr(v string) *string { return &v }

func TestPropertyCreateStartsPending(t *testing.T) {
	svc, _, _, _ := newTestPropertyService()

	created, err := svc.Create(context.Background(), testOwnerID, &dto.CreatePropertyRequest{
		Title:        "Bungalow in Uyo",
		Description:  "Fenced bungalow",
		PropertyType: "residential",
		Address:      "14 Oron Road, Uyo",
		LGA:          "Uyo",
		State:        "Lagos", // client-supplied state is ignored
		SizeSqm:      450,
		IsForSale:    true,
		Price:        int64Ptr(25_000_000),
	})
	require.NoError(t, err)
	assert.Equal(t, string(models.StatusPending), created.Status)
	assert.Equal(t, DefaultState, created.State)
	assert.Equal(t, testOwnerID, created.OwnerID)
	assert.NotNil(t, created.Price)
}

func TestPropertyCreatePriceRules(t *testing.T) {
	svc, _, _, _ := newTestPropertyService()
	ctx := context.Background()

	_, err := svc.Create(ctx, testOwnerID, &dto.CreatePropertyRequest{
		Title:        "Plot",
		Description:  "Surveyed plot",
		PropertyType: "land",
		Address:      "Ikot Ekpene Road",
		LGA:          "Uyo",
		SizeSqm:      1200,
		IsForSale:    true,
	})
	assert.ErrorIs(t, err, apperrors.ErrBadRequest)

	_, err = svc.Create(ctx, testOwnerID, &dto.CreatePropertyRequest{
		Title:        "Plot",
		Description:  "Surveyed plot",
		PropertyType: "land",
		Address:      "Ikot Ekpene Road",
		LGA:          "Uyo",
		SizeSqm:      1200,
		IsForLease:   true,
	})
	assert.ErrorIs(t, err, apperrors.ErrBadRequest)

	// Prices without a listing flag are dropped, not stored
	created, err := svc.Create(ctx, testOwnerID, &dto.CreatePropertyRequest{
		Title:        "Plot",
		Description:  "Surveyed plot",
		PropertyType: "land",
		Address:      "Ikot Ekpene Road",
		LGA:          "Uyo",
		SizeSqm:      1200,
		Price:        int64Ptr(10_000_000),
	})
	require.NoError(t, err)
	assert.Nil(t, created.Price)
	assert.False(t, created.IsForSale)
}

func TestPropertyGetByIDVisibility(t *testing.T) {
	svc, properties, _, _ := newTestPropertyService()
	ctx := context.Background()
	property := properties.add(models.Property{
		Title:   "Hidden pending plot",
		OwnerID: testOwnerID,
		Status:  models.StatusPending,
	})

	// Anonymous viewers and other owners cannot see it
	_, err := svc.GetByID(ctx, property.ID, 0, "")
	assert.ErrorIs(t, err, apperrors.ErrPropertyNotFound)
	_, err = svc.GetByID(ctx, property.ID, 999, models.RolePropertyOwner)
	assert.ErrorIs(t, err, apperrors.ErrPropertyNotFound)

	// The owner and officials can
	_, err = svc.GetByID(ctx, property.ID, testOwnerID, models.RolePropertyOwner)
	assert.NoError(t, err)
	_, err = svc.GetByID(ctx, property.ID, testOfficialID, models.RoleGovernmentOfficial)
	assert.NoError(t, err)

	approved := properties.add(models.Property{
		Title:   "Public approved plot",
		OwnerID: testOwnerID,
		Status:  models.StatusApproved,
	})
	_, err = svc.GetByID(ctx, approved.ID, 0, "")
	assert.NoError(t, err)
}

func TestPropertyBrowseOnlyApproved(t *testing.T) {
	svc, properties, _, _ := newTestPropertyService()
	properties.add(models.Property{Title: "Pending", OwnerID: testOwnerID, Status: models.StatusPending, IsForSale: true, Price: int64Ptr(1_000_000)})
	approved := properties.add(models.Property{Title: "Approved", OwnerID: testOwnerID, Status: models.StatusApproved, IsForSale: true, Price: int64Ptr(2_000_000)})

	list, err := svc.Browse(context.Background(), &dto.PropertyFilters{})
	require.NoError(t, err)
	require.Len(t, list.Properties, 1)
	assert.Equal(t, approved.ID, list.Properties[0].ID)
	assert.EqualValues(t, 1, list.Pagination.TotalItems)
}

func TestPropertyBrowseRejectsSoldView(t *testing.T) {
	svc, properties, _, _ := newTestPropertyService()
	sold := models.AvailabilitySold
	properties.add(models.Property{Title: "Sold plot", OwnerID: testOwnerID, Status: models.StatusApproved, AvailabilityStatus: &sold})

	_, err := svc.Browse(context.Background(), &dto.PropertyFilters{View: "sold"})
	assert.ErrorIs(t, err, apperrors.ErrBadRequest)

	// Owners still see their sold properties through their own listing
	list, err := svc.ListMine(context.Background(), testOwnerID, &dto.PropertyFilters{View: "sold"})
	require.NoError(t, err)
	require.Len(t, list.Properties, 1)
	assert.Equal(t, "Sold plot", list.Properties[0].Title)
}

func TestPropertyBrowseFilters(t *testing.T) {
	svc, properties, _, _ := newTestPropertyService()
	ctx := context.Background()

	properties.add(models.Property{Title: "Listed land", PropertyType: models.PropertyTypeLand, LGA: "Uyo", OwnerID: testOwnerID, Status: models.StatusApproved, IsForSale: true, Price: int64Ptr(5_000_000)})
	properties.add(models.Property{Title: "Registered only", PropertyType: models.PropertyTypeResidential, LGA: "Eket", OwnerID: testOwnerID, Status: models.StatusApproved})

	list, err := svc.Browse(ctx, &dto.PropertyFilters{View: "listed"})
	require.NoError(t, err)
	require.Len(t, list.Properties, 1)
	assert.Equal(t, "Listed land", list.Properties[0].Title)

	list, err = svc.Browse(ctx, &dto.PropertyFilters{View: "registered"})
	require.NoError(t, err)
	require.Len(t, list.Properties, 1)
	assert.Equal(t, "Registered only", list.Properties[0].Title)

	list, err = svc.Browse(ctx, &dto.PropertyFilters{PropertyType: "land", LGA: "Uyo", ForSale: boolPtr(true)})
	require.NoError(t, err)
	assert.Len(t, list.Properties, 1)

	list, err = svc.Browse(ctx, &dto.PropertyFilters{MinPrice: int64Ptr(6_000_000)})
	require.NoError(t, err)
	assert.Empty(t, list.Properties)
}

func TestPropertyListMine(t *testing.T) {
	svc, properties, _, _ := newTestPropertyService()
	properties.add(models.Property{Title: "Mine pending", OwnerID: testOwnerID, Status: models.StatusPending})
	properties.add(models.Property{Title: "Mine rejected", OwnerID: testOwnerID, Status: models.StatusRejected})
	properties.add(models.Property{Title: "Not mine", OwnerID: 999, Status: models.StatusApproved})

	list, err := svc.ListMine(context.Background(), testOwnerID, &dto.PropertyFilters{})
	require.NoError(t, err)
	assert.Len(t, list.Properties, 2)
}

func TestPropertyUpdateOwnership(t *testing.T) {
	svc, properties, _, _ := newTestPropertyService()
	ctx := context.Background()
	property := properties.add(models.Property{
		Title:     "Bungalow",
		OwnerID:   testOwnerID,
		Status:    models.StatusApproved,
		IsForSale: true,
		Price:     int64Ptr(20_000_000),
	})

	_, err := svc.Update(ctx, 999, property.ID, &dto.UpdatePropertyRequest{Title: strPtr("Stolen")})
	assert.ErrorIs(t, err, apperrors.ErrNotPropertyOwner)

	updated, err := svc.Update(ctx, testOwnerID, property.ID, &dto.UpdatePropertyRequest{
		Title: strPtr("Renovated bungalow"),
		Price: int64Ptr(22_000_000),
	})
	require.NoError(t, err)
	assert.Equal(t, "Renovated bungalow", updated.Title)
	require.NotNil(t, updated.Price)
	assert.EqualValues(t, 22_000_000, *updated.Price)
}

func TestPropertyUpdateDelistDropsPrice(t *testing.T) {
	svc, properties, _, _ := newTestPropertyService()
	property := properties.add(models.Property{
		Title:     "Bungalow",
		OwnerID:   testOwnerID,
		Status:    models.StatusApproved,
		IsForSale: true,
		Price:     int64Ptr(20_000_000),
	})

	updated, err := svc.Update(context.Background(), testOwnerID, property.ID, &dto.UpdatePropertyRequest{
		IsForSale: boolPtr(false),
	})
	require.NoError(t, err)
	assert.False(t, updated.IsForSale)
	assert.Nil(t, updated.Price)
}

func TestDeleteDocumentBlockedAfterVerification(t *testing.T) {
	svc, properties, documents, _ := newTestPropertyService()
	ctx := context.Background()
	property := properties.add(models.Property{
		Title:   "Bungalow",
		OwnerID: testOwnerID,
		Status:  models.StatusApproved,
	})
	document, err := documents.CreateDocument(ctx, &models.PropertyDocument{
		PropertyID:   property.ID,
		DocumentType: models.DocumentSurveyPlan,
		FileName:     "survey.pdf",
		FileURL:      "http://localhost:8080/uploads/documents/survey.pdf",
	})
	require.NoError(t, err)

	err = svc.DeleteDocument(ctx, testOwnerID, property.ID, document.ID)
	assert.ErrorIs(t, err, apperrors.ErrConflict)
}

func TestDeleteDocumentPreApproval(t *testing.T) {
	svc, properties, documents, storage := newTestPropertyService()
	ctx := context.Background()
	property := properties.add(models.Property{
		Title:   "Bungalow",
		OwnerID: testOwnerID,
		Status:  models.StatusPending,
	})
	document, err := documents.CreateDocument(ctx, &models.PropertyDocument{
		PropertyID:   property.ID,
		DocumentType: models.DocumentSurveyPlan,
		FileName:     "survey.pdf",
		FileURL:      "http://localhost:8080/uploads/documents/survey.pdf",
	})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteDocument(ctx, testOwnerID, property.ID, document.ID))
	assert.NotEmpty(t, storage.deleted)

	_, err = documents.GetDocumentByID(ctx, document.ID)
	assert.ErrorIs(t, err, apperrors.ErrDocumentNotFound)
}

func TestUploadDocument(t *testing.T) {
	svc, properties, _, storage := newTestPropertyService()
	ctx := context.Background()
	property := properties.add(models.Property{Title: "Bungalow", OwnerID: testOwnerID, Status: models.StatusPending})

	header := &multipart.FileHeader{Filename: "survey.pdf"}

	_, err := svc.UploadDocument(ctx, testOwnerID, property.ID, "title_deed", header)
	assert.ErrorIs(t, err, apperrors.ErrBadRequest)

	_, err = svc.UploadDocument(ctx, 999, property.ID, "survey_plan", header)
	assert.ErrorIs(t, err, apperrors.ErrNotPropertyOwner)

	document, err := svc.UploadDocument(ctx, testOwnerID, property.ID, "survey_plan", header)
	require.NoError(t, err)
	assert.Equal(t, "survey.pdf", document.FileName)
	assert.Equal(t, "survey_plan", document.DocumentType)
	assert.Len(t, storage.saved, 1)
}

func TestUploadImagesRejectsNonImage(t *testing.T) {
	svc, properties, _, _ := newTestPropertyService()
	ctx := context.Background()
	property := properties.add(models.Property{Title: "Bungalow", OwnerID: testOwnerID, Status: models.StatusPending})

	pdf := &multipart.FileHeader{Filename: "scan.pdf", Header: textproto.MIMEHeader{"Content-Type": {"application/pdf"}}}
	_, err := svc.UploadImages(ctx, testOwnerID, property.ID, []*multipart.FileHeader{pdf})
	assert.ErrorIs(t, err, apperrors.ErrBadRequest)

	front := &multipart.FileHeader{Filename: "front.jpg", Header: textproto.MIMEHeader{"Content-Type": {"image/jpeg"}}}
	side := &multipart.FileHeader{Filename: "side.jpg", Header: textproto.MIMEHeader{"Content-Type": {"image/jpeg"}}}
	updated, err := svc.UploadImages(ctx, testOwnerID, property.ID, []*multipart.FileHeader{front, side})
	require.NoError(t, err)
	assert.Len(t, updated.Images, 2)
}

func TestDeleteDocumentWrongProperty(t *testing.T) {
	svc, properties, documents, _ := newTestPropertyService()
	ctx := context.Background()
	first := properties.add(models.Property{Title: "First", OwnerID: testOwnerID, Status: models.StatusPending})
	second := properties.add(models.Property{Title: "Second", OwnerID: testOwnerID, Status: models.StatusPending})
	document, err := documents.CreateDocument(ctx, &models.PropertyDocument{
		PropertyID: first.ID,
		FileName:   "survey.pdf",
	})
	require.NoError(t, err)

	err = svc.DeleteDocument(ctx, testOwnerID, second.ID, document.ID)
	assert.ErrorIs(t, err, apperrors.ErrDocumentNotFound)
}
