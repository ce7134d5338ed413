package seed

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	appModels "github.com/akwareg/akwareg-backend/internal/app/models"
	appRepos "github.com/akwareg/akwareg-backend/internal/app/repositories"
	"github.com/akwareg/akwareg-backend/internal/pkg/apperrors"
	"github.com/akwareg/akwareg-backend/internal/pkg/auth"
)

// seedPassword is the shared password for the default development accounts.
const seedPassword = "password123"

func int64Ptr(v int64) *int64 { return &v }

// CreateDefaultData creates the default accounts and a handful of sample
// properties if they don't exist yet
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, lgr zerolog.Logger) error {
	userRepo := appRepos.NewUserRepository(dbPool)
	propertyRepo := appRepos.NewPropertyRepository(dbPool)

	lgr.Info().Msg("Checking/Creating default data...")
	var finalErr error

	hashedPassword, err := auth.HashPassword(seedPassword)
	if err != nil {
		return err
	}

	accounts := []appModels.User{
		{Email: "admin@akwareg.ng", FullName: "Registry Administrator", Phone: "+2348000000001", Role: appModels.RoleAdmin, IsVerified: true},
		{Email: "official@akwareg.ng", FullName: "Emem Udoh", Phone: "+2348000000002", Role: appModels.RoleGovernmentOfficial, IsVerified: true},
		{Email: "owner@akwareg.ng", FullName: "Ime Bassey", Phone: "+2348000000003", Role: appModels.RolePropertyOwner, IsVerified: true},
		{Email: "chioma@akwareg.ng", FullName: "Chioma Okon", Phone: "+2348000000004", Role: appModels.RolePropertyOwner, IsVerified: false},
	}

	ids := make(map[string]int64)
	for i := range accounts {
		account := accounts[i]
		account.Password = hashedPassword

		created, err := userRepo.CreateUser(ctx, &account)
		if errors.Is(err, apperrors.ErrEmailAlreadyExists) {
			existing, errGet := userRepo.GetUserByEmail(ctx, account.Email)
			if errGet != nil {
				lgr.Error().Err(errGet).Str("email", account.Email).Msg("Error loading existing seed account")
				finalErr = errors.Join(finalErr, errGet)
				continue
			}
			ids[account.Email] = existing.ID
			continue
		}
		if err != nil {
			lgr.Error().Err(err).Str("email", account.Email).Msg("Error creating seed account")
			finalErr = errors.Join(finalErr, err)
			continue
		}

		ids[account.Email] = created.ID
		lgr.Info().Str("email", account.Email).Str("role", string(account.Role)).Msg("Seed account created")
	}

	ownerID, haveOwner := ids["owner@akwareg.ng"]
	officialID, haveOfficial := ids["official@akwareg.ng"]
	if !haveOwner || !haveOfficial {
		return finalErr
	}

	// Sample properties only on a fresh database
	total, err := propertyRepo.CountAll(ctx)
	if err != nil {
		return errors.Join(finalErr, err)
	}
	if total > 0 {
		return finalErr
	}

	samples := sampleProperties(ownerID)

	for i := range samples {
		created, err := propertyRepo.CreateProperty(ctx, &samples[i])
		if err != nil {
			lgr.Error().Err(err).Str("title", samples[i].Title).Msg("Error creating sample property")
			finalErr = errors.Join(finalErr, err)
			continue
		}

		// Approve the first two so public browsing has data
		if i < 2 {
			notes := "Verified against the state cadastral records."
			if err := propertyRepo.TransitionStatus(ctx, created.ID, appModels.StatusPending, appModels.StatusApproved, &officialID, &notes); err != nil {
				lgr.Error().Err(err).Int64("propertyID", created.ID).Msg("Error approving sample property")
				finalErr = errors.Join(finalErr, err)
			}
		}
	}

	lgr.Info().Msg("Default data ready")
	return finalErr
}

// sampleProperties returns the demo listings created on a fresh database.
// Listed samples carry the matching price fields, like owner submissions do.
func sampleProperties(ownerID int64) []appModels.Property {
	return []appModels.Property{
		{
			Title:        "3-bedroom bungalow in Uyo",
			Description:  "Fenced bungalow with a borehole, off Oron Road.",
			PropertyType: appModels.PropertyTypeResidential,
			Address:      "14 Oron Road, Uyo",
			LGA:          "Uyo",
			State:        "Akwa Ibom",
			SizeSqm:      450,
			OwnerID:      ownerID,
			Status:       appModels.StatusPending,
			IsForSale:    true,
			Price:        int64Ptr(35_000_000),
		},
		{
			Title:            "Commercial plot along Ikot Ekpene Road",
			Description:      "Surveyed plot suitable for a filling station or plaza.",
			PropertyType:     appModels.PropertyTypeLand,
			Address:          "Km 4 Ikot Ekpene Road, Uyo",
			LGA:              "Uyo",
			State:            "Akwa Ibom",
			SizeSqm:          1200,
			OwnerID:          ownerID,
			Status:           appModels.StatusPending,
			IsForSale:        true,
			IsForLease:       true,
			Price:            int64Ptr(60_000_000),
			LeasePriceAnnual: int64Ptr(4_500_000),
		},
		{
			Title:            "Warehouse at Eket industrial layout",
			Description:      "Steel-frame warehouse with office block.",
			PropertyType:     appModels.PropertyTypeCommercial,
			Address:          "Plot 7 Industrial Layout, Eket",
			LGA:              "Eket",
			State:            "Akwa Ibom",
			SizeSqm:          800,
			OwnerID:          ownerID,
			Status:           appModels.StatusPending,
			IsForLease:       true,
			LeasePriceAnnual: int64Ptr(6_000_000),
		},
	}
}
