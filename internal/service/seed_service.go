package service

import (
	"context"

	"golang.org/x/crypto/bcrypt"

	"github.com/parkease/parkease-backend/internal/logger"
	"github.com/parkease/parkease-backend/internal/models"
	"github.com/parkease/parkease-backend/internal/repository"
)

// SeedService наполняет базу демонстрационными данными для dev-стенда.
// Повторный запуск ничего не делает, если водители уже есть.
type SeedService struct {
	users     *repository.UserRepository
	drivers   *repository.DriverRepository
	providers *repository.ProviderRepository
	slots     *repository.SlotRepository
	disputes  *repository.DisputeRepository
	wallet    *repository.WalletRepository
}

func NewSeedService(
	users *repository.UserRepository,
	drivers *repository.DriverRepository,
	providers *repository.ProviderRepository,
	slots *repository.SlotRepository,
	disputes *repository.DisputeRepository,
	wallet *repository.WalletRepository,
) *SeedService {
	return &SeedService{
		users:     users,
		drivers:   drivers,
		providers: providers,
		slots:     slots,
		disputes:  disputes,
		wallet:    wallet,
	}
}

// Seed создаёт демо-набор: админа, водителя с балансом, операторов,
// парковочные места и пару споров.
func (s *SeedService) Seed(ctx context.Context) error {
	existing, err := s.drivers.List(ctx, "")
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		logger.Log.Info("seed: data already present, skipping")
		return nil
	}

	if err := s.seedAdmin(ctx); err != nil {
		return err
	}

	driver := &models.Driver{
		Name:          "Alex Driver",
		Email:         "alex.driver@example.com",
		Phone:         "+91 98765 43210",
		VehicleNumber: strPtr("KA-01-AB-1234"),
		Status:        models.DriverStatusActive,
		WalletBalance: 0,
		Rating:        4.8,
	}
	if err := s.drivers.Create(ctx, driver); err != nil {
		return err
	}
	if _, _, err := s.wallet.Credit(ctx, driver.ID, 1250, "Initial wallet top-up"); err != nil {
		return err
	}

	approved := &models.ProviderApplication{
		Name:         "City Center Parking Co",
		OwnerName:    "Priya Sharma",
		Email:        "priya@citycenterparking.example.com",
		Phone:        "+91 91234 56780",
		Location:     "MG Road, Bengaluru",
		SlotCount:    4,
		Status:       models.ProviderStatusApproved,
		DocLicense:   true,
		DocInsurance: true,
		DocTax:       true,
	}
	if err := s.providers.Create(ctx, approved); err != nil {
		return err
	}

	pending := &models.ProviderApplication{
		Name:       "Lakeside Lots",
		OwnerName:  "Rahul Mehta",
		Email:      "rahul@lakesidelots.example.com",
		Phone:      "+91 99887 76655",
		Location:   "Lakeside Drive, Pune",
		SlotCount:  2,
		Status:     models.ProviderStatusPending,
		DocLicense: true,
		// doc_insurance и doc_tax не загружены: заявка не проходит approve
	}
	if err := s.providers.Create(ctx, pending); err != nil {
		return err
	}

	slots := []models.ParkingSlot{
		{ProviderID: approved.ID, Name: "City Center Hub", Location: "MG Road, Bengaluru", Category: "car", PricePerHour: 50, Available: true, Rating: 4.6},
		{ProviderID: approved.ID, Name: "Grand Mall Plaza", Location: "Brigade Road, Bengaluru", Category: "car", PricePerHour: 40, Available: true, Rating: 4.3},
		{ProviderID: approved.ID, Name: "Airport Premium", Location: "KIA Terminal 1, Bengaluru", Category: "car", PricePerHour: 100, Available: false, Rating: 4.9},
		{ProviderID: approved.ID, Name: "Seaside Parking", Location: "Marine Drive, Mumbai", Category: "bike", PricePerHour: 60, Available: true, Rating: 4.1},
	}
	for i := range slots {
		if err := s.slots.Create(ctx, &slots[i]); err != nil {
			return err
		}
	}

	refundAmount := 75.0
	disputes := []models.Dispute{
		{
			Title:        "Refund not received for cancelled booking",
			Type:         models.DisputeTypeRefund,
			Priority:     models.DisputePriorityHigh,
			ReporterID:   driver.ID,
			ReporterRole: models.RoleDriver,
			Description:  "I cancelled my booking at Grand Mall Plaza but the refund has not shown up in my wallet.",
			Amount:       &refundAmount,
			Status:       models.DisputeStatusOpen,
		},
		{
			Title:        "Slot was occupied on arrival",
			Type:         models.DisputeTypeComplaint,
			Priority:     models.DisputePriorityMedium,
			ReporterID:   driver.ID,
			ReporterRole: models.RoleDriver,
			Description:  "Booked City Center Hub for two hours, another car was parked in the spot when I arrived.",
			Status:       models.DisputeStatusOpen,
		},
	}
	for i := range disputes {
		if err := s.disputes.Create(ctx, &disputes[i]); err != nil {
			return err
		}
	}

	logger.Log.WithField("slots", len(slots)).Info("seed: demo data created")
	return nil
}

func (s *SeedService) seedAdmin(ctx context.Context) error {
	hash, err := bcrypt.GenerateFromPassword([]byte("Admin12345"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	admin := &models.User{
		Email:        "admin@parkease.example.com",
		Name:         "Platform Admin",
		PasswordHash: string(hash),
		Role:         models.RoleAdmin,
		IsActive:     true,
	}
	err = s.users.Create(ctx, admin)
	if err == repository.ErrEmailTaken {
		return nil
	}
	return err
}

func strPtr(s string) *string { return &s }
