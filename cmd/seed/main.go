package main

import (
	"context"
	"log"
	"time"

	"jobtrack/internal/database"
	"jobtrack/internal/domain"
	"jobtrack/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

func main() {
	db, err := database.Connect("jobtrack.db")
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("Running AutoMigrate...")
	if err := repository.AutoMigrate(db); err != nil {
		log.Fatal("AutoMigrate failed:", err)
	}

	log.Println("Cleaning old data...")
	db.Exec("DELETE FROM jobs")
	db.Exec("DELETE FROM customers")
	db.Exec("DELETE FROM users")

	ctx := context.Background()
	users := repository.NewUserRepository(db)
	jobs := repository.NewJobRepository(db)
	customers := repository.NewCustomerRepository(db)

	// ================== USERS ==================
	log.Println("Creating users...")

	ownerHash, _ := bcrypt.GenerateFromPassword([]byte("owner123"), bcrypt.DefaultCost)
	owner := domain.User{
		Email:        "owner@jobtrack.local",
		PasswordHash: string(ownerHash),
		Role:         domain.RoleOwner,
		Name:         "Service Owner",
		IsRegistered: true,
	}
	if err := users.Create(ctx, &owner); err != nil {
		log.Fatal("owner create failed:", err)
	}
	log.Println("Owner created: owner@jobtrack.local / owner123")

	coordHash, _ := bcrypt.GenerateFromPassword([]byte("coord123"), bcrypt.DefaultCost)
	coordinator := domain.User{
		Email:        "frontdesk@jobtrack.local",
		PasswordHash: string(coordHash),
		Role:         domain.RoleCoordinator,
		Name:         "Front Desk",
		IsRegistered: true,
	}
	if err := users.Create(ctx, &coordinator); err != nil {
		log.Fatal("coordinator create failed:", err)
	}
	log.Println("Coordinator created: frontdesk@jobtrack.local / coord123")

	engineerEmails := []string{"ravi@jobtrack.local", "sanjay@jobtrack.local", "meena@jobtrack.local"}
	engineerNames := []string{"Ravi Kumar", "Sanjay Patel", "Meena Iyer"}
	for i, email := range engineerEmails {
		hash, _ := bcrypt.GenerateFromPassword([]byte("eng123"), bcrypt.DefaultCost)
		eng := domain.User{
			Email:        email,
			PasswordHash: string(hash),
			Role:         domain.RoleEngineer,
			Name:         engineerNames[i],
			IsRegistered: true,
		}
		if err := users.Create(ctx, &eng); err != nil {
			log.Fatal("engineer create failed:", err)
		}
	}
	log.Println("Engineers created (password eng123)")

	// Pre-provisioned engineer who has not signed up yet
	pending := domain.User{
		Email:        "newhire@jobtrack.local",
		Role:         domain.RoleEngineer,
		Name:         "New Hire",
		IsRegistered: false,
	}
	if err := users.Create(ctx, &pending); err != nil {
		log.Fatal("pending engineer create failed:", err)
	}

	// ================== CUSTOMERS ==================
	log.Println("Creating customers...")

	seedCustomers := []domain.Customer{
		{Name: "Apex Cold Storage", Phone: "+91 98450 11223", City: "Bengaluru", POC: "Mr. Rao", GSTIN: "29ABCDE1234F1Z5"},
		{Name: "Lakshmi Textiles", Phone: "+91 99000 44556", City: "Coimbatore", POC: "Ms. Devi"},
		{Name: "Sunrise Hotels", Phone: "+91 90080 77889", City: "Chennai", POC: "Mr. Thomas"},
	}
	for i := range seedCustomers {
		if err := customers.UpsertByName(ctx, &seedCustomers[i]); err != nil {
			log.Fatal("customer upsert failed:", err)
		}
	}

	// ================== JOBS ==================
	log.Println("Creating jobs...")

	now := time.Now()
	completedOn := now.Add(-24 * time.Hour)
	closedAt := now.Add(-2 * time.Hour)

	seedJobs := []domain.Job{
		{
			JobID:        "JT-1001",
			Date:         now.AddDate(0, 0, -7).Format("2006-01-02"),
			Location:     domain.LocationEnterprise,
			CustomerName: "Apex Cold Storage",
			Phone:        "+91 98450 11223",
			City:         "Bengaluru",
			POC:          "Mr. Rao",
			Brand:        "Voltas",
			Model:        "VC-220",
			SerialNo:     "VC220-88421",
			CallStatus:   domain.CallInsideWarranty,
			Description:  "Compressor trips on load",
			Status:       domain.StatusNotInspected,
		},
		{
			JobID:        "JT-1002",
			Date:         now.AddDate(0, 0, -5).Format("2006-01-02"),
			Location:     domain.LocationCustomer,
			CustomerName: "Lakshmi Textiles",
			Phone:        "+91 99000 44556",
			City:         "Coimbatore",
			POC:          "Ms. Devi",
			Brand:        "Blue Star",
			Model:        "BS-540",
			CallStatus:   domain.CallOutsideWarranty,
			Description:  "Cooling loss in dye unit",
			Status:       domain.StatusInProgress,
			Engineers:    []string{"ravi@jobtrack.local", "sanjay@jobtrack.local"},
			Notes:        "Gas leak traced to condenser joint",
		},
		{
			JobID:        "JT-1003",
			Date:         now.AddDate(0, 0, -10).Format("2006-01-02"),
			Location:     domain.LocationEnterprise,
			CustomerName: "Sunrise Hotels",
			Phone:        "+91 90080 77889",
			City:         "Chennai",
			POC:          "Mr. Thomas",
			Brand:        "Daikin",
			Model:        "DK-900",
			SerialNo:     "DK900-00312",
			CallStatus:   domain.CallCommissioning,
			Description:  "New chiller installation",
			Status:       domain.StatusCompleted,
			Engineers:    []string{"meena@jobtrack.local"},
			CompletedOn:  &completedOn,
			ClosedAt:     &closedAt,
			Claim: &domain.Claim{
				Principal: "Daikin India",
				Details:   "Commissioning claim for DK-900",
				InvoiceNo: "INV-2231",
			},
		},
	}
	for i := range seedJobs {
		if err := jobs.Create(ctx, &seedJobs[i]); err != nil {
			log.Fatal("job create failed:", err)
		}
	}

	log.Println("Seed complete.")
}
