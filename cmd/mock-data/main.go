package main

import (
	"log"
	"math/rand"
	"time"

	"go-chemoventry/internal/config"
	"go-chemoventry/internal/model"
	"go-chemoventry/internal/repository"
	"go-chemoventry/internal/service"
	"go-chemoventry/internal/ws"
	"go-chemoventry/pkg/database"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
)

// Seeds a demo dataset: three users, four locations, a shelf of chemicals
// and a month of activity history written through the ledger so quantities
// stay consistent with the audit trail.
func main() {
	// 1. Load Env
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	// 2. Setup Database
	db := database.ConnectDB(cfg.DSN())
	db.AutoMigrate(&model.User{}, &model.Location{}, &model.Chemical{}, &model.ChemicalActivity{})

	userRepo := repository.NewUserRepo(db)
	locationRepo := repository.NewLocationRepo(db)
	chemicalRepo := repository.NewChemicalRepo(db)
	activityRepo := repository.NewActivityRepo(db)

	hub := ws.NewHub()
	go hub.Run()
	invService := service.NewInventoryService(chemicalRepo, activityRepo, locationRepo, db, hub)

	users := createUsers(userRepo)
	locations := createLocations(locationRepo)
	chemicals := createChemicals(chemicalRepo, users, locations)
	createActivities(invService, chemicals, users)

	log.Println("Mock data creation complete!")
	log.Println("- Admin: admin1@chemoventry.com (password: admin123)")
	log.Println("- Attendant: labtech@chemoventry.com (password: lab12345)")
}

func createUsers(repo repository.UserRepository) []*model.User {
	specs := []struct {
		email, first, last, password string
		role                         model.Role
	}{
		{"admin1@chemoventry.com", "John", "Admin", "admin123", model.RoleAdmin},
		{"admin2@chemoventry.com", "Jane", "Director", "admin123", model.RoleAdmin},
		{"labtech@chemoventry.com", "Alex", "Technician", "lab12345", model.RoleAttendant},
	}

	users := make([]*model.User, 0, len(specs))
	for _, spec := range specs {
		if existing, err := repo.FindByEmail(spec.email); err == nil {
			users = append(users, existing)
			continue
		}
		user := &model.User{
			Email:     spec.email,
			FirstName: spec.first,
			LastName:  spec.last,
			Role:      spec.role,
			IsActive:  true,
		}
		if err := user.SetPassword(spec.password); err != nil {
			log.Fatalf("hash password: %v", err)
		}
		if err := repo.Create(user); err != nil {
			log.Fatalf("create user %s: %v", spec.email, err)
		}
		users = append(users, user)
	}
	log.Printf("Created %d users", len(users))
	return users
}

func createLocations(repo repository.LocationRepository) []*model.Location {
	names := []string{"Cold Storage A", "Acid Cabinet", "Flammables Locker", "General Shelf 1"}

	locations := make([]*model.Location, 0, len(names))
	for _, name := range names {
		if existing, err := repo.FindByName(name); err == nil {
			locations = append(locations, existing)
			continue
		}
		location := &model.Location{Name: name}
		if err := repo.Create(location); err != nil {
			log.Fatalf("create location %s: %v", name, err)
		}
		locations = append(locations, location)
	}
	log.Printf("Created %d locations", len(locations))
	return locations
}

func createChemicals(repo repository.ChemicalRepository, users []*model.User, locations []*model.Location) []*model.Chemical {
	specs := []struct {
		name, formula, vendor string
		state                 model.ChemicalState
		chemType              model.ChemicalType
		group                 model.ReactivityGroup
		quantity              float64
		expiresInDays         int
	}{
		{"Hydrochloric Acid", "HCl", "Sigma-Aldrich", model.StateLiquid, model.TypeInorganic, model.ReactivityHalogen, 500, 180},
		{"Sodium Hydroxide", "NaOH", "Merck", model.StateSolid, model.TypeInorganic, model.ReactivityAlkali, 750, 365},
		{"Ethanol", "C2H5OH", "Fisher Scientific", model.StateLiquid, model.TypeOrganic, model.ReactivityOther, 1200, 90},
		{"Acetic Acid", "CH3COOH", "Sigma-Aldrich", model.StateLiquid, model.TypeOrganic, model.ReactivityOther, 300, 120},
		{"Potassium Permanganate", "KMnO4", "Merck", model.StateSolid, model.TypeInorganic, model.ReactivityTransitionMeta, 85, 30},
		{"Helium", "He", "Air Liquide", model.StateGas, model.TypeInorganic, model.ReactivityNobleGas, 40, 720},
	}

	chemicals := make([]*model.Chemical, 0, len(specs))
	for i, spec := range specs {
		chemical := &model.Chemical{
			Name:              spec.name,
			Quantity:          spec.quantity,
			Description:       "Mock inventory item for " + spec.name,
			Vendor:            spec.vendor,
			HazardInformation: "Handle with appropriate PPE. Refer to the MSDS before use.",
			MolecularFormula:  spec.formula,
			ReactivityGroup:   spec.group,
			ChemicalType:      spec.chemType,
			ChemicalState:     spec.state,
			LocationID:        locations[i%len(locations)].ID,
			Expires:           time.Now().AddDate(0, 0, spec.expiresInDays),
			CreatedByID:       users[i%len(users)].ID,
		}
		if err := repo.Create(chemical); err != nil {
			log.Fatalf("create chemical %s: %v", spec.name, err)
		}
		chemicals = append(chemicals, chemical)
	}
	log.Printf("Created %d chemicals", len(chemicals))
	return chemicals
}

func createActivities(inv service.InventoryService, chemicals []*model.Chemical, users []*model.User) {
	actions := []model.Action{model.ActionUsed, model.ActionRestocked, model.ActionUsed, model.ActionAdded}

	count := 0
	for _, chemical := range chemicals {
		for i := 0; i < 4; i++ {
			req := &service.RecordActivityRequest{
				ChemicalID: chemical.ID,
				Action:     actions[i%len(actions)],
				Quantity:   float64(rand.Intn(20) + 1),
				Notes:      "Seeded activity",
			}
			userID := pickUser(users)
			if _, err := inv.RecordActivity(req, userID); err != nil {
				log.Printf("Warning: skipped activity for %s: %v", chemical.Name, err)
				continue
			}
			count++
		}
	}
	log.Printf("Created %d activities", count)
}

func pickUser(users []*model.User) uuid.UUID {
	return users[rand.Intn(len(users))].ID
}
