package database

import (
	"log"
	"time"

	"github.com/Polleschnerjulian-creator/caelex-assessment-sub018/shared/database/models"
	"github.com/Polleschnerjulian-creator/caelex-assessment-sub018/shared/database/models/compliance"

	"github.com/google/uuid"
)

// SeedDatabase seeds the database with a demo operator organization,
// its members and a starter set of regulatory deadlines.
func SeedDatabase() error {
	log.Println("🌱 Checking database seed data...")

	org, usersCreated, err := seedDemoOrganization()
	if err != nil {
		return err
	}

	deadlinesCreated, err := seedDemoDeadlines(org)
	if err != nil {
		return err
	}

	if usersCreated > 0 || deadlinesCreated > 0 {
		log.Printf("✅ Database seeding completed (%d users, %d deadlines created)", usersCreated, deadlinesCreated)
	} else {
		log.Println("✅ Database seed data is up to date")
	}

	return nil
}

// seedDemoOrganization creates the demo operator organization with one
// member per role, idempotently keyed on the organization slug.
func seedDemoOrganization() (*models.Organization, int, error) {
	var org models.Organization
	if err := DB.Where("slug = ?", "orbitalworks").First(&org).Error; err == nil {
		return &org, 0, nil
	}

	org = models.Organization{
		Name:    "OrbitalWorks GmbH",
		Slug:    "orbitalworks",
		Status:  "ACTIVE",
		Country: "DE",
		OwnerID: uuid.New(),
	}
	if err := DB.Create(&org).Error; err != nil {
		return nil, 0, err
	}

	seedUsers := []struct {
		Email     string
		FirstName string
		LastName  string
		Role      string
	}{
		{"founder@orbitalworks.example", "Mara", "Winter", models.RoleOwner},
		{"ops@orbitalworks.example", "Jonas", "Keller", models.RoleAdmin},
		{"compliance@orbitalworks.example", "Lea", "Brandt", models.RoleManager},
		{"engineer@orbitalworks.example", "Timo", "Scholz", models.RoleMember},
		{"auditor@orbitalworks.example", "Nina", "Vogel", models.RoleViewer},
	}

	created := 0
	for _, su := range seedUsers {
		user := models.User{
			Email:          su.Email,
			FirstName:      su.FirstName,
			LastName:       su.LastName,
			Status:         "ACTIVE",
			OrganizationID: &org.ID,
		}
		if err := DB.Create(&user).Error; err != nil {
			return nil, created, err
		}

		member := models.OrganizationMember{
			OrganizationID: org.ID,
			UserID:         user.ID,
			Role:           su.Role,
		}
		if err := DB.Create(&member).Error; err != nil {
			return nil, created, err
		}

		if su.Role == models.RoleOwner {
			org.OwnerID = user.ID
			if err := DB.Save(&org).Error; err != nil {
				return nil, created, err
			}
		}
		created++
	}

	log.Printf("✅ Demo organization created: %s", org.Slug)
	return &org, created, nil
}

// seedDemoDeadlines creates starter deadlines for the organization owner.
func seedDemoDeadlines(org *models.Organization) (int, error) {
	var count int64
	DB.Model(&compliance.Deadline{}).Where("user_id = ?", org.OwnerID).Count(&count)
	if count > 0 {
		return 0, nil
	}

	now := time.Now().UTC()
	deadlines := []compliance.Deadline{
		{
			UserID:     org.OwnerID,
			Title:      "Annual compliance report to NCA",
			Regulation: compliance.FrameworkEUSpaceAct,
			DueDate:    now.AddDate(0, 2, 0),
			Status:     compliance.DeadlineStatusUpcoming,
		},
		{
			UserID:     org.OwnerID,
			Title:      "NIS2 incident response plan review",
			Regulation: compliance.FrameworkNIS2,
			DueDate:    now.AddDate(0, 0, 5),
			Status:     compliance.DeadlineStatusDueSoon,
		},
		{
			UserID:     org.OwnerID,
			Title:      "Launch licence renewal",
			Regulation: compliance.FrameworkUKSIA,
			DueDate:    now.AddDate(0, 6, 0),
			Status:     compliance.DeadlineStatusUpcoming,
		},
	}

	created := 0
	for _, d := range deadlines {
		if err := DB.Create(&d).Error; err != nil {
			return created, err
		}
		created++
	}

	return created, nil
}
