package config

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"sop-manager/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func InitDB() *gorm.DB {
	host := getEnv("DB_HOST", "localhost")
	port := getEnv("DB_PORT", "5432")
	user := getEnv("DB_USER", "postgres")
	password := getEnv("DB_PASSWORD", "postgres")
	dbname := getEnv("DB_NAME", "sop_manager")
	sslmode := getEnv("DB_SSLMODE", "disable")

	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		host, port, user, password, dbname, sslmode)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.SOP{},
		&models.SOPStep{},
		&models.SOPResponsibility{},
		&models.SOPTroubleshootingItem{},
		&models.SOPRevision{},
		&models.SOPVersion{},
		&models.SOPApproval{},
		&models.Setting{},
		&models.WorkflowStep{},
		&models.WorkflowTransition{},
		&models.Questionnaire{},
		&models.ShadowingObservation{},
	)
	if err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	seedDefaults(db)

	return db
}

// seedDefaults installs the settings and workflow rows a fresh database
// needs. Every insert is conditional so restarts never clobber admin edits.
func seedDefaults(db *gorm.DB) {
	var count int64

	db.Model(&models.Setting{}).Where("key = ?", models.SettingReviewPeriodDays).Count(&count)
	if count == 0 {
		db.Create(&models.Setting{
			Key:   models.SettingReviewPeriodDays,
			Value: strconv.Itoa(models.DefaultReviewPeriodDays),
		})
	}

	db.Model(&models.WorkflowStep{}).Count(&count)
	if count == 0 {
		steps := []models.WorkflowStep{
			{StepOrder: 1, StatusKey: string(models.StatusDraft), DisplayLabel: "Draft", Color: "gray", IsInitial: true, CanEdit: true},
			{StepOrder: 2, StatusKey: string(models.StatusReview), DisplayLabel: "In Review", Color: "yellow", CanEdit: true},
			{StepOrder: 3, StatusKey: string(models.StatusPendingApproval), DisplayLabel: "Pending Approval", Color: "orange", RequiresApproval: true, CanEdit: false},
			{StepOrder: 4, StatusKey: string(models.StatusActive), DisplayLabel: "Active", Color: "green", IsFinal: true, CanEdit: true},
		}
		for i := range steps {
			db.Create(&steps[i])
		}
	}

	db.Model(&models.WorkflowTransition{}).Count(&count)
	if count == 0 {
		transitions := []models.WorkflowTransition{
			{FromStatus: string(models.StatusDraft), ToStatus: string(models.StatusReview)},
			{FromStatus: string(models.StatusReview), ToStatus: string(models.StatusDraft)},
			{FromStatus: string(models.StatusActive), ToStatus: string(models.StatusReview), RequiresAdmin: true},
			{FromStatus: string(models.StatusDraft), ToStatus: string(models.StatusPendingApproval), AutoCreatesApproval: true},
			{FromStatus: string(models.StatusReview), ToStatus: string(models.StatusPendingApproval), AutoCreatesApproval: true},
		}
		for i := range transitions {
			db.Create(&transitions[i])
		}
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
