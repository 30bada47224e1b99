package main

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"

	"fleetpulse/internal/config"
	"fleetpulse/internal/models"
	"fleetpulse/internal/repositories/interfaces"
	"fleetpulse/internal/repositories/postgres"
	"fleetpulse/internal/utils"
	"fleetpulse/pkg/database"
)

// Seeds the bootstrap admin account, default alert rules and the SMS
// template set. Safe to run repeatedly.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(&database.PostgresConfig{
		Host:            cfg.Database.Host,
		Port:            cfg.Database.Port,
		User:            cfg.Database.User,
		Password:        cfg.Database.Password,
		Name:            cfg.Database.Name,
		SSLMode:         cfg.Database.SSLMode,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := models.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := seedAdmin(ctx, postgres.NewUserRepository(db), cfg.Admin); err != nil {
		log.Fatalf("Failed to seed admin user: %v", err)
	}
	if err := seedAlertRules(ctx, postgres.NewAlertRuleRepository(db)); err != nil {
		log.Fatalf("Failed to seed alert rules: %v", err)
	}
	if err := seedTemplates(ctx, postgres.NewTemplateRepository(db)); err != nil {
		log.Fatalf("Failed to seed notification templates: %v", err)
	}

	log.Println("Seed completed")
}

func seedAdmin(ctx context.Context, users interfaces.UserRepository, admin *config.AdminConfig) error {
	if admin.Email == "" || admin.Password == "" {
		log.Println("ADMIN_EMAIL or ADMIN_PASSWORD not set, skipping admin seed")
		return nil
	}

	_, err := users.GetByEmail(ctx, admin.Email)
	if err == nil {
		log.Printf("Admin %s already exists", admin.Email)
		return nil
	}
	if !errors.Is(err, interfaces.ErrNotFound) {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(admin.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	user := &models.User{
		Email:        admin.Email,
		PasswordHash: string(hash),
		Name:         "Fleet Admin",
		Role:         models.UserRoleAdmin,
	}
	if err := users.Create(ctx, user); err != nil {
		return err
	}

	log.Printf("Created admin %s", admin.Email)
	return nil
}

func seedAlertRules(ctx context.Context, rules interfaces.AlertRuleRepository) error {
	defaults := []*models.AlertRule{
		{
			Name:      "Low acceptance rate",
			Metric:    "acceptance_rate",
			Operator:  "lt",
			Threshold: 0.7,
			Reason:    "low_acceptance",
			Severity:  models.AlertSeverityWarning,
			Enabled:   true,
		},
		{
			Name:      "High cancellation rate",
			Metric:    "cancellation_rate",
			Operator:  "gt",
			Threshold: 0.15,
			Reason:    "high_cancellation",
			Severity:  models.AlertSeverityWarning,
			Enabled:   true,
		},
		{
			Name:      "Poor feedback",
			Metric:    "feedback_score",
			Operator:  "lt",
			Threshold: 3.5,
			Reason:    "poor_performance",
			Severity:  models.AlertSeverityCritical,
			Enabled:   true,
		},
		{
			Name:      "Excessive idle time",
			Metric:    "idle_ratio",
			Operator:  "gt",
			Threshold: 0.6,
			Reason:    "excessive_idle",
			Severity:  models.AlertSeverityInfo,
			Enabled:   true,
		},
	}

	existing, _, err := rules.List(ctx, &utils.PaginationParams{Page: 1, PageSize: 100, Sort: "created_at", Order: "asc"})
	if err != nil {
		return err
	}
	byName := make(map[string]bool, len(existing))
	for _, r := range existing {
		byName[r.Name] = true
	}

	for _, rule := range defaults {
		if byName[rule.Name] {
			continue
		}
		if err := rules.Create(ctx, rule); err != nil {
			return err
		}
		log.Printf("Created alert rule %q", rule.Name)
	}

	return nil
}

func seedTemplates(ctx context.Context, templates interfaces.TemplateRepository) error {
	defaults := []*models.NotificationTemplate{
		{
			Name:     "sms-en-neutral-poor_performance",
			Channel:  models.AlertChannelSMS,
			Language: "en",
			Tone:     "neutral",
			Reason:   "poor_performance",
			Body:     "Hi {{driver_name}}, your recent feedback scores need attention. Please review your trips in the dashboard.",
		},
		{
			Name:     "sms-en-neutral-low_acceptance",
			Channel:  models.AlertChannelSMS,
			Language: "en",
			Tone:     "neutral",
			Reason:   "low_acceptance",
			Body:     "Hi {{driver_name}}, your acceptance rate has dropped below the fleet target. Accepting more requests helps your standing.",
		},
		{
			Name:     "sms-en-friendly-poor_performance",
			Channel:  models.AlertChannelSMS,
			Language: "en",
			Tone:     "friendly",
			Reason:   "poor_performance",
			Body:     "Hey {{driver_name}}! Just a heads up that riders have been leaving lower ratings lately. A quick look at your recent trips might help.",
		},
	}

	for _, t := range defaults {
		if err := templates.Upsert(ctx, t); err != nil {
			return err
		}
	}

	log.Printf("Seeded %d notification templates", len(defaults))
	return nil
}
