package services

import (
	"context"
	"fmt"
	"sort"

	"gorm.io/gorm"
)

type AdminService interface {
	ListTables() []string
	InspectTable(ctx context.Context, table string, limit int) ([]map[string]interface{}, error)
}

type adminService struct {
	db *gorm.DB
}

func NewAdminService(db *gorm.DB) AdminService {
	return &adminService{db: db}
}

// inspectableTables whitelists what the admin surface may read and pins
// the column set so credential material never leaves the database.
var inspectableTables = map[string]string{
	"users":                  "id, email, name, role, last_login_at, created_at, updated_at",
	"drivers":                "*",
	"daily_metrics":          "*",
	"alert_rules":            "*",
	"alert_events":           "*",
	"notification_templates": "*",
	"settings":               "*",
	"reports":                "*",
}

const (
	defaultInspectLimit = 50
	maxInspectLimit     = 500
)

func (s *adminService) ListTables() []string {
	tables := make([]string, 0, len(inspectableTables))
	for name := range inspectableTables {
		tables = append(tables, name)
	}
	sort.Strings(tables)
	return tables
}

func (s *adminService) InspectTable(ctx context.Context, table string, limit int) ([]map[string]interface{}, error) {
	columns, ok := inspectableTables[table]
	if !ok {
		return nil, fmt.Errorf("table %q is not inspectable", table)
	}

	if limit <= 0 {
		limit = defaultInspectLimit
	}
	if limit > maxInspectLimit {
		limit = maxInspectLimit
	}

	rows := []map[string]interface{}{}
	err := s.db.WithContext(ctx).
		Table(table).
		Select(columns).
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to inspect table %s: %w", table, err)
	}

	return rows, nil
}
