package database

import (
	"context"
	"fmt"

	"github.com/go-streamline/aiworkflow/models"
	"gorm.io/gorm"
)

var (
	ErrCouldNotRunMigrations = fmt.Errorf("could not run migrations")
	ErrCouldNotDropTables    = fmt.Errorf("could not drop tables")
)

type ColumnInfo struct {
	Name       string  `json:"name"`
	Type       string  `json:"type"`
	Nullable   bool    `json:"nullable"`
	PrimaryKey bool    `json:"primary_key"`
	Default    *string `json:"default"`
}

type TableInfo struct {
	Name    string       `json:"name"`
	Exists  bool         `json:"exists"`
	Columns []ColumnInfo `json:"columns"`
}

// CreateTables creates or migrates the table of every record kind.
func CreateTables(db *gorm.DB) error {
	if err := db.AutoMigrate(models.All()...); err != nil {
		return fmt.Errorf("%w: %v", ErrCouldNotRunMigrations, err)
	}
	return nil
}

// DropTables drops every record table. Data is lost.
func DropTables(db *gorm.DB) error {
	all := models.All()
	for i := len(all) - 1; i >= 0; i-- {
		if err := db.Migrator().DropTable(all[i]); err != nil {
			return fmt.Errorf("%w: %v", ErrCouldNotDropTables, err)
		}
	}
	return nil
}

// DescribeTables reports the columns the database currently holds for every record table.
func DescribeTables(db *gorm.DB) ([]TableInfo, error) {
	migrator := db.Migrator()
	var tables []TableInfo
	for _, m := range models.All() {
		info := TableInfo{Name: m.(models.Record).TableName(), Columns: []ColumnInfo{}}
		if !migrator.HasTable(m) {
			tables = append(tables, info)
			continue
		}
		info.Exists = true

		columnTypes, err := migrator.ColumnTypes(m)
		if err != nil {
			return nil, err
		}
		for _, ct := range columnTypes {
			col := ColumnInfo{Name: ct.Name(), Type: ct.DatabaseTypeName()}
			if nullable, ok := ct.Nullable(); ok {
				col.Nullable = nullable
			}
			if pk, ok := ct.PrimaryKey(); ok {
				col.PrimaryKey = pk
			}
			if def, ok := ct.DefaultValue(); ok {
				col.Default = &def
			}
			info.Columns = append(info.Columns, col)
		}
		tables = append(tables, info)
	}
	return tables, nil
}

// SchemaManager runs the schema helpers against one connection and reports
// the affected table names.
type SchemaManager struct {
	db *gorm.DB
}

func NewSchemaManager(db *gorm.DB) *SchemaManager {
	return &SchemaManager{db: db}
}

func (m *SchemaManager) CreateTables(ctx context.Context) ([]string, error) {
	if err := CreateTables(m.db.WithContext(ctx)); err != nil {
		return nil, err
	}
	return TableNames(), nil
}

func (m *SchemaManager) DropTables(ctx context.Context) ([]string, error) {
	if err := DropTables(m.db.WithContext(ctx)); err != nil {
		return nil, err
	}
	return TableNames(), nil
}

func (m *SchemaManager) DescribeTables(ctx context.Context) ([]TableInfo, error) {
	return DescribeTables(m.db.WithContext(ctx))
}

func (m *SchemaManager) Ping(ctx context.Context) error {
	return Ping(ctx, m.db)
}

// TableNames lists the record tables in creation order.
func TableNames() []string {
	all := models.All()
	names := make([]string, 0, len(all))
	for _, m := range all {
		names = append(names, m.(models.Record).TableName())
	}
	return names
}
