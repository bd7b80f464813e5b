package mock

import (
	"database/sql"
	"fmt"
	"sync/atomic"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var dbCounter atomic.Int64

// Db is an in-memory SQLite database migrated with the given models.
type Db struct {
	DbConn *gorm.DB
	sqlDB  *sql.DB
	models []any
}

// NewDb opens a fresh in-memory database. Every call gets its own database,
// so scenarios never observe each other's rows.
func NewDb(models ...any) *Db {
	name := fmt.Sprintf("file:scenario_%d?mode=memory&cache=shared", dbCounter.Add(1))

	dbSQL, err := sql.Open("sqlite", name)
	if err != nil {
		panic(err)
	}

	dbSQL.SetMaxOpenConns(1)

	dbConn, err := gorm.Open(sqlite.Dialector{Conn: dbSQL}, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		panic("failed to connect to database. err: " + err.Error())
	}

	newDbMock := &Db{
		DbConn: dbConn,
		sqlDB:  dbSQL,
		models: models,
	}

	if err := newDbMock.init(); err != nil {
		panic(fmt.Sprintf("failed to migrate database. err: %s", err.Error()))
	}

	return newDbMock
}

func (d *Db) init() error {
	if err := d.DbConn.AutoMigrate(d.models...); err != nil {
		return err
	}

	for _, model := range d.models {
		if !d.DbConn.Migrator().HasTable(model) {
			return fmt.Errorf("table for model %T was not created", model)
		}
	}

	return nil
}

// ClearDB deletes every row of the migrated tables.
func (d *Db) ClearDB() error {
	for _, model := range d.models {
		err := d.DbConn.Session(&gorm.Session{AllowGlobalUpdate: true}).Unscoped().Delete(model).Error
		if err != nil {
			return err
		}
	}
	return nil
}

// HealthCheck reports whether the database answers a ping.
func (d *Db) HealthCheck() bool {
	return d.sqlDB.Ping() == nil
}

// Close closes the underlying connection, dropping the in-memory database.
func (d *Db) Close() error {
	return d.sqlDB.Close()
}
