package testinfra

import (
	"log"
	"os"
	"path/filepath"
	"strings"

	"fairshift/persistence"

	"github.com/google/uuid"
)

type TestDatabase struct {
	TestDatabaseName string
	DS               *persistence.DataSourceManager
}

// StartTestDatabase create a throwaway database for one test.
// a sqlite database under the temp directory is used by default,
// set TEST_MYSQL_SERVICE=root:root@(127.0.0.1:3306) to run against mysql instead.
func StartTestDatabase(baseName string) *TestDatabase {
	databaseName := baseName + "_test_" + strings.ReplaceAll(uuid.New().String(), "-", "")

	mysqlSvc := os.Getenv("TEST_MYSQL_SERVICE")
	if mysqlSvc == "" {
		dbConfig := &persistence.DatabaseConfig{
			DriverType: "sqlite3", DriverArgs: filepath.Join(os.TempDir(), databaseName+".db"),
		}
		ds := &persistence.DataSourceManager{DatabaseConfig: dbConfig}
		if err := ds.Start(); err != nil {
			ds.Stop()
			log.Fatalf("database connection failed %v\n", err)
		}
		return &TestDatabase{TestDatabaseName: databaseName, DS: ds}
	}

	dbConfig := &persistence.DatabaseConfig{
		DriverType: "mysql", DriverArgs: mysqlSvc + "/" + databaseName + "?charset=utf8mb4&parseTime=True&loc=Local&timeout=5s",
	}

	// create database (no conflict)
	if err := persistence.PrepareMysqlDatabase(dbConfig.DriverArgs); err != nil {
		log.Fatalf("failed to prepare database %v\n", err)
	}

	ds := &persistence.DataSourceManager{DatabaseConfig: dbConfig}
	if err := ds.Start(); err != nil {
		ds.Stop()
		log.Fatalf("database connection failed %v\n", err)
	}

	return &TestDatabase{TestDatabaseName: databaseName, DS: ds}
}

func StopTestDatabase(testDatabase *TestDatabase) {
	if testDatabase == nil || testDatabase.DS == nil {
		return
	}

	if testDatabase.DS.DatabaseConfig.DriverType == "mysql" {
		if db := testDatabase.DS.GormDB(nil); db != nil {
			if err := db.Exec("DROP DATABASE " + testDatabase.TestDatabaseName).Error; err != nil {
				log.Println("failed to drop test database: " + testDatabase.TestDatabaseName)
			}
		}
		testDatabase.DS.Stop()
		return
	}

	databaseFile := testDatabase.DS.DatabaseConfig.DriverArgs
	testDatabase.DS.Stop()
	if err := os.Remove(databaseFile); err != nil {
		log.Println("failed to remove test database file: " + databaseFile)
	}
}
