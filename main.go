package main

import (
	"log"
	"net/http"

	"fairshift/bizerror"
	"fairshift/domain"
	"fairshift/domain/attendance"
	"fairshift/domain/ledger"
	"fairshift/domain/member"
	"fairshift/domain/schedule"
	"fairshift/domain/shift"
	"fairshift/domain/sweep"
	"fairshift/domain/task"
	"fairshift/infra/tracing"
	"fairshift/persistence"

	"github.com/gin-gonic/gin"
)

func main() {
	log.Println("service start")

	tracingCloser, err := tracing.StartTracing()
	if err != nil {
		log.Printf("tracing disabled: %v\n", err)
	} else {
		defer tracingCloser.Close()
	}

	dbConfig, err := persistence.ParseDatabaseConfigFromEnv()
	if err != nil {
		log.Fatalf("parse database config failed %v\n", err)
	}

	// create database (no conflict)
	if dbConfig.DriverType == "mysql" {
		if err := persistence.PrepareMysqlDatabase(dbConfig.DriverArgs); err != nil {
			log.Fatalf("failed to prepare database %v\n", err)
		}
	}

	// connect database
	ds := &persistence.DataSourceManager{DatabaseConfig: dbConfig}
	if err := ds.Start(); err != nil {
		log.Fatalf("database connection failed %v\n", err)
	}
	defer ds.Stop()
	persistence.ActiveDataSourceManager = ds

	// database migration (race condition)
	err = ds.GormDB(nil).AutoMigrate(
		&domain.Member{}, &domain.CommitteeMember{},
		&domain.Shift{}, &domain.Assignment{}, &domain.Task{},
		&ledger.EntryRecord{}).Error
	if err != nil {
		log.Fatalf("database migration failed %v\n", err)
	}

	engine := gin.Default()
	engine.Use(tracing.TracingIngress(), bizerror.ErrorHandling())
	engine.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "fairshift")
	})

	member.RegisterMemberRestAPI(engine)
	shift.RegisterShiftRestAPI(engine)
	schedule.RegisterScheduleRestAPI(engine)
	attendance.RegisterAttendanceRestAPI(engine)
	ledger.RegisterLedgerRestAPI(engine)
	task.RegisterTaskRestAPI(engine)
	sweep.RegisterSweepRestAPI(engine)

	err = engine.Run(":80")
	if err != nil {
		panic(err)
	}
}
