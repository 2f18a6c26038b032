package core

import (
	"database/sql"
	"log/slog"

	"github.com/mdobak/go-xerrors"

	"bloghost/internal/utils/databaseutils"
)

var NoRecordFound = xerrors.Message("No record found")

type Core struct {
	log         *slog.Logger
	db          *sql.DB
	sqlTemplate *databaseutils.SQLTemplate
}

func NewCore(dbConn *sql.DB, log *slog.Logger, sqlTemplate *databaseutils.SQLTemplate) *Core {
	return &Core{
		log:         log,
		db:          dbConn,
		sqlTemplate: sqlTemplate,
	}
}
