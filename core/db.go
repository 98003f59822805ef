package core

// Database engines
const (
	DBEngineInmem    = "inmem"
	DBEnginePostgres = "postgres"
)
