// Package wire provides dependency injection for the rfref application.
// It creates singleton services with lazy initialization.
package wire

import (
	"io"
	"log"
	"os"
	"sync"

	cliadapter "github.com/example/rfref/internal/adapters/cli"
	"github.com/example/rfref/internal/adapters/sqlite"
	"github.com/example/rfref/internal/app"
	"github.com/example/rfref/internal/config"
	"github.com/example/rfref/internal/core/creditorref"
	"github.com/example/rfref/internal/db"
	"github.com/example/rfref/internal/ports/primary"
)

var (
	cfg     *config.Config
	cfgOnce sync.Once

	checkService primary.ReferenceService
	checkOnce    sync.Once

	ledgerService primary.ReferenceService
	logService    primary.LogService
	ledgerOnce    sync.Once
)

// Config returns the configuration loaded from the working directory.
func Config() *config.Config {
	cfgOnce.Do(initConfig)
	return cfg
}

func initConfig() {
	cwd, err := os.Getwd()
	if err != nil {
		log.Fatalf("failed to get working directory: %v", err)
	}
	cfg, err = config.LoadOrDefault(cwd)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
}

func parser() creditorref.Parser {
	return creditorref.Parser{RejectSpaces: Config().RejectSpaces}
}

// CheckService returns a ReferenceService for generate and validate only.
// It never opens the ledger database.
func CheckService() primary.ReferenceService {
	checkOnce.Do(func() {
		checkService = app.NewReferenceService(nil, parser())
	})
	return checkService
}

// LedgerService returns the ReferenceService backed by the ledger database.
func LedgerService() primary.ReferenceService {
	ledgerOnce.Do(initLedger)
	return ledgerService
}

// LogService returns the singleton LogService instance.
func LogService() primary.LogService {
	ledgerOnce.Do(initLedger)
	return logService
}

// initLedger opens the database and builds the ledger-backed service.
// This is called once via sync.Once.
func initLedger() {
	dbPath, err := Config().ResolveDBPath()
	if err != nil {
		log.Fatalf("failed to resolve database path: %v", err)
	}

	database, err := db.Open(dbPath)
	if err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}

	// Create repository adapters (secondary ports) with injected DB
	logRepo := sqlite.NewLedgerLogRepository(database)
	refRepo := sqlite.NewReferenceRepository(database, sqlite.NewLogWriterAdapter(logRepo))

	ledgerService = app.NewReferenceService(refRepo, parser())
	logService = app.NewLogService(logRepo, refRepo)
}

// CheckAdapterWithOutput returns a ReferenceAdapter for generate, validate and
// format, writing to the given output.
func CheckAdapterWithOutput(out io.Writer) *cliadapter.ReferenceAdapter {
	return cliadapter.NewReferenceAdapter(CheckService(), out)
}

// LedgerAdapterWithOutput returns a new ledger ReferenceAdapter writing to the given output.
// Each call creates a new adapter (adapters are stateless translators).
func LedgerAdapterWithOutput(out io.Writer) *cliadapter.ReferenceAdapter {
	return cliadapter.NewReferenceAdapter(LedgerService(), out)
}

// LogAdapterWithOutput returns a new LogAdapter writing to the given output.
func LogAdapterWithOutput(out io.Writer) *cliadapter.LogAdapter {
	return cliadapter.NewLogAdapter(LogService(), out)
}
