package sqlstore

import (
	"embed"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	_ "github.com/lib/pq"

	"github.com/corpora-ai/corpora/app/store"
	"github.com/corpora-ai/corpora/pkg/register"
	"github.com/corpora-ai/corpora/pkg/sqlstore"
	"github.com/corpora-ai/corpora/pkg/types"
)

//go:embed *.sql
var CreateTableFiles embed.FS

func init() {
	sq.StatementBuilder = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
}

var provider = &Provider{
	stores: &Stores{},
}

func GetProvider() *Provider {
	return provider
}

type Provider struct {
	*sqlstore.SqlProvider
	stores *Stores
}

type Stores struct {
	store.TenantStore
	store.DocumentStore
	store.DocumentVersionStore
	store.ChunkStore
	store.VectorStore
	store.PlaygroundStore
	store.EventStore
}

type RegisterKey struct{}

func MustSetup(m sqlstore.ConnectConfig, s ...sqlstore.ConnectConfig) func() *Provider {
	provider.SqlProvider = sqlstore.MustSetupProvider(m, s...)

	for _, f := range register.ResolveFuncHandlers[*Provider](RegisterKey{}) {
		f(provider)
	}

	return func() *Provider {
		return provider
	}
}

// Install applies every embedded .sql file that has not run yet. Files are
// tracked by name in the schema_migrations table, so Install is safe to run
// on every boot.
func (p *Provider) Install() error {
	if err := p.enableExtensions(); err != nil {
		return err
	}

	if err := p.ensureMigrationTable(); err != nil {
		return err
	}

	files, err := CreateTableFiles.ReadDir(".")
	if err != nil {
		return err
	}

	for _, file := range files {
		if file.IsDir() || !strings.HasSuffix(file.Name(), ".sql") {
			continue
		}

		executed, err := p.isFileExecuted(file.Name())
		if err != nil {
			return err
		}
		if executed {
			continue
		}

		raw, err := CreateTableFiles.ReadFile(file.Name())
		if err != nil {
			return err
		}

		if _, err = p.SqlProvider.GetMaster().Exec(string(raw)); err != nil {
			return fmt.Errorf("failed to apply %s: %w", file.Name(), err)
		}

		if err = p.markFileExecuted(file.Name()); err != nil {
			return err
		}
	}
	return nil
}

func (p *Provider) enableExtensions() error {
	extensions := []string{
		"CREATE EXTENSION IF NOT EXISTS vector;",
	}

	for _, ext := range extensions {
		if _, err := p.SqlProvider.GetMaster().Exec(ext); err != nil {
			return fmt.Errorf("failed to enable extension: %w\nSQL: %s", err, ext)
		}
	}
	return nil
}

func (p *Provider) ensureMigrationTable() error {
	createTableSQL := `
CREATE TABLE IF NOT EXISTS ` + types.TABLE_PREFIX + `schema_migrations (
    filename VARCHAR(255) PRIMARY KEY,
    executed_at BIGINT NOT NULL
);`
	_, err := p.SqlProvider.GetMaster().Exec(createTableSQL)
	return err
}

func (p *Provider) isFileExecuted(filename string) (bool, error) {
	var count int
	err := p.SqlProvider.GetMaster().Get(&count,
		"SELECT COUNT(*) FROM "+types.TABLE_PREFIX+"schema_migrations WHERE filename = $1", filename)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (p *Provider) markFileExecuted(filename string) error {
	_, err := p.SqlProvider.GetMaster().Exec(
		"INSERT INTO "+types.TABLE_PREFIX+"schema_migrations (filename, executed_at) VALUES ($1, $2) ON CONFLICT (filename) DO NOTHING",
		filename, time.Now().Unix())
	return err
}

func (p *Provider) TenantStore() store.TenantStore {
	return p.stores.TenantStore
}

func (p *Provider) DocumentStore() store.DocumentStore {
	return p.stores.DocumentStore
}

func (p *Provider) DocumentVersionStore() store.DocumentVersionStore {
	return p.stores.DocumentVersionStore
}

func (p *Provider) ChunkStore() store.ChunkStore {
	return p.stores.ChunkStore
}

func (p *Provider) VectorStore() store.VectorStore {
	return p.stores.VectorStore
}

func (p *Provider) PlaygroundStore() store.PlaygroundStore {
	return p.stores.PlaygroundStore
}

func (p *Provider) EventStore() store.EventStore {
	return p.stores.EventStore
}
