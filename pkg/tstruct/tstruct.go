package tstruct

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/mizuleo/tstruct/internal/cache"
	"github.com/mizuleo/tstruct/internal/gen"
	"github.com/mizuleo/tstruct/internal/lexer"
	"github.com/mizuleo/tstruct/internal/parser"
	"github.com/mizuleo/tstruct/internal/schema"
	"github.com/mizuleo/tstruct/internal/sqlgen"
	"github.com/mizuleo/tstruct/internal/tserr"
)

// Client is the main entry point for the tstruct schema tool.
// It provides methods for parsing DDL sources, generating Go code,
// rendering SQL, and applying schemas to a database.
//
// Create a new client with New() and close it with Close() when done.
//
// Example:
//
//	client, err := tstruct.New(
//	    tstruct.WithDatabaseURL("postgres://localhost/mydb"),
//	    tstruct.WithCacheDir("."),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Close()
//
//	table, err := client.ParseFile("schema.sql")
type Client struct {
	db      *sql.DB
	dialect sqlgen.Dialect
	cache   *cache.Cache
	config  *Config
}

// New creates a new Client with the given options.
//
// Without WithDatabaseURL the client runs in schema-only mode: Parse,
// GenerateGo and RenderSQL work normally, Apply returns
// ErrMissingDatabaseURL. The dialect is auto-detected from the URL when
// not explicitly set; schema-only clients default to postgres.
func New(opts ...Option) (*Client, error) {
	// Apply default configuration
	cfg := &Config{
		GoPackage: "models",
		Timeout:   30 * time.Second,
	}

	// Apply user options
	for _, opt := range opts {
		opt(cfg)
	}

	// Resolve the dialect before touching the database so RenderSQL
	// works in schema-only mode too.
	var d sqlgen.Dialect
	if cfg.Dialect != "" {
		var ok bool
		d, ok = sqlgen.ParseDialect(cfg.Dialect)
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnsupportedDialect, cfg.Dialect)
		}
	} else if cfg.DatabaseURL != "" {
		d = sqlgen.DetectDialect(cfg.DatabaseURL)
	} else {
		d = sqlgen.Postgres
	}

	client := &Client{
		dialect: d,
		config:  cfg,
	}

	if cfg.CacheDir != "" {
		c, err := cache.Open(cfg.CacheDir)
		if err != nil {
			return nil, err
		}
		client.cache = c
	}

	// Schema-only mode: skip database connection
	if cfg.DatabaseURL == "" {
		return client, nil
	}

	db, err := openDatabase(cfg.DatabaseURL, d)
	if err != nil {
		client.closeCache()
		return nil, &ConnectionError{
			URL:     redactURL(cfg.DatabaseURL),
			Dialect: d.String(),
			Cause:   err,
		}
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Timeout)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		client.closeCache()
		return nil, &ConnectionError{
			URL:     redactURL(cfg.DatabaseURL),
			Dialect: d.String(),
			Cause:   err,
		}
	}

	client.db = db
	return client, nil
}

// Close closes the database connection and the parse cache.
// It should be called when the client is no longer needed.
func (c *Client) Close() error {
	c.closeCache()
	if c.db != nil {
		return c.db.Close()
	}
	return nil
}

func (c *Client) closeCache() {
	if c.cache != nil {
		c.cache.Close()
		c.cache = nil
	}
}

// DB returns the underlying database connection, or nil in schema-only
// mode. Use with caution - prefer the high-level methods when possible.
func (c *Client) DB() *sql.DB {
	return c.db
}

// Dialect returns the SQL dialect name.
func (c *Client) Dialect() string {
	return c.dialect.String()
}

// Config returns a copy of the client configuration.
func (c *Client) Config() Config {
	return *c.config
}

// log logs a message if a logger is configured.
func (c *Client) log(format string, v ...any) {
	if c.config.Logger != nil {
		c.config.Logger.Printf(format, v...)
	}
}

// -----------------------------------------------------------------------------
// Parsing
// -----------------------------------------------------------------------------

// Parse runs the full pipeline on a DDL source text and returns the
// schema model. When the client has a cache, the source checksum is
// looked up first and the result is stored after a fresh parse.
func (c *Client) Parse(source string) (*schema.Table, error) {
	if c.cache == nil {
		return Parse(source)
	}

	checksum := schema.SourceChecksum(source)
	if t, err := c.cache.Get(checksum); err == nil && t != nil {
		c.log("cache hit for %s", checksum[:12])
		return t, nil
	}

	t, err := Parse(source)
	if err != nil {
		return nil, err
	}

	if err := c.cache.Put(checksum, t); err != nil {
		// A cache write failure never fails the parse.
		c.log("cache write failed: %v", err)
	}
	return t, nil
}

// ParseFile reads a DDL source file and parses it.
func (c *Client) ParseFile(path string) (*schema.Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, tserr.Wrap(tserr.ErrSourceRead, err, "failed to read source file").
			WithFile(path)
	}

	t, err := c.Parse(string(data))
	if err != nil {
		if terr, ok := err.(*tserr.Error); ok {
			return nil, terr.WithFile(path)
		}
		return nil, err
	}
	return t, nil
}

// Parse runs the full pipeline on a DDL source text without a client:
// tokenize, parse, build. Use a Client when caching or database access
// is needed.
func Parse(source string) (*schema.Table, error) {
	tokens, err := lexer.Tokenize(source)
	if err != nil {
		return nil, err
	}
	stmt, err := parser.Parse(tokens)
	if err != nil {
		if terr, ok := err.(*tserr.Error); ok {
			return nil, terr.WithSource(source)
		}
		return nil, err
	}
	return schema.Build(stmt), nil
}

// -----------------------------------------------------------------------------
// Output
// -----------------------------------------------------------------------------

// GenerateGo renders a schema model as a Go source file containing one
// struct per table, using the configured package name.
func (c *Client) GenerateGo(t *schema.Table) ([]byte, error) {
	if t == nil {
		return nil, ErrNilTable
	}
	return gen.Go(t, c.config.GoPackage)
}

// RenderSQL renders the CREATE TABLE statement for a schema model in the
// client's dialect.
func (c *Client) RenderSQL(t *schema.Table) string {
	if t == nil {
		return ""
	}
	return sqlgen.RenderCreateTable(c.dialect, t)
}

// Apply executes the CREATE TABLE statement for a schema model against
// the connected database.
func (c *Client) Apply(ctx context.Context, t *schema.Table) error {
	if c.db == nil {
		return ErrMissingDatabaseURL
	}
	if t == nil {
		return ErrNilTable
	}

	stmt := sqlgen.RenderCreateTable(c.dialect, t)
	c.log("applying table %s", t.Name)

	if _, err := c.db.ExecContext(ctx, stmt); err != nil {
		return tserr.Wrap(tserr.ErrSQLExecution, err, "failed to apply schema").
			WithTable(t.Name).
			WithSQL(stmt)
	}
	return nil
}

// -----------------------------------------------------------------------------
// Database plumbing
// -----------------------------------------------------------------------------

// openDatabase opens a database connection for the dialect.
// Driver registration is the caller's responsibility (blank imports).
func openDatabase(url string, d sqlgen.Dialect) (*sql.DB, error) {
	switch d {
	case sqlgen.Postgres:
		return sql.Open("postgres", url)
	case sqlgen.SQLite:
		return sql.Open("sqlite", convertSQLiteURL(url))
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedDialect, d)
	}
}

// convertSQLiteURL converts a sqlite:// URL to a file path, or returns
// the path as-is.
func convertSQLiteURL(url string) string {
	url = strings.TrimPrefix(url, "sqlite://")
	url = strings.TrimPrefix(url, "sqlite3://")
	return url
}

// redactURL removes the password from a database URL for logging.
func redactURL(url string) string {
	start := strings.Index(url, "://")
	if start == -1 {
		return url
	}
	start += 3

	end := strings.Index(url[start:], "@")
	if end == -1 {
		return url
	}
	end += start

	credentials := url[start:end]
	if colonIdx := strings.Index(credentials, ":"); colonIdx != -1 {
		user := credentials[:colonIdx]
		return url[:start] + user + ":***@" + url[end+1:]
	}

	return url
}
