package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/custodia-labs/kgtool/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/custodia-labs/kgtool/internal/core/domain"
	"github.com/custodia-labs/kgtool/internal/core/ports/driven"
)

// DatabaseName is the file name of the database inside the data directory.
const DatabaseName = "kgtool.db"

// Store is a SQLite database that provides the graph and topic stores
// through wrapper types.
type Store struct {
	db   *sql.DB
	path string
	now  func() time.Time
}

// RunInfo describes one saved graph.
type RunInfo struct {
	ID        string
	Nodes     int
	Edges     int
	CreatedAt time.Time
}

// NewStore opens or creates the database in dataDir.
// If dataDir is empty, defaults to $KGTOOL_HOME/data or ~/.kgtool/data.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		dir, err := defaultDataDir()
		if err != nil {
			return nil, err
		}
		dataDir = dir
	}

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, DatabaseName)

	// WAL mode lets the watcher write while a browse session reads.
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
		now:  time.Now,
	}

	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

func defaultDataDir() (string, error) {
	if home := os.Getenv("KGTOOL_HOME"); home != "" {
		return filepath.Join(home, "data"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, ".kgtool", "data"), nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// GraphStore returns the graph store view of the database.
func (s *Store) GraphStore() *GraphStore {
	return &GraphStore{store: s}
}

// TopicStore returns the topic store view of the database.
func (s *Store) TopicStore() *TopicStore {
	return &TopicStore{store: s}
}

// migrate applies every embedded NNN_name.up.sql newer than the recorded version.
func (s *Store) migrate(fsys embed.FS) error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		if strings.HasSuffix(entry.Name(), ".up.sql") {
			upFiles = append(upFiles, entry.Name())
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue
		}
		if version <= currentVersion {
			continue
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}
		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
	}

	return nil
}

// schemaVersion returns the highest applied migration.
func (s *Store) schemaVersion() (int, error) {
	var v int
	err := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations").Scan(&v)
	return v, err
}

// ==================== Graph Store ====================

// GraphStore implements driven.GraphStore. Each Save adds a run.
type GraphStore struct {
	store *Store
}

var _ driven.GraphStore = (*GraphStore)(nil)

// Save stores g as a new run and returns nil once it is committed.
func (g *GraphStore) Save(ctx context.Context, graph *domain.Graph) error {
	_, err := g.SaveRun(ctx, graph)
	return err
}

// SaveRun stores graph as a new run and returns its id.
func (g *GraphStore) SaveRun(ctx context.Context, graph *domain.Graph) (string, error) {
	if graph == nil {
		return "", fmt.Errorf("%w: graph is required", domain.ErrInvalidInput)
	}
	if err := graph.Validate(); err != nil {
		return "", err
	}

	runID := uuid.NewString()
	tx, err := g.store.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	_, err = tx.ExecContext(ctx, `
		INSERT INTO graph_runs (id, node_count, edge_count, created_at)
		VALUES (?, ?, ?, ?)
	`, runID, graph.NodeCount(), graph.EdgeCount(), g.store.now().UTC())
	if err != nil {
		return "", fmt.Errorf("inserting run: %w", err)
	}

	nodeStmt, err := tx.PrepareContext(ctx, `
		INSERT INTO graph_nodes (run_id, id, title, body, keywords, keyphrases, tags)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return "", fmt.Errorf("preparing node insert: %w", err)
	}
	defer nodeStmt.Close()

	for _, n := range graph.Nodes {
		keywords, err := marshalStrings(n.Keywords)
		if err != nil {
			return "", err
		}
		keyphrases, err := marshalStrings(n.Keyphrases)
		if err != nil {
			return "", err
		}
		tags, err := marshalStrings(n.Tags)
		if err != nil {
			return "", err
		}
		if _, err := nodeStmt.ExecContext(ctx, runID, n.ID, n.Title, n.Body, keywords, keyphrases, tags); err != nil {
			return "", fmt.Errorf("inserting node %d: %w", n.ID, err)
		}
	}

	edgeStmt, err := tx.PrepareContext(ctx, `
		INSERT INTO graph_edges (run_id, source, target, weight)
		VALUES (?, ?, ?, ?)
	`)
	if err != nil {
		return "", fmt.Errorf("preparing edge insert: %w", err)
	}
	defer edgeStmt.Close()

	for _, e := range graph.Edges {
		if _, err := edgeStmt.ExecContext(ctx, runID, e.Source, e.Target, e.Weight); err != nil {
			return "", fmt.Errorf("inserting edge %d-%d: %w", e.Source, e.Target, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("committing run: %w", err)
	}
	return runID, nil
}

// Load returns the most recently saved graph.
func (g *GraphStore) Load(ctx context.Context) (*domain.Graph, error) {
	var runID string
	err := g.store.db.QueryRowContext(ctx, `
		SELECT id FROM graph_runs ORDER BY created_at DESC, rowid DESC LIMIT 1
	`).Scan(&runID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("finding latest run: %w", err)
	}
	return g.LoadRun(ctx, runID)
}

// LoadRun returns the graph saved under runID.
func (g *GraphStore) LoadRun(ctx context.Context, runID string) (*domain.Graph, error) {
	var exists int
	err := g.store.db.QueryRowContext(ctx, "SELECT 1 FROM graph_runs WHERE id = ?", runID).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("run %s: %w", runID, domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("finding run: %w", err)
	}

	nodes, err := g.loadNodes(ctx, runID)
	if err != nil {
		return nil, err
	}
	edges, err := g.loadEdges(ctx, runID)
	if err != nil {
		return nil, err
	}

	graph := domain.NewGraph(nodes, edges)
	if err := graph.Validate(); err != nil {
		return nil, err
	}
	return graph, nil
}

func (g *GraphStore) loadNodes(ctx context.Context, runID string) ([]domain.Node, error) {
	rows, err := g.store.db.QueryContext(ctx, `
		SELECT id, title, body, keywords, keyphrases, tags
		FROM graph_nodes WHERE run_id = ? ORDER BY id
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("querying nodes: %w", err)
	}
	defer rows.Close()

	var nodes []domain.Node
	for rows.Next() {
		var (
			n                          domain.Node
			keywords, keyphrases, tags string
		)
		if err := rows.Scan(&n.ID, &n.Title, &n.Body, &keywords, &keyphrases, &tags); err != nil {
			return nil, fmt.Errorf("scanning node: %w", err)
		}
		if n.Keywords, err = unmarshalStrings(keywords); err != nil {
			return nil, err
		}
		if n.Keyphrases, err = unmarshalStrings(keyphrases); err != nil {
			return nil, err
		}
		if n.Tags, err = unmarshalStrings(tags); err != nil {
			return nil, err
		}
		nodes = append(nodes, n)
	}
	return nodes, rows.Err()
}

func (g *GraphStore) loadEdges(ctx context.Context, runID string) ([]domain.Edge, error) {
	rows, err := g.store.db.QueryContext(ctx, `
		SELECT source, target, weight
		FROM graph_edges WHERE run_id = ? ORDER BY source, target
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("querying edges: %w", err)
	}
	defer rows.Close()

	var edges []domain.Edge
	for rows.Next() {
		var e domain.Edge
		if err := rows.Scan(&e.Source, &e.Target, &e.Weight); err != nil {
			return nil, fmt.Errorf("scanning edge: %w", err)
		}
		edges = append(edges, e)
	}
	return edges, rows.Err()
}

// Runs lists saved graphs, newest first.
func (g *GraphStore) Runs(ctx context.Context) ([]RunInfo, error) {
	rows, err := g.store.db.QueryContext(ctx, `
		SELECT id, node_count, edge_count, created_at
		FROM graph_runs ORDER BY created_at DESC, rowid DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var runs []RunInfo
	for rows.Next() {
		var r RunInfo
		if err := rows.Scan(&r.ID, &r.Nodes, &r.Edges, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// DeleteRun removes a run with its nodes and edges.
func (g *GraphStore) DeleteRun(ctx context.Context, runID string) error {
	res, err := g.store.db.ExecContext(ctx, "DELETE FROM graph_runs WHERE id = ?", runID)
	if err != nil {
		return fmt.Errorf("deleting run: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("run %s: %w", runID, domain.ErrNotFound)
	}
	return nil
}

// ==================== Topic Store ====================

// TopicStore implements driven.TopicStore.
type TopicStore struct {
	store *Store
}

var _ driven.TopicStore = (*TopicStore)(nil)

// Save replaces the stored topics, keeping their order.
func (t *TopicStore) Save(ctx context.Context, topics domain.TopicTerms) error {
	tx, err := t.store.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	if _, err := tx.ExecContext(ctx, "DELETE FROM topics"); err != nil {
		return fmt.Errorf("clearing topics: %w", err)
	}
	for i, topic := range topics {
		terms, err := marshalStrings(topic.Terms)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO topics (position, name, terms) VALUES (?, ?, ?)",
			i, topic.Name, terms,
		); err != nil {
			return fmt.Errorf("inserting topic %q: %w", topic.Name, err)
		}
	}
	return tx.Commit()
}

// Load returns the stored topics in order.
func (t *TopicStore) Load(ctx context.Context) (domain.TopicTerms, error) {
	rows, err := t.store.db.QueryContext(ctx, "SELECT name, terms FROM topics ORDER BY position")
	if err != nil {
		return nil, fmt.Errorf("querying topics: %w", err)
	}
	defer rows.Close()

	var topics domain.TopicTerms
	for rows.Next() {
		var (
			d     domain.TopicDescriptor
			terms string
		)
		if err := rows.Scan(&d.Name, &terms); err != nil {
			return nil, fmt.Errorf("scanning topic: %w", err)
		}
		if d.Terms, err = unmarshalStrings(terms); err != nil {
			return nil, err
		}
		topics = append(topics, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(topics) == 0 {
		return nil, domain.ErrNotFound
	}
	return topics, nil
}

// ==================== Helpers ====================

func marshalStrings(s []string) (string, error) {
	if s == nil {
		s = []string{}
	}
	b, err := json.Marshal(s)
	if err != nil {
		return "", fmt.Errorf("marshalling list: %w", err)
	}
	return string(b), nil
}

func unmarshalStrings(raw string) ([]string, error) {
	out := []string{}
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return nil, fmt.Errorf("unmarshalling list: %w", err)
	}
	return out, nil
}
